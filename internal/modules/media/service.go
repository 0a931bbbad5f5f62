package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	// register decoders for the formats uploads arrive in
	_ "image/gif"
	_ "image/png"
)

var (
	// ErrInvalidImage reports empty or undecodable input.
	ErrInvalidImage = errors.New("media: invalid image input")
	// ErrBudgetExceeded reports that the artifact is still oversized at the
	// quality floor; the caller must reject the upload.
	ErrBudgetExceeded = errors.New("media: compression budget exceeded")
)

const (
	// maxDimension bounds the longer side of the image in pixels.
	maxDimension = 1200

	startQuality = 80
	floorQuality = 10
	qualityStep  = 5

	// encodingOverhead accounts for base64 text expansion of the binary
	// payload when comparing against the byte budget.
	encodingOverhead = 1.37

	dataURIPrefix = "data:image/jpeg;base64,"
)

// Service converts an uploaded image into a size-bounded embeddable string.
// Compress is a pure function of its inputs; the service only carries the
// fallback budget.
type Service struct {
	defaultBudgetKB int
}

func NewService(defaultBudgetKB int) *Service {
	return &Service{defaultBudgetKB: defaultBudgetKB}
}

// DefaultBudgetKB returns the budget used when the caller passes none.
func (s *Service) DefaultBudgetKB() int { return s.defaultBudgetKB }

// Compress decodes raw, downscales it so the longer side is at most 1200px,
// and JPEG-encodes it as a base64 data URI, stepping quality down from 80
// until the artifact fits maxSizeKB*1024*1.37 or the quality floor is hit.
func (s *Service) Compress(raw []byte, maxSizeKB int) (string, error) {
	if maxSizeKB <= 0 {
		maxSizeKB = s.defaultBudgetKB
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty input", ErrInvalidImage)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	img = boundDimensions(img, maxDimension)

	budget := float64(maxSizeKB) * 1024 * encodingOverhead

	quality := startQuality
	artifact, err := encodeDataURI(img, quality)
	if err != nil {
		return "", err
	}
	for float64(len(artifact)) > budget && quality > floorQuality {
		quality -= qualityStep
		artifact, err = encodeDataURI(img, quality)
		if err != nil {
			return "", err
		}
	}
	if float64(len(artifact)) > budget {
		return "", fmt.Errorf("%w: %d bytes at quality floor for %d KB budget", ErrBudgetExceeded, len(artifact), maxSizeKB)
	}
	return artifact, nil
}

func encodeDataURI(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("%w: encode: %v", ErrInvalidImage, err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// boundDimensions scales img down so its longer side equals max, preserving
// aspect ratio. Images already within bounds pass through untouched.
func boundDimensions(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= max && h <= max {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = max
		nh = h * max / w
	} else {
		nh = max
		nw = w * max / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	// Nearest-neighbor is plenty for embedded preview imagery.
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			srcX := x * w / nw
			srcY := y * h / nh
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}
	return dst
}
