package media

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/folio-space/core/internal/pkg/response"
)

type Handler struct {
	svc           *Service
	uploadLimitMB int
}

func NewHandler(svc *Service, uploadLimitMB int) *Handler {
	return &Handler{svc: svc, uploadLimitMB: uploadLimitMB}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	g := rg.Group("/media")
	g.POST("/compress", authMW, adminMW, h.compress)
}

// compress accepts a multipart image upload and returns the embeddable
// artifact. `max_kb` overrides the configured budget.
func (h *Handler) compress(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if file.Size > int64(h.uploadLimitMB)*1024*1024 {
		response.UnprocessableEntity(c, "upload exceeds size limit")
		return
	}

	maxKB := h.svc.DefaultBudgetKB()
	if q := c.Query("max_kb"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			response.BadRequest(c, "max_kb must be a positive integer")
			return
		}
		maxKB = n
	}

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	artifact, err := h.svc.Compress(raw, maxKB)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidImage):
			response.BadRequest(c, "could not decode image")
		case errors.Is(err, ErrBudgetExceeded):
			response.UnprocessableEntity(c, "image too large to compress into the budget")
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.OK(c, gin.H{"media": artifact, "size": len(artifact)})
}
