package content

import "github.com/folio-space/core/internal/models"

// CreateContentDTO is the authoring payload for a new blog post or project.
type CreateContentDTO struct {
	Kind        models.ContentKind `json:"kind"  binding:"required,oneof=blog project"`
	Title       string             `json:"title" binding:"required"`
	Text        string             `json:"text"`
	Category    string             `json:"category"`
	Tags        []string           `json:"tags"`
	IsPublished *bool              `json:"is_published"`
	IsFeatured  *bool              `json:"is_featured"`
	Media       string             `json:"media"`
}

// UpdateContentDTO patches an existing item; nil fields are left untouched.
// Engagement fields are deliberately absent: edits must never reset them.
type UpdateContentDTO struct {
	Title       *string  `json:"title"`
	Text        *string  `json:"text"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"is_published"`
	IsFeatured  *bool    `json:"is_featured"`
	Media       *string  `json:"media"`
}
