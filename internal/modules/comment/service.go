package comment

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

// ErrContentNotFound reports a comment aimed at a missing content item.
var ErrContentNotFound = errors.New("comment: content item not found")

// Service creates and lists comments. Deletion is owned by the content
// service's cascade; a comment never outlives its parent.
type Service struct {
	comments store.Collection
	items    store.Collection
}

func NewService(st store.Store) *Service {
	return &Service{
		comments: st.Collection(store.ColComments),
		items:    st.Collection(store.ColContent),
	}
}

// CreateDTO is the payload for a new comment.
type CreateDTO struct {
	Text string `json:"text" binding:"required"`
}

// Create attaches a comment to an existing content item.
func (s *Service) Create(ctx context.Context, contentID, authorID, authorName, text string) (*models.CommentModel, error) {
	n, err := s.items.Count(ctx, bson.M{"_id": contentID})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrContentNotFound
	}

	cm := models.CommentModel{
		Base:      models.NewBase(),
		ContentID: contentID,
		AuthorID:  authorID,
		Author:    authorName,
		Text:      text,
	}
	if err := s.comments.InsertOne(ctx, &cm); err != nil {
		return nil, err
	}

	// the parent can be cascade-deleted between the existence check and the
	// insert; re-check and undo so the comment never outlives it
	n, err = s.items.Count(ctx, bson.M{"_id": contentID})
	if err == nil && n == 0 {
		_ = s.comments.DeleteByID(ctx, cm.ID)
		return nil, ErrContentNotFound
	}
	return &cm, nil
}

// ListByContent returns the comments of one item, oldest first.
func (s *Service) ListByContent(ctx context.Context, contentID string) ([]models.CommentModel, error) {
	var out []models.CommentModel
	err := s.comments.Find(ctx, bson.M{"contentId": contentID}, bson.D{{Key: "created", Value: 1}}, &out)
	return out, err
}
