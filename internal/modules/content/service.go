package content

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

// ErrDeletionIncomplete reports a cascade delete that stopped partway.
// The operation is idempotent: re-issuing the delete finishes the job.
var ErrDeletionIncomplete = errors.New("content: deletion incomplete")

// Service owns the create/update/delete lifecycle of content items and the
// cascading removal of their comments. Engagement fields are never written
// here; the engagement service is their only writer.
type Service struct {
	items    store.Collection
	comments store.Collection
}

func NewService(st store.Store) *Service {
	return &Service{
		items:    st.Collection(store.ColContent),
		comments: st.Collection(store.ColComments),
	}
}

// Create inserts a new item with a zeroed engagement block.
func (s *Service) Create(ctx context.Context, dto *CreateContentDTO) (*models.ContentModel, error) {
	item := models.ContentModel{
		Base:     models.NewBase(),
		Kind:     dto.Kind,
		Title:    dto.Title,
		Text:     dto.Text,
		Category: dto.Category,
		Tags:     dto.Tags,
		Media:    dto.Media,
		Engagement: models.Engagement{
			ViewedBy: []string{},
			LikedBy:  []string{},
		},
	}
	if dto.IsPublished != nil {
		item.IsPublished = *dto.IsPublished
	}
	if dto.IsFeatured != nil {
		item.IsFeatured = *dto.IsFeatured
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if err := s.items.InsertOne(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Get fetches one item by ID; store.ErrNotFound when absent.
func (s *Service) Get(ctx context.Context, id string) (*models.ContentModel, error) {
	var item models.ContentModel
	if err := s.items.FindByID(ctx, id, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// All returns every item, newest first.
func (s *Service) All(ctx context.Context) ([]models.ContentModel, error) {
	var items []models.ContentModel
	err := s.items.Find(ctx, bson.M{}, bson.D{{Key: "created", Value: -1}}, &items)
	return items, err
}

// Published returns published items, newest first.
func (s *Service) Published(ctx context.Context) ([]models.ContentModel, error) {
	var items []models.ContentModel
	err := s.items.Find(ctx, bson.M{"isPublished": true}, bson.D{{Key: "created", Value: -1}}, &items)
	return items, err
}

// Update patches an item and re-stamps only the update timestamp.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateContentDTO) error {
	set := bson.M{}
	if dto.Title != nil {
		set["title"] = *dto.Title
	}
	if dto.Text != nil {
		set["text"] = *dto.Text
	}
	if dto.Category != nil {
		set["category"] = *dto.Category
	}
	if dto.Tags != nil {
		set["tags"] = dto.Tags
	}
	if dto.IsPublished != nil {
		set["isPublished"] = *dto.IsPublished
	}
	if dto.IsFeatured != nil {
		set["isFeatured"] = *dto.IsFeatured
	}
	if dto.Media != nil {
		set["media"] = *dto.Media
	}

	update := bson.M{"$currentDate": bson.M{"updated": true}}
	if len(set) > 0 {
		update["$set"] = set
	}
	return s.items.UpdateByID(ctx, id, update)
}

// Delete removes the item and every comment referencing it. The comment
// sweep runs first so a retry after partial failure re-queries the survivors;
// deleting already-deleted comments is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	var item models.ContentModel
	if err := s.items.FindByID(ctx, id, &item); err != nil {
		return err
	}

	if _, err := s.comments.DeleteMany(ctx, bson.M{"contentId": id}); err != nil {
		return fmt.Errorf("%w: comments of %s: %w", ErrDeletionIncomplete, id, err)
	}
	if err := s.items.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// lost a race with another delete; the outcome stands
			return nil
		}
		return fmt.Errorf("%w: item %s: %w", ErrDeletionIncomplete, id, err)
	}
	return nil
}
