package engagement

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/folio-space/core/internal/store"
)

// ErrItemNotFound reports that the target content item does not exist.
var ErrItemNotFound = errors.New("engagement: item not found")

// Service maintains the like/view counter and membership set of content
// items. Every mutation is a single conditional document update combining
// the set operation with the counter increment, so counter and set cannot
// diverge even under concurrent callers; there is no read-modify-write
// across the pair.
type Service struct {
	items store.Collection
}

func NewService(st store.Store) *Service {
	return &Service{items: st.Collection(store.ColContent)}
}

// ToggleLike flips the (item, user) like state and returns the new state:
// true when the call added the like, false when it removed it.
func (s *Service) ToggleLike(ctx context.Context, itemID, userID string) (bool, error) {
	// Add path: only matches while the user is not yet a member.
	matched, err := s.items.UpdateOne(ctx,
		bson.M{"_id": itemID, "engagement.likedBy": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"engagement.likedBy": userID},
			"$inc":      bson.M{"engagement.likeCount": 1},
		})
	if err != nil {
		return false, err
	}
	if matched > 0 {
		return true, nil
	}

	// Remove path: only matches while the user is a member.
	matched, err = s.items.UpdateOne(ctx,
		bson.M{"_id": itemID, "engagement.likedBy": userID},
		bson.M{
			"$pull": bson.M{"engagement.likedBy": userID},
			"$inc":  bson.M{"engagement.likeCount": -1},
		})
	if err != nil {
		return false, err
	}
	if matched > 0 {
		return false, nil
	}
	return false, ErrItemNotFound
}

// RecordView counts the first view per user; repeats are no-ops.
func (s *Service) RecordView(ctx context.Context, itemID, userID string) error {
	matched, err := s.items.UpdateOne(ctx,
		bson.M{"_id": itemID, "engagement.viewedBy": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"engagement.viewedBy": userID},
			"$inc":      bson.M{"engagement.viewCount": 1},
		})
	if err != nil {
		return err
	}
	if matched > 0 {
		return nil
	}

	// No match: the user has already viewed the item, or the item is gone.
	n, err := s.items.Count(ctx, bson.M{"_id": itemID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}
