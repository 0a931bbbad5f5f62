package user

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/jwt"
	"github.com/folio-space/core/internal/store"
)

// Service mirrors identity-oracle accounts as profile documents. The oracle
// owns authentication; this service owns the role and active flag.
type Service struct {
	users store.Collection
}

func NewService(st store.Store) *Service {
	return &Service{users: st.Collection(store.ColUsers)}
}

// Materialize upserts the profile for a verified identity, refreshing the
// oracle-owned fields and seeding role/active on first sight.
func (s *Service) Materialize(ctx context.Context, claims *jwt.Claims) error {
	return s.users.UpsertByID(ctx, claims.UserID, bson.M{
		"$set": bson.M{
			"name":     claims.Name,
			"email":    claims.Email,
			"provider": claims.Provider,
		},
		"$setOnInsert": bson.M{
			"role":     models.RoleUser,
			"isActive": true,
			"created":  time.Now().UTC(),
		},
		"$currentDate": bson.M{"updated": true},
	})
}

// Get fetches one profile; store.ErrNotFound when absent.
func (s *Service) Get(ctx context.Context, id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.users.FindByID(ctx, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// All returns every profile, newest first.
func (s *Service) All(ctx context.Context) ([]models.UserModel, error) {
	var out []models.UserModel
	err := s.users.Find(ctx, bson.M{}, bson.D{{Key: "created", Value: -1}}, &out)
	return out, err
}

// SetRole changes a profile's authorization level.
func (s *Service) SetRole(ctx context.Context, id string, role models.Role) error {
	return s.users.UpdateByID(ctx, id, bson.M{
		"$set":         bson.M{"role": role},
		"$currentDate": bson.M{"updated": true},
	})
}

// SetActive flips a profile's active flag.
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	return s.users.UpdateByID(ctx, id, bson.M{
		"$set":         bson.M{"isActive": active},
		"$currentDate": bson.M{"updated": true},
	})
}
