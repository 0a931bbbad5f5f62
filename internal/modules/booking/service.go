package booking

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

// ErrInvalidTransition reports a status move not present in the graph.
var ErrInvalidTransition = errors.New("booking: invalid status transition")

// Service governs the booking state machine. Transitions write the status
// conditionally on the one they validated against, so two operators racing
// the same booking cannot both win.
type Service struct {
	bookings store.Collection
}

func NewService(st store.Store) *Service {
	return &Service{bookings: st.Collection(store.ColBookings)}
}

// Create records a client request in the initial pending status.
func (s *Service) Create(ctx context.Context, dto *CreateBookingDTO, userID string) (*models.BookingModel, error) {
	b := models.BookingModel{
		Base:        models.NewBase(),
		UserID:      userID,
		Name:        dto.Name,
		Email:       dto.Email,
		Phone:       dto.Phone,
		ServiceType: dto.ServiceType,
		Description: dto.Description,
		Timeline:    dto.Timeline,
		Budget:      dto.Budget,
		Urgency:     dto.Urgency,
		Status:      models.BookingPending,
	}
	if err := s.bookings.InsertOne(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Get fetches one booking; store.ErrNotFound when absent.
func (s *Service) Get(ctx context.Context, id string) (*models.BookingModel, error) {
	var b models.BookingModel
	if err := s.bookings.FindByID(ctx, id, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// All returns every booking, newest first.
func (s *Service) All(ctx context.Context) ([]models.BookingModel, error) {
	var out []models.BookingModel
	err := s.bookings.Find(ctx, bson.M{}, bson.D{{Key: "created", Value: -1}}, &out)
	return out, err
}

// ByUser returns the bookings owned by one user, newest first.
func (s *Service) ByUser(ctx context.Context, userID string) ([]models.BookingModel, error) {
	var out []models.BookingModel
	err := s.bookings.Find(ctx, bson.M{"userId": userID}, bson.D{{Key: "created", Value: -1}}, &out)
	return out, err
}

// Transition moves a booking to target when the graph allows it. Non-empty
// notes overwrite adminNotes and are stamped with the transition time.
func (s *Service) Transition(ctx context.Context, id string, target models.BookingStatus, notes string) error {
	if !ValidStatus(target) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
	}

	set := bson.M{"status": target}
	stamp := bson.M{"updated": true}
	if notes != "" {
		set["adminNotes"] = notes
		stamp["notesAt"] = true
	}
	matched, err := s.bookings.UpdateOne(ctx,
		bson.M{"_id": id, "status": b.Status},
		bson.M{"$set": set, "$currentDate": stamp},
	)
	if err != nil {
		return err
	}
	if matched == 0 {
		// The status moved under us; report against the fresh one.
		cur, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.Status, target)
	}
	return nil
}

// Delete removes a booking regardless of its status. Irreversible; bookings
// have no cascade dependents.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.bookings.DeleteByID(ctx, id)
}
