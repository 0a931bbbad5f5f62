package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

func newBooking(t *testing.T, svc *Service) *models.BookingModel {
	t.Helper()
	b, err := svc.Create(context.Background(), &CreateBookingDTO{
		Name:        "Client",
		Email:       "client@example.com",
		ServiceType: "web-design",
		Description: "a portfolio site",
	}, "u1")
	require.NoError(t, err)
	return b
}

func TestCreateStartsPending(t *testing.T) {
	svc := NewService(store.NewMemory())
	b := newBooking(t, svc)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, "u1", b.UserID)
}

func TestTransitionGraph(t *testing.T) {
	cases := []struct {
		from models.BookingStatus
		to   models.BookingStatus
		ok   bool
	}{
		{models.BookingPending, models.BookingApproved, true},
		{models.BookingPending, models.BookingRejected, true},
		{models.BookingPending, models.BookingInProgress, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingApproved, models.BookingInProgress, true},
		{models.BookingApproved, models.BookingCancelled, true},
		{models.BookingApproved, models.BookingCompleted, false},
		{models.BookingInProgress, models.BookingCompleted, true},
		{models.BookingInProgress, models.BookingCancelled, true},
		{models.BookingInProgress, models.BookingApproved, false},
		{models.BookingCompleted, models.BookingPending, false},
		{models.BookingRejected, models.BookingInProgress, false},
		{models.BookingCancelled, models.BookingPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	for _, s := range []models.BookingStatus{models.BookingRejected, models.BookingCompleted, models.BookingCancelled} {
		assert.True(t, IsTerminal(s), "%s should be terminal", s)
	}
	assert.False(t, IsTerminal(models.BookingPending))
}

func TestTransitionLegality(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())
	b := newBooking(t, svc)

	// completed is unreachable from pending
	err := svc.Transition(ctx, b.ID, models.BookingCompleted, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, svc.Transition(ctx, b.ID, models.BookingInProgress, ""))
	require.NoError(t, svc.Transition(ctx, b.ID, models.BookingCompleted, ""))

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, got.Status)

	// terminal: nothing moves a completed booking
	err = svc.Transition(ctx, b.ID, models.BookingPending, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	err = svc.Transition(ctx, b.ID, models.BookingCancelled, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc := NewService(store.NewMemory())
	b := newBooking(t, svc)

	err := svc.Transition(context.Background(), b.ID, "shipped", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionMissingBooking(t *testing.T) {
	svc := NewService(store.NewMemory())
	err := svc.Transition(context.Background(), "missing", models.BookingApproved, "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTransitionNotes(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())
	b := newBooking(t, svc)

	require.NoError(t, svc.Transition(ctx, b.ID, models.BookingApproved, "looks good, starting next week"))

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "looks good, starting next week", got.AdminNotes)
	require.NotNil(t, got.NotesAt)

	// a transition without notes keeps the previous annotation
	require.NoError(t, svc.Transition(ctx, b.ID, models.BookingInProgress, ""))
	got, err = svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "looks good, starting next week", got.AdminNotes)
}

func TestDeleteUnconditional(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	b := newBooking(t, svc)
	require.NoError(t, svc.Transition(ctx, b.ID, models.BookingInProgress, ""))

	// deletion is allowed in any status, in-progress included
	require.NoError(t, svc.Delete(ctx, b.ID))
	_, err := svc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestByUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	newBooking(t, svc)
	other, err := svc.Create(ctx, &CreateBookingDTO{
		Name:        "Someone Else",
		Email:       "other@example.com",
		ServiceType: "branding",
	}, "u2")
	require.NoError(t, err)

	mine, err := svc.ByUser(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, other.ID, mine[0].ID)
}
