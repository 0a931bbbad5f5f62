package booking

import "github.com/folio-space/core/internal/models"

// transitions is the status graph. Absent targets are illegal; statuses with
// no outgoing edges are terminal.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending: {
		models.BookingApproved,
		models.BookingRejected,
		models.BookingInProgress,
		models.BookingCancelled,
	},
	models.BookingApproved: {
		models.BookingInProgress,
		models.BookingCancelled,
	},
	models.BookingInProgress: {
		models.BookingCompleted,
		models.BookingCancelled,
	},
	models.BookingRejected:  {},
	models.BookingCompleted: {},
	models.BookingCancelled: {},
}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s models.BookingStatus) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether s admits no further transitions.
func IsTerminal(s models.BookingStatus) bool {
	targets, ok := transitions[s]
	return ok && len(targets) == 0
}

// CanTransition reports whether from -> to is an edge of the graph.
func CanTransition(from, to models.BookingStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// CreateBookingDTO is a client service request.
type CreateBookingDTO struct {
	Name        string `json:"name"         binding:"required"`
	Email       string `json:"email"        binding:"required,email"`
	Phone       string `json:"phone"`
	ServiceType string `json:"service_type" binding:"required"`
	Description string `json:"description"`
	Timeline    string `json:"timeline"`
	Budget      string `json:"budget"`
	Urgency     string `json:"urgency"`
}

// TransitionDTO moves a booking to a target status with optional operator
// notes.
type TransitionDTO struct {
	Status models.BookingStatus `json:"status" binding:"required"`
	Notes  string               `json:"notes"`
}
