package models

import "time"

// BookingStatus is a node in the booking state machine.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingApproved   BookingStatus = "approved"
	BookingRejected   BookingStatus = "rejected"
	BookingInProgress BookingStatus = "in-progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// BookingModel is a client service request. Status moves only through
// the transition graph enforced by the booking service.
type BookingModel struct {
	Base        `bson:",inline"`
	UserID      string        `json:"user_id"      bson:"userId"`
	Name        string        `json:"name"         bson:"name"`
	Email       string        `json:"email"        bson:"email"`
	Phone       string        `json:"phone,omitempty" bson:"phone,omitempty"`
	ServiceType string        `json:"service_type" bson:"serviceType"`
	Description string        `json:"description"  bson:"description"`
	Timeline    string        `json:"timeline,omitempty" bson:"timeline,omitempty"`
	Budget      string        `json:"budget,omitempty"   bson:"budget,omitempty"`
	Urgency     string        `json:"urgency,omitempty"  bson:"urgency,omitempty"`
	Status      BookingStatus `json:"status"       bson:"status"`
	AdminNotes  string        `json:"admin_notes,omitempty" bson:"adminNotes,omitempty"`
	NotesAt     *time.Time    `json:"notes_at,omitempty"    bson:"notesAt,omitempty"`
}

func (BookingModel) CollectionName() string { return "bookings" }
