package models

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the fields shared by every stored document.
// ID is a UUID string assigned at insert time.
type Base struct {
	ID      string    `json:"id"       bson:"_id"`
	Created time.Time `json:"created"  bson:"created"`
	Updated time.Time `json:"modified" bson:"updated"`
}

// NewBase returns a Base with a fresh ID and both timestamps set to now.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{ID: uuid.New().String(), Created: now, Updated: now}
}
