package models

import (
	"time"

	"github.com/google/uuid"
)

// Round is one timed pairing window of an event. Rounds are immutable once
// created; numbering is strictly per-event.
type Round struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_rounds_event_number" json:"event_id"`
	Number    int       `gorm:"not null;uniqueIndex:idx_rounds_event_number" json:"number"`
	StartsAt  time.Time `gorm:"not null" json:"starts_at"`
	EndsAt    time.Time `gorm:"not null" json:"ends_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (Round) TableName() string {
	return "rounds"
}

// StartRoundRequest represents an optional request body for starting a round
type StartRoundRequest struct {
	Strategy string `json:"strategy"`
}

// StartRoundResponse represents the outcome of starting a round
type StartRoundResponse struct {
	EventID      uuid.UUID `json:"event_id"`
	RoundNumber  int       `json:"round_number"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	PairingCount int       `json:"pairing_count"`
}
