package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person attached to exactly one event. The composite
// unique index enforces one registration per email per event at insert time.
type Participant struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_participants_event_email" json:"event_id"`
	Email    string    `gorm:"size:255;not null;uniqueIndex:idx_participants_event_email" json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

func (Participant) TableName() string {
	return "participants"
}

// JoinEventRequest represents a request to join an event by its code
type JoinEventRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ParticipantListResponse represents the participant roster of an event
type ParticipantListResponse struct {
	EventID      uuid.UUID     `json:"event_id"`
	JoinCode     string        `json:"join_code"`
	Participants []Participant `json:"participants"`
}
