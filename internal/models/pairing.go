package models

import (
	"time"

	"github.com/google/uuid"
)

type PairingStatus string

const (
	PairingStatusAssigned PairingStatus = "assigned"
	PairingStatusMet      PairingStatus = "met"
	PairingStatusMissed   PairingStatus = "missed"
)

// Pairing is one matched unit within a round: two participants, or one
// participant plus a bye when SecondParticipantID is nil. Identity fields
// are immutable after creation; only Status and MetAt advance.
type Pairing struct {
	ID                  uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	EventID             uuid.UUID     `gorm:"type:uuid;not null;index:idx_pairings_event_round" json:"event_id"`
	RoundNumber         int           `gorm:"not null;index:idx_pairings_event_round" json:"round_number"`
	FirstParticipantID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"first_participant_id"`
	SecondParticipantID *uuid.UUID    `gorm:"type:uuid;index" json:"second_participant_id"`
	Status              PairingStatus `gorm:"size:20;not null;default:assigned" json:"status"`
	MetAt               *time.Time    `json:"met_at"`
	CreatedAt           time.Time     `json:"created_at"`
}

func (Pairing) TableName() string {
	return "pairings"
}

// ParticipantInfo identifies a participant in API responses
type ParticipantInfo struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// MatchResponse answers "who is my current partner". Partner is nil when
// the caller drew the bye slot this round.
type MatchResponse struct {
	Self        ParticipantInfo  `json:"self"`
	Partner     *ParticipantInfo `json:"partner"`
	RoundNumber int              `json:"round_number"`
	StartsAt    time.Time        `json:"starts_at"`
	EndsAt      time.Time        `json:"ends_at"`
	Status      PairingStatus    `json:"status"`
}

// ReportMetRequest represents a request to mark the caller's current
// pairing as met
type ReportMetRequest struct {
	Email string `json:"email" binding:"required,email"`
}
