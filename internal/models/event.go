package models

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusPending EventStatus = "pending"
	EventStatusRunning EventStatus = "running"
)

// Event represents one matchmaking session with its own participant pool
// and round sequence
type Event struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string      `gorm:"size:255;not null" json:"title"`
	JoinCode     string      `gorm:"size:32;uniqueIndex;not null" json:"join_code"`
	Timezone     string      `gorm:"size:64;not null" json:"timezone"`
	CurrentRound int         `gorm:"not null;default:0" json:"current_round"`
	Status       EventStatus `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// CreateEventRequest represents a request to create a new event
type CreateEventRequest struct {
	Title    string `json:"title" binding:"required"`
	Timezone string `json:"timezone"`
}
