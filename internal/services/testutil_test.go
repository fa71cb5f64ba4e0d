package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"speedfriending/internal/models"
	"speedfriending/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a named in-memory sqlite database scoped to the test,
// so parallel tests never share state. TranslateError is on, matching the
// runtime connection, so uniqueness violations surface as ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// one connection keeps sqlite's shared-cache locking out of the picture
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Event{},
		&models.Participant{},
		&models.Round{},
		&models.Pairing{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// seedEvent creates an event with n participants and returns both
func seedEvent(t *testing.T, repo *repository.Repository, n int) (*models.Event, []*models.Participant) {
	t.Helper()
	ctx := context.Background()

	eventService := NewEventService(repo, 6, "UTC")
	event, err := eventService.CreateEvent(ctx, &models.CreateEventRequest{Title: "Test Event"})
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	participantService := NewParticipantService(repo)
	participants := make([]*models.Participant, n)
	for i := 0; i < n; i++ {
		p, err := participantService.Join(ctx, event.JoinCode, fmt.Sprintf("p%d@example.com", i))
		if err != nil {
			t.Fatalf("failed to join participant %d: %v", i, err)
		}
		participants[i] = p
	}

	return event, participants
}
