package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"speedfriending/internal/models"
	"speedfriending/internal/repository"
	"speedfriending/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// joinCodeAttempts bounds the retry loop against the join-code unique
// index. The code space is large enough that hitting the bound means
// something is wrong with the randomness source, not bad luck.
const joinCodeAttempts = 5

// EventService handles event creation and lookup
type EventService struct {
	repo            *repository.Repository
	codeLength      int
	defaultTimezone string

	// overridable for tests
	generateCode func(int) (string, error)
}

// NewEventService creates a new EventService
func NewEventService(repo *repository.Repository, codeLength int, defaultTimezone string) *EventService {
	return &EventService{
		repo:            repo,
		codeLength:      codeLength,
		defaultTimezone: defaultTimezone,
		generateCode:    utils.GenerateJoinCode,
	}
}

// CreateEvent creates a new event with a freshly generated join code. The
// code's uniqueness is enforced by the database index; a collision is
// resolved by drawing a new code and retrying the insert.
func (s *EventService) CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	tz := req.Timezone
	if tz == "" {
		tz = s.defaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}

	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		code, err := s.generateCode(s.codeLength)
		if err != nil {
			return nil, err
		}

		event := &models.Event{
			ID:       uuid.New(),
			Title:    req.Title,
			JoinCode: code,
			Timezone: tz,
			Status:   models.EventStatusPending,
		}

		err = s.repo.CreateEvent(ctx, event)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("Join code collision on %q, retrying", code)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create event: %w", err)
		}
		return event, nil
	}

	return nil, ErrJoinCodeExhausted
}

// GetEventByJoinCode retrieves an event by its join code
func (s *EventService) GetEventByJoinCode(ctx context.Context, code string) (*models.Event, error) {
	event, err := s.repo.GetEventByJoinCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}
