package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"speedfriending/internal/models"
	"speedfriending/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParticipantService handles the identity registry of an event
type ParticipantService struct {
	repo *repository.Repository
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(repo *repository.Repository) *ParticipantService {
	return &ParticipantService{repo: repo}
}

// Join attaches a new participant to the event behind the join code. The
// (event, email) uniqueness check is the insert itself, so two concurrent
// joins with the same email cannot both succeed.
func (s *ParticipantService) Join(ctx context.Context, code, email string) (*models.Participant, error) {
	event, err := s.repo.GetEventByJoinCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	participant := &models.Participant{
		ID:       uuid.New(),
		EventID:  event.ID,
		Email:    email,
		JoinedAt: time.Now(),
	}

	err = s.repo.CreateParticipant(ctx, participant)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateParticipant
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	return participant, nil
}

// List retrieves the event behind the join code and its participant roster
func (s *ParticipantService) List(ctx context.Context, code string) (*models.Event, []models.Participant, error) {
	event, err := s.repo.GetEventByJoinCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrEventNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	participants, err := s.repo.ListParticipants(ctx, event.ID)
	if err != nil {
		return nil, nil, err
	}

	return event, participants, nil
}
