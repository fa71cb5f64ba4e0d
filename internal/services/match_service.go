package services

import (
	"context"
	"errors"

	"speedfriending/internal/models"
	"speedfriending/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchService resolves "who is my current partner". Pure reads: nothing
// here mutates state. The current round is the highest round number, not
// the round whose window contains now, so a match stays resolvable after
// its window closes.
type MatchService struct {
	repo *repository.Repository
}

// NewMatchService creates a new MatchService
func NewMatchService(repo *repository.Repository) *MatchService {
	return &MatchService{repo: repo}
}

// MyMatch finds the caller's pairing in the event's current round and
// reports the partner, the round window and the pairing status. Partner is
// nil when the caller drew the bye slot.
func (s *MatchService) MyMatch(ctx context.Context, code, email string) (*models.MatchResponse, error) {
	event, participant, pairing, err := s.resolvePairing(ctx, code, email)
	if err != nil {
		return nil, err
	}

	round, err := s.repo.GetRound(ctx, event.ID, event.CurrentRound)
	if err != nil {
		return nil, err
	}

	resp := &models.MatchResponse{
		Self:        models.ParticipantInfo{ID: participant.ID, Email: participant.Email},
		RoundNumber: event.CurrentRound,
		StartsAt:    round.StartsAt,
		EndsAt:      round.EndsAt,
		Status:      pairing.Status,
	}

	partnerID := partnerOf(pairing, participant.ID)
	if partnerID != nil {
		partner, err := s.repo.GetParticipantByID(ctx, *partnerID)
		if err != nil {
			return nil, err
		}
		resp.Partner = &models.ParticipantInfo{ID: partner.ID, Email: partner.Email}
	}

	return resp, nil
}

// resolvePairing walks token -> participant -> current-round pairing,
// mapping each missing link to its client error
func (s *MatchService) resolvePairing(ctx context.Context, code, email string) (*models.Event, *models.Participant, *models.Pairing, error) {
	event, err := s.repo.GetEventByJoinCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, ErrEventNotFound
	}
	if err != nil {
		return nil, nil, nil, err
	}

	participant, err := s.repo.GetParticipantByEmail(ctx, event.ID, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, nil, nil, err
	}

	if event.CurrentRound < 1 {
		return nil, nil, nil, ErrRoundNotStarted
	}

	pairing, err := s.repo.GetPairingForParticipant(ctx, event.ID, event.CurrentRound, participant.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// joined after the round started, or sidelined
		return nil, nil, nil, ErrNoPairingForRound
	}
	if err != nil {
		return nil, nil, nil, err
	}

	return event, participant, pairing, nil
}

func partnerOf(pairing *models.Pairing, selfID uuid.UUID) *uuid.UUID {
	if pairing.SecondParticipantID == nil {
		return nil // bye slot
	}
	if *pairing.SecondParticipantID == selfID {
		first := pairing.FirstParticipantID
		return &first
	}
	return pairing.SecondParticipantID
}
