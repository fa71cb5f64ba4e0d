package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"speedfriending/internal/clock"
	"speedfriending/internal/models"
	"speedfriending/internal/pairing"
	"speedfriending/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoundService owns the round lifecycle: numbering, time windows and the
// pairing batch. Starting a round is atomic: the counter increment, the
// round record and all its pairings are persisted in one transaction, and a
// per-event mutex serializes concurrent starters so no two rounds of one
// event can share a number.
type RoundService struct {
	repo     *repository.Repository
	clk      clock.Clock
	duration time.Duration

	strategies map[string]pairing.Strategy
	locks      sync.Map // event id -> *sync.Mutex

	// overridable for tests
	seed func() int64
}

// NewRoundService creates a new RoundService
func NewRoundService(repo *repository.Repository, clk clock.Clock, duration time.Duration) *RoundService {
	return &RoundService{
		repo:     repo,
		clk:      clk,
		duration: duration,
		strategies: map[string]pairing.Strategy{
			pairing.StrategyRandom:          pairing.Random{},
			pairing.StrategyHistoryAvoiding: pairing.HistoryAvoiding{},
		},
		seed: func() int64 { return time.Now().UnixNano() },
	}
}

func (s *RoundService) lockEvent(eventID uuid.UUID) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(eventID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// StartRound advances the event to its next round: reads the current
// participant pool, generates pairings with the requested strategy
// ("random" when empty), stamps the window from the injected clock and
// persists everything together. Fails without mutation when fewer than two
// participants have joined.
func (s *RoundService) StartRound(ctx context.Context, code, strategyName string) (*models.StartRoundResponse, error) {
	if strategyName == "" {
		strategyName = pairing.StrategyRandom
	}
	strat, ok := s.strategies[strategyName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategyName)
	}

	event, err := s.repo.GetEventByJoinCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	mu := s.lockEvent(event.ID)
	mu.Lock()
	defer mu.Unlock()

	// re-read under the lock so the previous starter's increment is visible
	event, err = s.repo.GetEventByID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.ListParticipants(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if len(participants) < 2 {
		return nil, ErrInsufficientParticipants
	}

	ids := make([]uuid.UUID, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}

	var history pairing.History
	if strategyName == pairing.StrategyHistoryAvoiding {
		history, err = s.buildHistory(ctx, event.ID)
		if err != nil {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(s.seed()))
	pairs := strat.Pair(ids, history, rng)

	now := s.clk.Now()
	if loc, err := time.LoadLocation(event.Timezone); err == nil {
		now = now.In(loc)
	}

	number := event.CurrentRound + 1
	round := &models.Round{
		ID:       uuid.New(),
		EventID:  event.ID,
		Number:   number,
		StartsAt: now,
		EndsAt:   now.Add(s.duration),
	}

	pairings := make([]*models.Pairing, len(pairs))
	for i, p := range pairs {
		pairings[i] = &models.Pairing{
			ID:                  uuid.New(),
			EventID:             event.ID,
			RoundNumber:         number,
			FirstParticipantID:  p.First,
			SecondParticipantID: p.Second,
			Status:              models.PairingStatusAssigned,
		}
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		event.CurrentRound = number
		event.Status = models.EventStatusRunning
		if err := tx.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to advance round counter: %w", err)
		}
		if err := tx.CreateRound(ctx, round); err != nil {
			return fmt.Errorf("failed to create round: %w", err)
		}
		if err := tx.CreatePairings(ctx, pairings); err != nil {
			return fmt.Errorf("failed to create pairings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.StartRoundResponse{
		EventID:      event.ID,
		RoundNumber:  number,
		StartsAt:     round.StartsAt,
		EndsAt:       round.EndsAt,
		PairingCount: len(pairings),
	}, nil
}

// buildHistory collects who met whom across all earlier rounds of the event
func (s *RoundService) buildHistory(ctx context.Context, eventID uuid.UUID) (pairing.History, error) {
	past, err := s.repo.ListEventPairings(ctx, eventID)
	if err != nil {
		return nil, err
	}

	history := make(pairing.History)
	for _, p := range past {
		if p.SecondParticipantID != nil {
			history.Add(p.FirstParticipantID, *p.SecondParticipantID)
		}
	}
	return history, nil
}
