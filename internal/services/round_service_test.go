package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"speedfriending/internal/models"
	"speedfriending/internal/pairing"
	"speedfriending/internal/repository"

	"github.com/google/uuid"
)

func TestStartRoundNumbering(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	event, _ := seedEvent(t, repo, 4)
	service := NewRoundService(repo, fixedClock{t: time.Now()}, 8*time.Minute)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		resp, err := service.StartRound(ctx, event.JoinCode, "")
		if err != nil {
			t.Fatalf("StartRound %d failed: %v", want, err)
		}
		if resp.RoundNumber != want {
			t.Errorf("expected round number %d, got %d", want, resp.RoundNumber)
		}
	}

	updated, err := repo.GetEventByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("failed to reload event: %v", err)
	}
	if updated.CurrentRound != 3 {
		t.Errorf("expected current round 3, got %d", updated.CurrentRound)
	}
	if updated.Status != models.EventStatusRunning {
		t.Errorf("expected status running, got %q", updated.Status)
	}

	var rounds []models.Round
	if err := db.Where("event_id = ?", event.ID).Order("number ASC").Find(&rounds).Error; err != nil {
		t.Fatalf("failed to load rounds: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}
	for i, r := range rounds {
		if r.Number != i+1 {
			t.Errorf("expected round number %d at position %d, got %d", i+1, i, r.Number)
		}
	}
}

func TestStartRoundInsufficientParticipants(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewRoundService(repo, fixedClock{t: time.Now()}, 8*time.Minute)
	ctx := context.Background()

	for _, n := range []int{0, 1} {
		event, _ := seedEvent(t, repo, n)

		_, err := service.StartRound(ctx, event.JoinCode, "")
		if !errors.Is(err, ErrInsufficientParticipants) {
			t.Fatalf("n=%d: expected ErrInsufficientParticipants, got %v", n, err)
		}

		// no mutation on failure
		updated, err := repo.GetEventByID(ctx, event.ID)
		if err != nil {
			t.Fatalf("failed to reload event: %v", err)
		}
		if updated.CurrentRound != 0 {
			t.Errorf("n=%d: expected current round 0, got %d", n, updated.CurrentRound)
		}
		if updated.Status != models.EventStatusPending {
			t.Errorf("n=%d: expected status pending, got %q", n, updated.Status)
		}

		var count int64
		if err := db.Model(&models.Round{}).Where("event_id = ?", event.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count rounds: %v", err)
		}
		if count != 0 {
			t.Errorf("n=%d: expected no rounds, got %d", n, count)
		}
	}
}

func TestStartRoundUnknownEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewRoundService(repo, fixedClock{t: time.Now()}, 8*time.Minute)

	_, err := service.StartRound(context.Background(), "nosuch", "")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestStartRoundUnknownStrategy(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	event, _ := seedEvent(t, repo, 2)
	service := NewRoundService(repo, fixedClock{t: time.Now()}, 8*time.Minute)

	_, err := service.StartRound(context.Background(), event.JoinCode, "astrology")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestStartRoundWindow(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	event, _ := seedEvent(t, repo, 2)

	start := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	service := NewRoundService(repo, fixedClock{t: start}, 8*time.Minute)

	resp, err := service.StartRound(context.Background(), event.JoinCode, "")
	if err != nil {
		t.Fatalf("StartRound failed: %v", err)
	}

	if !resp.StartsAt.Equal(start) {
		t.Errorf("expected starts_at %v, got %v", start, resp.StartsAt)
	}
	if !resp.EndsAt.Equal(start.Add(8 * time.Minute)) {
		t.Errorf("expected ends_at %v, got %v", start.Add(8*time.Minute), resp.EndsAt)
	}
}

func TestStartRoundByeHandling(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	event, participants := seedEvent(t, repo, 3)
	service := NewRoundService(repo, fixedClock{t: time.Now()}, 8*time.Minute)
	ctx := context.Background()

	resp, err := service.StartRound(ctx, event.JoinCode, "")
	if err != nil {
		t.Fatalf("StartRound failed: %v", err)
	}
	if resp.PairingCount != 2 {
		t.Fatalf("expected 2 pairings for 3 participants, got %d", resp.PairingCount)
	}

	pairings, err := repo.ListRoundPairings(ctx, event.ID, 1)
	if err != nil {
		t.Fatalf("failed to load pairings: %v", err)
	}
	if len(pairings) != 2 {
		t.Fatalf("expected 2 stored pairings, got %d", len(pairings))
	}

	byes := 0
	seen := make(map[uuid.UUID]int)
	for _, p := range pairings {
		if p.Status != models.PairingStatusAssigned {
			t.Errorf("expected status assigned, got %q", p.Status)
		}
		seen[p.FirstParticipantID]++
		if p.SecondParticipantID == nil {
			byes++
		} else {
			seen[*p.SecondParticipantID]++
		}
	}
	if byes != 1 {
		t.Errorf("expected exactly 1 bye, got %d", byes)
	}
	for _, participant := range participants {
		if seen[participant.ID] != 1 {
			t.Errorf("participant %s appears %d times, expected exactly once", participant.ID, seen[participant.ID])
		}
	}
}

func TestStartRoundConcurrent(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	event, _ := seedEvent(t, repo, 4)
	service := NewRoundService(repo, fixedClock{t: time.Now()}, 8*time.Minute)

	const starters = 8
	var wg sync.WaitGroup
	errs := make(chan error, starters)

	for i := 0; i < starters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.StartRound(context.Background(), event.JoinCode, ""); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent StartRound failed: %v", err)
	}

	var rounds []models.Round
	if err := db.Where("event_id = ?", event.ID).Order("number ASC").Find(&rounds).Error; err != nil {
		t.Fatalf("failed to load rounds: %v", err)
	}
	if len(rounds) != starters {
		t.Fatalf("expected %d rounds, got %d", starters, len(rounds))
	}
	for i, r := range rounds {
		if r.Number != i+1 {
			t.Errorf("expected round number %d at position %d, got %d", i+1, i, r.Number)
		}
	}
}

func TestStartRoundHistoryAvoiding(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	event, _ := seedEvent(t, repo, 4)
	service := NewRoundService(repo, fixedClock{t: time.Now()}, 8*time.Minute)
	ctx := context.Background()

	pairKey := func(p models.Pairing) [2]uuid.UUID {
		a, b := p.FirstParticipantID, *p.SecondParticipantID
		if b.String() < a.String() {
			a, b = b, a
		}
		return [2]uuid.UUID{a, b}
	}

	if _, err := service.StartRound(ctx, event.JoinCode, pairing.StrategyHistoryAvoiding); err != nil {
		t.Fatalf("StartRound 1 failed: %v", err)
	}
	first, err := repo.ListRoundPairings(ctx, event.ID, 1)
	if err != nil {
		t.Fatalf("failed to load round 1 pairings: %v", err)
	}

	if _, err := service.StartRound(ctx, event.JoinCode, pairing.StrategyHistoryAvoiding); err != nil {
		t.Fatalf("StartRound 2 failed: %v", err)
	}
	second, err := repo.ListRoundPairings(ctx, event.ID, 2)
	if err != nil {
		t.Fatalf("failed to load round 2 pairings: %v", err)
	}

	// with 4 participants a repeat-free second round always exists
	met := make(map[[2]uuid.UUID]bool)
	for _, p := range first {
		met[pairKey(p)] = true
	}
	for _, p := range second {
		if met[pairKey(p)] {
			t.Errorf("round 2 re-paired %s with %s", p.FirstParticipantID, *p.SecondParticipantID)
		}
	}
}
