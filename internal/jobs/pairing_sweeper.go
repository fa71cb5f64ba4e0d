package jobs

import (
	"context"
	"log"
	"time"

	"speedfriending/internal/clock"
	"speedfriending/internal/repository"
)

// PairingSweeper marks still-assigned pairings of long-closed rounds as
// missed. The grace period leaves room for late met reports; the sweeper
// never touches pairings of a round whose window is still open.
type PairingSweeper struct {
	repo  *repository.Repository
	clk   clock.Clock
	grace time.Duration
}

func NewPairingSweeper(repo *repository.Repository, clk clock.Clock, grace time.Duration) *PairingSweeper {
	return &PairingSweeper{
		repo:  repo,
		clk:   clk,
		grace: grace,
	}
}

// Start begins the periodic sweep
func (j *PairingSweeper) Start(interval time.Duration) {
	go func() {
		ctx := context.Background()
		if _, err := j.Sweep(ctx); err != nil {
			log.Printf("Initial pairing sweep error: %v", err)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if _, err := j.Sweep(ctx); err != nil {
				log.Printf("Pairing sweep error: %v", err)
			}
		}
	}()
}

// Sweep runs one pass, returning how many pairings were marked missed
func (j *PairingSweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := j.clk.Now().Add(-j.grace)
	n, err := j.repo.MarkExpiredPairingsMissed(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("Marked %d expired pairings as missed", n)
	}
	return n, nil
}
