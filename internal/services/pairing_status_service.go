package services

import (
	"context"
	"fmt"

	"speedfriending/internal/clock"
	"speedfriending/internal/models"
	"speedfriending/internal/repository"
)

// PairingStatusService advances pairing status after the fact: participants
// report that they actually met. Status only ever moves forward from
// assigned; met and missed are terminal.
type PairingStatusService struct {
	repo    *repository.Repository
	matches *MatchService
	clk     clock.Clock
}

// NewPairingStatusService creates a new PairingStatusService
func NewPairingStatusService(repo *repository.Repository, matches *MatchService, clk clock.Clock) *PairingStatusService {
	return &PairingStatusService{repo: repo, matches: matches, clk: clk}
}

// ReportMet marks the caller's current-round pairing as met and stamps the
// meeting time
func (s *PairingStatusService) ReportMet(ctx context.Context, code, email string) (*models.Pairing, error) {
	_, _, pairing, err := s.matches.resolvePairing(ctx, code, email)
	if err != nil {
		return nil, err
	}

	if pairing.Status != models.PairingStatusAssigned {
		return nil, fmt.Errorf("%w: %s", ErrPairingAlreadyReported, pairing.Status)
	}

	now := s.clk.Now()
	pairing.Status = models.PairingStatusMet
	pairing.MetAt = &now

	if err := s.repo.SavePairing(ctx, pairing); err != nil {
		return nil, fmt.Errorf("failed to update pairing: %w", err)
	}

	return pairing, nil
}
