package repository

import (
	"context"
	"time"

	"speedfriending/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn against a Repository bound to a single database
// transaction; fn returning an error rolls everything back.
func (r *Repository) Transaction(ctx context.Context, fn func(*Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// CreateEvent creates a new event
func (r *Repository) CreateEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetEventByJoinCode retrieves an event by its join code
func (r *Repository) GetEventByJoinCode(ctx context.Context, code string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("join_code = ?", code).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetEventByID retrieves an event by ID
func (r *Repository) GetEventByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// SaveEvent persists changes to an event
func (r *Repository) SaveEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// CreateParticipant creates a new participant. The composite unique index
// on (event_id, email) rejects duplicates at insert time.
func (r *Repository) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

// GetParticipantByEmail retrieves a participant of an event by email
func (r *Repository) GetParticipantByEmail(ctx context.Context, eventID uuid.UUID, email string) (*models.Participant, error) {
	var participant models.Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND email = ?", eventID, email).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// GetParticipantByID retrieves a participant by ID
func (r *Repository) GetParticipantByID(ctx context.Context, participantID uuid.UUID) (*models.Participant, error) {
	var participant models.Participant
	err := r.db.WithContext(ctx).Where("id = ?", participantID).First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// ListParticipants retrieves all participants of an event in join order
func (r *Repository) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("joined_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// CreateRound creates a new round
func (r *Repository) CreateRound(ctx context.Context, round *models.Round) error {
	return r.db.WithContext(ctx).Create(round).Error
}

// GetRound retrieves a round of an event by number
func (r *Repository) GetRound(ctx context.Context, eventID uuid.UUID, number int) (*models.Round, error) {
	var round models.Round
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND number = ?", eventID, number).
		First(&round).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// CreatePairings creates a batch of pairings
func (r *Repository) CreatePairings(ctx context.Context, pairings []*models.Pairing) error {
	return r.db.WithContext(ctx).Create(pairings).Error
}

// GetPairingForParticipant retrieves the pairing a participant belongs to in
// a given round, whichever side of the pair they are on
func (r *Repository) GetPairingForParticipant(
	ctx context.Context,
	eventID uuid.UUID,
	roundNumber int,
	participantID uuid.UUID,
) (*models.Pairing, error) {
	var pairing models.Pairing
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND round_number = ? AND (first_participant_id = ? OR second_participant_id = ?)",
			eventID, roundNumber, participantID, participantID).
		First(&pairing).Error
	if err != nil {
		return nil, err
	}
	return &pairing, nil
}

// ListRoundPairings retrieves all pairings of one round
func (r *Repository) ListRoundPairings(ctx context.Context, eventID uuid.UUID, roundNumber int) ([]models.Pairing, error) {
	var pairings []models.Pairing
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND round_number = ?", eventID, roundNumber).
		Find(&pairings).Error
	if err != nil {
		return nil, err
	}
	return pairings, nil
}

// ListEventPairings retrieves all pairings of an event across all rounds
func (r *Repository) ListEventPairings(ctx context.Context, eventID uuid.UUID) ([]models.Pairing, error) {
	var pairings []models.Pairing
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("round_number ASC").
		Find(&pairings).Error
	if err != nil {
		return nil, err
	}
	return pairings, nil
}

// SavePairing persists status changes to a pairing
func (r *Repository) SavePairing(ctx context.Context, pairing *models.Pairing) error {
	return r.db.WithContext(ctx).Save(pairing).Error
}

// MarkExpiredPairingsMissed flips still-assigned pairings of rounds whose
// window closed before cutoff to missed, returning how many were updated.
func (r *Repository) MarkExpiredPairingsMissed(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Pairing{}).
		Where("status = ? AND EXISTS (SELECT 1 FROM rounds WHERE rounds.event_id = pairings.event_id AND rounds.number = pairings.round_number AND rounds.ends_at < ?)",
			models.PairingStatusAssigned, cutoff).
		Update("status", models.PairingStatusMissed)
	return res.RowsAffected, res.Error
}
