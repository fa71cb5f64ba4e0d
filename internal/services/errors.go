package services

import "errors"

var (
	ErrEventNotFound            = errors.New("event not found")
	ErrParticipantNotFound      = errors.New("participant not found")
	ErrDuplicateParticipant     = errors.New("participant already joined this event")
	ErrInsufficientParticipants = errors.New("at least 2 participants are required to start a round")
	ErrRoundNotStarted          = errors.New("no round has been started for this event")
	ErrNoPairingForRound        = errors.New("no pairing for this participant in the current round")
	ErrPairingAlreadyReported   = errors.New("pairing status has already been reported")
	ErrUnknownStrategy          = errors.New("unknown pairing strategy")
	ErrInvalidTimezone          = errors.New("invalid timezone")
	ErrJoinCodeExhausted        = errors.New("could not generate a unique join code")
)
