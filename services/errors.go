package services

import "errors"

var (
	ErrValidationFailed = errors.New("validation failed")

	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrBracketNotFound    = errors.New("bracket has not been generated")

	ErrTournamentNameRequired    = errors.New("tournament name is required")
	ErrTournamentInvalidCapacity = errors.New("tournament max teams must be at least 2")
	ErrTeamNameRequired          = errors.New("team name is required")
	ErrRegistrationNotOpen       = errors.New("tournament registration is not open")
	ErrTournamentFull            = errors.New("tournament registration is full")
	ErrTournamentFinished        = errors.New("tournament is already finished")

	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrBracketVersionConflict = errors.New("bracket was updated by another request, retry")
)
