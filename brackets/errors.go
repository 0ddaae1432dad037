package brackets

import "errors"

var (
	ErrInvalidTeamCount        = errors.New("invalid team count for bracket type")
	ErrUnsupportedBracketKind  = errors.New("bracket type is not supported")
	ErrUnsupportedRenderTarget = errors.New("bracket type cannot be rendered")
	ErrDuplicateTeam           = errors.New("team appears more than once")

	ErrMatchOutOfRange     = errors.New("match index out of range")
	ErrWinnerRequired      = errors.New("a winner must be recorded before advancing")
	ErrWinnerNotInMatch    = errors.New("winner does not play in this match")
	ErrMatchAlreadyDecided = errors.New("match already has a winner")
	ErrMatchNotReady       = errors.New("match is waiting for an opponent")
)
