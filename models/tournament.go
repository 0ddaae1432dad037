package models

import "time"

type TournamentStatus string

const (
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
)

// Tournament is an event teams register for. BracketType holds a
// brackets.Kind value and is used when no type is given at generation time.
type Tournament struct {
	ID           int              `json:"id" db:"id"`
	Name         string           `json:"name" db:"name"`
	Description  *string          `json:"description,omitempty" db:"description"`
	BracketType  string           `json:"bracket_type" db:"bracket_type"`
	MaxTeams     int              `json:"max_teams" db:"max_teams"`
	Status       TournamentStatus `json:"status" db:"status"`
	WinnerTeamID *int             `json:"winner_team_id,omitempty" db:"winner_team_id"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}
