package models

import (
	"time"

	"github.com/google/uuid"
)

// Bracket is the stored plan of a tournament. Plan holds the JSON encoding of
// a brackets.Plan; Version grows by one on every reported result.
type Bracket struct {
	ID           int       `json:"id" db:"id"`
	PublicID     uuid.UUID `json:"public_id" db:"public_id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Type         string    `json:"type" db:"type"`
	Plan         []byte    `json:"-" db:"plan"`
	Version      int       `json:"version" db:"version"`
	ImageKey     *string   `json:"-" db:"image_key"`
	ImageURL     *string   `json:"image_url,omitempty" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
