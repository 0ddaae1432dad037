package models

import "time"

type Team struct {
	ID               int       `json:"id" db:"id"`
	TournamentID     int       `json:"tournament_id" db:"tournament_id"`
	Name             string    `json:"name" db:"name"`
	CaptainDiscordID string    `json:"captain_discord_id" db:"captain_discord_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
