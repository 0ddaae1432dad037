package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/bracket-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamNameConflict      = errors.New("team name already registered in this tournament")
	ErrTeamTournamentInvalid = errors.New("team tournament reference is invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error)
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
	Delete(ctx context.Context, tournamentID, teamID int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, name, captain_discord_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, team.TournamentID, team.Name, team.CaptainDiscordID).
		Scan(&team.ID, &team.CreatedAt)
	return r.handleTeamError(err)
}

// ListByTournament returns teams in registration order.
func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	query := `
		SELECT id, tournament_id, name, captain_discord_id, created_at
		FROM teams
		WHERE tournament_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Name, &t.CaptainDiscordID, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE tournament_id = $1`, tournamentID).Scan(&count)
	return count, err
}

func (r *postgresTeamRepository) Delete(ctx context.Context, tournamentID, teamID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1 AND tournament_id = $2`, teamID, tournamentID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "teams_tournament_id_name_key" {
				return ErrTeamNameConflict
			}
		case "23503":
			if pqErr.Constraint == "teams_tournament_id_fkey" {
				return ErrTeamTournamentInvalid
			}
		}
	}
	return err
}
