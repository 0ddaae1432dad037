package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/bracket-system/models"
	"github.com/lib/pq"
)

var (
	ErrBracketNotFound          = errors.New("bracket not found")
	ErrBracketVersionConflict   = errors.New("bracket was modified concurrently")
	ErrBracketTournamentInvalid = errors.New("bracket tournament reference is invalid")
)

type BracketRepository interface {
	Create(ctx context.Context, exec SQLExecutor, bracket *models.Bracket) error
	GetLatestByTournament(ctx context.Context, tournamentID int) (*models.Bracket, error)
	// UpdatePlan stores a new plan if the stored version still equals
	// bracket.Version, then increments bracket.Version.
	UpdatePlan(ctx context.Context, exec SQLExecutor, bracket *models.Bracket) error
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) Create(ctx context.Context, exec SQLExecutor, b *models.Bracket) error {
	query := `
		INSERT INTO brackets (public_id, tournament_id, type, plan, version, image_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		b.PublicID, b.TournamentID, b.Type, b.Plan, b.Version, b.ImageKey,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	return r.handleBracketError(err)
}

func (r *postgresBracketRepository) GetLatestByTournament(ctx context.Context, tournamentID int) (*models.Bracket, error) {
	query := `
		SELECT id, public_id, tournament_id, type, plan, version, image_key, created_at, updated_at
		FROM brackets
		WHERE tournament_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	b := &models.Bracket{}
	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(
		&b.ID, &b.PublicID, &b.TournamentID, &b.Type, &b.Plan, &b.Version, &b.ImageKey, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *postgresBracketRepository) UpdatePlan(ctx context.Context, exec SQLExecutor, b *models.Bracket) error {
	query := `
		UPDATE brackets
		SET plan = $1, image_key = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3 AND version = $4
		RETURNING version, updated_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query, b.Plan, b.ImageKey, b.ID, b.Version).
		Scan(&b.Version, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBracketVersionConflict
		}
		return r.handleBracketError(err)
	}
	return nil
}

func (r *postgresBracketRepository) handleBracketError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" && pqErr.Constraint == "brackets_tournament_id_fkey" {
		return ErrBracketTournamentInvalid
	}
	return err
}
