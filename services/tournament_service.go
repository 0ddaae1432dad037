package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/bracket-system/brackets"
	"github.com/Dosada05/bracket-system/models"
	"github.com/Dosada05/bracket-system/repositories"
	"golang.org/x/sync/errgroup"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
}

type CreateTournamentInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	BracketType string  `json:"bracket_type,omitempty"`
	MaxTeams    int     `json:"max_teams"`
}

type ListTournamentsFilter struct {
	Status *models.TournamentStatus
	Limit  int
	Offset int
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		logger:         logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.MaxTeams < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTournamentInvalidCapacity, input.MaxTeams)
	}

	kind := brackets.Kind(strings.TrimSpace(input.BracketType))
	if kind == "" {
		kind = brackets.KindSingleElimination
	}
	if _, err := brackets.NewGenerator(kind); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:        name,
		Description: input.Description,
		BracketType: string(kind),
		MaxTeams:    input.MaxTeams,
		Status:      models.StatusRegistration,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.Info("tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.String("bracket_type", tournament.BracketType),
		slog.Int("max_teams", tournament.MaxTeams))
	return tournament, nil
}

// GetTournamentByID returns the tournament with its registered teams.
func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	var (
		tournament *models.Tournament
		teams      []models.Team
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gctx, id)
		if err != nil {
			return mapTournamentRepoError(err, id)
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		list, err := s.teamRepo.ListByTournament(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list teams of tournament %d: %w", id, err)
		}
		teams = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	tournament.Teams = teams
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	if filter.Status != nil && !isValidTournamentStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidationFailed, *filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{
		Status: filter.Status,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	if tournaments == nil {
		return []models.Tournament{}, nil
	}
	return tournaments, nil
}

func isValidTournamentStatus(status models.TournamentStatus) bool {
	switch status {
	case models.StatusRegistration, models.StatusActive, models.StatusCompleted:
		return true
	}
	return false
}

func mapTournamentRepoError(err error, id int) error {
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return fmt.Errorf("failed to get tournament %d: %w", id, err)
}
