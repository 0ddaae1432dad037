package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/bracket-system/models"
	"github.com/Dosada05/bracket-system/repositories"
)

type TeamService interface {
	RegisterTeam(ctx context.Context, tournamentID int, input RegisterTeamInput) (*models.Team, error)
	ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error)
	DeleteTeam(ctx context.Context, tournamentID, teamID int) error
}

type RegisterTeamInput struct {
	Name             string `json:"name"`
	CaptainDiscordID string `json:"captain_discord_id"`
}

type teamService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	logger         *slog.Logger
}

func NewTeamService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &teamService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		logger:         logger,
	}
}

// RegisterTeam adds a team while the tournament is open for registration and
// below its capacity.
func (s *teamService) RegisterTeam(ctx context.Context, tournamentID int, input RegisterTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	tournament, err := s.openTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	count, err := s.teamRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count teams of tournament %d: %w", tournamentID, err)
	}
	if count >= tournament.MaxTeams {
		return nil, fmt.Errorf("%w: %d of %d places taken", ErrTournamentFull, count, tournament.MaxTeams)
	}

	team := &models.Team{
		TournamentID:     tournamentID,
		Name:             name,
		CaptainDiscordID: strings.TrimSpace(input.CaptainDiscordID),
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to register team: %w", err)
	}

	s.logger.Info("team registered",
		slog.Int("tournament_id", tournamentID),
		slog.Int("team_id", team.ID),
		slog.String("name", team.Name))
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, mapTournamentRepoError(err, tournamentID)
	}
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of tournament %d: %w", tournamentID, err)
	}
	return teams, nil
}

// DeleteTeam withdraws a team. Once a bracket exists the roster is frozen.
func (s *teamService) DeleteTeam(ctx context.Context, tournamentID, teamID int) error {
	if _, err := s.openTournament(ctx, tournamentID); err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, tournamentID, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", teamID, err)
	}
	s.logger.Info("team removed", slog.Int("tournament_id", tournamentID), slog.Int("team_id", teamID))
	return nil
}

func (s *teamService) openTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, mapTournamentRepoError(err, tournamentID)
	}
	if tournament.Status != models.StatusRegistration {
		return nil, fmt.Errorf("%w: status is %s", ErrRegistrationNotOpen, tournament.Status)
	}
	return tournament, nil
}
