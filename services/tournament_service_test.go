package services

import (
	"context"
	"testing"

	"github.com/Dosada05/bracket-system/brackets"
	"github.com/Dosada05/bracket-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTournament(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := NewTournamentService(repo, &fakeTeamRepo{}, nil)

	tournament, err := svc.CreateTournament(context.Background(), CreateTournamentInput{
		Name:     "  Spring Cup ",
		MaxTeams: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Spring Cup", tournament.Name)
	assert.Equal(t, string(brackets.KindSingleElimination), tournament.BracketType)
	assert.Equal(t, models.StatusRegistration, tournament.Status)
	assert.NotZero(t, tournament.ID)

	_, err = svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "Spring Cup", MaxTeams: 8})
	assert.ErrorIs(t, err, ErrTournamentNameConflict)
}

func TestCreateTournamentValidation(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), &fakeTeamRepo{}, nil)

	tests := []struct {
		name  string
		input CreateTournamentInput
		want  error
	}{
		{"missing name", CreateTournamentInput{Name: " ", MaxTeams: 8}, ErrTournamentNameRequired},
		{"capacity too small", CreateTournamentInput{Name: "Cup", MaxTeams: 1}, ErrTournamentInvalidCapacity},
		{"swiss unsupported", CreateTournamentInput{Name: "Cup", MaxTeams: 8, BracketType: "swiss"}, brackets.ErrUnsupportedBracketKind},
		{"unknown type", CreateTournamentInput{Name: "Cup", MaxTeams: 8, BracketType: "ladder"}, brackets.ErrUnsupportedBracketKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTournament(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetTournamentByIDIncludesTeams(t *testing.T) {
	tournaments := newFakeTournamentRepo()
	teams := &fakeTeamRepo{}
	svc := NewTournamentService(tournaments, teams, nil)
	ctx := context.Background()

	created, err := svc.CreateTournament(ctx, CreateTournamentInput{Name: "Cup", MaxTeams: 4})
	require.NoError(t, err)
	require.NoError(t, teams.Create(ctx, &models.Team{TournamentID: created.ID, Name: "Alpha"}))
	require.NoError(t, teams.Create(ctx, &models.Team{TournamentID: created.ID, Name: "Beta"}))

	got, err := svc.GetTournamentByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Teams, 2)
	assert.Equal(t, "Alpha", got.Teams[0].Name)

	_, err = svc.GetTournamentByID(ctx, 999)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestListTournaments(t *testing.T) {
	tournaments := newFakeTournamentRepo()
	svc := NewTournamentService(tournaments, &fakeTeamRepo{}, nil)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.CreateTournament(ctx, CreateTournamentInput{Name: name, MaxTeams: 4})
		require.NoError(t, err)
	}
	require.NoError(t, tournaments.UpdateStatus(ctx, nil, 2, models.StatusActive, nil))

	all, err := svc.ListTournaments(ctx, ListTournamentsFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active := models.StatusActive
	filtered, err := svc.ListTournaments(ctx, ListTournamentsFilter{Status: &active})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "B", filtered[0].Name)

	page, err := svc.ListTournaments(ctx, ListTournamentsFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "B", page[0].Name)

	bogus := models.TournamentStatus("paused")
	_, err = svc.ListTournaments(ctx, ListTournamentsFilter{Status: &bogus})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
