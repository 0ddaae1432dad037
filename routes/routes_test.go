package routes

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/bracket-system/brackets"
	"github.com/Dosada05/bracket-system/handlers"
	"github.com/Dosada05/bracket-system/metrics"
	"github.com/Dosada05/bracket-system/models"
	"github.com/Dosada05/bracket-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("routes-test-secret")

type listOnlyTournaments struct {
	created int
}

func (s *listOnlyTournaments) CreateTournament(_ context.Context, in services.CreateTournamentInput) (*models.Tournament, error) {
	s.created++
	return &models.Tournament{ID: 1, Name: in.Name}, nil
}

func (s *listOnlyTournaments) GetTournamentByID(_ context.Context, id int) (*models.Tournament, error) {
	return &models.Tournament{ID: id}, nil
}

func (s *listOnlyTournaments) ListTournaments(context.Context, services.ListTournamentsFilter) ([]models.Tournament, error) {
	return []models.Tournament{}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *listOnlyTournaments) {
	t.Helper()
	svc := &listOnlyTournaments{}
	router := chi.NewRouter()
	SetupRoutes(router,
		Options{
			JWTSecret:      testSecret,
			AllowedOrigins: []string{"*"},
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			Metrics:        metrics.NewRecorder(),
		},
		handlers.NewTournamentHandler(svc),
		handlers.NewTeamHandler(nil),
		handlers.NewBracketHandler(nil),
		handlers.NewWebSocketHandler(brackets.NewHub(nil), svc, []string{"*"}),
	)
	return router, svc
}

func token(t *testing.T, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "123456789",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func TestPublicRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tournaments", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bracket_http_requests_total")
}

func TestModeratorRoutes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		auth   string
		want   int
	}{
		{"create without token", http.MethodPost, "/tournaments", "", http.StatusUnauthorized},
		{"generate without token", http.MethodPost, "/tournaments/1/bracket", "", http.StatusUnauthorized},
		{"report without token", http.MethodPost, "/tournaments/1/bracket/results", "", http.StatusUnauthorized},
		{"delete team as member", http.MethodDelete, "/tournaments/1/teams/2", "member", http.StatusForbidden},
		{"simulate as member", http.MethodPost, "/tournaments/1/bracket/simulate", "member", http.StatusForbidden},
		{"create as moderator", http.MethodPost, "/tournaments", "moderator", http.StatusCreated},
		{"create as owner", http.MethodPost, "/tournaments", "owner", http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t)
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(`{"name":"Cup","max_teams":8}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.auth != "" {
				req.Header.Set("Authorization", "Bearer "+token(t, tt.auth))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
