package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/bracket-system/brackets"
	"github.com/Dosada05/bracket-system/models"
	"github.com/Dosada05/bracket-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTournamentService struct {
	created    services.CreateTournamentInput
	lastFilter services.ListTournamentsFilter
	err        error
}

func (s *stubTournamentService) CreateTournament(_ context.Context, in services.CreateTournamentInput) (*models.Tournament, error) {
	s.created = in
	if s.err != nil {
		return nil, s.err
	}
	return &models.Tournament{ID: 1, Name: in.Name, MaxTeams: in.MaxTeams, Status: models.StatusRegistration}, nil
}

func (s *stubTournamentService) GetTournamentByID(_ context.Context, id int) (*models.Tournament, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Tournament{ID: id, Name: "Cup"}, nil
}

func (s *stubTournamentService) ListTournaments(_ context.Context, f services.ListTournamentsFilter) ([]models.Tournament, error) {
	s.lastFilter = f
	return []models.Tournament{{ID: 1, Name: "Cup"}}, s.err
}

type stubBracketService struct {
	generateInput services.GenerateInput
	resultInput   services.ReportResultInput
	seed          *uint64
	err           error
}

func (s *stubBracketService) view() *services.BracketView {
	return &services.BracketView{
		Bracket: &models.Bracket{ID: 1, TournamentID: 1, Type: string(brackets.KindRoundRobin), Version: 1},
		Plan:    &brackets.Plan{Kind: brackets.KindRoundRobin},
	}
}

func (s *stubBracketService) Generate(_ context.Context, _ int, in services.GenerateInput) (*services.BracketView, error) {
	s.generateInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.view(), nil
}

func (s *stubBracketService) Get(context.Context, int) (*services.BracketView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.view(), nil
}

func (s *stubBracketService) Image(context.Context, int) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("\x89PNG fake"), nil
}

func (s *stubBracketService) ReportResult(_ context.Context, _ int, in services.ReportResultInput) (*services.BracketView, error) {
	s.resultInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.view(), nil
}

func (s *stubBracketService) Simulate(_ context.Context, _ int, seed *uint64) (*services.BracketView, error) {
	s.seed = seed
	if s.err != nil {
		return nil, s.err
	}
	return s.view(), nil
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return fmt.Sprint(body["error"])
}

func tournamentRouter(svc services.TournamentService) http.Handler {
	h := NewTournamentHandler(svc)
	r := chi.NewRouter()
	r.Get("/tournaments", h.ListHandler)
	r.Post("/tournaments", h.CreateHandler)
	r.Get("/tournaments/{tournamentID}", h.GetByIDHandler)
	return r
}

func bracketRouter(svc services.BracketService) http.Handler {
	h := NewBracketHandler(svc)
	r := chi.NewRouter()
	r.Route("/tournaments/{tournamentID}/bracket", func(r chi.Router) {
		r.Get("/", h.GetHandler)
		r.Post("/", h.GenerateHandler)
		r.Get("/image", h.ImageHandler)
		r.Post("/results", h.ReportResultHandler)
		r.Post("/simulate", h.SimulateHandler)
	})
	return r
}

func TestCreateTournamentHandler(t *testing.T) {
	svc := &stubTournamentService{}
	rec := do(t, tournamentRouter(svc), http.MethodPost, "/tournaments", `{"name":"Cup","max_teams":8}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Cup", svc.created.Name)
	assert.Contains(t, rec.Body.String(), `"tournament"`)
}

func TestCreateTournamentHandlerBadBody(t *testing.T) {
	svc := &stubTournamentService{}
	router := tournamentRouter(svc)

	rec := do(t, router, http.MethodPost, "/tournaments", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/tournaments", `{"name":"Cup","prize":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "unknown key")

	rec = do(t, router, http.MethodPost, "/tournaments", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTournamentsHandlerQuery(t *testing.T) {
	svc := &stubTournamentService{}
	router := tournamentRouter(svc)

	rec := do(t, router, http.MethodGet, "/tournaments?status=active&limit=5&offset=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastFilter.Status)
	assert.Equal(t, models.StatusActive, *svc.lastFilter.Status)
	assert.Equal(t, 5, svc.lastFilter.Limit)
	assert.Equal(t, 10, svc.lastFilter.Offset)

	rec = do(t, router, http.MethodGet, "/tournaments?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTournamentHandlerBadID(t *testing.T) {
	rec := do(t, tournamentRouter(&stubTournamentService{}), http.MethodGet, "/tournaments/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrTournamentNotFound, http.StatusNotFound},
		{services.ErrBracketNotFound, http.StatusNotFound},
		{services.ErrTournamentFull, http.StatusConflict},
		{services.ErrBracketVersionConflict, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", brackets.ErrMatchAlreadyDecided), http.StatusConflict},
		{brackets.ErrMatchNotReady, http.StatusConflict},
		{services.ErrRegistrationNotOpen, http.StatusForbidden},
		{brackets.ErrWinnerNotInMatch, http.StatusBadRequest},
		{brackets.ErrMatchOutOfRange, http.StatusBadRequest},
		{fmt.Errorf("gen: %w", brackets.ErrInvalidTeamCount), http.StatusUnprocessableEntity},
		{brackets.ErrUnsupportedRenderTarget, http.StatusUnprocessableEntity},
		{fmt.Errorf("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestServerErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("pq: password authentication failed"))
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGenerateHandlerOptionalBody(t *testing.T) {
	svc := &stubBracketService{}
	router := bracketRouter(svc)

	rec := do(t, router, http.MethodPost, "/tournaments/1/bracket", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, services.GenerateInput{}, svc.generateInput)
	assert.Nil(t, svc.generateInput.Shuffle, "omitted shuffle falls back to shuffling")

	rec = do(t, router, http.MethodPost, "/tournaments/1/bracket", `{"type":"groups","shuffle":false,"group_size":4}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "groups", svc.generateInput.Type)
	assert.Equal(t, 4, svc.generateInput.GroupSize)
	require.NotNil(t, svc.generateInput.Shuffle)
	assert.False(t, *svc.generateInput.Shuffle)

	var body struct {
		Bracket struct {
			Version int            `json:"version"`
			Plan    brackets.Plan `json:"plan"`
		} `json:"bracket"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Bracket.Version)
	assert.Equal(t, brackets.KindRoundRobin, body.Bracket.Plan.Kind)
	assert.NotContains(t, rec.Body.String(), "image_key")
}

func TestImageHandler(t *testing.T) {
	rec := do(t, bracketRouter(&stubBracketService{}), http.MethodGet, "/tournaments/1/bracket/image", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG fake", rec.Body.String())

	rec = do(t, bracketRouter(&stubBracketService{err: brackets.ErrUnsupportedRenderTarget}), http.MethodGet, "/tournaments/1/bracket/image", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReportResultAndSimulateHandlers(t *testing.T) {
	svc := &stubBracketService{}
	router := bracketRouter(svc)

	rec := do(t, router, http.MethodPost, "/tournaments/1/bracket/results", `{"round":1,"match":0,"winner_team_id":7}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.ReportResultInput{Round: 1, Match: 0, WinnerTeamID: 7}, svc.resultInput)

	rec = do(t, router, http.MethodPost, "/tournaments/1/bracket/simulate", `{"seed":99}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.seed)
	assert.Equal(t, uint64(99), *svc.seed)

	rec = do(t, router, http.MethodPost, "/tournaments/1/bracket/simulate", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.seed)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}
