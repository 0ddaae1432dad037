package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/Dosada05/bracket-system/brackets"
	"github.com/Dosada05/bracket-system/models"
	"github.com/Dosada05/bracket-system/repositories"
	"github.com/Dosada05/bracket-system/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Broadcaster delivers live updates to websocket rooms.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// Recorder receives bracket lifecycle metrics.
type Recorder interface {
	BracketGenerated(kind string)
	GenerateFailed(kind string)
	ResultReported(kind string)
	TournamentFinished()
	ObserveRender(d time.Duration)
	UploadFailed()
}

type BracketService interface {
	Generate(ctx context.Context, tournamentID int, input GenerateInput) (*BracketView, error)
	Get(ctx context.Context, tournamentID int) (*BracketView, error)
	Image(ctx context.Context, tournamentID int) ([]byte, error)
	ReportResult(ctx context.Context, tournamentID int, input ReportResultInput) (*BracketView, error)
	Simulate(ctx context.Context, tournamentID int, seed *uint64) (*BracketView, error)
}

// GenerateInput controls bracket generation. An empty Type falls back to the
// tournament's bracket type; GroupSize 0 uses the service default. Teams are
// shuffled unless Shuffle is explicitly false, which keeps registration order.
type GenerateInput struct {
	Type      string `json:"type,omitempty"`
	Shuffle   *bool  `json:"shuffle,omitempty"`
	GroupSize int    `json:"group_size,omitempty"`
}

func (in GenerateInput) shuffled() bool {
	return in.Shuffle == nil || *in.Shuffle
}

// ReportResultInput addresses a match by position. Round is the round index
// for single elimination, the group index for group stages and 0 for round robin.
type ReportResultInput struct {
	Round        int `json:"round"`
	Match        int `json:"match"`
	WinnerTeamID int `json:"winner_team_id"`
}

// BracketView is a stored bracket together with its decoded plan.
type BracketView struct {
	*models.Bracket
	Plan *brackets.Plan `json:"plan"`
}

type MatchUpdatedPayload struct {
	TournamentID int            `json:"tournament_id"`
	Round        int            `json:"round"`
	Match        int            `json:"match"`
	Winner       *brackets.Team `json:"winner"`
	Version      int            `json:"version"`
	ImageURL     *string        `json:"image_url,omitempty"`
}

type TournamentFinishedPayload struct {
	TournamentID int            `json:"tournament_id"`
	Champion     *brackets.Team `json:"champion"`
}

type bracketService struct {
	txRunner       repositories.TxRunner
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	bracketRepo    repositories.BracketRepository
	uploader       storage.FileUploader
	broadcaster    Broadcaster
	recorder       Recorder
	renderer       *brackets.Renderer
	logger         *slog.Logger
	groupSize      int
	newRand        func() brackets.Rand
}

// NewBracketService wires the bracket lifecycle. uploader and broadcaster may
// be nil, in which case images are only rendered on demand and no live
// updates are sent.
func NewBracketService(
	txRunner repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	bracketRepo repositories.BracketRepository,
	uploader storage.FileUploader,
	broadcaster Broadcaster,
	recorder Recorder,
	logger *slog.Logger,
	groupSize int,
) BracketService {
	if logger == nil {
		logger = slog.Default()
	}
	if groupSize <= 0 {
		groupSize = brackets.DefaultGroupSize
	}
	return &bracketService{
		txRunner:       txRunner,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		bracketRepo:    bracketRepo,
		uploader:       uploader,
		broadcaster:    broadcaster,
		recorder:       recorder,
		renderer:       brackets.NewRenderer(),
		logger:         logger,
		groupSize:      groupSize,
		newRand: func() brackets.Rand {
			return brackets.NewRand(rand.Uint64())
		},
	}
}

func (s *bracketService) Generate(ctx context.Context, tournamentID int, input GenerateInput) (*BracketView, error) {
	tournament, roster, err := s.loadTournamentAndRoster(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status == models.StatusCompleted {
		return nil, ErrTournamentFinished
	}

	kind := brackets.Kind(input.Type)
	if kind == "" {
		kind = brackets.Kind(tournament.BracketType)
	}
	groupSize := input.GroupSize
	if groupSize == 0 {
		groupSize = s.groupSize
	}

	rng := s.newRand()
	if !input.shuffled() {
		rng = brackets.KeepOrder(rng)
	}

	generator, err := brackets.NewGenerator(kind)
	if err != nil {
		s.recordGenerateFailure(kind)
		return nil, err
	}
	plan, err := generator.Generate(brackets.GenerateParams{
		Teams:     roster,
		Rand:      rng,
		GroupSize: groupSize,
	})
	if err != nil {
		s.recordGenerateFailure(kind)
		return nil, fmt.Errorf("failed to generate %s bracket for tournament %d: %w", generator.GetName(), tournamentID, err)
	}
	plan = brackets.AdvanceByes(plan)

	encoded, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bracket plan: %w", err)
	}

	bracket := &models.Bracket{
		PublicID:     uuid.New(),
		TournamentID: tournamentID,
		Type:         string(plan.Kind),
		Plan:         encoded,
		Version:      1,
		ImageKey:     s.publishImage(ctx, tournamentID, plan),
	}

	err = s.txRunner.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.bracketRepo.Create(ctx, exec, bracket); err != nil {
			if errors.Is(err, repositories.ErrBracketTournamentInvalid) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to store bracket: %w", err)
		}
		status, winner := statusFor(plan)
		if err := s.tournamentRepo.UpdateStatus(ctx, exec, tournamentID, status, winner); err != nil {
			return mapTournamentRepoError(err, tournamentID)
		}
		return nil
	})
	if err != nil {
		s.discardImage(bracket.ImageKey)
		return nil, err
	}

	view := s.view(bracket, plan)
	s.broadcast(tournamentID, brackets.MessageBracketGenerated, view)
	if s.recorder != nil {
		s.recorder.BracketGenerated(string(plan.Kind))
	}
	s.logger.Info("bracket generated",
		slog.Int("tournament_id", tournamentID),
		slog.String("type", string(plan.Kind)),
		slog.Int("teams", len(roster)),
		slog.Int("matches", plan.MatchCount()),
		slog.Bool("shuffled", input.shuffled()))

	if plan.Champion != nil {
		s.finish(tournamentID, plan.Champion)
	}
	return view, nil
}

func (s *bracketService) Get(ctx context.Context, tournamentID int) (*BracketView, error) {
	bracket, plan, err := s.loadBracket(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.view(bracket, plan), nil
}

// Image renders the current plan. Group stages and round robin plans have no
// image and fail with brackets.ErrUnsupportedRenderTarget.
func (s *bracketService) Image(ctx context.Context, tournamentID int) ([]byte, error) {
	_, plan, err := s.loadBracket(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.render(plan)
}

func (s *bracketService) ReportResult(ctx context.Context, tournamentID int, input ReportResultInput) (*BracketView, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, mapTournamentRepoError(err, tournamentID)
	}
	if tournament.Status == models.StatusCompleted {
		return nil, ErrTournamentFinished
	}

	bracket, plan, err := s.loadBracket(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var winnerID string
	if input.WinnerTeamID > 0 {
		winnerID = strconv.Itoa(input.WinnerTeamID)
	}
	updated, err := brackets.Advance(plan, input.Round, input.Match, winnerID)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bracket plan: %w", err)
	}
	previousKey := bracket.ImageKey
	bracket.Plan = encoded
	bracket.ImageKey = s.publishImage(ctx, tournamentID, updated)
	if bracket.ImageKey == nil {
		bracket.ImageKey = previousKey
	}

	err = s.txRunner.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.bracketRepo.UpdatePlan(ctx, exec, bracket); err != nil {
			if errors.Is(err, repositories.ErrBracketVersionConflict) {
				return ErrBracketVersionConflict
			}
			return fmt.Errorf("failed to store bracket: %w", err)
		}
		status, winner := statusFor(updated)
		if status == tournament.Status && winner == nil {
			return nil
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, exec, tournamentID, status, winner); err != nil {
			return mapTournamentRepoError(err, tournamentID)
		}
		return nil
	})
	if err != nil {
		if bracket.ImageKey != previousKey {
			s.discardImage(bracket.ImageKey)
		}
		return nil, err
	}
	if bracket.ImageKey != previousKey {
		s.discardImage(previousKey)
	}

	view := s.view(bracket, updated)
	s.broadcast(tournamentID, brackets.MessageMatchUpdated, MatchUpdatedPayload{
		TournamentID: tournamentID,
		Round:        input.Round,
		Match:        input.Match,
		Winner:       matchWinner(updated, input),
		Version:      bracket.Version,
		ImageURL:     view.ImageURL,
	})
	if s.recorder != nil {
		s.recorder.ResultReported(string(updated.Kind))
	}
	s.logger.Info("match result recorded",
		slog.Int("tournament_id", tournamentID),
		slog.Int("round", input.Round),
		slog.Int("match", input.Match),
		slog.String("winner_team_id", winnerID),
		slog.Int("version", bracket.Version))

	if updated.Champion != nil {
		s.finish(tournamentID, updated.Champion)
	}
	return view, nil
}

// Simulate plays out every open match at random. The result is returned but
// never stored. A nil seed draws a fresh one.
func (s *bracketService) Simulate(ctx context.Context, tournamentID int, seed *uint64) (*BracketView, error) {
	bracket, plan, err := s.loadBracket(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	var rng brackets.Rand
	if seed != nil {
		rng = brackets.NewRand(*seed)
	} else {
		rng = s.newRand()
	}
	simulated, err := brackets.Simulate(plan, rng)
	if err != nil {
		return nil, err
	}
	return s.view(bracket, simulated), nil
}

// loadTournamentAndRoster fetches the tournament and its teams concurrently.
// Teams come back in registration order.
func (s *bracketService) loadTournamentAndRoster(ctx context.Context, tournamentID int) (*models.Tournament, []brackets.Team, error) {
	var (
		tournament *models.Tournament
		teams      []models.Team
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gctx, tournamentID)
		if err != nil {
			return mapTournamentRepoError(err, tournamentID)
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		list, err := s.teamRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list teams of tournament %d: %w", tournamentID, err)
		}
		teams = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	roster := make([]brackets.Team, len(teams))
	for i, t := range teams {
		roster[i] = brackets.Team{ID: strconv.Itoa(t.ID), Name: t.Name}
	}
	return tournament, roster, nil
}

func (s *bracketService) loadBracket(ctx context.Context, tournamentID int) (*models.Bracket, *brackets.Plan, error) {
	bracket, err := s.bracketRepo.GetLatestByTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return nil, nil, ErrBracketNotFound
		}
		return nil, nil, fmt.Errorf("failed to load bracket of tournament %d: %w", tournamentID, err)
	}
	plan := &brackets.Plan{}
	if err := json.Unmarshal(bracket.Plan, plan); err != nil {
		return nil, nil, fmt.Errorf("stored bracket %d is corrupt: %w", bracket.ID, err)
	}
	return bracket, plan, nil
}

func (s *bracketService) render(plan *brackets.Plan) ([]byte, error) {
	start := time.Now()
	img, err := s.renderer.Render(plan)
	if err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.ObserveRender(time.Since(start))
	}
	return img, nil
}

// publishImage renders and uploads plan. Failures are logged and yield a nil
// key; the bracket stays usable and the image can still be rendered on demand.
func (s *bracketService) publishImage(ctx context.Context, tournamentID int, plan *brackets.Plan) *string {
	if s.uploader == nil || plan.Kind != brackets.KindSingleElimination || len(plan.Rounds) == 0 {
		return nil
	}
	img, err := s.render(plan)
	if err != nil {
		s.logger.Error("failed to render bracket image",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil
	}
	key := storage.BracketImageKey(tournamentID, uuid.New())
	if _, err := s.uploader.Upload(ctx, key, storage.ContentTypePNG, bytes.NewReader(img)); err != nil {
		if s.recorder != nil {
			s.recorder.UploadFailed()
		}
		s.logger.Error("failed to upload bracket image",
			slog.Int("tournament_id", tournamentID), slog.String("key", key), slog.Any("error", err))
		return nil
	}
	return &key
}

func (s *bracketService) discardImage(key *string) {
	if s.uploader == nil || key == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.uploader.Delete(ctx, *key); err != nil {
		s.logger.Warn("failed to delete stale bracket image", slog.String("key", *key), slog.Any("error", err))
	}
}

func (s *bracketService) view(bracket *models.Bracket, plan *brackets.Plan) *BracketView {
	if s.uploader != nil && bracket.ImageKey != nil {
		if u := s.uploader.GetPublicURL(*bracket.ImageKey); u != "" {
			bracket.ImageURL = &u
		}
	}
	return &BracketView{Bracket: bracket, Plan: plan}
}

func (s *bracketService) broadcast(tournamentID int, messageType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	room := brackets.RoomForTournament(tournamentID)
	s.broadcaster.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    messageType,
		Payload: payload,
		RoomID:  room,
	})
}

func (s *bracketService) finish(tournamentID int, champion *brackets.Team) {
	s.broadcast(tournamentID, brackets.MessageTournamentFinished, TournamentFinishedPayload{
		TournamentID: tournamentID,
		Champion:     champion,
	})
	if s.recorder != nil {
		s.recorder.TournamentFinished()
	}
	s.logger.Info("tournament finished",
		slog.Int("tournament_id", tournamentID),
		slog.String("champion", champion.Name))
}

func (s *bracketService) recordGenerateFailure(kind brackets.Kind) {
	if s.recorder != nil {
		s.recorder.GenerateFailed(string(kind))
	}
}

// statusFor derives the tournament status implied by plan.
func statusFor(plan *brackets.Plan) (models.TournamentStatus, *int) {
	if plan.Champion == nil {
		return models.StatusActive, nil
	}
	id, err := strconv.Atoi(plan.Champion.ID)
	if err != nil {
		return models.StatusCompleted, nil
	}
	return models.StatusCompleted, &id
}

func matchWinner(plan *brackets.Plan, input ReportResultInput) *brackets.Team {
	var matches []brackets.Match
	switch plan.Kind {
	case brackets.KindSingleElimination:
		matches = plan.Rounds[input.Round].Matches
	case brackets.KindGroups:
		matches = plan.Groups[input.Round].Matches
	default:
		matches = plan.Matches
	}
	return matches[input.Match].Winner
}
