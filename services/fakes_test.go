package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/bracket-system/brackets"
	"github.com/Dosada05/bracket-system/models"
	"github.com/Dosada05/bracket-system/repositories"
	"github.com/Dosada05/bracket-system/storage"
)

type fakeTournamentRepo struct {
	mu          sync.Mutex
	tournaments map[int]*models.Tournament
	nextID      int
	err         error
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
}

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.tournaments {
		if existing.Name == t.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now()
	cp := *t
	r.tournaments[t.ID] = &cp
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTournamentRepo) List(_ context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Tournament
	for _, t := range r.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Offset < len(out) {
		out = out[filter.Offset:]
	} else {
		out = nil
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeTournamentRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.TournamentStatus, winner *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	t.WinnerTeamID = winner
	return nil
}

func (r *fakeTournamentRepo) status(id int) models.TournamentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tournaments[id].Status
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	teams  []models.Team
	nextID int
}

func (r *fakeTeamRepo) Create(_ context.Context, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.teams {
		if existing.TournamentID == t.TournamentID && existing.Name == t.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now()
	r.teams = append(r.teams, *t)
	return nil
}

func (r *fakeTeamRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Team, 0)
	for _, t := range r.teams {
		if t.TournamentID == tournamentID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	teams, err := r.ListByTournament(ctx, tournamentID)
	return len(teams), err
}

func (r *fakeTeamRepo) Delete(_ context.Context, tournamentID, teamID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.teams {
		if t.ID == teamID && t.TournamentID == tournamentID {
			r.teams = append(r.teams[:i], r.teams[i+1:]...)
			return nil
		}
	}
	return repositories.ErrTeamNotFound
}

type fakeBracketRepo struct {
	mu       sync.Mutex
	brackets []models.Bracket
	// staleOnUpdate makes the next UpdatePlan behave as if another writer won.
	staleOnUpdate bool
}

func (r *fakeBracketRepo) Create(_ context.Context, _ repositories.SQLExecutor, b *models.Bracket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = len(r.brackets) + 1
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.brackets = append(r.brackets, *b)
	return nil
}

func (r *fakeBracketRepo) GetLatestByTournament(_ context.Context, tournamentID int) (*models.Bracket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.brackets) - 1; i >= 0; i-- {
		if r.brackets[i].TournamentID == tournamentID {
			cp := r.brackets[i]
			return &cp, nil
		}
	}
	return nil, repositories.ErrBracketNotFound
}

func (r *fakeBracketRepo) UpdatePlan(_ context.Context, _ repositories.SQLExecutor, b *models.Bracket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.staleOnUpdate {
		r.staleOnUpdate = false
		return repositories.ErrBracketVersionConflict
	}
	for i := range r.brackets {
		stored := &r.brackets[i]
		if stored.ID != b.ID {
			continue
		}
		if stored.Version != b.Version {
			return repositories.ErrBracketVersionConflict
		}
		stored.Plan = b.Plan
		stored.ImageKey = b.ImageKey
		stored.Version++
		stored.UpdatedAt = time.Now()
		b.Version = stored.Version
		b.UpdatedAt = stored.UpdatedAt
		return nil
	}
	return repositories.ErrBracketVersionConflict
}

type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.calls++
	return fn(nil)
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	err     error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, r io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return nil, u.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	u.objects[key] = buf.Bytes()
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
}

func (b *fakeBroadcaster) BroadcastToRoom(_ string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, message.(brackets.WebSocketMessage))
}

func (b *fakeBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.messages))
	for i, m := range b.messages {
		out[i] = m.Type
	}
	return out
}

type fakeRecorder struct {
	generated, failed, reported, finished, renders, uploadFailures int
}

func (r *fakeRecorder) BracketGenerated(string)     { r.generated++ }
func (r *fakeRecorder) GenerateFailed(string)       { r.failed++ }
func (r *fakeRecorder) ResultReported(string)       { r.reported++ }
func (r *fakeRecorder) TournamentFinished()         { r.finished++ }
func (r *fakeRecorder) ObserveRender(time.Duration) { r.renders++ }
func (r *fakeRecorder) UploadFailed()               { r.uploadFailures++ }
