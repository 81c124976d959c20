package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/repositories"
	"github.com/Dosada05/tournament-bracket/storage"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu      sync.Mutex
	batches [][]models.Notification
	err     error
}

func (n *recordingNotifier) Enqueue(_ context.Context, batch []models.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.batches = append(n.batches, batch)
	return nil
}

func (n *recordingNotifier) all() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []models.Notification
	for _, b := range n.batches {
		out = append(out, b...)
	}
	return out
}

type recordingPublisher struct {
	mu        sync.Mutex
	snapshots []*models.Bracket
}

func (p *recordingPublisher) Publish(_ string, snapshot *models.Bracket) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, snapshot.Clone())
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snapshots)
}

type recordingArchiver struct {
	records []storage.ArchiveRecord
	err     error
}

func (a *recordingArchiver) Archive(_ context.Context, rec storage.ArchiveRecord) (*storage.UploadResult, error) {
	if a.err != nil {
		return nil, a.err
	}
	a.records = append(a.records, rec)
	return &storage.UploadResult{Key: storage.ArchiveKey(rec.Tournament.ID)}, nil
}

type fixture struct {
	deps        Dependencies
	tournaments *repositories.MemoryTournamentRepository
	brackets    *repositories.MemoryBracketRepository
	teams       *repositories.MemoryTeamRepository
	notifier    *recordingNotifier
	publisher   *recordingPublisher
	archiver    *recordingArchiver

	bracketSvc BracketService
	matchSvc   MatchService
	payoutSvc  PayoutService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tournaments: repositories.NewMemoryTournamentRepository(),
		brackets:    repositories.NewMemoryBracketRepository(),
		teams:       repositories.NewMemoryTeamRepository(),
		notifier:    &recordingNotifier{},
		publisher:   &recordingPublisher{},
		archiver:    &recordingArchiver{},
	}
	f.deps = Dependencies{
		Tournaments: f.tournaments,
		Brackets:    f.brackets,
		Teams:       f.teams,
		Publisher:   f.publisher,
		Notifier:    f.notifier,
		Archiver:    f.archiver,
		Shuffle:     brackets.NoShuffle,
		Now:         func() time.Time { return testNow },
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	f.bracketSvc = NewBracketService(f.deps)
	f.matchSvc = NewMatchService(f.deps)
	f.payoutSvc = NewPayoutService(f.deps)
	return f
}

func (f *fixture) createTournament(t *testing.T, id string, format models.BracketFormat, pool models.PrizePool) {
	t.Helper()
	_, err := f.bracketSvc.CreateTournament(context.Background(), CreateTournamentInput{
		ID:        id,
		Name:      "Cup " + id,
		Format:    format,
		PrizePool: pool,
	})
	require.NoError(t, err)
}

func (f *fixture) report(t *testing.T, tournamentID, matchID string, s1, s2 int) *models.Match {
	t.Helper()
	m, err := f.matchSvc.Report(context.Background(), tournamentID, matchID, brackets.Result{Score1: &s1, Score2: &s2})
	require.NoError(t, err)
	return m
}

func (f *fixture) balance(t *testing.T, teamID string) float64 {
	t.Helper()
	team, err := f.teams.GetByID(context.Background(), teamID)
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return 0
	}
	require.NoError(t, err)
	return team.Balance
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }
