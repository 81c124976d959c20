package repositories

import (
	"context"
	"sync"

	"github.com/Dosada05/tournament-bracket/models"
)

// The in-memory repositories back the service when no DATABASE_URL is
// configured, and the service tests. They store clones so callers can never
// mutate stored state without a Save.

type MemoryTournamentRepository struct {
	mu          sync.RWMutex
	tournaments map[string]*models.Tournament
}

func NewMemoryTournamentRepository() *MemoryTournamentRepository {
	return &MemoryTournamentRepository{tournaments: make(map[string]*models.Tournament)}
}

func (r *MemoryTournamentRepository) Create(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tournaments[t.ID]; exists {
		return ErrTournamentConflict
	}
	r.tournaments[t.ID] = t.Clone()
	return nil
}

func (r *MemoryTournamentRepository) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return t.Clone(), nil
}

func (r *MemoryTournamentRepository) Save(_ context.Context, _ SQLExecutor, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tournaments[t.ID]; !ok {
		return ErrTournamentNotFound
	}
	r.tournaments[t.ID] = t.Clone()
	return nil
}

type MemoryBracketRepository struct {
	mu       sync.RWMutex
	brackets map[string]*models.Bracket
}

func NewMemoryBracketRepository() *MemoryBracketRepository {
	return &MemoryBracketRepository{brackets: make(map[string]*models.Bracket)}
}

func (r *MemoryBracketRepository) GetByTournamentID(_ context.Context, tournamentID string) (*models.Bracket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.brackets[tournamentID]
	if !ok {
		return nil, ErrBracketNotFound
	}
	return b.Clone(), nil
}

func (r *MemoryBracketRepository) Save(_ context.Context, b *models.Bracket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.brackets[b.TournamentID] = b.Clone()
	return nil
}

type MemoryTeamRepository struct {
	mu    sync.RWMutex
	teams map[string]*models.Team
}

func NewMemoryTeamRepository() *MemoryTeamRepository {
	return &MemoryTeamRepository{teams: make(map[string]*models.Team)}
}

// Put registers or replaces a team.
func (r *MemoryTeamRepository) Put(team models.Team) {
	r.mu.Lock()
	defer r.mu.Unlock()

	team.MemberIDs = append([]string(nil), team.MemberIDs...)
	r.teams[team.ID] = &team
}

func (r *MemoryTeamRepository) GetByID(_ context.Context, id string) (*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teams[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	c := *team
	c.MemberIDs = append([]string(nil), team.MemberIDs...)
	return &c, nil
}

func (r *MemoryTeamRepository) Members(_ context.Context, teamID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teams[teamID]
	if !ok {
		return []string{}, nil
	}
	return append([]string{}, team.MemberIDs...), nil
}

func (r *MemoryTeamRepository) CreditBalance(_ context.Context, _ SQLExecutor, teamID string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, ok := r.teams[teamID]
	if !ok {
		team = &models.Team{ID: teamID}
		r.teams[teamID] = team
	}
	team.Balance += amount
	return nil
}

// NoopTransactor runs the unit of work directly. Used with the in-memory
// repositories, which have no transactions.
type NoopTransactor struct{}

func (NoopTransactor) WithinTx(_ context.Context, fn func(exec SQLExecutor) error) error {
	return fn(nil)
}
