package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/metrics"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/repositories"
)

type CreateTournamentInput struct {
	ID        string
	Name      string
	Format    models.BracketFormat
	PrizePool models.PrizePool
}

type BracketService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error)
	// StartBracket builds the bracket and moves the tournament to ongoing.
	// Calling it again returns the stored bracket unchanged.
	StartBracket(ctx context.Context, tournamentID string, format models.BracketFormat, participantIDs []string) (*models.Bracket, error)
	GetBracket(ctx context.Context, tournamentID string) (*models.Bracket, error)
	GetMatch(ctx context.Context, tournamentID, matchID string) (*models.Match, error)
}

type bracketService struct {
	Dependencies
}

func NewBracketService(deps Dependencies) BracketService {
	return &bracketService{Dependencies: deps.withDefaults()}
}

func (s *bracketService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameEmpty
	}
	format := input.Format
	if format == "" {
		format = models.FormatSingleElimination
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", brackets.ErrUnsupportedFormat, format)
	}
	if input.PrizePool.Amount != nil && *input.PrizePool.Amount < 0 {
		return nil, fmt.Errorf("%w: prize pool cannot be negative", ErrValidationFailed)
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.NewString()
	}
	now := s.Now()
	t := &models.Tournament{
		ID:        id,
		Name:      name,
		PrizePool: input.PrizePool,
		Status:    models.StatusUpcoming,
		Format:    format,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Tournaments.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentConflict) {
			return nil, ErrTournamentExists
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.Logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", t.ID),
		slog.String("format", string(t.Format)))
	return t, nil
}

func (s *bracketService) GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	return s.loadTournament(ctx, tournamentID)
}

func (s *bracketService) StartBracket(ctx context.Context, tournamentID string, format models.BracketFormat, participantIDs []string) (*models.Bracket, error) {
	start := time.Now()
	var result *models.Bracket
	err := s.Locks.WithLock(tournamentID, func() error {
		b, err := s.startLocked(ctx, tournamentID, format, participantIDs)
		result = b
		return err
	})
	metrics.ObserveOperation("start_bracket", start, err)
	if err != nil {
		s.logRejection(ctx, "start bracket rejected", err, slog.String("tournament_id", tournamentID))
		return nil, err
	}
	return result, nil
}

func (s *bracketService) startLocked(ctx context.Context, tournamentID string, format models.BracketFormat, participantIDs []string) (*models.Bracket, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.loadBracket(ctx, tournamentID)
	switch {
	case err == nil:
		// A previous start may have stored the bracket but failed before
		// the status change.
		if t.Status == models.StatusUpcoming {
			if err := s.saveStatus(ctx, t, models.StatusOngoing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	case !errors.Is(err, ErrBracketNotFound):
		return nil, err
	}

	if t.Status == models.StatusCompleted {
		return nil, ErrTournamentNotOngoing
	}
	if format == "" {
		format = t.Format
	}
	gen, err := brackets.NewGenerator(format, s.Shuffle)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	b, err := gen.GenerateBracket(ctx, brackets.GenerateBracketParams{
		TournamentID: tournamentID,
		Participants: participantIDs,
		Now:          now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Brackets.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save bracket of tournament %s: %w", tournamentID, err)
	}
	t.Format = format
	if err := s.saveStatus(ctx, t, models.StatusOngoing); err != nil {
		return nil, err
	}

	metrics.BracketsGenerated.WithLabelValues(string(format)).Inc()
	s.Logger.InfoContext(ctx, "bracket generated",
		slog.String("tournament_id", tournamentID),
		slog.String("generator", gen.GetName()),
		slog.Int("participants", len(participantIDs)))
	s.publish(b)
	return b, nil
}

func (s *bracketService) saveStatus(ctx context.Context, t *models.Tournament, status models.TournamentStatus) error {
	t.Status = status
	t.UpdatedAt = s.Now()
	if err := s.Tournaments.Save(ctx, nil, t); err != nil {
		return fmt.Errorf("failed to update tournament %s: %w", t.ID, err)
	}
	return nil
}

func (s *bracketService) GetBracket(ctx context.Context, tournamentID string) (*models.Bracket, error) {
	if _, err := s.loadTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.loadBracket(ctx, tournamentID)
}

func (s *bracketService) GetMatch(ctx context.Context, tournamentID, matchID string) (*models.Match, error) {
	b, err := s.GetBracket(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	m, ok := b.Match(matchID)
	if !ok {
		return nil, brackets.ErrMatchNotFound
	}
	return m, nil
}
