package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/metrics"
	"github.com/Dosada05/tournament-bracket/models"
)

type MatchService interface {
	Report(ctx context.Context, tournamentID, matchID string, result brackets.Result) (*models.Match, error)
	EditScores(ctx context.Context, tournamentID, matchID string, score1, score2 int) (*models.Match, error)
	Override(ctx context.Context, tournamentID, matchID, winnerID string, score1, score2 *int) (*models.Match, error)
	Reset(ctx context.Context, tournamentID, matchID string) (*models.Match, error)
}

type matchService struct {
	Dependencies
}

func NewMatchService(deps Dependencies) MatchService {
	return &matchService{Dependencies: deps.withDefaults()}
}

// matchMutation changes one match of a working copy of the bracket.
type matchMutation func(b *models.Bracket, now time.Time) (*models.Match, error)

func (s *matchService) Report(ctx context.Context, tournamentID, matchID string, result brackets.Result) (*models.Match, error) {
	var dropped []string
	m, err := s.mutate(ctx, "report", tournamentID, matchID, func(b *models.Bracket, now time.Time) (*models.Match, error) {
		out, err := brackets.ApplyResult(b, matchID, result, now)
		if err != nil {
			return nil, err
		}
		dropped = out.Dropped
		return out.Match, nil
	})
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		metrics.TeamsDropped.Add(float64(len(dropped)))
		s.Logger.WarnContext(ctx, "no open slot left for teams, they are eliminated",
			slog.String("tournament_id", tournamentID),
			slog.String("match_id", matchID),
			slog.Any("team_ids", dropped))
	}
	return m, nil
}

func (s *matchService) EditScores(ctx context.Context, tournamentID, matchID string, score1, score2 int) (*models.Match, error) {
	return s.mutate(ctx, "edit", tournamentID, matchID, func(b *models.Bracket, now time.Time) (*models.Match, error) {
		return brackets.EditScores(b, matchID, score1, score2, now)
	})
}

func (s *matchService) Override(ctx context.Context, tournamentID, matchID, winnerID string, score1, score2 *int) (*models.Match, error) {
	return s.mutate(ctx, "override", tournamentID, matchID, func(b *models.Bracket, now time.Time) (*models.Match, error) {
		return brackets.OverrideWinner(b, matchID, winnerID, score1, score2, now)
	})
}

func (s *matchService) Reset(ctx context.Context, tournamentID, matchID string) (*models.Match, error) {
	return s.mutate(ctx, "reset", tournamentID, matchID, func(b *models.Bracket, now time.Time) (*models.Match, error) {
		return brackets.ResetMatch(b, matchID, now)
	})
}

// mutate runs fn against a clone of the stored bracket under the
// tournament lock. The stored bracket is only replaced when fn succeeds.
func (s *matchService) mutate(ctx context.Context, op, tournamentID, matchID string, fn matchMutation) (*models.Match, error) {
	start := time.Now()
	var result *models.Match
	err := s.Locks.WithLock(tournamentID, func() error {
		m, err := s.mutateLocked(ctx, tournamentID, fn)
		result = m
		return err
	})
	metrics.ObserveOperation(op, start, err)

	attrs := []slog.Attr{
		slog.String("operation", op),
		slog.String("tournament_id", tournamentID),
		slog.String("match_id", matchID),
	}
	if err != nil {
		s.logRejection(ctx, "match update rejected", err, attrs...)
		return nil, err
	}
	s.Logger.LogAttrs(ctx, slog.LevelInfo, "match updated", append(attrs, slog.String("status", string(result.Status)))...)
	return result, nil
}

func (s *matchService) mutateLocked(ctx context.Context, tournamentID string, fn matchMutation) (*models.Match, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Payout != nil {
		return nil, ErrTournamentSettled
	}
	stored, err := s.loadBracket(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	work := stored.Clone()
	now := s.Now()
	m, err := fn(work, now)
	if err != nil {
		return nil, err
	}
	result := m.Clone()

	if err := s.Brackets.Save(ctx, work); err != nil {
		return nil, fmt.Errorf("failed to save bracket of tournament %s: %w", tournamentID, err)
	}
	if status := statusAfterMutation(work); status != t.Status {
		t.Status = status
		t.UpdatedAt = now
		if err := s.Tournaments.Save(ctx, nil, t); err != nil {
			return nil, fmt.Errorf("failed to update tournament %s: %w", tournamentID, err)
		}
		s.Logger.InfoContext(ctx, "tournament status changed",
			slog.String("tournament_id", tournamentID),
			slog.String("status", string(status)))
	}

	s.publish(work)
	return result, nil
}

// statusAfterMutation derives the status of an unsettled tournament from
// its bracket: a decided grand final completes it, and resetting that final
// reopens it.
func statusAfterMutation(b *models.Bracket) models.TournamentStatus {
	if b.Kind == models.FormatDoubleElimination {
		if gf := b.GrandFinal(); gf != nil && gf.IsCompleted() {
			return models.StatusCompleted
		}
	}
	return models.StatusOngoing
}
