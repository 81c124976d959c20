package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/concurrency"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/notifications"
	"github.com/Dosada05/tournament-bracket/repositories"
	"github.com/Dosada05/tournament-bracket/storage"
)

// Publisher pushes a post-write bracket snapshot to live subscribers.
// *brackets.Broker implements it.
type Publisher interface {
	Publish(tournamentID string, snapshot *models.Bracket)
}

// Archiver stores the final state of a settled tournament.
// *storage.BracketArchiver implements it.
type Archiver interface {
	Archive(ctx context.Context, rec storage.ArchiveRecord) (*storage.UploadResult, error)
}

// Dependencies is shared by all services. Publisher, Notifier and Archiver
// may be nil; the matching side effect is then skipped.
type Dependencies struct {
	Tournaments repositories.TournamentRepository
	Brackets    repositories.BracketRepository
	Teams       repositories.TeamRepository
	Tx          repositories.Transactor
	Locks       *concurrency.LockManager
	Publisher   Publisher
	Notifier    notifications.Notifier
	Archiver    Archiver
	Shuffle     brackets.Shuffler
	Now         func() time.Time
	Logger      *slog.Logger
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Tx == nil {
		d.Tx = repositories.NoopTransactor{}
	}
	if d.Locks == nil {
		d.Locks = concurrency.NewLockManager()
	}
	if d.Shuffle == nil {
		d.Shuffle = brackets.RandomShuffle
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return d
}

func (d Dependencies) loadTournament(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := d.Tournaments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}
	return t, nil
}

// loadBracket returns ErrBracketNotFound when the tournament has no bracket.
func (d Dependencies) loadBracket(ctx context.Context, tournamentID string) (*models.Bracket, error) {
	b, err := d.Brackets.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to load bracket of tournament %s: %w", tournamentID, err)
	}
	return b, nil
}

func (d Dependencies) publish(b *models.Bracket) {
	if d.Publisher == nil {
		return
	}
	d.Publisher.Publish(b.TournamentID, b)
}

// logRejection logs expected administrative rejections at Debug and
// anything unclassified at Error.
func (d Dependencies) logRejection(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.Any("error", err))
	level := slog.LevelDebug
	if KindOf(err) == brackets.KindUnknown {
		level = slog.LevelError
	}
	d.Logger.LogAttrs(ctx, level, msg, attrs...)
}
