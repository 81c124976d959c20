package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/metrics"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/notifications"
	"github.com/Dosada05/tournament-bracket/repositories"
	"github.com/Dosada05/tournament-bracket/storage"
)

const memberLookupConcurrency = 4

type PayoutService interface {
	// EndTournament settles a finished tournament once. Later calls return
	// the stored payout without crediting again.
	EndTournament(ctx context.Context, tournamentID string) (*models.Payout, error)
}

type payoutService struct {
	Dependencies
}

func NewPayoutService(deps Dependencies) PayoutService {
	return &payoutService{Dependencies: deps.withDefaults()}
}

func (s *payoutService) EndTournament(ctx context.Context, tournamentID string) (*models.Payout, error) {
	start := time.Now()
	var (
		payout  *models.Payout
		settled *settlement
	)
	err := s.Locks.WithLock(tournamentID, func() error {
		var err error
		payout, settled, err = s.settleLocked(ctx, tournamentID)
		return err
	})
	metrics.ObserveOperation("end_tournament", start, err)
	if err != nil {
		s.logRejection(ctx, "end tournament rejected", err, slog.String("tournament_id", tournamentID))
		return nil, err
	}

	if settled != nil {
		metrics.PayoutsSettled.Inc()
		s.Logger.InfoContext(ctx, "tournament settled",
			slog.String("tournament_id", tournamentID),
			slog.Float64("total", payout.Total),
			slog.Int("awards", len(payout.Awards)))
		s.notify(ctx, settled)
		s.archive(ctx, settled)
	}
	return payout.Clone(), nil
}

// settlement carries what the post-commit side effects need.
type settlement struct {
	tournament *models.Tournament
	bracket    *models.Bracket
	members    map[string][]string
	// notified is set when the notifications were committed with the payout.
	notified bool
}

// settleLocked returns a nil settlement when the tournament was already
// paid out.
func (s *payoutService) settleLocked(ctx context.Context, tournamentID string) (*models.Payout, *settlement, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, nil, err
	}
	if t.Payout != nil {
		return t.Payout, nil, nil
	}

	b, err := s.loadBracket(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, ErrBracketNotFound) {
			return nil, nil, ErrBracketNotGenerated
		}
		return nil, nil, err
	}
	placements, err := brackets.FinalPlacements(b)
	if err != nil {
		return nil, nil, err
	}

	total := ParsePrizePool(t.PrizePool)
	payout := &models.Payout{
		Total:     total,
		Awards:    DistributePrizePool(total, placements),
		Timestamp: s.Now(),
	}

	members, err := s.lookupMembers(ctx, payout.Awards)
	if err != nil {
		return nil, nil, err
	}

	// A TxNotifier writes the batch inside the payout transaction.
	txNotifier, outboxed := s.Notifier.(notifications.TxNotifier)
	err = s.Tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if outboxed {
			batch := buildPayoutNotifications(t, payout.Awards, members, payout.Timestamp)
			if err := txNotifier.EnqueueTx(ctx, exec, batch); err != nil {
				return fmt.Errorf("failed to enqueue payout notifications: %w", err)
			}
		}
		for _, award := range payout.Awards {
			if err := s.Teams.CreditBalance(ctx, exec, award.TeamID, award.Amount); err != nil {
				return fmt.Errorf("failed to credit team %s: %w", award.TeamID, err)
			}
		}
		t.Payout = payout
		t.Status = models.StatusCompleted
		t.UpdatedAt = payout.Timestamp
		return s.Tournaments.Save(ctx, exec, t)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to persist payout of tournament %s: %w", tournamentID, err)
	}

	return payout, &settlement{tournament: t, bracket: b, members: members, notified: outboxed}, nil
}

func (s *payoutService) lookupMembers(ctx context.Context, awards []models.Award) (map[string][]string, error) {
	var (
		mu      sync.Mutex
		members = make(map[string][]string, len(awards))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(memberLookupConcurrency)

	seen := make(map[string]bool, len(awards))
	for _, award := range awards {
		teamID := award.TeamID
		if seen[teamID] {
			continue
		}
		seen[teamID] = true
		g.Go(func() error {
			ids, err := s.Teams.Members(gctx, teamID)
			if err != nil {
				return fmt.Errorf("failed to list members of team %s: %w", teamID, err)
			}
			mu.Lock()
			members[teamID] = ids
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *payoutService) notify(ctx context.Context, st *settlement) {
	if s.Notifier == nil || st.notified {
		return
	}
	batch := buildPayoutNotifications(st.tournament, st.tournament.Payout.Awards, st.members, s.Now())
	if len(batch) == 0 {
		return
	}
	if err := s.Notifier.Enqueue(ctx, batch); err != nil {
		metrics.NotificationFailures.WithLabelValues(fmt.Sprintf("%T", s.Notifier)).Inc()
		s.Logger.ErrorContext(ctx, "failed to enqueue payout notifications",
			slog.String("tournament_id", st.tournament.ID),
			slog.Int("notifications", len(batch)),
			slog.Any("error", err))
	}
}

func (s *payoutService) archive(ctx context.Context, st *settlement) {
	if s.Archiver == nil {
		return
	}
	res, err := s.Archiver.Archive(ctx, storage.ArchiveRecord{
		Tournament: st.tournament,
		Bracket:    st.bracket,
		Payout:     st.tournament.Payout,
	})
	if err != nil {
		metrics.ArchiveFailures.Inc()
		s.Logger.ErrorContext(ctx, "failed to archive tournament",
			slog.String("tournament_id", st.tournament.ID),
			slog.Any("error", err))
		return
	}
	s.Logger.InfoContext(ctx, "tournament archived",
		slog.String("tournament_id", st.tournament.ID),
		slog.String("location", res.Location))
}

// buildPayoutNotifications creates one notification per member per award.
func buildPayoutNotifications(t *models.Tournament, awards []models.Award, members map[string][]string, now time.Time) []models.Notification {
	var batch []models.Notification
	for _, award := range awards {
		for _, userID := range members[award.TeamID] {
			batch = append(batch, models.Notification{
				ID:          uuid.NewString(),
				RecipientID: userID,
				Message: fmt.Sprintf("Your team placed %s in %s and won %s.",
					ordinal(award.Place), t.Name, strconv.FormatFloat(award.Amount, 'f', 2, 64)),
				Metadata: map[string]string{
					"tournament_id": t.ID,
					"team_id":       award.TeamID,
					"place":         strconv.Itoa(award.Place),
					"amount":        strconv.FormatFloat(award.Amount, 'f', 2, 64),
				},
				CreatedAt: now,
			})
		}
	}
	return batch
}

func ordinal(place int) string {
	switch place {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return strconv.Itoa(place) + "th"
	}
}
