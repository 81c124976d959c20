package brackets

import (
	"time"

	"github.com/Dosada05/tournament-bracket/models"
)

// Result is a reported match outcome: both scores, an explicit winner, or
// both.
type Result struct {
	Score1   *int    `json:"score1,omitempty"`
	Score2   *int    `json:"score2,omitempty"`
	WinnerID *string `json:"winner_id,omitempty"`
}

func (r Result) hasScores() bool {
	return r.Score1 != nil && r.Score2 != nil
}

// Outcome describes what a successful report changed beyond the match.
type Outcome struct {
	Match *models.Match
	// TournamentCompleted is set when the grand final was decided.
	TournamentCompleted bool
	// Dropped lists teams that had to move on but found no open slot.
	Dropped []string
}

// ApplyResult completes the match and propagates its winner and loser
// downstream. b is modified in place; callers that need the previous state
// on failure should pass a clone. All validation happens before the first
// write.
func ApplyResult(b *models.Bracket, matchID string, res Result, now time.Time) (*Outcome, error) {
	m, ok := b.Match(matchID)
	if !ok {
		return nil, ErrMatchNotFound
	}
	if m.IsCompleted() {
		return nil, ErrMatchAlreadyCompleted
	}
	if m.ParticipantCount() == 0 {
		return nil, ErrMatchHasNoParticipants
	}
	if res.WinnerID == nil && !res.hasScores() {
		return nil, ErrMatchRequiresScoresOrWinner
	}

	var winner string
	if res.WinnerID != nil {
		if !m.HasParticipant(*res.WinnerID) {
			return nil, ErrInvalidWinner
		}
		winner = *res.WinnerID
	} else {
		winner = winnerFromScores(m, *res.Score1, *res.Score2)
	}
	if m.ParticipantCount() == 1 {
		winner = *soleParticipant(m)
	}

	m.Score1 = res.Score1
	m.Score2 = res.Score2
	m.WinnerID = &winner
	m.Status = models.MatchStatusCompleted
	completedAt := now
	m.CompletedAt = &completedAt

	out := &Outcome{Match: m}
	switch m.Side {
	case models.SideWinners:
		if m.Round < b.FinalRound(models.SideWinners) {
			advanceWinner(b, m)
		} else if b.Kind == models.FormatDoubleElimination && !fillFirstEmpty(b.GrandFinal(), winner) {
			out.Dropped = append(out.Dropped, winner)
		}
		if b.Kind == models.FormatDoubleElimination {
			if loser := m.LoserID(); loser != nil && !placeLoser(b, *loser, 1) {
				out.Dropped = append(out.Dropped, *loser)
			}
		}
	case models.SideLosers:
		var placed bool
		if isLastLosersMatch(b, m) {
			placed = fillSecondEmpty(b.GrandFinal(), winner)
		} else {
			placed = placeLoser(b, winner, m.Round+1)
		}
		if !placed {
			out.Dropped = append(out.Dropped, winner)
		}
	case models.SideGrand:
		out.TournamentCompleted = true
	}
	b.UpdatedAt = now
	return out, nil
}

// winnerFromScores picks the strictly higher score. An exact tie goes to
// team1; see DESIGN.md. A single populated slot always wins.
func winnerFromScores(m *models.Match, score1, score2 int) string {
	if m.ParticipantCount() == 1 {
		return *soleParticipant(m)
	}
	if score2 > score1 {
		return *m.Team2
	}
	return *m.Team1
}

func soleParticipant(m *models.Match) *string {
	if m.Team1 != nil {
		return m.Team1
	}
	return m.Team2
}

// downstreamSlot returns the next winners-round match and slot that the
// winner of m feeds: index/2, team1 for even indices and team2 for odd.
func downstreamSlot(b *models.Bracket, m *models.Match) (*models.Match, models.Slot) {
	next := b.At(models.SideWinners, m.Round+1, m.Index/2)
	if m.Index%2 == 0 {
		return next, models.Slot1
	}
	return next, models.Slot2
}

// advanceWinner moves the winner of a completed winners-bracket match into
// the next round. An already filled target slot is never overwritten.
func advanceWinner(b *models.Bracket, m *models.Match) {
	if m.WinnerID == nil {
		return
	}
	next, slot := downstreamSlot(b, m)
	if next == nil || next.SlotValue(slot) != nil {
		return
	}
	next.SetSlot(slot, *m.WinnerID)
}

// placeLoser puts teamID into the first empty slot of an undecided losers
// match, scanning rounds from fromRound onward and matches in order. It
// reports false when no such slot is left.
func placeLoser(b *models.Bracket, teamID string, fromRound int) bool {
	for _, r := range b.Losers {
		if r.Number < fromRound {
			continue
		}
		for _, m := range r.Matches {
			if fillFirstEmpty(m, teamID) {
				return true
			}
		}
	}
	return false
}

func fillFirstEmpty(m *models.Match, teamID string) bool {
	if m == nil || m.IsCompleted() {
		return false
	}
	switch {
	case m.Team1 == nil:
		m.SetSlot(models.Slot1, teamID)
	case m.Team2 == nil:
		m.SetSlot(models.Slot2, teamID)
	default:
		return false
	}
	return true
}

// fillSecondEmpty prefers team2, the slot reserved for the losers-bracket
// champion, and falls back to team1.
func fillSecondEmpty(m *models.Match, teamID string) bool {
	if m == nil || m.IsCompleted() {
		return false
	}
	switch {
	case m.Team2 == nil:
		m.SetSlot(models.Slot2, teamID)
	case m.Team1 == nil:
		m.SetSlot(models.Slot1, teamID)
	default:
		return false
	}
	return true
}

func isLastLosersMatch(b *models.Bracket, m *models.Match) bool {
	if m.Side != models.SideLosers || len(b.Losers) == 0 {
		return false
	}
	last := b.Losers[len(b.Losers)-1]
	return m.Round == last.Number && m.Index == len(last.Matches)-1
}
