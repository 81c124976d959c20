package brackets

import (
	"time"

	"github.com/Dosada05/tournament-bracket/models"
)

// EditScores replaces the scores of a completed match. The recorded winner
// must stay the same.
func EditScores(b *models.Bracket, matchID string, score1, score2 int, now time.Time) (*models.Match, error) {
	m, ok := b.Match(matchID)
	if !ok {
		return nil, ErrMatchNotFound
	}
	if err := checkScoreEdit(m, score1, score2); err != nil {
		return nil, err
	}
	m.Score1, m.Score2 = &score1, &score2
	b.UpdatedAt = now
	return m, nil
}

func checkScoreEdit(m *models.Match, score1, score2 int) error {
	if !m.IsCompleted() {
		return ErrMatchNotCompleted
	}
	if m.ParticipantCount() == 0 {
		return ErrMatchHasNoParticipants
	}
	if m.WinnerID == nil || winnerFromScores(m, score1, score2) != *m.WinnerID {
		return ErrWinnerChangeNotAllowed
	}
	return nil
}

// OverrideWinner hands a completed single-elimination winners-bracket match
// to the other participant. Outside the final round the old winner is
// swapped out of its downstream slot, which requires that slot to still hold
// the old winner and the downstream match to be undecided. Scores are given
// as a pair or not at all.
func OverrideWinner(b *models.Bracket, matchID, newWinnerID string, score1, score2 *int, now time.Time) (*models.Match, error) {
	m, ok := b.Match(matchID)
	if !ok {
		return nil, ErrMatchNotFound
	}
	if b.Kind != models.FormatSingleElimination || m.Side != models.SideWinners {
		return nil, ErrOverrideNotSupported
	}
	if !m.IsCompleted() || m.WinnerID == nil {
		return nil, ErrMatchNotCompleted
	}
	if !m.HasParticipant(newWinnerID) {
		return nil, ErrInvalidWinner
	}
	if (score1 == nil) != (score2 == nil) {
		return nil, ErrMatchRequiresScoresOrWinner
	}

	if newWinnerID == *m.WinnerID {
		if score1 == nil {
			return m, nil
		}
		return EditScores(b, matchID, *score1, *score2, now)
	}

	if m.Round < b.FinalRound(models.SideWinners) {
		next, slot := downstreamSlot(b, m)
		if next == nil {
			return nil, ErrSlotMismatch
		}
		if next.IsCompleted() || next.WinnerID != nil {
			return nil, ErrDownstreamAlreadyDecided
		}
		current := next.SlotValue(slot)
		if current == nil || *current != *m.WinnerID {
			return nil, ErrSlotMismatch
		}
		next.SetSlot(slot, newWinnerID)
	}

	m.WinnerID = &newWinnerID
	if score1 != nil {
		m.Score1 = score1
	}
	if score2 != nil {
		m.Score2 = score2
	}
	b.UpdatedAt = now
	return m, nil
}

// ResetMatch returns a completed match to pending. It is refused once the
// winner shows up in a later match. Under double elimination the loser is
// pulled back out of the losers bracket if that match is still undecided.
func ResetMatch(b *models.Bracket, matchID string, now time.Time) (*models.Match, error) {
	m, ok := b.Match(matchID)
	if !ok {
		return nil, ErrMatchNotFound
	}
	if !m.IsCompleted() {
		return nil, ErrMatchNotCompleted
	}
	if m.WinnerID != nil && occupiesDownstream(b, m, *m.WinnerID) {
		return nil, ErrWinnerAlreadyPropagated
	}

	var loserMatch *models.Match
	var loserSlot models.Slot
	if b.Kind == models.FormatDoubleElimination && m.Side == models.SideWinners {
		if loser := m.LoserID(); loser != nil {
			loserMatch, loserSlot = findInLosers(b, *loser)
			if loserMatch != nil && loserMatch.IsCompleted() {
				return nil, ErrDownstreamAlreadyDecided
			}
		}
	}

	if loserMatch != nil {
		if loserSlot == models.Slot1 {
			loserMatch.Team1 = nil
		} else {
			loserMatch.Team2 = nil
		}
	}
	m.Score1, m.Score2 = nil, nil
	m.WinnerID = nil
	m.CompletedAt = nil
	m.Status = models.MatchStatusPending
	b.UpdatedAt = now
	return m, nil
}

// occupiesDownstream reports whether teamID sits in any match that m can
// feed: later rounds of its own side plus the sides it propagates into.
func occupiesDownstream(b *models.Bracket, m *models.Match, teamID string) bool {
	found := false
	b.Each(func(other *models.Match) bool {
		if other.ID == m.ID || !isDownstreamOf(other, m) {
			return true
		}
		if other.HasParticipant(teamID) {
			found = true
			return false
		}
		return true
	})
	return found
}

func isDownstreamOf(other, m *models.Match) bool {
	switch m.Side {
	case models.SideWinners:
		if other.Side == models.SideWinners {
			return other.Round > m.Round
		}
		return true
	case models.SideLosers:
		if other.Side == models.SideLosers {
			return other.Round > m.Round
		}
		return other.Side == models.SideGrand
	}
	return false
}

func findInLosers(b *models.Bracket, teamID string) (*models.Match, models.Slot) {
	for _, r := range b.Losers {
		for _, m := range r.Matches {
			if m.Team1 != nil && *m.Team1 == teamID {
				return m, models.Slot1
			}
			if m.Team2 != nil && *m.Team2 == teamID {
				return m, models.Slot2
			}
		}
	}
	return nil, 0
}
