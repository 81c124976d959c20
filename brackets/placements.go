package brackets

import "github.com/Dosada05/tournament-bracket/models"

// Placements is the final standing derived from a finished bracket. Third
// place may be shared or empty.
type Placements struct {
	First  string
	Second string
	Third  []string
}

// FinalPlacements derives 1st/2nd/3rd from the deciding match and the round
// before it. It fails with ErrFinalNotCompleted until both finalists are
// known.
func FinalPlacements(b *models.Bracket) (*Placements, error) {
	final := b.Champion()
	if final == nil || !final.IsCompleted() || final.WinnerID == nil {
		return nil, ErrFinalNotCompleted
	}
	runnerUp := final.LoserID()
	if runnerUp == nil {
		return nil, ErrFinalNotCompleted
	}

	p := &Placements{First: *final.WinnerID, Second: *runnerUp, Third: []string{}}
	switch b.Kind {
	case models.FormatDoubleElimination:
		if len(b.Losers) > 0 {
			last := b.Losers[len(b.Losers)-1]
			if len(last.Matches) > 0 {
				if loser := last.Matches[len(last.Matches)-1].LoserID(); loser != nil {
					p.Third = append(p.Third, *loser)
				}
			}
		}
	default:
		semifinal := b.FinalRound(models.SideWinners) - 1
		if semifinal >= 1 {
			for _, m := range b.Winners[semifinal-1].Matches {
				if loser := m.LoserID(); loser != nil {
					p.Third = append(p.Third, *loser)
				}
			}
		}
	}
	return p, nil
}
