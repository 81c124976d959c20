package models

import "time"

type Round struct {
	Number  int      `json:"number"`
	Matches []*Match `json:"matches"`
}

// Bracket is the full match graph of one tournament. Matches reference each
// other only through (side, round, index) coordinates, never by pointer, so
// the structure serializes as-is and downstream lookups are plain indexing.
type Bracket struct {
	TournamentID string        `json:"tournament_id"`
	Kind         BracketFormat `json:"kind"`
	Winners      []*Round      `json:"winners"`
	Losers       []*Round      `json:"losers"`
	Grand        []*Round      `json:"grand"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Rounds returns the round sequence for side.
func (b *Bracket) Rounds(side Side) []*Round {
	switch side {
	case SideWinners:
		return b.Winners
	case SideLosers:
		return b.Losers
	case SideGrand:
		return b.Grand
	}
	return nil
}

// At returns the match at the given coordinates. Rounds are 1-indexed,
// match indices 0-indexed.
func (b *Bracket) At(side Side, round, index int) *Match {
	rounds := b.Rounds(side)
	if round < 1 || round > len(rounds) {
		return nil
	}
	matches := rounds[round-1].Matches
	if index < 0 || index >= len(matches) {
		return nil
	}
	return matches[index]
}

// Match finds a match by its stable id.
func (b *Bracket) Match(id string) (*Match, bool) {
	var found *Match
	b.Each(func(m *Match) bool {
		if m.ID == id {
			found = m
			return false
		}
		return true
	})
	return found, found != nil
}

// Each visits every match in winners, losers, grand order, round by round.
// Iteration stops when fn returns false.
func (b *Bracket) Each(fn func(m *Match) bool) {
	for _, side := range []Side{SideWinners, SideLosers, SideGrand} {
		for _, r := range b.Rounds(side) {
			for _, m := range r.Matches {
				if !fn(m) {
					return
				}
			}
		}
	}
}

// FinalRound returns the number of the last round on side, 0 if empty.
func (b *Bracket) FinalRound(side Side) int {
	return len(b.Rounds(side))
}

// GrandFinal returns the single grand-final match of a double elimination
// bracket, or nil.
func (b *Bracket) GrandFinal() *Match {
	return b.At(SideGrand, 1, 0)
}

// Champion returns the deciding match: the grand final under double
// elimination, the last winners round match otherwise.
func (b *Bracket) Champion() *Match {
	if b.Kind == FormatDoubleElimination {
		return b.GrandFinal()
	}
	return b.At(SideWinners, b.FinalRound(SideWinners), 0)
}

func (b *Bracket) Clone() *Bracket {
	if b == nil {
		return nil
	}
	c := *b
	c.Winners = cloneRounds(b.Winners)
	c.Losers = cloneRounds(b.Losers)
	c.Grand = cloneRounds(b.Grand)
	return &c
}

func cloneRounds(rounds []*Round) []*Round {
	out := make([]*Round, len(rounds))
	for i, r := range rounds {
		nr := &Round{Number: r.Number, Matches: make([]*Match, len(r.Matches))}
		for j, m := range r.Matches {
			nr.Matches[j] = m.Clone()
		}
		out[i] = nr
	}
	return out
}
