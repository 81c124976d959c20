package models

import (
	"fmt"
	"time"
)

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusCompleted MatchStatus = "completed"
)

// Side identifies which round sequence of a bracket a match belongs to.
type Side string

const (
	SideWinners Side = "winners"
	SideLosers  Side = "losers"
	SideGrand   Side = "grand"
)

func (s Side) prefix() string {
	switch s {
	case SideLosers:
		return "L"
	case SideGrand:
		return "GF"
	default:
		return "W"
	}
}

// MatchID builds the stable id of the match at the given coordinates,
// e.g. "W-R1-M0" or "GF-R1-M0".
func MatchID(side Side, round, index int) string {
	return fmt.Sprintf("%s-R%d-M%d", side.prefix(), round, index)
}

// Slot selects one of the two participant positions of a match.
type Slot int

const (
	Slot1 Slot = 1
	Slot2 Slot = 2
)

type Match struct {
	ID          string      `json:"id"`
	Side        Side        `json:"side"`
	Round       int         `json:"round"`
	Index       int         `json:"index"`
	Team1       *string     `json:"team1,omitempty"`
	Team2       *string     `json:"team2,omitempty"`
	Status      MatchStatus `json:"status"`
	Score1      *int        `json:"score1,omitempty"`
	Score2      *int        `json:"score2,omitempty"`
	WinnerID    *string     `json:"winner_id,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

func (m *Match) IsCompleted() bool {
	return m.Status == MatchStatusCompleted
}

// SlotValue returns the participant in slot s, or nil when it is still TBD.
func (m *Match) SlotValue(s Slot) *string {
	if s == Slot1 {
		return m.Team1
	}
	return m.Team2
}

func (m *Match) SetSlot(s Slot, teamID string) {
	if s == Slot1 {
		m.Team1 = &teamID
		return
	}
	m.Team2 = &teamID
}

// ParticipantCount reports how many of the two slots are filled.
func (m *Match) ParticipantCount() int {
	n := 0
	if m.Team1 != nil {
		n++
	}
	if m.Team2 != nil {
		n++
	}
	return n
}

// HasParticipant reports whether teamID occupies either slot.
func (m *Match) HasParticipant(teamID string) bool {
	return (m.Team1 != nil && *m.Team1 == teamID) || (m.Team2 != nil && *m.Team2 == teamID)
}

// LoserID returns the participant that did not win a completed match, or
// nil when the match is pending or was decided by a bye.
func (m *Match) LoserID() *string {
	if !m.IsCompleted() || m.WinnerID == nil || m.Team1 == nil || m.Team2 == nil {
		return nil
	}
	if *m.Team1 == *m.WinnerID {
		return m.Team2
	}
	return m.Team1
}

// Clone copies the match including its pointer fields.
func (m *Match) Clone() *Match {
	if m == nil {
		return nil
	}
	c := *m
	c.Team1 = cloneString(m.Team1)
	c.Team2 = cloneString(m.Team2)
	c.WinnerID = cloneString(m.WinnerID)
	c.Score1 = cloneInt(m.Score1)
	c.Score2 = cloneInt(m.Score2)
	if m.CompletedAt != nil {
		t := *m.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
