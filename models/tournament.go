package models

import "time"

// TournamentStatus mirrors the tournament_status enum in the database.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusOngoing   TournamentStatus = "ongoing"
	StatusCompleted TournamentStatus = "completed"
)

// Tournament is the settlement-relevant view of a tournament.
type Tournament struct {
	ID        string           `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	PrizePool PrizePool        `json:"prize_pool" db:"prize_pool"`
	Status    TournamentStatus `json:"status" db:"status"`
	Format    BracketFormat    `json:"format" db:"format"`
	Payout    *Payout          `json:"payout,omitempty" db:"payout"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// Clone returns a copy that shares no mutable state with t.
func (t *Tournament) Clone() *Tournament {
	if t == nil {
		return nil
	}
	c := *t
	c.Payout = t.Payout.Clone()
	return &c
}
