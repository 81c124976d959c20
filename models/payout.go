package models

import "time"

// Award is one placement's share of the prize pool.
type Award struct {
	Place  int     `json:"place"`
	TeamID string  `json:"team_id"`
	Amount float64 `json:"amount"`
}

// Payout is computed once when a tournament is settled and never recomputed.
type Payout struct {
	Total     float64   `json:"total"`
	Awards    []Award   `json:"awards"`
	Timestamp time.Time `json:"timestamp"`
}

func (p *Payout) Clone() *Payout {
	if p == nil {
		return nil
	}
	c := *p
	c.Awards = append([]Award(nil), p.Awards...)
	return &c
}
