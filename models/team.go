package models

// Team is the balance holder credited by payouts.
type Team struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Balance   float64  `json:"balance" db:"balance"`
	MemberIDs []string `json:"member_ids,omitempty" db:"-"`
}
