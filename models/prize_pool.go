package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PrizePool holds the prize pool exactly as it was entered: either a number
// or a free-text currency string such as "$1,000".
type PrizePool struct {
	Amount *float64
	Text   string
}

func NewPrizePoolAmount(v float64) PrizePool {
	return PrizePool{Amount: &v}
}

func NewPrizePoolText(s string) PrizePool {
	return PrizePool{Text: s}
}

func (p PrizePool) IsZero() bool {
	return p.Amount == nil && p.Text == ""
}

func (p PrizePool) String() string {
	if p.Amount != nil {
		return strconv.FormatFloat(*p.Amount, 'f', -1, 64)
	}
	return p.Text
}

func (p PrizePool) MarshalJSON() ([]byte, error) {
	if p.Amount != nil {
		return json.Marshal(*p.Amount)
	}
	if p.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(p.Text)
}

func (p *PrizePool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*p = PrizePool{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &p.Text)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("prize pool must be a number or a string: %w", err)
	}
	p.Amount = &v
	return nil
}
