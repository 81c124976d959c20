package services

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
)

var (
	firstShare  = decimal.NewFromFloat(0.60)
	secondShare = decimal.NewFromFloat(0.25)
	thirdShare  = decimal.NewFromFloat(0.15)
)

// ParsePrizePool reads a prize pool leniently. Free text keeps only digits
// and dots ("$1,000" is 1000); anything that still does not parse is 0.
func ParsePrizePool(p models.PrizePool) float64 {
	if p.Amount != nil {
		return *p.Amount
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, p.Text)

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// DistributePrizePool splits total 60/25/15 over the placements. A shared
// third place splits its 15% evenly, each share rounded to cents; the
// rounding remainder is not redistributed.
func DistributePrizePool(total float64, p *brackets.Placements) []models.Award {
	pool := decimal.NewFromFloat(total)

	awards := []models.Award{
		{Place: 1, TeamID: p.First, Amount: pool.Mul(firstShare).InexactFloat64()},
		{Place: 2, TeamID: p.Second, Amount: pool.Mul(secondShare).InexactFloat64()},
	}

	third := pool.Mul(thirdShare)
	switch len(p.Third) {
	case 0:
	case 1:
		awards = append(awards, models.Award{Place: 3, TeamID: p.Third[0], Amount: third.InexactFloat64()})
	default:
		share := third.Div(decimal.NewFromInt(int64(len(p.Third)))).Round(2).InexactFloat64()
		for _, teamID := range p.Third {
			awards = append(awards, models.Award{Place: 3, TeamID: teamID, Amount: share})
		}
	}
	return awards
}
