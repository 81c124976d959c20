package brackets

import (
	"context"

	"github.com/Dosada05/tournament-bracket/models"
)

type DoubleEliminationGenerator struct {
	winners *SingleEliminationGenerator
}

func NewDoubleEliminationGenerator(shuffle Shuffler) *DoubleEliminationGenerator {
	return &DoubleEliminationGenerator{winners: NewSingleEliminationGenerator(shuffle)}
}

func (g *DoubleEliminationGenerator) GetName() string {
	return "DoubleElimination"
}

// GenerateBracket builds the winners rounds exactly like single elimination,
// then a losers sequence with the same round count R where losers round r
// holds max(1, 2^(R-r-1)) empty matches, and a one-match grand final.
// Irregular fields are rejected rather than padded.
func (g *DoubleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error) {
	if err := validateParticipants(params.Participants); err != nil {
		return nil, err
	}
	n := len(params.Participants)
	if n < 4 || n&(n-1) != 0 {
		return nil, ErrInvalidFormatConfiguration
	}

	winners := g.winners.buildWinners(params)
	numRounds := len(winners)

	losers := make([]*models.Round, numRounds)
	for r := 1; r <= numRounds; r++ {
		count := 1
		if exp := numRounds - r - 1; exp > 0 {
			count = 1 << exp
		}
		round := &models.Round{Number: r, Matches: make([]*models.Match, count)}
		for i := range round.Matches {
			round.Matches[i] = newMatch(models.SideLosers, r, i)
		}
		losers[r-1] = round
	}

	grand := []*models.Round{{
		Number:  1,
		Matches: []*models.Match{newMatch(models.SideGrand, 1, 0)},
	}}

	return &models.Bracket{
		TournamentID: params.TournamentID,
		Kind:         models.FormatDoubleElimination,
		Winners:      winners,
		Losers:       losers,
		Grand:        grand,
		CreatedAt:    params.Now,
		UpdatedAt:    params.Now,
	}, nil
}
