package brackets

import (
	"context"

	"github.com/Dosada05/tournament-bracket/models"
)

type node struct {
	participantID    *string
	isByePlaceholder bool
}

type SingleEliminationGenerator struct {
	shuffle Shuffler
}

func NewSingleEliminationGenerator(shuffle Shuffler) *SingleEliminationGenerator {
	if shuffle == nil {
		shuffle = RandomShuffle
	}
	return &SingleEliminationGenerator{shuffle: shuffle}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error) {
	if err := validateParticipants(params.Participants); err != nil {
		return nil, err
	}
	b := &models.Bracket{
		TournamentID: params.TournamentID,
		Kind:         models.FormatSingleElimination,
		Losers:       []*models.Round{},
		Grand:        []*models.Round{},
		CreatedAt:    params.Now,
		UpdatedAt:    params.Now,
	}
	b.Winners = g.buildWinners(params)
	return b, nil
}

// buildWinners shuffles the field, pads it with byes to the next power of
// two and lays out every winners round. Byes are spread one per pairing so
// that no round-1 match is bye against bye; those pairings complete at once
// and their winner is advanced into round 2.
func (g *SingleEliminationGenerator) buildWinners(params GenerateBracketParams) []*models.Round {
	shuffled := make([]string, len(params.Participants))
	copy(shuffled, params.Participants)
	g.shuffle(shuffled)

	n := len(shuffled)
	sizeOfFullBracket, numRounds := nextPowerOfTwo(n)
	numByes := sizeOfFullBracket - n

	firstRoundNodes := make([]*node, 0, sizeOfFullBracket)
	participantIdx := 0
	for pair := 0; pair < sizeOfFullBracket/2; pair++ {
		pid := shuffled[participantIdx]
		participantIdx++
		firstRoundNodes = append(firstRoundNodes, &node{participantID: &pid})
		if pair < numByes {
			firstRoundNodes = append(firstRoundNodes, &node{isByePlaceholder: true})
			continue
		}
		opponent := shuffled[participantIdx]
		participantIdx++
		firstRoundNodes = append(firstRoundNodes, &node{participantID: &opponent})
	}

	rounds := make([]*models.Round, numRounds)
	matchesInRound := sizeOfFullBracket / 2
	for r := 1; r <= numRounds; r++ {
		round := &models.Round{Number: r, Matches: make([]*models.Match, matchesInRound)}
		for i := range round.Matches {
			round.Matches[i] = newMatch(models.SideWinners, r, i)
		}
		rounds[r-1] = round
		matchesInRound /= 2
	}

	bracket := &models.Bracket{Kind: models.FormatSingleElimination, Winners: rounds}
	for i, m := range rounds[0].Matches {
		node1, node2 := firstRoundNodes[2*i], firstRoundNodes[2*i+1]
		m.Team1 = node1.participantID
		m.Team2 = node2.participantID
		if node2.isByePlaceholder {
			m.Status = models.MatchStatusCompleted
			m.WinnerID = node1.participantID
			completedAt := params.Now
			m.CompletedAt = &completedAt
			advanceWinner(bracket, m)
		}
	}
	return rounds
}
