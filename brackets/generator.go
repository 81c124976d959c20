package brackets

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/Dosada05/tournament-bracket/models"
)

type GenerateBracketParams struct {
	TournamentID string
	Participants []string
	Now          time.Time
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error)

	GetName() string
}

// Shuffler reorders participant ids in place before they are paired.
type Shuffler func(ids []string)

// RandomShuffle is an unseeded uniform draw.
func RandomShuffle(ids []string) {
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
}

// NoShuffle keeps the given order; useful for seeded or replayed draws.
func NoShuffle([]string) {}

// NewGenerator returns the generator for format. A nil shuffle defaults to
// RandomShuffle.
func NewGenerator(format models.BracketFormat, shuffle Shuffler) (BracketGenerator, error) {
	if shuffle == nil {
		shuffle = RandomShuffle
	}
	switch format {
	case models.FormatSingleElimination:
		return NewSingleEliminationGenerator(shuffle), nil
	case models.FormatDoubleElimination:
		return NewDoubleEliminationGenerator(shuffle), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

func validateParticipants(ids []string) error {
	if len(ids) < 2 {
		return ErrInsufficientParticipants
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return ErrDuplicateParticipant
		}
		seen[id] = struct{}{}
	}
	return nil
}

// nextPowerOfTwo returns the smallest power of two >= n, and its exponent.
func nextPowerOfTwo(n int) (size, rounds int) {
	size = 1
	for size < n {
		size <<= 1
		rounds++
	}
	return size, rounds
}

func newMatch(side models.Side, round, index int) *models.Match {
	return &models.Match{
		ID:     models.MatchID(side, round, index),
		Side:   side,
		Round:  round,
		Index:  index,
		Status: models.MatchStatusPending,
	}
}
