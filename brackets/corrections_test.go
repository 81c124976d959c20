package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-bracket/models"
)

func TestEditScores(t *testing.T) {
	b := generate(t, models.FormatSingleElimination, participants(4))
	apply(t, b, "W-R1-M0", scores(3, 1))

	m, err := EditScores(b, "W-R1-M0", 4, 0, testNow)
	require.NoError(t, err)
	assert.Equal(t, 4, *m.Score1)
	assert.Equal(t, 0, *m.Score2)
	assert.Equal(t, "P01", *m.WinnerID)

	before := b.Clone()
	_, err = EditScores(b, "W-R1-M0", 0, 4, testNow)
	assert.ErrorIs(t, err, ErrWinnerChangeNotAllowed)
	assert.Equal(t, before, b)

	_, err = EditScores(b, "W-R1-M1", 1, 0, testNow)
	assert.ErrorIs(t, err, ErrMatchNotCompleted)
}

func TestOverrideWinner(t *testing.T) {
	t.Run("non-final round swaps downstream slot", func(t *testing.T) {
		b := generate(t, models.FormatSingleElimination, participants(4))
		apply(t, b, "W-R1-M1", scores(3, 1))

		m, err := OverrideWinner(b, "W-R1-M1", "P04", nil, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, "P04", *m.WinnerID)
		assert.Equal(t, 3, *m.Score1, "scores stay when none are given")
		assert.Equal(t, "P04", slot(b.At(models.SideWinners, 2, 0), models.Slot2))
	})

	t.Run("final round only swaps", func(t *testing.T) {
		b := generate(t, models.FormatSingleElimination, participants(2))
		apply(t, b, "W-R1-M0", scores(3, 1))

		m, err := OverrideWinner(b, "W-R1-M0", "P02", intPtr(1), intPtr(3), testNow)
		require.NoError(t, err)
		assert.Equal(t, "P02", *m.WinnerID)
		assert.Equal(t, 3, *m.Score2)
	})

	t.Run("same winner edits scores", func(t *testing.T) {
		b := generate(t, models.FormatSingleElimination, participants(2))
		apply(t, b, "W-R1-M0", scores(3, 1))

		m, err := OverrideWinner(b, "W-R1-M0", "P01", intPtr(5), intPtr(0), testNow)
		require.NoError(t, err)
		assert.Equal(t, 5, *m.Score1)

		_, err = OverrideWinner(b, "W-R1-M0", "P01", intPtr(0), intPtr(5), testNow)
		assert.ErrorIs(t, err, ErrWinnerChangeNotAllowed)
	})

	t.Run("partial score pair", func(t *testing.T) {
		tests := []struct {
			name           string
			winner         string
			score1, score2 *int
		}{
			{"same winner score1 only", "P01", intPtr(5), nil},
			{"same winner score2 only", "P01", nil, intPtr(0)},
			{"new winner score1 only", "P02", intPtr(1), nil},
			{"new winner score2 only", "P02", nil, intPtr(4)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				b := generate(t, models.FormatSingleElimination, participants(4))
				apply(t, b, "W-R1-M0", scores(3, 1))
				before := b.Clone()

				_, err := OverrideWinner(b, "W-R1-M0", tt.winner, tt.score1, tt.score2, testNow)
				assert.ErrorIs(t, err, ErrMatchRequiresScoresOrWinner)
				assert.Equal(t, before, b)
			})
		}
	})

	t.Run("downstream decided", func(t *testing.T) {
		b := generate(t, models.FormatSingleElimination, participants(4))
		apply(t, b, "W-R1-M0", scores(3, 1))
		apply(t, b, "W-R1-M1", scores(3, 1))
		apply(t, b, "W-R2-M0", scores(3, 1))

		_, err := OverrideWinner(b, "W-R1-M0", "P02", nil, nil, testNow)
		assert.ErrorIs(t, err, ErrDownstreamAlreadyDecided)
	})

	t.Run("slot mismatch", func(t *testing.T) {
		b := generate(t, models.FormatSingleElimination, participants(4))
		apply(t, b, "W-R1-M0", scores(3, 1))
		b.At(models.SideWinners, 2, 0).SetSlot(models.Slot1, "SOMEONE")

		_, err := OverrideWinner(b, "W-R1-M0", "P02", nil, nil, testNow)
		assert.ErrorIs(t, err, ErrSlotMismatch)
	})

	t.Run("rejections", func(t *testing.T) {
		b := generate(t, models.FormatSingleElimination, participants(4))
		apply(t, b, "W-R1-M0", scores(3, 1))

		_, err := OverrideWinner(b, "W-R1-M1", "P03", nil, nil, testNow)
		assert.ErrorIs(t, err, ErrMatchNotCompleted)
		_, err = OverrideWinner(b, "W-R1-M0", "P03", nil, nil, testNow)
		assert.ErrorIs(t, err, ErrInvalidWinner)

		d := generate(t, models.FormatDoubleElimination, participants(4))
		apply(t, d, "W-R1-M0", scores(3, 1))
		_, err = OverrideWinner(d, "W-R1-M0", "P02", nil, nil, testNow)
		assert.ErrorIs(t, err, ErrOverrideNotSupported)
	})
}

func TestResetMatch_ScenarioD(t *testing.T) {
	b := generate(t, models.FormatSingleElimination, participants(4))
	apply(t, b, "W-R1-M0", scores(5, 3))
	apply(t, b, "W-R1-M1", scores(6, 4))
	apply(t, b, "W-R2-M0", scores(7, 2))

	before := b.Clone()
	_, err := ResetMatch(b, "W-R1-M0", testNow)
	assert.ErrorIs(t, err, ErrWinnerAlreadyPropagated)
	assert.Equal(t, before, b)

	m, err := ResetMatch(b, "W-R2-M0", testNow)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusPending, m.Status)
	assert.Nil(t, m.Score1)
	assert.Nil(t, m.Score2)
	assert.Nil(t, m.WinnerID)
	assert.Nil(t, m.CompletedAt)
	assert.Equal(t, "P01", slot(m, models.Slot1), "participants stay in place")

	_, err = ResetMatch(b, "W-R2-M0", testNow)
	assert.ErrorIs(t, err, ErrMatchNotCompleted)
}

func TestResetMatch_DoubleRetractsLoser(t *testing.T) {
	b := generate(t, models.FormatDoubleElimination, participants(4))
	apply(t, b, "W-R1-M0", scores(2, 0))
	l1 := b.At(models.SideLosers, 1, 0)
	require.Equal(t, "P02", slot(l1, models.Slot1))

	// The winner already sits in W-R2-M0, so free that slot first.
	b.At(models.SideWinners, 2, 0).Team1 = nil

	_, err := ResetMatch(b, "W-R1-M0", testNow)
	require.NoError(t, err)
	assert.Nil(t, l1.Team1)

	apply(t, b, "W-R1-M0", scores(2, 0))
	apply(t, b, "W-R1-M1", scores(2, 0))
	apply(t, b, "L-R1-M0", scores(2, 0))
	b.At(models.SideWinners, 2, 0).Team1 = nil

	_, err = ResetMatch(b, "W-R1-M0", testNow)
	assert.ErrorIs(t, err, ErrDownstreamAlreadyDecided)
}
