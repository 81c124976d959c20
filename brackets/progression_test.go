package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-bracket/models"
)

func scores(s1, s2 int) Result {
	return Result{Score1: &s1, Score2: &s2}
}

func winner(id string) Result {
	return Result{WinnerID: &id}
}

func apply(t *testing.T, b *models.Bracket, matchID string, res Result) *Outcome {
	t.Helper()
	out, err := ApplyResult(b, matchID, res, testNow)
	require.NoError(t, err)
	return out
}

func slot(m *models.Match, s models.Slot) string {
	if v := m.SlotValue(s); v != nil {
		return *v
	}
	return ""
}

func TestApplyResult_WinnerDetermination(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"higher score1", scores(3, 1), "P01"},
		{"higher score2", scores(1, 3), "P02"},
		{"tie goes to team1", scores(2, 2), "P01"},
		{"explicit winner", winner("P02"), "P02"},
		{"explicit winner beats scores", Result{Score1: intPtr(5), Score2: intPtr(0), WinnerID: strPtr("P02")}, "P02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := generate(t, models.FormatSingleElimination, participants(4))
			out := apply(t, b, "W-R1-M0", tt.res)
			assert.Equal(t, tt.want, *out.Match.WinnerID)
			assert.Equal(t, models.MatchStatusCompleted, out.Match.Status)
			assert.Equal(t, testNow, *out.Match.CompletedAt)
			assert.False(t, out.TournamentCompleted)
		})
	}
}

func TestApplyResult_SoleParticipantAlwaysWins(t *testing.T) {
	b := generate(t, models.FormatSingleElimination, participants(4))
	apply(t, b, "W-R1-M1", scores(1, 0)) // P03 into W-R2-M0 team2

	out := apply(t, b, "W-R2-M0", scores(9, 0))
	assert.Equal(t, "P03", *out.Match.WinnerID)
}

func TestApplyResult_Rejections(t *testing.T) {
	b := generate(t, models.FormatSingleElimination, participants(4))
	apply(t, b, "W-R1-M0", scores(1, 0))
	before := b.Clone()

	tests := []struct {
		name  string
		match string
		res   Result
		want  error
	}{
		{"unknown match", "W-R3-M0", scores(1, 0), ErrMatchNotFound},
		{"already completed", "W-R1-M0", scores(0, 1), ErrMatchAlreadyCompleted},
		{"missing result", "W-R1-M1", Result{}, ErrMatchRequiresScoresOrWinner},
		{"half a score", "W-R1-M1", Result{Score2: intPtr(3)}, ErrMatchRequiresScoresOrWinner},
		{"winner from elsewhere", "W-R1-M1", winner("P01"), ErrInvalidWinner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyResult(b, tt.match, tt.res, testNow)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, b, "rejected result must not touch the bracket")
		})
	}

	empty := generate(t, models.FormatDoubleElimination, participants(4))
	_, err := ApplyResult(empty, "L-R1-M0", scores(1, 0), testNow)
	assert.ErrorIs(t, err, ErrMatchHasNoParticipants)
}

func TestApplyResult_WinnerPropagationSlots(t *testing.T) {
	b := generate(t, models.FormatSingleElimination, participants(8))

	for i := 0; i < 4; i++ {
		apply(t, b, models.MatchID(models.SideWinners, 1, i), scores(0, 1))
	}
	r2 := b.Winners[1].Matches
	assert.Equal(t, "P02", slot(r2[0], models.Slot1))
	assert.Equal(t, "P04", slot(r2[0], models.Slot2))
	assert.Equal(t, "P06", slot(r2[1], models.Slot1))
	assert.Equal(t, "P08", slot(r2[1], models.Slot2))

	// Each winner sits in exactly one slot of round 2.
	for _, id := range []string{"P02", "P04", "P06", "P08"} {
		count := 0
		for _, m := range r2 {
			if m.HasParticipant(id) {
				count++
			}
		}
		assert.Equal(t, 1, count, id)
	}
}

func TestAdvanceWinner_FirstWriterWins(t *testing.T) {
	b := generate(t, models.FormatSingleElimination, participants(4))
	next := b.At(models.SideWinners, 2, 0)
	next.SetSlot(models.Slot1, "EARLIER")

	apply(t, b, "W-R1-M0", scores(1, 0))
	assert.Equal(t, "EARLIER", slot(next, models.Slot1))
	assert.Nil(t, next.Team2)
}

func TestApplyResult_DoubleEliminationFlow(t *testing.T) {
	b := generate(t, models.FormatDoubleElimination, participants(4))

	apply(t, b, "W-R1-M0", scores(2, 0)) // P02 drops
	apply(t, b, "W-R1-M1", scores(0, 2)) // P03 drops
	l1 := b.At(models.SideLosers, 1, 0)
	assert.Equal(t, "P02", slot(l1, models.Slot1))
	assert.Equal(t, "P03", slot(l1, models.Slot2))

	apply(t, b, "W-R2-M0", scores(2, 1)) // P01 beats P04
	gf := b.GrandFinal()
	assert.Equal(t, "P01", slot(gf, models.Slot1))
	assert.Equal(t, "P04", slot(b.At(models.SideLosers, 2, 0), models.Slot1))

	apply(t, b, "L-R1-M0", scores(2, 1)) // P02 advances in losers
	assert.Equal(t, "P02", slot(b.At(models.SideLosers, 2, 0), models.Slot2))

	apply(t, b, "L-R2-M0", scores(0, 2)) // P02 wins losers bracket
	assert.Equal(t, "P02", slot(gf, models.Slot2))

	out := apply(t, b, "GF-R1-M0", scores(1, 3))
	assert.True(t, out.TournamentCompleted)
	assert.Equal(t, "P02", *gf.WinnerID)
}

func TestApplyResult_DoubleEliminationEightTeams(t *testing.T) {
	type step struct {
		match   string
		dropped []string
	}
	tests := []struct {
		name     string
		steps    []step
		slots    map[string][2]string
		champion string
	}{
		{
			name: "winners bracket first",
			steps: []step{
				{"W-R1-M0", nil}, {"W-R1-M1", nil}, {"W-R1-M2", nil}, {"W-R1-M3", nil},
				{"W-R2-M0", nil}, {"W-R2-M1", nil},
				{"W-R3-M0", nil},
				{"L-R1-M0", nil},
				{"L-R1-M1", []string{"P06"}},
				{"L-R2-M0", []string{"P03"}},
				{"L-R3-M0", nil},
				{"GF-R1-M0", nil},
			},
			slots: map[string][2]string{
				"L-R1-M0":  {"P02", "P04"},
				"L-R1-M1":  {"P06", "P08"},
				"L-R2-M0":  {"P03", "P07"},
				"L-R3-M0":  {"P05", "P02"},
				"GF-R1-M0": {"P01", "P05"},
			},
			champion: "P01",
		},
		{
			name: "losers bracket first",
			steps: []step{
				{"W-R1-M0", nil}, {"W-R1-M1", nil}, {"W-R1-M2", nil}, {"W-R1-M3", nil},
				{"L-R1-M0", nil}, {"L-R1-M1", nil},
				{"L-R2-M0", nil},
				{"W-R2-M0", nil},
				{"W-R2-M1", []string{"P07"}},
				{"W-R3-M0", []string{"P05"}},
				{"L-R3-M0", nil},
				{"GF-R1-M0", nil},
			},
			slots: map[string][2]string{
				"L-R1-M0":  {"P02", "P04"},
				"L-R1-M1":  {"P06", "P08"},
				"L-R2-M0":  {"P02", "P06"},
				"L-R3-M0":  {"P02", "P03"},
				"GF-R1-M0": {"P01", "P02"},
			},
			champion: "P01",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := generate(t, models.FormatDoubleElimination, participants(8))

			var out *Outcome
			for _, st := range tt.steps {
				out = apply(t, b, st.match, scores(1, 0))
				assert.Equal(t, st.dropped, out.Dropped, st.match)
			}
			for id, want := range tt.slots {
				m, ok := b.Match(id)
				require.True(t, ok, id)
				assert.Equal(t, want[0], slot(m, models.Slot1), id)
				assert.Equal(t, want[1], slot(m, models.Slot2), id)
			}
			assert.True(t, out.TournamentCompleted)
			assert.Equal(t, tt.champion, *b.GrandFinal().WinnerID)
		})
	}
}

func TestApplyResult_LosersPlacementSkipsCompletedMatches(t *testing.T) {
	b := generate(t, models.FormatDoubleElimination, participants(8))

	apply(t, b, "W-R1-M0", scores(1, 0)) // P02 alone in L-R1-M0
	out := apply(t, b, "L-R1-M0", scores(1, 0))
	assert.Equal(t, "P02", *out.Match.WinnerID)
	assert.Equal(t, "P02", slot(b.At(models.SideLosers, 2, 0), models.Slot1))

	apply(t, b, "W-R1-M1", scores(1, 0)) // P04 must not land in the decided match
	assert.Nil(t, b.At(models.SideLosers, 1, 0).Team2)
	assert.Equal(t, "P04", slot(b.At(models.SideLosers, 1, 1), models.Slot1))
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }
