package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/notifications"
	"github.com/Dosada05/tournament-bracket/repositories"
)

func TestEndTournament_ScenarioA(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.teams.Put(models.Team{ID: "T1", Name: "Team One", MemberIDs: []string{"u1", "u2"}})
	f.teams.Put(models.Team{ID: "T3", Name: "Team Three", MemberIDs: []string{"u3"}})
	startSingle(t, f, "t-1", "T1", "T2", "T3", "T4")

	f.report(t, "t-1", "W-R1-M0", 5, 3)
	f.report(t, "t-1", "W-R1-M1", 6, 4)
	f.report(t, "t-1", "W-R2-M0", 7, 2)

	payout, err := f.payoutSvc.EndTournament(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, payout.Total)
	assert.Equal(t, []models.Award{
		{Place: 1, TeamID: "T1", Amount: 600},
		{Place: 2, TeamID: "T3", Amount: 250},
		{Place: 3, TeamID: "T2", Amount: 75},
		{Place: 3, TeamID: "T4", Amount: 75},
	}, payout.Awards)
	assert.Equal(t, testNow, payout.Timestamp)

	tournament, err := f.bracketSvc.GetTournament(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, tournament.Status)
	assert.Equal(t, payout, tournament.Payout)

	assert.Equal(t, 600.0, f.balance(t, "T1"))
	assert.Equal(t, 250.0, f.balance(t, "T3"))
	assert.Equal(t, 75.0, f.balance(t, "T2"))

	notes := f.notifier.all()
	require.Len(t, notes, 3)
	recipients := []string{notes[0].RecipientID, notes[1].RecipientID, notes[2].RecipientID}
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, recipients)
	assert.Equal(t, "600.00", notes[0].Metadata["amount"])
	assert.Equal(t, "t-1", notes[0].Metadata["tournament_id"])

	require.Len(t, f.archiver.records, 1)
	assert.Equal(t, "t-1", f.archiver.records[0].Tournament.ID)
}

func TestEndTournament_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.teams.Put(models.Team{ID: "T1", MemberIDs: []string{"u1"}})
	startSingle(t, f, "t-1", "T1", "T2")
	f.report(t, "t-1", "W-R1-M0", 3, 0)

	first, err := f.payoutSvc.EndTournament(ctx, "t-1")
	require.NoError(t, err)
	second, err := f.payoutSvc.EndTournament(ctx, "t-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 600.0, f.balance(t, "T1"))
	assert.Equal(t, 250.0, f.balance(t, "T2"))
	assert.Len(t, f.notifier.all(), 1)
	assert.Len(t, f.archiver.records, 1)
	assert.Equal(t, []models.Award{
		{Place: 1, TeamID: "T1", Amount: 600},
		{Place: 2, TeamID: "T2", Amount: 250},
	}, first.Awards)
}

func TestEndTournament_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.payoutSvc.EndTournament(ctx, "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	f.createTournament(t, "t-empty", models.FormatSingleElimination, models.PrizePool{})
	_, err = f.payoutSvc.EndTournament(ctx, "t-empty")
	assert.ErrorIs(t, err, ErrBracketNotGenerated)

	startSingle(t, f, "t-1", "T1", "T2", "T3", "T4")
	f.report(t, "t-1", "W-R1-M0", 5, 3)
	_, err = f.payoutSvc.EndTournament(ctx, "t-1")
	assert.ErrorIs(t, err, ErrFinalNotCompleted)
	assert.Equal(t, 0.0, f.balance(t, "T1"))
}

func TestEndTournament_SideEffectFailuresDoNotFailPayout(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("queue down")
	f.archiver.err = errors.New("bucket down")
	f.teams.Put(models.Team{ID: "T1", MemberIDs: []string{"u1"}})
	startSingle(t, f, "t-1", "T1", "T2")
	f.report(t, "t-1", "W-R1-M0", 1, 0)

	payout, err := f.payoutSvc.EndTournament(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, 600.0, payout.Awards[0].Amount)
	assert.Equal(t, 600.0, f.balance(t, "T1"))
}

// trackingTransactor runs the unit of work directly and records whether one
// is in progress.
type trackingTransactor struct {
	active bool
}

func (tx *trackingTransactor) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	tx.active = true
	defer func() { tx.active = false }()
	return fn(nil)
}

type txRecordingNotifier struct {
	recordingNotifier
	tx      *trackingTransactor
	txErr   error
	inTx    []bool
	txNotes []models.Notification
}

func (n *txRecordingNotifier) EnqueueTx(_ context.Context, _ notifications.Executor, batch []models.Notification) error {
	if n.txErr != nil {
		return n.txErr
	}
	n.inTx = append(n.inTx, n.tx.active)
	n.txNotes = append(n.txNotes, batch...)
	return nil
}

func TestEndTournament_TxNotifierJoinsPayoutTransaction(t *testing.T) {
	tests := []struct {
		name        string
		txErr       error
		wantErr     bool
		wantBalance float64
		wantTxNotes int
	}{
		{name: "batch committed with payout", wantBalance: 600, wantTxNotes: 2},
		{name: "batch failure rolls payout back", txErr: errors.New("outbox down"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			tx := &trackingTransactor{}
			notifier := &txRecordingNotifier{tx: tx, txErr: tt.txErr}
			f.deps.Tx = tx
			f.deps.Notifier = notifier
			f.payoutSvc = NewPayoutService(f.deps)

			f.teams.Put(models.Team{ID: "T1", MemberIDs: []string{"u1", "u2"}})
			startSingle(t, f, "t-1", "T1", "T2")
			f.report(t, "t-1", "W-R1-M0", 1, 0)

			_, err := f.payoutSvc.EndTournament(ctx, "t-1")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.txErr)
				tournament, gErr := f.bracketSvc.GetTournament(ctx, "t-1")
				require.NoError(t, gErr)
				assert.Nil(t, tournament.Payout)
			} else {
				require.NoError(t, err)
				assert.Equal(t, []bool{true}, notifier.inTx)
			}
			assert.Len(t, notifier.txNotes, tt.wantTxNotes)
			assert.Empty(t, notifier.all(), "no second enqueue after commit")
			assert.Equal(t, tt.wantBalance, f.balance(t, "T1"))
		})
	}
}

func TestMatchWrites_RejectedAfterSettlement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	startSingle(t, f, "t-1", "T1", "T2")
	f.report(t, "t-1", "W-R1-M0", 1, 0)
	_, err := f.payoutSvc.EndTournament(ctx, "t-1")
	require.NoError(t, err)

	_, err = f.matchSvc.Reset(ctx, "t-1", "W-R1-M0")
	assert.ErrorIs(t, err, ErrTournamentSettled)
	_, err = f.matchSvc.EditScores(ctx, "t-1", "W-R1-M0", 2, 0)
	assert.ErrorIs(t, err, ErrTournamentSettled)
}

func TestDistributePrizePool_ScenarioB(t *testing.T) {
	p := &brackets.Placements{First: "WX", Second: "L1", Third: []string{"L2"}}
	assert.Equal(t, []models.Award{
		{Place: 1, TeamID: "WX", Amount: 300},
		{Place: 2, TeamID: "L1", Amount: 125},
		{Place: 3, TeamID: "L2", Amount: 75},
	}, DistributePrizePool(ParsePrizePool(models.NewPrizePoolAmount(500)), p))
}

func TestDistributePrizePool_SplitThirdIsRounded(t *testing.T) {
	p := &brackets.Placements{First: "A", Second: "B", Third: []string{"C", "D"}}
	awards := DistributePrizePool(100.01, p)

	require.Len(t, awards, 4)
	// 15.0015 / 2 = 7.50075, rounded per share; the remainder is dropped.
	assert.Equal(t, 7.5, awards[2].Amount)
	assert.Equal(t, 7.5, awards[3].Amount)
}

func TestParsePrizePool(t *testing.T) {
	tests := []struct {
		name string
		in   models.PrizePool
		want float64
	}{
		{"number", models.NewPrizePoolAmount(250.5), 250.5},
		{"dollar string", models.NewPrizePoolText("$1000"), 1000},
		{"thousands separator", models.NewPrizePoolText("$1,000.50"), 1000.5},
		{"currency suffix", models.NewPrizePoolText("750 USD"), 750},
		{"no digits", models.NewPrizePoolText("glory"), 0},
		{"ambiguous separators", models.NewPrizePoolText("1.000.000"), 0},
		{"empty", models.PrizePool{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrizePool(tt.in))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, brackets.KindNotFound, KindOf(ErrTournamentNotFound))
	assert.Equal(t, brackets.KindConflict, KindOf(ErrBracketNotGenerated))
	assert.Equal(t, brackets.KindConflict, KindOf(ErrFinalNotCompleted))
	assert.Equal(t, brackets.KindValidation, KindOf(brackets.ErrSlotMismatch))
	assert.Equal(t, brackets.KindUnknown, KindOf(errors.New("boom")))
}
