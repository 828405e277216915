package portfolio

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/swing/journal"
)

var tradingDay = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

type fakeQuotes struct {
	mid     float64
	midErr  error
	spot    float64
	spotErr error
}

func (f *fakeQuotes) OptionMid(string, time.Time, float64, string) (float64, error) {
	return f.mid, f.midErr
}

func (f *fakeQuotes) SpotPrice(string) (float64, error) {
	return f.spot, f.spotErr
}

type fakeJournal struct {
	records []journal.TradeRecord
	err     error
}

func (f *fakeJournal) RecordTrade(r journal.TradeRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, r)
	return nil
}

func (f *fakeJournal) Close() error { return nil }

func callRequest() OpenRequest {
	return OpenRequest{
		Ticker:      "NVDA",
		Contract:    "NVDA 04/17 $180 Call",
		OptionType:  "call",
		Strike:      180,
		Expiration:  tradingDay.AddDate(0, 0, 30),
		EntryPrice:  4.2,
		Contracts:   1,
		TargetPrice: 8.5,
		StopPrice:   2.1,
		StockTarget: 195,
	}
}

func newTestLedger(opts ...Option) *Ledger {
	opts = append(opts, WithClock(func() time.Time { return tradingDay }))
	return NewLedger(&MemStore{}, opts...)
}

func TestOpenValidation(t *testing.T) {
	l := newTestLedger()

	req := callRequest()
	req.EntryPrice = 0
	_, err := l.Open(req)
	assert.Error(t, err)

	req = callRequest()
	req.Contracts = 0
	_, err = l.Open(req)
	assert.Error(t, err)

	req = callRequest()
	req.Ticker = ""
	_, err = l.Open(req)
	assert.Error(t, err)
}

func TestOpenPosition(t *testing.T) {
	l := newTestLedger()

	pos, err := l.Open(callRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, pos.ID)
	assert.Equal(t, StatusOpen, pos.Status)
	assert.InDelta(t, 420.0, pos.CostBasis, 1e-9) // 4.20 * 1 * 100
	assert.InDelta(t, 4.2, pos.CurrentPrice, 1e-9)
	assert.InDelta(t, 420.0, pos.CurrentValue, 1e-9)
	assert.Equal(t, tradingDay, pos.EntryDate)

	open, err := l.Positions()
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, pos.ID, open[0].ID)
}

func TestOpenAssignsUniqueIDs(t *testing.T) {
	l := newTestLedger()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		pos, err := l.Open(callRequest())
		require.NoError(t, err)
		assert.False(t, seen[pos.ID], "duplicate id %s", pos.ID)
		seen[pos.ID] = true
	}
}

func TestCloseWin(t *testing.T) {
	l := newTestLedger()
	pos, err := l.Open(callRequest())
	require.NoError(t, err)

	closed, err := l.Close(pos.ID, 8.4, ExitTarget)
	require.NoError(t, err)

	assert.Equal(t, pos.ID, closed.ID)
	assert.InDelta(t, 420.0, closed.PnLDollars, 1e-9) // 840 - 420
	assert.InDelta(t, 100.0, closed.PnLPercent, 1e-9)
	assert.Equal(t, ResultWin, closed.Result)
	assert.Equal(t, ExitTarget, closed.ExitReason)
	assert.Equal(t, tradingDay, closed.ExitDate)

	open, err := l.Positions()
	require.NoError(t, err)
	assert.Empty(t, open)

	history, err := l.History()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, pos.ID, history[0].ID)
}

func TestCloseLossRoundTrip(t *testing.T) {
	l := newTestLedger()
	pos, err := l.Open(callRequest())
	require.NoError(t, err)

	closed, err := l.Close(pos.ID, 2.1, ExitStop)
	require.NoError(t, err)

	assert.InDelta(t, -210.0, closed.PnLDollars, 1e-9)
	assert.InDelta(t, -50.0, closed.PnLPercent, 1e-9)
	assert.Equal(t, ResultLoss, closed.Result)

	// The id moved to history exactly once and is gone from the open set.
	open, _ := l.Positions()
	assert.Empty(t, open)
	history, _ := l.History()
	require.Len(t, history, 1)

	// Closing again must fail cleanly.
	_, err = l.Close(pos.ID, 2.1, ExitStop)
	assert.ErrorIs(t, err, ErrNotFound)

	history, _ = l.History()
	assert.Len(t, history, 1)
}

func TestCloseBreakeven(t *testing.T) {
	l := newTestLedger()
	pos, err := l.Open(callRequest())
	require.NoError(t, err)

	closed, err := l.Close(pos.ID, 4.2, ExitManual)
	require.NoError(t, err)
	assert.Equal(t, ResultBreakeven, closed.Result)
	assert.InDelta(t, 0.0, closed.PnLDollars, 1e-9)
}

func TestCloseUnknownID(t *testing.T) {
	l := newTestLedger()
	_, err := l.Close("nope", 1.0, ExitManual)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCloseMirrorsToJournal(t *testing.T) {
	j := &fakeJournal{}
	l := newTestLedger(WithJournal(j))

	pos, err := l.Open(callRequest())
	require.NoError(t, err)
	closed, err := l.Close(pos.ID, 8.4, ExitTarget)
	require.NoError(t, err)

	require.Len(t, j.records, 1)
	rec := j.records[0]
	assert.Equal(t, closed.ID, rec.TradeID)
	assert.Equal(t, "NVDA", rec.Ticker)
	assert.InDelta(t, closed.PnLDollars, rec.PnLDollars, 1e-9)
	assert.Equal(t, ResultWin, rec.Result)
}

func TestCloseJournalFailureKeepsClose(t *testing.T) {
	j := &fakeJournal{err: errors.New("disk full")}
	l := newTestLedger(WithJournal(j))

	pos, err := l.Open(callRequest())
	require.NoError(t, err)

	closed, err := l.Close(pos.ID, 8.4, ExitTarget)
	// The close itself sticks; the journal failure is surfaced alongside.
	require.Error(t, err)
	require.NotNil(t, closed)
	assert.Contains(t, err.Error(), "journal write failed")

	open, _ := l.Positions()
	assert.Empty(t, open)
	history, _ := l.History()
	assert.Len(t, history, 1)
}

func TestUpdateRevalues(t *testing.T) {
	q := &fakeQuotes{mid: 5.0}
	l := newTestLedger(WithQuotes(q))
	_, err := l.Open(callRequest())
	require.NoError(t, err)

	alerts, err := l.Update()
	require.NoError(t, err)
	assert.Empty(t, alerts) // 5.00 sits between stop and target

	open, _ := l.Positions()
	require.Len(t, open, 1)
	assert.InDelta(t, 5.0, open[0].CurrentPrice, 1e-9)
	assert.InDelta(t, 500.0, open[0].CurrentValue, 1e-9)
	assert.InDelta(t, 80.0, open[0].PnLDollars, 1e-9)
	assert.InDelta(t, 19.05, open[0].PnLPercent, 1e-9)
}

func TestUpdateIdempotent(t *testing.T) {
	q := &fakeQuotes{mid: 5.0}
	l := newTestLedger(WithQuotes(q))
	_, err := l.Open(callRequest())
	require.NoError(t, err)

	_, err = l.Update()
	require.NoError(t, err)
	first, _ := l.Positions()

	_, err = l.Update()
	require.NoError(t, err)
	second, _ := l.Positions()

	assert.Equal(t, first, second)
}

func TestUpdateTargetAlert(t *testing.T) {
	l := newTestLedger(WithQuotes(&fakeQuotes{mid: 9.0}))
	_, err := l.Open(callRequest())
	require.NoError(t, err)

	alerts, err := l.Update()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertTargetHit, alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "TARGET HIT")
}

func TestUpdateStopAndExpiryAlerts(t *testing.T) {
	l := newTestLedger(WithQuotes(&fakeQuotes{mid: 2.0}))
	req := callRequest()
	req.Expiration = tradingDay.AddDate(0, 0, 3)
	_, err := l.Open(req)
	require.NoError(t, err)

	// Price and expiry conditions fire independently.
	alerts, err := l.Update()
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, AlertStopHit, alerts[0].Type)
	assert.Equal(t, AlertExpiringSoon, alerts[1].Type)
}

func TestUpdateExpiryAlertOnly(t *testing.T) {
	l := newTestLedger(WithQuotes(&fakeQuotes{mid: 5.0}))
	req := callRequest()
	req.Expiration = tradingDay.AddDate(0, 0, 4)
	_, err := l.Open(req)
	require.NoError(t, err)

	alerts, err := l.Update()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertExpiringSoon, alerts[0].Type)
}

func TestUpdateIntrinsicFallback(t *testing.T) {
	// Option quote dead, spot alive: value at a haircut intrinsic.
	q := &fakeQuotes{midErr: errors.New("no quote"), spot: 192}
	l := newTestLedger(WithQuotes(q))
	_, err := l.Open(callRequest()) // strike 180 call
	require.NoError(t, err)

	_, err = l.Update()
	require.NoError(t, err)

	open, _ := l.Positions()
	require.Len(t, open, 1)
	assert.InDelta(t, 10.8, open[0].CurrentPrice, 1e-9) // (192-180) * 0.9
}

func TestUpdateIntrinsicFloor(t *testing.T) {
	// Deep OTM with no option quote: the estimate floors at 10% of the
	// entry price instead of collapsing to zero.
	q := &fakeQuotes{midErr: errors.New("no quote"), spot: 150}
	l := newTestLedger(WithQuotes(q))
	_, err := l.Open(callRequest())
	require.NoError(t, err)

	_, err = l.Update()
	require.NoError(t, err)

	open, _ := l.Positions()
	require.Len(t, open, 1)
	assert.InDelta(t, 0.42, open[0].CurrentPrice, 1e-9)
}

func TestUpdateKeepsPriceWithoutQuotes(t *testing.T) {
	q := &fakeQuotes{midErr: errors.New("no quote"), spotErr: errors.New("no spot")}
	l := newTestLedger(WithQuotes(q))
	_, err := l.Open(callRequest())
	require.NoError(t, err)

	_, err = l.Update()
	require.NoError(t, err)

	open, _ := l.Positions()
	require.Len(t, open, 1)
	assert.InDelta(t, 4.2, open[0].CurrentPrice, 1e-9)
}

func TestSummarize(t *testing.T) {
	l := newTestLedger(WithQuotes(&fakeQuotes{mid: 5.0}))

	winner, err := l.Open(callRequest())
	require.NoError(t, err)
	loser, err := l.Open(callRequest())
	require.NoError(t, err)
	_, err = l.Open(callRequest())
	require.NoError(t, err)

	_, err = l.Close(winner.ID, 8.4, ExitTarget) // +420
	require.NoError(t, err)
	_, err = l.Close(loser.ID, 2.1, ExitStop) // -210
	require.NoError(t, err)
	_, err = l.Update()
	require.NoError(t, err)

	s, err := l.Summarize()
	require.NoError(t, err)

	assert.Equal(t, 1, s.OpenPositions)
	assert.InDelta(t, 420.0, s.TotalCost, 1e-9)
	assert.InDelta(t, 500.0, s.TotalValue, 1e-9)
	assert.InDelta(t, 80.0, s.UnrealizedPnL, 1e-9)

	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 50.0, s.WinRate, 1e-9)
	assert.InDelta(t, 210.0, s.RealizedPnL, 1e-9)
	assert.InDelta(t, 290.0, s.TotalPnL, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s, err := newTestLedger().Summarize()
	require.NoError(t, err)
	assert.Equal(t, Summary{}, s)
}
