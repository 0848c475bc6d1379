package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// TestReportWork_PaidCycle tests one clean report: worker paid, escrow
// debited, work nonce advanced
func TestReportWork_PaidCycle(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)
	w, ctx := m.assignedWorker(t, ctx, subID, 85)

	escrowBefore, err := m.Keeper.GetEscrowAccount(ctx, m.subscriber)
	require.NoError(t, err)

	ctx = advance(ctx, types.DefaultReportIntervalSeconds)
	result, err := m.report(ctx, w, subID, 0)
	require.NoError(t, err)
	require.True(t, result.Paid)
	require.False(t, result.Restart)
	require.False(t, result.Closed)

	escrowAfter, err := m.Keeper.GetEscrowAccount(ctx, m.subscriber)
	require.NoError(t, err)
	require.Equal(t, escrowBefore.Balance.Sub(math.NewInt(85)), escrowAfter.Balance)

	workerBalance := m.BankKeeper.GetBalance(ctx, w.addr, types.DefaultDenom)
	require.Equal(t, math.NewInt(85), workerBalance.Amount)

	sub, err := m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), sub.WorkNonce)
	require.Equal(t, ctx.BlockTime().Unix(), sub.LastReportTime)
}

// TestReportWork_TooEarly tests the lower bound of the liveness window
func TestReportWork_TooEarly(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)
	w, ctx := m.assignedWorker(t, ctx, subID, 85)

	ctx = advance(ctx, types.DefaultReportIntervalSeconds-1)
	_, err := m.report(ctx, w, subID, 0)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrReportedTooEarly)

	// The failed call must not burn the replay nonce: the whole operation
	// rolls back.
	sub, err := m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), sub.WorkNonce)
}

// TestReportWork_SlaMissedFlagsRestart tests that a report past the SLA
// deadline is accepted unpaid and flags restart
func TestReportWork_SlaMissedFlagsRestart(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)
	w, ctx := m.assignedWorker(t, ctx, subID, 85)

	ctx = advance(ctx, types.DefaultSlaWindowSeconds+1)
	result, err := m.report(ctx, w, subID, 0)
	require.NoError(t, err)
	require.False(t, result.Paid)
	require.True(t, result.Restart)
	require.False(t, result.Closed)

	sub, err := m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.True(t, sub.Restart)
	require.Equal(t, uint64(0), sub.WorkNonce)

	// No payout happened.
	workerBalance := m.BankKeeper.GetBalance(ctx, w.addr, types.DefaultDenom)
	require.True(t, workerBalance.Amount.IsZero())
}

// TestReportWork_WorkNonceMismatchFlagsRestart tests restart on a nonce the
// worker cannot prove
func TestReportWork_WorkNonceMismatchFlagsRestart(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)
	w, ctx := m.assignedWorker(t, ctx, subID, 85)

	ctx = advance(ctx, types.DefaultReportIntervalSeconds)
	result, err := m.report(ctx, w, subID, 7)
	require.NoError(t, err)
	require.False(t, result.Paid)
	require.True(t, result.Restart)

	sub, err := m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.True(t, sub.Restart)
}

// TestReportWork_RestartBlocksFurtherReports tests that a faulted
// subscription rejects the next report outright
func TestReportWork_RestartBlocksFurtherReports(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)
	w, ctx := m.assignedWorker(t, ctx, subID, 85)

	ctx = advance(ctx, types.DefaultSlaWindowSeconds+1)
	result, err := m.report(ctx, w, subID, 0)
	require.NoError(t, err)
	require.True(t, result.Restart)

	ctx = advance(ctx, types.DefaultReportIntervalSeconds)
	_, err = m.report(ctx, w, subID, 0)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrRestartPending)
}

// TestReportWork_InsolvencyForceCloses tests the balance=50, price=85 case:
// the subscription closes with no transfer
func TestReportWork_InsolvencyForceCloses(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 10_000)
	w, ctx := m.assignedWorker(t, ctx, subID, 85)

	// Drain the escrow below the current price.
	account, err := m.Keeper.GetEscrowAccount(ctx, m.subscriber)
	require.NoError(t, err)
	account.Balance = math.NewInt(50)
	require.NoError(t, m.Keeper.SetEscrowAccount(ctx, account))

	ctx = advance(ctx, types.DefaultReportIntervalSeconds)
	result, err := m.report(ctx, w, subID, 0)
	require.NoError(t, err)
	require.False(t, result.Paid)
	require.True(t, result.Closed)

	sub, err := m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.True(t, sub.Closed)

	// No payout on the way out.
	workerBalance := m.BankKeeper.GetBalance(ctx, w.addr, types.DefaultDenom)
	require.True(t, workerBalance.Amount.IsZero())

	account, err = m.Keeper.GetEscrowAccount(ctx, m.subscriber)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50), account.Balance)
}

// TestReportWork_MultiCycleSettlement tests that n paid cycles debit exactly
// n times the price
func TestReportWork_MultiCycleSettlement(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)
	w, ctx := m.assignedWorker(t, ctx, subID, 85)

	initial, err := m.Keeper.GetEscrowAccount(ctx, m.subscriber)
	require.NoError(t, err)

	const cycles = 3
	for i := uint64(0); i < cycles; i++ {
		ctx = advance(ctx, types.DefaultReportIntervalSeconds)
		result, err := m.report(ctx, w, subID, i)
		require.NoError(t, err)
		require.True(t, result.Paid)
	}

	account, err := m.Keeper.GetEscrowAccount(ctx, m.subscriber)
	require.NoError(t, err)
	require.Equal(t, initial.Balance.Sub(math.NewInt(85*cycles)), account.Balance)

	workerBalance := m.BankKeeper.GetBalance(ctx, w.addr, types.DefaultDenom)
	require.Equal(t, math.NewInt(85*cycles), workerBalance.Amount)

	sub, err := m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.Equal(t, uint64(cycles), sub.WorkNonce)
}

// TestReportWork_NotAssigned tests reporting before any claim
func TestReportWork_NotAssigned(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	won, _, err := m.bid(ctx, w, subID, 85)
	require.NoError(t, err)
	require.True(t, won)

	ctx = advance(ctx, types.DefaultReportIntervalSeconds)
	_, err = m.report(ctx, w, subID, 0)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrNotAssigned)
}

// TestReportWork_WrongWorker tests that only the executor may report
func TestReportWork_WrongWorker(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)
	_, ctx = m.assignedWorker(t, ctx, subID, 85)

	impostor := newTestWorker(t)
	ctx = advance(ctx, types.DefaultReportIntervalSeconds)
	_, err := m.report(ctx, impostor, subID, 0)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrUnauthorizedWorker)
}

// TestReportWork_ClosedSubscription tests reporting against a closed
// subscription
func TestReportWork_ClosedSubscription(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)
	w, ctx := m.assignedWorker(t, ctx, subID, 85)

	require.NoError(t, m.Keeper.CloseSubscription(ctx, m.subscriber, subID))

	ctx = advance(ctx, types.DefaultReportIntervalSeconds)
	_, err := m.report(ctx, w, subID, 0)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrSubscriptionClosed)
}
