package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// TestPlaceBid_StrictlyLowerWins tests that underbidding always takes the lead
func TestPlaceBid_StrictlyLowerWins(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	won, price, err := m.bid(ctx, w, subID, 90)
	require.NoError(t, err)
	require.True(t, won)
	require.Equal(t, math.NewInt(90), price)

	sub, err := m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.Equal(t, w.addr.String(), sub.Executor)
	require.Equal(t, w.keyHex, sub.ExecutorKey)
	require.Equal(t, math.NewInt(90), sub.CurrentPrice)
	require.False(t, sub.Assigned)
}

// TestPlaceBid_EqualBidOnlyWinsUnassigned tests the first-come tie rule: an
// equal bid takes the lead only while no executor is recorded, so a tie never
// displaces an earlier winner
func TestPlaceBid_EqualBidOnlyWinsUnassigned(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	// First bid at the ceiling wins: nobody holds the lead yet.
	first := newTestWorker(t)
	won, price, err := m.bid(ctx, first, subID, 100)
	require.NoError(t, err)
	require.True(t, won)
	require.Equal(t, math.NewInt(100), price)

	// A later bid at the same price is a successful no-op.
	second := newTestWorker(t)
	won, price, err = m.bid(ctx, second, subID, 100)
	require.NoError(t, err)
	require.False(t, won)
	require.Equal(t, math.NewInt(100), price)

	sub, err := m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.Equal(t, first.addr.String(), sub.Executor)
}

// TestPlaceBid_AuctionSequence walks the full worked example: Bid(90) wins,
// Bid(90) ties and loses, Bid(85) retakes the lead
func TestPlaceBid_AuctionSequence(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	b := newTestWorker(t)
	won, _, err := m.bid(ctx, b, subID, 90)
	require.NoError(t, err)
	require.True(t, won)

	tie := newTestWorker(t)
	won, price, err := m.bid(ctx, tie, subID, 90)
	require.NoError(t, err)
	require.False(t, won)
	require.Equal(t, math.NewInt(90), price)

	sub, err := m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.Equal(t, b.addr.String(), sub.Executor)

	c := newTestWorker(t)
	won, price, err = m.bid(ctx, c, subID, 85)
	require.NoError(t, err)
	require.True(t, won)
	require.Equal(t, math.NewInt(85), price)

	sub, err = m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.Equal(t, c.addr.String(), sub.Executor)
	require.True(t, sub.CurrentPrice.LTE(sub.MaxPrice))
}

// TestPlaceBid_AboveCurrentPriceLoses tests that an overbid is a no-op, not
// an error
func TestPlaceBid_AboveCurrentPriceLoses(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	won, _, err := m.bid(ctx, w, subID, 90)
	require.NoError(t, err)
	require.True(t, won)

	over := newTestWorker(t)
	won, price, err := m.bid(ctx, over, subID, 95)
	require.NoError(t, err)
	require.False(t, won)
	require.Equal(t, math.NewInt(90), price)
}

// TestPlaceBid_WindowExpired tests bid rejection after the window closes
func TestPlaceBid_WindowExpired(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	ctx = advance(ctx, types.DefaultBidWindowSeconds+1)

	w := newTestWorker(t)
	_, _, err := m.bid(ctx, w, subID, 90)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrBidWindowExpired)
}

// TestPlaceBid_NonceBurnsOnLosingBid tests that a losing bid still consumes
// the worker's replay nonce
func TestPlaceBid_NonceBurnsOnLosingBid(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	won, _, err := m.bid(ctx, w, subID, 90)
	require.NoError(t, err)
	require.True(t, won)
	require.Equal(t, uint64(1), m.Keeper.GetWorkerNonce(ctx, w.identity))

	loser := newTestWorker(t)
	won, _, err = m.bid(ctx, loser, subID, 90)
	require.NoError(t, err)
	require.False(t, won)
	require.Equal(t, uint64(1), m.Keeper.GetWorkerNonce(ctx, loser.identity))
}

// TestPlaceBid_UnknownSubscription tests bid rejection for a missing target
func TestPlaceBid_UnknownSubscription(t *testing.T) {
	m, ctx := setupMarket(t)

	w := newTestWorker(t)
	_, _, err := m.bid(ctx, w, 42, 90)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrSubscriptionNotFound)
}

// TestClaimBid_Success tests the winner claiming inside the claim window
func TestClaimBid_Success(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	won, _, err := m.bid(ctx, w, subID, 85)
	require.NoError(t, err)
	require.True(t, won)

	ctx = advance(ctx, types.DefaultBidWindowSeconds+1)
	require.NoError(t, m.claim(ctx, w, subID))

	sub, err := m.Keeper.GetSubscription(ctx, m.subscriber, subID)
	require.NoError(t, err)
	require.True(t, sub.Assigned)
	require.Equal(t, ctx.BlockTime().Unix(), sub.LastReportTime)
	require.Equal(t, uint64(2), m.Keeper.GetWorkerNonce(ctx, w.identity))
}

// TestClaimBid_BeforeWindowEnd tests that claiming during the bid window
// fails with the early error
func TestClaimBid_BeforeWindowEnd(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	won, _, err := m.bid(ctx, w, subID, 85)
	require.NoError(t, err)
	require.True(t, won)

	err = m.claim(ctx, w, subID)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrReportedTooEarly)
}

// TestClaimBid_WindowExpired tests the claim deadline
func TestClaimBid_WindowExpired(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	won, _, err := m.bid(ctx, w, subID, 85)
	require.NoError(t, err)
	require.True(t, won)

	ctx = advance(ctx, types.DefaultBidWindowSeconds+types.DefaultClaimWindowSeconds+1)
	err = m.claim(ctx, w, subID)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrClaimWindowExpired)
}

// TestClaimBid_NotWinner tests that only the recorded winner may claim
func TestClaimBid_NotWinner(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	won, _, err := m.bid(ctx, w, subID, 85)
	require.NoError(t, err)
	require.True(t, won)

	ctx = advance(ctx, types.DefaultBidWindowSeconds+1)

	impostor := newTestWorker(t)
	err = m.claim(ctx, impostor, subID)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrUnauthorizedWorker)
}

// TestClaimBid_AlreadyAssigned tests double-claim rejection
func TestClaimBid_AlreadyAssigned(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	won, _, err := m.bid(ctx, w, subID, 85)
	require.NoError(t, err)
	require.True(t, won)

	ctx = advance(ctx, types.DefaultBidWindowSeconds+1)
	require.NoError(t, m.claim(ctx, w, subID))

	err = m.claim(ctx, w, subID)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrAlreadyAssigned)
}

// TestClaimBid_ClosedSubscription tests claim rejection on a closed
// subscription
func TestClaimBid_ClosedSubscription(t *testing.T) {
	m, ctx := setupMarket(t)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	won, _, err := m.bid(ctx, w, subID, 85)
	require.NoError(t, err)
	require.True(t, won)

	require.NoError(t, m.Keeper.CloseSubscription(ctx, m.subscriber, subID))

	ctx = advance(ctx, types.DefaultBidWindowSeconds+1)
	err = m.claim(ctx, w, subID)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrSubscriptionClosed)
}
