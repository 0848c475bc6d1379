package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vaultmesh/vaultmesh/x/rental/keeper"
	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

func TestQueryParams(t *testing.T) {
	m, ctx := setupMarket(t)
	qs := keeper.NewQueryServerImpl(*m.Keeper)

	res, err := qs.Params(ctx, &types.QueryParamsRequest{})
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), res.Params)

	_, err = qs.Params(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestQueryRegistry(t *testing.T) {
	m, ctx := setupMarket(t)
	qs := keeper.NewQueryServerImpl(*m.Keeper)

	res, err := qs.Registry(ctx, &types.QueryRegistryRequest{})
	require.NoError(t, err)
	require.Equal(t, m.oracle.keyHex(), res.Oracle.ConsensusKey)
	require.Equal(t, uint64(1), res.AppCount)
}

func TestQueryApp(t *testing.T) {
	m, ctx := setupMarket(t)
	qs := keeper.NewQueryServerImpl(*m.Keeper)

	res, err := qs.App(ctx, &types.QueryAppRequest{AppId: m.appID})
	require.NoError(t, err)
	require.Equal(t, m.appID, res.App.ID)

	_, err = qs.App(ctx, &types.QueryAppRequest{AppId: 99})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestQueryApps_Paginated(t *testing.T) {
	m, ctx := setupMarket(t)
	qs := keeper.NewQueryServerImpl(*m.Keeper)

	for i := 0; i < 4; i++ {
		creator := newTestAddr(t)
		_, err := m.Keeper.RegisterApp(ctx, creator, "manifest", math.NewInt(100), creator)
		require.NoError(t, err)
	}

	res, err := qs.Apps(ctx, &types.QueryAppsRequest{
		Pagination: &query.PageRequest{Limit: 3, CountTotal: true},
	})
	require.NoError(t, err)
	require.Len(t, res.Apps, 3)
	require.Equal(t, uint64(5), res.Pagination.Total)

	res, err = qs.Apps(ctx, &types.QueryAppsRequest{
		Pagination: &query.PageRequest{Key: res.Pagination.NextKey},
	})
	require.NoError(t, err)
	require.Len(t, res.Apps, 2)
}

func TestQueryEscrowAccount(t *testing.T) {
	m, ctx := setupMarket(t)
	qs := keeper.NewQueryServerImpl(*m.Keeper)

	res, err := qs.EscrowAccount(ctx, &types.QueryEscrowAccountRequest{Address: m.subscriber.String()})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10_000), res.EscrowAccount.Balance)

	_, err = qs.EscrowAccount(ctx, &types.QueryEscrowAccountRequest{Address: newTestAddr(t).String()})
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = qs.EscrowAccount(ctx, &types.QueryEscrowAccountRequest{Address: ""})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestQuerySubscription(t *testing.T) {
	m, ctx := setupMarket(t)
	qs := keeper.NewQueryServerImpl(*m.Keeper)
	subID := m.openSub(t, ctx, 100)

	res, err := qs.Subscription(ctx, &types.QuerySubscriptionRequest{
		Subscriber:     m.subscriber.String(),
		SubscriptionId: subID,
	})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), res.Subscription.MaxPrice)

	_, err = qs.Subscription(ctx, &types.QuerySubscriptionRequest{
		Subscriber:     m.subscriber.String(),
		SubscriptionId: 42,
	})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestQuerySubscriptions_ScopedToSubscriber(t *testing.T) {
	m, ctx := setupMarket(t)
	qs := keeper.NewQueryServerImpl(*m.Keeper)

	for i := 0; i < 3; i++ {
		m.openSub(t, ctx, 100)
	}

	other := newTestAddr(t)
	m.FundAccount(t, ctx, other, math.NewInt(1_000))
	_, err := m.Keeper.Deposit(ctx, other, math.NewInt(500))
	require.NoError(t, err)
	_, _, err = m.Keeper.OpenSubscription(ctx, other, m.appID, "paramshash", math.NewInt(100))
	require.NoError(t, err)

	res, err := qs.Subscriptions(ctx, &types.QuerySubscriptionsRequest{Subscriber: m.subscriber.String()})
	require.NoError(t, err)
	require.Len(t, res.Subscriptions, 3)

	res, err = qs.Subscriptions(ctx, &types.QuerySubscriptionsRequest{Subscriber: other.String()})
	require.NoError(t, err)
	require.Len(t, res.Subscriptions, 1)
}

func TestQueryWorkerNonce(t *testing.T) {
	m, ctx := setupMarket(t)
	qs := keeper.NewQueryServerImpl(*m.Keeper)
	subID := m.openSub(t, ctx, 100)

	w := newTestWorker(t)
	res, err := qs.WorkerNonce(ctx, &types.QueryWorkerNonceRequest{WorkerKey: w.keyHex})
	require.NoError(t, err)
	require.Equal(t, uint64(0), res.Nonce)

	won, _, err := m.bid(ctx, w, subID, 90)
	require.NoError(t, err)
	require.True(t, won)

	res, err = qs.WorkerNonce(ctx, &types.QueryWorkerNonceRequest{WorkerKey: w.keyHex})
	require.NoError(t, err)
	require.Equal(t, uint64(1), res.Nonce)

	_, err = qs.WorkerNonce(ctx, &types.QueryWorkerNonceRequest{WorkerKey: "zz"})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}
