package keeper

import (
	"context"
	"fmt"

	storeprefix "cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

var _ types.QueryServer = queryServer{}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 1000
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

// sanitizePagination enforces default and max limits to prevent unbounded queries.
func sanitizePagination(p *query.PageRequest) *query.PageRequest {
	if p == nil {
		return &query.PageRequest{Limit: defaultPaginationLimit}
	}

	if p.Limit == 0 {
		p.Limit = defaultPaginationLimit
	}

	if p.Limit > maxPaginationLimit {
		p.Limit = maxPaginationLimit
	}

	return p
}

// Params returns the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	params, err := qs.Keeper.GetParams(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryParamsResponse{Params: params}, nil
}

// Registry returns the oracle record and the next app id
func (qs queryServer) Registry(goCtx context.Context, req *types.QueryRegistryRequest) (*types.QueryRegistryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	oracle, err := qs.Keeper.GetOracle(ctx)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}

	count, err := qs.Keeper.GetAppCount(ctx)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}

	return &types.QueryRegistryResponse{Oracle: oracle, AppCount: count}, nil
}

// App returns one app listing by id
func (qs queryServer) App(goCtx context.Context, req *types.QueryAppRequest) (*types.QueryAppResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	app, err := qs.Keeper.GetApp(ctx, req.AppId)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}

	return &types.QueryAppResponse{App: app}, nil
}

// Apps returns the paginated app listing
func (qs queryServer) Apps(goCtx context.Context, req *types.QueryAppsRequest) (*types.QueryAppsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	pagination := sanitizePagination(req.Pagination)

	var apps []types.App
	store := qs.Keeper.getStore(ctx)
	appStore := storeprefix.NewStore(store, AppKeyPrefix)

	pageRes, err := query.Paginate(appStore, pagination, func(key, value []byte) error {
		var app types.App
		if err := qs.Keeper.cdc.Unmarshal(value, &app); err != nil {
			return fmt.Errorf("failed to unmarshal app: %w", err)
		}
		apps = append(apps, app)
		return nil
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryAppsResponse{Apps: apps, Pagination: pageRes}, nil
}

// EscrowAccount returns a subscriber's escrow account
func (qs queryServer) EscrowAccount(goCtx context.Context, req *types.QueryEscrowAccountRequest) (*types.QueryEscrowAccountResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	if req.Address == "" {
		return nil, status.Error(codes.InvalidArgument, "address cannot be empty")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	owner, err := sdk.AccAddressFromBech32(req.Address)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid address: %s", err))
	}

	account, err := qs.Keeper.GetEscrowAccount(ctx, owner)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}

	return &types.QueryEscrowAccountResponse{EscrowAccount: account}, nil
}

// Subscription returns one subscription by owner and sequence id
func (qs queryServer) Subscription(goCtx context.Context, req *types.QuerySubscriptionRequest) (*types.QuerySubscriptionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	if req.Subscriber == "" {
		return nil, status.Error(codes.InvalidArgument, "subscriber cannot be empty")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	subscriber, err := sdk.AccAddressFromBech32(req.Subscriber)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid subscriber: %s", err))
	}

	sub, err := qs.Keeper.GetSubscription(ctx, subscriber, req.SubscriptionId)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}

	return &types.QuerySubscriptionResponse{Subscription: sub}, nil
}

// Subscriptions returns a subscriber's subscriptions, paginated in sequence
// order
func (qs queryServer) Subscriptions(goCtx context.Context, req *types.QuerySubscriptionsRequest) (*types.QuerySubscriptionsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	if req.Subscriber == "" {
		return nil, status.Error(codes.InvalidArgument, "subscriber cannot be empty")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	subscriber, err := sdk.AccAddressFromBech32(req.Subscriber)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid subscriber: %s", err))
	}

	pagination := sanitizePagination(req.Pagination)

	var subs []types.Subscription
	store := qs.Keeper.getStore(ctx)
	subStore := storeprefix.NewStore(store, SubscriptionPrefixForSubscriber(subscriber))

	pageRes, err := query.Paginate(subStore, pagination, func(key, value []byte) error {
		var sub types.Subscription
		if err := qs.Keeper.cdc.Unmarshal(value, &sub); err != nil {
			return fmt.Errorf("failed to unmarshal subscription: %w", err)
		}
		subs = append(subs, sub)
		return nil
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QuerySubscriptionsResponse{Subscriptions: subs, Pagination: pageRes}, nil
}

// WorkerNonce returns the replay nonce a worker must attest to next
func (qs queryServer) WorkerNonce(goCtx context.Context, req *types.QueryWorkerNonceRequest) (*types.QueryWorkerNonceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	identity, err := types.ParseWorkerKey(req.WorkerKey)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid worker key: %s", err))
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	return &types.QueryWorkerNonceResponse{Nonce: qs.Keeper.GetWorkerNonce(ctx, identity)}, nil
}
