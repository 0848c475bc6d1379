package keeper

import (
	"context"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
	sharedkeeper "github.com/vaultmesh/vaultmesh/x/shared/keeper"
)

var _ types.MsgServer = msgServer{}

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

func countMsg(op, outcome string) {
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "msg"},
		1,
		[]metrics.Label{
			telemetry.NewLabel("op", op),
			telemetry.NewLabel("outcome", outcome),
		},
	)
}

// InitRegistry bootstraps the marketplace registry: the oracle consensus key
// and the app counter. Authority-gated and one shot.
func (ms msgServer) InitRegistry(goCtx context.Context, msg *types.MsgInitRegistry) (*types.MsgInitRegistryResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}

	if err := ms.Keeper.InitRegistry(ctx, msg.ConsensusKey, msg.AttestationProof); err != nil {
		countMsg(types.TypeMsgInitRegistry, "error")
		return nil, err
	}

	countMsg(types.TypeMsgInitRegistry, "ok")
	return &types.MsgInitRegistryResponse{}, nil
}

// AnnounceWorker emits a worker's discovery announcement. No state changes.
func (ms msgServer) AnnounceWorker(goCtx context.Context, msg *types.MsgAnnounceWorker) (*types.MsgAnnounceWorkerResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	worker, err := sdk.AccAddressFromBech32(msg.Worker)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid worker address: %v", err)
	}

	if err := ms.Keeper.AnnounceWorker(ctx, worker, msg.AttestationProof, msg.TransitKey, msg.PeerAddress); err != nil {
		countMsg(types.TypeMsgAnnounceWorker, "error")
		return nil, err
	}

	countMsg(types.TypeMsgAnnounceWorker, "ok")
	return &types.MsgAnnounceWorkerResponse{}, nil
}

// RegisterApp lists a new app under the next counter value.
func (ms msgServer) RegisterApp(goCtx context.Context, msg *types.MsgRegisterApp) (*types.MsgRegisterAppResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid creator address: %v", err)
	}

	payout, err := sdk.AccAddressFromBech32(msg.PayoutAddress)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid payout address: %v", err)
	}

	appID, err := ms.Keeper.RegisterApp(ctx, creator, msg.ManifestHash, msg.BasePrice, payout)
	if err != nil {
		countMsg(types.TypeMsgRegisterApp, "error")
		return nil, err
	}

	countMsg(types.TypeMsgRegisterApp, "ok")
	return &types.MsgRegisterAppResponse{AppId: appID}, nil
}

// Deposit credits the depositor's escrow account from its bank balance.
func (ms msgServer) Deposit(goCtx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	depositor, err := sdk.AccAddressFromBech32(msg.Depositor)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid depositor address: %v", err)
	}

	balance, err := ms.Keeper.Deposit(ctx, depositor, msg.Amount)
	if err != nil {
		countMsg(types.TypeMsgDeposit, "error")
		return nil, err
	}

	countMsg(types.TypeMsgDeposit, "ok")
	return &types.MsgDepositResponse{Balance: balance}, nil
}

// OpenSubscription opens a subscription and its bidding window.
func (ms msgServer) OpenSubscription(goCtx context.Context, msg *types.MsgOpenSubscription) (*types.MsgOpenSubscriptionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	subscriber, err := sdk.AccAddressFromBech32(msg.Subscriber)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid subscriber address: %v", err)
	}

	id, bidEnd, err := ms.Keeper.OpenSubscription(ctx, subscriber, msg.AppId, msg.ParamsHash, msg.MaxPrice)
	if err != nil {
		countMsg(types.TypeMsgOpenSubscription, "error")
		return nil, err
	}

	countMsg(types.TypeMsgOpenSubscription, "ok")
	return &types.MsgOpenSubscriptionResponse{SubscriptionId: id, BidEndTime: bidEnd}, nil
}

// PlaceBid processes an authenticated underbid.
func (ms msgServer) PlaceBid(goCtx context.Context, msg *types.MsgPlaceBid) (*types.MsgPlaceBidResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	worker, err := sdk.AccAddressFromBech32(msg.Worker)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid worker address: %v", err)
	}

	subscriber, err := sdk.AccAddressFromBech32(msg.Subscriber)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid subscriber address: %v", err)
	}

	won, price, err := ms.Keeper.PlaceBid(ctx, worker, msg.WorkerKey, msg.ConsensusKey, subscriber, msg.SubscriptionId, msg.BidAmount, msg.Signature, msg.Record)
	if err != nil {
		countMsg(types.TypeMsgPlaceBid, "error")
		return nil, err
	}

	countMsg(types.TypeMsgPlaceBid, "ok")
	return &types.MsgPlaceBidResponse{Won: won, CurrentPrice: price}, nil
}

// ClaimBid finalizes the auction for the recorded winner.
func (ms msgServer) ClaimBid(goCtx context.Context, msg *types.MsgClaimBid) (*types.MsgClaimBidResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	worker, err := sdk.AccAddressFromBech32(msg.Worker)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid worker address: %v", err)
	}

	subscriber, err := sdk.AccAddressFromBech32(msg.Subscriber)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid subscriber address: %v", err)
	}

	if err := ms.Keeper.ClaimBid(ctx, worker, msg.WorkerKey, msg.ConsensusKey, subscriber, msg.SubscriptionId, msg.Signature, msg.Record); err != nil {
		countMsg(types.TypeMsgClaimBid, "error")
		return nil, err
	}

	countMsg(types.TypeMsgClaimBid, "ok")
	return &types.MsgClaimBidResponse{}, nil
}

// ReportWork settles one liveness report cycle.
func (ms msgServer) ReportWork(goCtx context.Context, msg *types.MsgReportWork) (*types.MsgReportWorkResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	worker, err := sdk.AccAddressFromBech32(msg.Worker)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid worker address: %v", err)
	}

	subscriber, err := sdk.AccAddressFromBech32(msg.Subscriber)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid subscriber address: %v", err)
	}

	result, err := ms.Keeper.ReportWork(ctx, worker, msg.WorkerKey, msg.ConsensusKey, subscriber, msg.SubscriptionId, msg.WorkNonce, msg.Signature, msg.Record)
	if err != nil {
		countMsg(types.TypeMsgReportWork, "error")
		return nil, err
	}

	countMsg(types.TypeMsgReportWork, "ok")
	return &types.MsgReportWorkResponse{
		Paid:    result.Paid,
		Restart: result.Restart,
		Closed:  result.Closed,
	}, nil
}

// CloseSubscription closes a subscription for good.
func (ms msgServer) CloseSubscription(goCtx context.Context, msg *types.MsgCloseSubscription) (*types.MsgCloseSubscriptionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	subscriber, err := sdk.AccAddressFromBech32(msg.Subscriber)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid subscriber address: %v", err)
	}

	if err := ms.Keeper.CloseSubscription(ctx, subscriber, msg.SubscriptionId); err != nil {
		countMsg(types.TypeMsgCloseSubscription, "error")
		return nil, err
	}

	countMsg(types.TypeMsgCloseSubscription, "ok")
	return &types.MsgCloseSubscriptionResponse{}, nil
}

// UpdateParams replaces the module parameters. Authority-gated.
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrValidationFailed.Wrap(err.Error())
	}

	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}

	if err := ms.Keeper.SetParams(ctx, msg.Params); err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeParamsUpdated,
			sdk.NewAttribute(types.AttributeKeyAuthority, msg.Authority),
		),
	)

	return &types.MsgUpdateParamsResponse{}, nil
}
