package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// PlaceBid processes one authenticated underbid on an open subscription.
// Acceptance rule: a strictly lower bid than the current price always takes
// the lead; an equal bid takes the lead only while no executor is recorded,
// so the first bidder at the ceiling holds it against later ties. A losing
// bid is a successful no-op. The worker's replay nonce burns on every
// accepted call, winning or not. Returns whether the bid took the lead and
// the price after the call.
func (k Keeper) PlaceBid(ctx context.Context, worker sdk.AccAddress, workerKey, consensusKey string, subscriber sdk.AccAddress, subscriptionID uint64, bidAmount math.Int, signature, record []byte) (bool, math.Int, error) {
	identity, err := types.ParseWorkerKey(workerKey)
	if err != nil {
		return false, math.Int{}, types.ErrInvalidWorkerKey.Wrap(err.Error())
	}

	sub, err := k.GetSubscription(ctx, subscriber, subscriptionID)
	if err != nil {
		return false, math.Int{}, err
	}

	if err := k.verifyWorkerAttestation(ctx, consensusKey, identity, signature, record); err != nil {
		return false, math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()
	if now >= sub.BidEndTime {
		return false, math.Int{}, types.ErrBidWindowExpired.Wrapf("window closed at %d, now %d", sub.BidEndTime, now)
	}

	won := bidAmount.LT(sub.CurrentPrice) ||
		(bidAmount.Equal(sub.CurrentPrice) && !sub.HasExecutor())

	if won {
		sub.CurrentPrice = bidAmount
		sub.Executor = worker.String()
		sub.ExecutorKey = workerKey
		if err := k.SetSubscription(ctx, sub); err != nil {
			return false, math.Int{}, err
		}
	}

	k.bumpWorkerNonce(ctx, identity)

	outcome := "lost"
	if won {
		outcome = "won"
	}
	if k.metrics != nil {
		k.metrics.BidsPlaced.WithLabelValues(outcome).Inc()
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBidPlaced,
			sdk.NewAttribute(types.AttributeKeyWorker, worker.String()),
			sdk.NewAttribute(types.AttributeKeySubscriber, subscriber.String()),
			sdk.NewAttribute(types.AttributeKeySubscription, fmt.Sprintf("%d", subscriptionID)),
			sdk.NewAttribute(types.AttributeKeyAmount, bidAmount.String()),
			sdk.NewAttribute(types.AttributeKeyReason, outcome),
		),
	)

	if won {
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBidWon,
				sdk.NewAttribute(types.AttributeKeyWorker, worker.String()),
				sdk.NewAttribute(types.AttributeKeyWorkerKey, workerKey),
				sdk.NewAttribute(types.AttributeKeySubscription, fmt.Sprintf("%d", subscriptionID)),
				sdk.NewAttribute(types.AttributeKeyPrice, bidAmount.String()),
			),
		)
	}

	return won, sub.CurrentPrice, nil
}

// ClaimBid finalizes the auction: the recorded winner claims the assignment
// after the bid window closes and before the claim window runs out. Claiming
// flips the assigned flag and starts the report clock. A winner that never
// claims simply lets the claim window lapse; no penalty is taken here.
func (k Keeper) ClaimBid(ctx context.Context, worker sdk.AccAddress, workerKey, consensusKey string, subscriber sdk.AccAddress, subscriptionID uint64, signature, record []byte) error {
	identity, err := types.ParseWorkerKey(workerKey)
	if err != nil {
		return types.ErrInvalidWorkerKey.Wrap(err.Error())
	}

	sub, err := k.GetSubscription(ctx, subscriber, subscriptionID)
	if err != nil {
		return err
	}

	if err := k.verifyWorkerAttestation(ctx, consensusKey, identity, signature, record); err != nil {
		return err
	}

	if sub.Closed {
		return types.ErrSubscriptionClosed
	}
	if sub.Assigned {
		return types.ErrAlreadyAssigned
	}
	if sub.ExecutorKey != workerKey || sub.Executor != worker.String() {
		return types.ErrUnauthorizedWorker.Wrapf("worker %s did not win this auction", worker.String())
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()
	if now > sub.BidEndTime+params.ClaimWindowSeconds {
		return types.ErrClaimWindowExpired.Wrapf("claim deadline %d, now %d", sub.BidEndTime+params.ClaimWindowSeconds, now)
	}
	if now < sub.BidEndTime {
		return types.ErrReportedTooEarly.Wrapf("bid window still open until %d", sub.BidEndTime)
	}

	sub.Assigned = true
	sub.LastReportTime = now
	if err := k.SetSubscription(ctx, sub); err != nil {
		return err
	}

	k.bumpWorkerNonce(ctx, identity)

	if k.metrics != nil {
		k.metrics.BidsClaimed.Inc()
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBidClaimed,
			sdk.NewAttribute(types.AttributeKeyWorker, worker.String()),
			sdk.NewAttribute(types.AttributeKeyWorkerKey, workerKey),
			sdk.NewAttribute(types.AttributeKeySubscriber, subscriber.String()),
			sdk.NewAttribute(types.AttributeKeySubscription, fmt.Sprintf("%d", subscriptionID)),
			sdk.NewAttribute(types.AttributeKeyPrice, sub.CurrentPrice.String()),
		),
	)

	return nil
}
