package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// OpenSubscription creates a rental subscription for an app at the
// subscriber's next sequence index and opens its bidding window. The current
// price starts at the max price ceiling and only moves down as workers
// underbid each other. Returns the allocated sequence ID and the bid window
// deadline.
func (k Keeper) OpenSubscription(ctx context.Context, subscriber sdk.AccAddress, appID uint64, paramsHash string, maxPrice math.Int) (uint64, int64, error) {
	if _, err := k.GetApp(ctx, appID); err != nil {
		return 0, 0, err
	}

	account, err := k.GetEscrowAccount(ctx, subscriber)
	if err != nil {
		return 0, 0, err
	}

	// The subscriber must be able to cover at least one cycle at the
	// ceiling before any worker commits to the job.
	if account.Balance.LT(maxPrice) {
		return 0, 0, types.ErrInsufficientEscrow.Wrapf("balance %s, max price %s", account.Balance.String(), maxPrice.String())
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, 0, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()
	bidEnd := now + params.BidWindowSeconds

	id := account.SubscriptionCount
	sub := types.Subscription{
		ID:             id,
		Subscriber:     subscriber.String(),
		AppID:          appID,
		ParamsHash:     paramsHash,
		MaxPrice:       maxPrice,
		CurrentPrice:   maxPrice,
		Assigned:       false,
		Executor:       "",
		ExecutorKey:    "",
		BidEndTime:     bidEnd,
		WorkNonce:      0,
		LastReportTime: 0,
		Restart:        false,
		Closed:         false,
	}

	if err := k.SetSubscription(ctx, sub); err != nil {
		return 0, 0, err
	}

	account.SubscriptionCount = id + 1
	if err := k.SetEscrowAccount(ctx, account); err != nil {
		return 0, 0, err
	}

	if k.metrics != nil {
		k.metrics.SubscriptionsOpened.Inc()
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubscriptionOpened,
			sdk.NewAttribute(types.AttributeKeySubscriber, subscriber.String()),
			sdk.NewAttribute(types.AttributeKeySubscription, fmt.Sprintf("%d", id)),
			sdk.NewAttribute(types.AttributeKeyAppID, fmt.Sprintf("%d", appID)),
			sdk.NewAttribute(types.AttributeKeyPrice, maxPrice.String()),
			sdk.NewAttribute(types.AttributeKeyBidEnd, fmt.Sprintf("%d", bidEnd)),
		),
	)

	return id, bidEnd, nil
}

// CloseSubscription marks a subscription closed. Only the owner can close,
// the flag is terminal, and escrow already spent on past cycles is not
// refunded.
func (k Keeper) CloseSubscription(ctx context.Context, subscriber sdk.AccAddress, id uint64) error {
	sub, err := k.GetSubscription(ctx, subscriber, id)
	if err != nil {
		return err
	}

	sub.Closed = true
	if err := k.SetSubscription(ctx, sub); err != nil {
		return err
	}

	if k.metrics != nil {
		k.metrics.SubscriptionsClosed.WithLabelValues("subscriber").Inc()
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubscriptionClosed,
			sdk.NewAttribute(types.AttributeKeySubscriber, subscriber.String()),
			sdk.NewAttribute(types.AttributeKeySubscription, fmt.Sprintf("%d", id)),
			sdk.NewAttribute(types.AttributeKeyReason, "subscriber"),
		),
	)

	return nil
}

// GetSubscription retrieves one subscription by owner and sequence ID
func (k Keeper) GetSubscription(ctx context.Context, subscriber sdk.AccAddress, id uint64) (types.Subscription, error) {
	store := k.getStore(ctx)
	bz := store.Get(SubscriptionKey(subscriber, id))

	if bz == nil {
		return types.Subscription{}, types.ErrSubscriptionNotFound.Wrapf("subscriber %s, id %d", subscriber.String(), id)
	}

	var sub types.Subscription
	if err := k.cdc.Unmarshal(bz, &sub); err != nil {
		return types.Subscription{}, types.ErrUnmarshalFailed.Wrapf("failed to unmarshal subscription: %v", err)
	}

	return sub, nil
}

// SetSubscription stores a subscription record
func (k Keeper) SetSubscription(ctx context.Context, sub types.Subscription) error {
	store := k.getStore(ctx)
	bz, err := k.cdc.Marshal(&sub)
	if err != nil {
		return types.ErrMarshalFailed.Wrapf("failed to marshal subscription: %v", err)
	}

	subscriber, err := sdk.AccAddressFromBech32(sub.Subscriber)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("failed to parse subscriber: %v", err)
	}

	store.Set(SubscriptionKey(subscriber, sub.ID), bz)
	return nil
}

// IterateSubscriptions iterates over all subscriptions
func (k Keeper) IterateSubscriptions(ctx context.Context, cb func(sub types.Subscription) (stop bool, err error)) error {
	return k.iterateSubscriptionPrefix(ctx, SubscriptionKeyPrefix, cb)
}

// IterateSubscriptionsForSubscriber iterates over one subscriber's
// subscriptions in sequence order
func (k Keeper) IterateSubscriptionsForSubscriber(ctx context.Context, subscriber sdk.AccAddress, cb func(sub types.Subscription) (stop bool, err error)) error {
	return k.iterateSubscriptionPrefix(ctx, SubscriptionPrefixForSubscriber(subscriber), cb)
}

func (k Keeper) iterateSubscriptionPrefix(ctx context.Context, prefix []byte, cb func(sub types.Subscription) (stop bool, err error)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var sub types.Subscription
		if err := k.cdc.Unmarshal(iterator.Value(), &sub); err != nil {
			return types.ErrUnmarshalFailed.Wrapf("failed to unmarshal subscription: %v", err)
		}

		stop, err := cb(sub)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}

	return nil
}
