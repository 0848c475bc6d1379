package keeper

import (
	"context"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// RegisterApp stores a new app listing under the next counter value and
// returns the allocated app ID. The payout address is the only ownership
// proof the ledger can check, so it must be the creator's own account.
func (k Keeper) RegisterApp(ctx context.Context, creator sdk.AccAddress, manifestHash string, basePrice math.Int, payoutAddress sdk.AccAddress) (uint64, error) {
	count, err := k.GetAppCount(ctx)
	if err != nil {
		return 0, err
	}

	if !creator.Equals(payoutAddress) {
		return 0, types.ErrAddressMismatch.Wrapf("payout address %s is not the creator account", payoutAddress.String())
	}

	store := k.getStore(ctx)
	if store.Has(AppKey(count)) {
		return 0, types.ErrAppExists.Wrapf("app %d", count)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	app := types.App{
		ID:            count,
		ManifestHash:  manifestHash,
		BasePrice:     basePrice,
		Creator:       creator.String(),
		PayoutAddress: payoutAddress.String(),
		CreatedAt:     sdkCtx.BlockTime().Unix(),
	}

	if err := k.SetApp(ctx, app); err != nil {
		return 0, err
	}
	k.setAppCount(ctx, count+1)

	if k.metrics != nil {
		k.metrics.AppsRegistered.Inc()
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAppRegistered,
			sdk.NewAttribute(types.AttributeKeyAppID, math.NewIntFromUint64(count).String()),
			sdk.NewAttribute(types.AttributeKeyManifest, manifestHash),
			sdk.NewAttribute(types.AttributeKeyPrice, basePrice.String()),
			sdk.NewAttribute(types.AttributeKeyPayout, payoutAddress.String()),
		),
	)

	return count, nil
}

// GetApp retrieves an app listing by ID
func (k Keeper) GetApp(ctx context.Context, appID uint64) (types.App, error) {
	store := k.getStore(ctx)
	bz := store.Get(AppKey(appID))

	if bz == nil {
		return types.App{}, types.ErrAppNotFound.Wrapf("app %d", appID)
	}

	var app types.App
	if err := k.cdc.Unmarshal(bz, &app); err != nil {
		return types.App{}, types.ErrUnmarshalFailed.Wrapf("failed to unmarshal app %d: %v", appID, err)
	}

	return app, nil
}

// SetApp stores an app listing
func (k Keeper) SetApp(ctx context.Context, app types.App) error {
	store := k.getStore(ctx)
	bz, err := k.cdc.Marshal(&app)
	if err != nil {
		return types.ErrMarshalFailed.Wrapf("failed to marshal app %d: %v", app.ID, err)
	}

	store.Set(AppKey(app.ID), bz)
	return nil
}

// IterateApps iterates over all app listings in ID order
func (k Keeper) IterateApps(ctx context.Context, cb func(app types.App) (stop bool, err error)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, AppKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var app types.App
		if err := k.cdc.Unmarshal(iterator.Value(), &app); err != nil {
			return types.ErrUnmarshalFailed.Wrapf("failed to unmarshal app: %v", err)
		}

		stop, err := cb(app)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}

	return nil
}
