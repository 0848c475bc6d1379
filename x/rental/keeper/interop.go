package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/vaultmesh/vaultmesh/x/shared/keeper"
)

var _ sharedkeeper.RentalKeeperV1Extended = Keeper{}

// GetAppInfo implements sharedkeeper.RentalKeeperV1.
func (k Keeper) GetAppInfo(ctx context.Context, appID uint64) (sharedkeeper.AppInfo, bool) {
	app, err := k.GetApp(ctx, appID)
	if err != nil {
		return sharedkeeper.AppInfo{}, false
	}

	creator, _ := sdk.AccAddressFromBech32(app.Creator)
	payout, _ := sdk.AccAddressFromBech32(app.PayoutAddress)

	return sharedkeeper.AppInfo{
		AppID:         app.ID,
		ManifestHash:  app.ManifestHash,
		BasePrice:     app.BasePrice,
		Creator:       creator,
		PayoutAddress: payout,
	}, true
}

// IsBootstrapped implements sharedkeeper.RentalKeeperV1.
func (k Keeper) IsBootstrapped(ctx context.Context) bool {
	_, err := k.GetOracle(ctx)
	return err == nil
}

// GetEscrowInfo implements sharedkeeper.RentalKeeperV1Extended.
func (k Keeper) GetEscrowInfo(ctx context.Context, owner sdk.AccAddress) (sharedkeeper.EscrowInfo, bool) {
	account, err := k.GetEscrowAccount(ctx, owner)
	if err != nil {
		return sharedkeeper.EscrowInfo{}, false
	}

	return sharedkeeper.EscrowInfo{
		Owner:             owner,
		Balance:           account.Balance,
		SubscriptionCount: account.SubscriptionCount,
	}, true
}

// GetSubscriptionInfo implements sharedkeeper.RentalKeeperV1Extended.
func (k Keeper) GetSubscriptionInfo(ctx context.Context, owner sdk.AccAddress, id uint64) (sharedkeeper.SubscriptionInfo, bool) {
	sub, err := k.GetSubscription(ctx, owner, id)
	if err != nil {
		return sharedkeeper.SubscriptionInfo{}, false
	}

	return sharedkeeper.SubscriptionInfo{
		ID:           sub.ID,
		Subscriber:   owner,
		AppID:        sub.AppID,
		CurrentPrice: sub.CurrentPrice,
		Assigned:     sub.Assigned,
		Closed:       sub.Closed,
	}, true
}
