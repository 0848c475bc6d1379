package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
	sharedabci "github.com/vaultmesh/vaultmesh/x/shared/abci"
)

// gaugeRefreshInterval is the block interval between market gauge refreshes.
const gaugeRefreshInterval = 10

// EndBlocker refreshes the market telemetry gauges. Errors here are
// monitoring-only and must never halt the chain.
func (k Keeper) EndBlocker(ctx sdk.Context) {
	if ctx.BlockHeight()%gaugeRefreshInterval != 0 {
		return
	}

	handler := sharedabci.NewBlockerErrorHandler(ctx, types.ModuleName)
	handler.WrapError("refresh_market_gauges", sharedabci.SeverityLow, k.refreshMarketGauges(ctx))
}

func (k Keeper) refreshMarketGauges(ctx sdk.Context) error {
	var open, assigned float64
	if err := k.IterateSubscriptions(ctx, func(sub types.Subscription) (bool, error) {
		if sub.Closed {
			return false, nil
		}
		open++
		if sub.Assigned {
			assigned++
		}
		return false, nil
	}); err != nil {
		return err
	}

	var locked float64
	if err := k.IterateEscrowAccounts(ctx, func(account types.EscrowAccount) (bool, error) {
		locked += float64(account.Balance.Int64())
		return false, nil
	}); err != nil {
		return err
	}

	k.metrics.OpenSubscriptions.Set(open)
	k.metrics.AssignedSubscriptions.Set(assigned)
	k.metrics.EscrowLocked.Set(locked)
	return nil
}
