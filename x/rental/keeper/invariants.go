package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// RegisterInvariants registers all rental module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "escrow-balance",
		EscrowBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "subscription-state",
		SubscriptionStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "app-counter",
		AppCounterInvariant(k))
}

// AllInvariants runs all invariants of the rental module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := EscrowBalanceInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = SubscriptionStateInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return AppCounterInvariant(k)(ctx)
	}
}

// EscrowBalanceInvariant checks that the sum of all escrow balances equals
// the coins the module account holds in the escrow denom
func EscrowBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		params, err := k.GetParams(ctx)
		if err != nil {
			return sdk.FormatInvariant(
				types.ModuleName, "escrow-balance",
				fmt.Sprintf("error reading params: %v", err),
			), true
		}

		totalEscrow := math.ZeroInt()
		if err := k.IterateEscrowAccounts(ctx, func(account types.EscrowAccount) (bool, error) {
			if account.Balance.IsNegative() {
				return false, fmt.Errorf("escrow account %s has negative balance %s", account.Owner, account.Balance.String())
			}
			totalEscrow = totalEscrow.Add(account.Balance)
			return false, nil
		}); err != nil {
			return sdk.FormatInvariant(
				types.ModuleName, "escrow-balance",
				fmt.Sprintf("error iterating escrow accounts: %v", err),
			), true
		}

		moduleAddr := k.accountKeeper.GetModuleAddress(types.ModuleName)
		moduleBalance := k.bankKeeper.GetBalance(ctx, moduleAddr, params.Denom).Amount

		broken := !moduleBalance.Equal(totalEscrow)
		return sdk.FormatInvariant(
			types.ModuleName, "escrow-balance",
			fmt.Sprintf("module account holds %s%s, escrow records sum to %s%s",
				moduleBalance.String(), params.Denom, totalEscrow.String(), params.Denom),
		), broken
	}
}

// SubscriptionStateInvariant checks per-subscription structural invariants:
// the current price never exceeds the ceiling and the assigned flag implies
// a recorded executor
func SubscriptionStateInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken bool
			msg    string
			count  int
		)

		if err := k.IterateSubscriptions(ctx, func(sub types.Subscription) (bool, error) {
			count++
			if sub.CurrentPrice.GT(sub.MaxPrice) {
				broken = true
				msg = fmt.Sprintf("subscription %s/%d: current price %s exceeds max price %s",
					sub.Subscriber, sub.ID, sub.CurrentPrice.String(), sub.MaxPrice.String())
				return true, nil
			}
			if sub.Assigned && !sub.HasExecutor() {
				broken = true
				msg = fmt.Sprintf("subscription %s/%d: assigned without an executor", sub.Subscriber, sub.ID)
				return true, nil
			}
			return false, nil
		}); err != nil {
			return sdk.FormatInvariant(
				types.ModuleName, "subscription-state",
				fmt.Sprintf("error iterating subscriptions: %v", err),
			), true
		}

		if !broken {
			msg = fmt.Sprintf("%d subscriptions well formed", count)
		}
		return sdk.FormatInvariant(types.ModuleName, "subscription-state", msg), broken
	}
}

// AppCounterInvariant checks that the app counter sits past every stored
// app id
func AppCounterInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		count, err := k.GetAppCount(ctx)
		if err != nil {
			// Registry not bootstrapped yet means no apps may exist either.
			hasApp := false
			_ = k.IterateApps(ctx, func(app types.App) (bool, error) {
				hasApp = true
				return true, nil
			})
			return sdk.FormatInvariant(
				types.ModuleName, "app-counter",
				"registry not initialized",
			), hasApp
		}

		var (
			broken bool
			msg    string
		)

		if err := k.IterateApps(ctx, func(app types.App) (bool, error) {
			if app.ID >= count {
				broken = true
				msg = fmt.Sprintf("app id %d not below counter %d", app.ID, count)
				return true, nil
			}
			return false, nil
		}); err != nil {
			return sdk.FormatInvariant(
				types.ModuleName, "app-counter",
				fmt.Sprintf("error iterating apps: %v", err),
			), true
		}

		if !broken {
			msg = fmt.Sprintf("counter %d above all app ids", count)
		}
		return sdk.FormatInvariant(types.ModuleName, "app-counter", msg), broken
	}
}
