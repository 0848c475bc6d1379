package keeper

import (
	"context"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// Deposit moves coins from the depositor's bank balance into the module
// account and credits the depositor's escrow record, creating it on first
// use. Returns the escrow balance after the credit.
func (k Keeper) Deposit(ctx context.Context, depositor sdk.AccAddress, amount math.Int) (math.Int, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return math.Int{}, types.ErrInvalidDeposit
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)

	// The depositor must be able to cover the amount from spendable funds
	// before the module account takes custody.
	spendable := k.bankKeeper.SpendableCoins(sdkCtx, depositor).AmountOf(params.Denom)
	if spendable.LT(amount) {
		return math.Int{}, types.ErrInsufficientFunds.Wrapf("spendable %s%s, need %s%s", spendable.String(), params.Denom, amount.String(), params.Denom)
	}

	coins := sdk.NewCoins(sdk.NewCoin(params.Denom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(sdkCtx, depositor, types.ModuleName, coins); err != nil {
		return math.Int{}, types.ErrInsufficientFunds.Wrapf("failed to fund escrow: %v", err)
	}

	account, err := k.GetEscrowAccount(ctx, depositor)
	if err != nil {
		account = types.EscrowAccount{
			Owner:             depositor.String(),
			Balance:           math.ZeroInt(),
			SubscriptionCount: 0,
		}
	}

	account.Balance = account.Balance.Add(amount)
	if err := k.SetEscrowAccount(ctx, account); err != nil {
		return math.Int{}, err
	}

	if k.metrics != nil && amount.IsInt64() {
		k.metrics.EscrowDeposits.WithLabelValues(params.Denom).Add(float64(amount.Int64()))
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDeposit,
			sdk.NewAttribute(types.AttributeKeySubscriber, depositor.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyBalance, account.Balance.String()),
		),
	)

	return account.Balance, nil
}

// GetEscrowAccount retrieves a subscriber's escrow account
func (k Keeper) GetEscrowAccount(ctx context.Context, owner sdk.AccAddress) (types.EscrowAccount, error) {
	store := k.getStore(ctx)
	bz := store.Get(EscrowAccountKey(owner))

	if bz == nil {
		return types.EscrowAccount{}, types.ErrEscrowNotFound.Wrapf("owner %s", owner.String())
	}

	var account types.EscrowAccount
	if err := k.cdc.Unmarshal(bz, &account); err != nil {
		return types.EscrowAccount{}, types.ErrUnmarshalFailed.Wrapf("failed to unmarshal escrow account: %v", err)
	}

	return account, nil
}

// SetEscrowAccount stores a subscriber's escrow account
func (k Keeper) SetEscrowAccount(ctx context.Context, account types.EscrowAccount) error {
	store := k.getStore(ctx)
	bz, err := k.cdc.Marshal(&account)
	if err != nil {
		return types.ErrMarshalFailed.Wrapf("failed to marshal escrow account: %v", err)
	}

	owner, err := sdk.AccAddressFromBech32(account.Owner)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("failed to parse owner: %v", err)
	}

	store.Set(EscrowAccountKey(owner), bz)
	return nil
}

// IterateEscrowAccounts iterates over all escrow accounts
func (k Keeper) IterateEscrowAccounts(ctx context.Context, cb func(account types.EscrowAccount) (stop bool, err error)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, EscrowKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var account types.EscrowAccount
		if err := k.cdc.Unmarshal(iterator.Value(), &account); err != nil {
			return types.ErrUnmarshalFailed.Wrapf("failed to unmarshal escrow account: %v", err)
		}

		stop, err := cb(account)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}

	return nil
}
