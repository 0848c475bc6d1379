package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vaultmesh/vaultmesh/testutil/keeper"
	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

func TestDeposit_CreatesAccount(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)

	depositor := newTestAddr(t)
	f.FundAccount(t, ctx, depositor, math.NewInt(5_000))

	balance, err := f.Keeper.Deposit(ctx, depositor, math.NewInt(1_200))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_200), balance)

	account, err := f.Keeper.GetEscrowAccount(ctx, depositor)
	require.NoError(t, err)
	require.Equal(t, depositor.String(), account.Owner)
	require.Equal(t, math.NewInt(1_200), account.Balance)
	require.Equal(t, uint64(0), account.SubscriptionCount)

	// The coins moved into the module account's custody.
	moduleAddr := authtypes.NewModuleAddress(types.ModuleName)
	pooled := f.BankKeeper.GetBalance(ctx, moduleAddr, types.DefaultDenom)
	require.Equal(t, math.NewInt(1_200), pooled.Amount)
}

func TestDeposit_Accumulates(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)

	depositor := newTestAddr(t)
	f.FundAccount(t, ctx, depositor, math.NewInt(5_000))

	_, err := f.Keeper.Deposit(ctx, depositor, math.NewInt(1_000))
	require.NoError(t, err)
	balance, err := f.Keeper.Deposit(ctx, depositor, math.NewInt(500))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_500), balance)
}

func TestDeposit_InvalidAmount(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)

	depositor := newTestAddr(t)
	f.FundAccount(t, ctx, depositor, math.NewInt(5_000))

	_, err := f.Keeper.Deposit(ctx, depositor, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidDeposit)

	_, err = f.Keeper.Deposit(ctx, depositor, math.NewInt(-10))
	require.ErrorIs(t, err, types.ErrInvalidDeposit)
}

func TestDeposit_InsufficientFunds(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)

	depositor := newTestAddr(t)
	f.FundAccount(t, ctx, depositor, math.NewInt(100))

	_, err := f.Keeper.Deposit(ctx, depositor, math.NewInt(101))
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	// No escrow record appears on a failed deposit.
	_, err = f.Keeper.GetEscrowAccount(ctx, depositor)
	require.ErrorIs(t, err, types.ErrEscrowNotFound)
}

func TestGetEscrowAccount_NotFound(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)

	_, err := f.Keeper.GetEscrowAccount(ctx, newTestAddr(t))
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrEscrowNotFound)
}

func TestIterateEscrowAccounts(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)

	for i := 0; i < 3; i++ {
		depositor := newTestAddr(t)
		f.FundAccount(t, ctx, depositor, math.NewInt(1_000))
		_, err := f.Keeper.Deposit(ctx, depositor, math.NewInt(100))
		require.NoError(t, err)
	}

	total := math.ZeroInt()
	count := 0
	require.NoError(t, f.Keeper.IterateEscrowAccounts(ctx, func(account types.EscrowAccount) (bool, error) {
		total = total.Add(account.Balance)
		count++
		return false, nil
	}))
	require.Equal(t, 3, count)
	require.Equal(t, math.NewInt(300), total)
}
