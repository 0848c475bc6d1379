package ante_test

import (
	"context"
	"testing"

	"cosmossdk.io/core/address"
	txsigning "cosmossdk.io/x/tx/signing"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authante "github.com/cosmos/cosmos-sdk/x/auth/ante"
	authcodec "github.com/cosmos/cosmos-sdk/x/auth/codec"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	vmante "github.com/vaultmesh/vaultmesh/app/ante"
)

type mockAccountKeeper struct{}

func (mockAccountKeeper) GetParams(context.Context) authtypes.Params {
	return authtypes.DefaultParams()
}
func (mockAccountKeeper) GetAccount(context.Context, sdk.AccAddress) sdk.AccountI { return nil }
func (mockAccountKeeper) SetAccount(context.Context, sdk.AccountI)                {}
func (mockAccountKeeper) GetModuleAddress(string) sdk.AccAddress                  { return nil }
func (mockAccountKeeper) AddressCodec() address.Codec {
	return authcodec.NewBech32Codec("vault")
}

var _ authante.AccountKeeper = mockAccountKeeper{}

type mockBankKeeper struct{}

func (mockBankKeeper) IsSendEnabledCoins(context.Context, ...sdk.Coin) error { return nil }
func (mockBankKeeper) SendCoins(context.Context, sdk.AccAddress, sdk.AccAddress, sdk.Coins) error {
	return nil
}
func (mockBankKeeper) SendCoinsFromAccountToModule(context.Context, sdk.AccAddress, string, sdk.Coins) error {
	return nil
}

var _ authtypes.BankKeeper = mockBankKeeper{}

func TestNewAnteHandler_MissingAccountKeeper(t *testing.T) {
	handler, err := vmante.NewAnteHandler(vmante.HandlerOptions{})
	require.Error(t, err)
	require.Nil(t, handler)
	require.Contains(t, err.Error(), "account keeper is required")
}

func TestNewAnteHandler_MissingBankKeeper(t *testing.T) {
	handler, err := vmante.NewAnteHandler(vmante.HandlerOptions{
		AccountKeeper: mockAccountKeeper{},
	})
	require.Error(t, err)
	require.Nil(t, handler)
	require.Contains(t, err.Error(), "bank keeper is required")
}

func TestNewAnteHandler_MissingSignModeHandler(t *testing.T) {
	handler, err := vmante.NewAnteHandler(vmante.HandlerOptions{
		AccountKeeper: mockAccountKeeper{},
		BankKeeper:    mockBankKeeper{},
	})
	require.Error(t, err)
	require.Nil(t, handler)
	require.Contains(t, err.Error(), "sign mode handler is required")
}

func TestNewAnteHandler_Complete(t *testing.T) {
	handler, err := vmante.NewAnteHandler(vmante.HandlerOptions{
		AccountKeeper:   mockAccountKeeper{},
		BankKeeper:      mockBankKeeper{},
		SignModeHandler: txsigning.NewHandlerMap(),
		SigGasConsumer:  authante.DefaultSigVerificationGasConsumer,
	})
	require.NoError(t, err)
	require.NotNil(t, handler)
}
