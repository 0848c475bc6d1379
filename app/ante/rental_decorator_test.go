package ante_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/vaultmesh/vaultmesh/app/ante"
	keepertest "github.com/vaultmesh/vaultmesh/testutil/keeper"
	rentaltypes "github.com/vaultmesh/vaultmesh/x/rental/types"
)

func passThrough(ctx sdk.Context, _ sdk.Tx, _ bool) (sdk.Context, error) {
	return ctx, nil
}

func testWorkerKey(t *testing.T) (string, []byte) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return hex.EncodeToString(pub), pub
}

func wellFormedRecord() []byte {
	return make([]byte, rentaltypes.AttestationPayloadOffset+rentaltypes.AttestationMessageSize)
}

func TestRentalDecorator_PassesUnrelatedMsgs(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)
	dec := ante.NewRentalDecorator(f.Keeper)

	_, err := dec.AnteHandle(ctx, mockTx{msgs: []sdk.Msg{mockMsg{}}}, false, passThrough)
	require.NoError(t, err)
}

func TestRentalDecorator_SkipsSimulation(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)
	dec := ante.NewRentalDecorator(f.Keeper)

	msg := &rentaltypes.MsgPlaceBid{WorkerKey: "not-hex"}
	_, err := dec.AnteHandle(ctx, mockTx{msgs: []sdk.Msg{msg}}, true, passThrough)
	require.NoError(t, err)
}

func TestRentalDecorator_RejectsBadWorkerKey(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)
	dec := ante.NewRentalDecorator(f.Keeper)

	msg := &rentaltypes.MsgPlaceBid{
		WorkerKey: "zz",
		Signature: make([]byte, ed25519.SignatureSize),
		Record:    wellFormedRecord(),
	}
	_, err := dec.AnteHandle(ctx, mockTx{msgs: []sdk.Msg{msg}}, false, passThrough)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid worker key")
}

func TestRentalDecorator_RejectsBadSignatureSize(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)
	dec := ante.NewRentalDecorator(f.Keeper)

	workerKey, _ := testWorkerKey(t)
	msg := &rentaltypes.MsgClaimBid{
		WorkerKey: workerKey,
		Signature: make([]byte, 10),
		Record:    wellFormedRecord(),
	}
	_, err := dec.AnteHandle(ctx, mockTx{msgs: []sdk.Msg{msg}}, false, passThrough)
	require.Error(t, err)
	require.Contains(t, err.Error(), "signature must be")
}

func TestRentalDecorator_RejectsBadRecordSize(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)
	dec := ante.NewRentalDecorator(f.Keeper)

	workerKey, _ := testWorkerKey(t)
	msg := &rentaltypes.MsgReportWork{
		WorkerKey: workerKey,
		Signature: make([]byte, ed25519.SignatureSize),
		Record:    make([]byte, 12),
	}
	_, err := dec.AnteHandle(ctx, mockTx{msgs: []sdk.Msg{msg}}, false, passThrough)
	require.Error(t, err)
	require.Contains(t, err.Error(), "verification record must be")
}

func TestRentalDecorator_RejectsBeforeRegistryInit(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)
	dec := ante.NewRentalDecorator(f.Keeper)

	workerKey, _ := testWorkerKey(t)
	msg := &rentaltypes.MsgPlaceBid{
		WorkerKey: workerKey,
		Signature: make([]byte, ed25519.SignatureSize),
		Record:    wellFormedRecord(),
	}
	_, err := dec.AnteHandle(ctx, mockTx{msgs: []sdk.Msg{msg}}, false, passThrough)
	require.ErrorIs(t, err, rentaltypes.ErrRegistryNotInitialized)
}

func TestRentalDecorator_OpenSubscriptionNeedsEscrow(t *testing.T) {
	f, ctx := keepertest.RentalKeeperFixture(t)
	dec := ante.NewRentalDecorator(f.Keeper)

	subscriber := sdk.AccAddress("subscriber_________1")
	msg := &rentaltypes.MsgOpenSubscription{
		Subscriber: subscriber.String(),
		AppId:      0,
		MaxPrice:   math.NewInt(100),
	}

	// No escrow account at all.
	_, err := dec.AnteHandle(ctx, mockTx{msgs: []sdk.Msg{msg}}, false, passThrough)
	require.ErrorIs(t, err, rentaltypes.ErrEscrowNotFound)

	// Escrow short of the price ceiling.
	f.FundAccount(t, ctx, subscriber, math.NewInt(1_000))
	_, err = f.Keeper.Deposit(ctx, subscriber, math.NewInt(50))
	require.NoError(t, err)

	_, err = dec.AnteHandle(ctx, mockTx{msgs: []sdk.Msg{msg}}, false, passThrough)
	require.ErrorIs(t, err, rentaltypes.ErrInsufficientEscrow)

	// Topped up to the ceiling the structural check passes.
	_, err = f.Keeper.Deposit(ctx, subscriber, math.NewInt(50))
	require.NoError(t, err)

	_, err = dec.AnteHandle(ctx, mockTx{msgs: []sdk.Msg{msg}}, false, passThrough)
	require.NoError(t, err)
}
