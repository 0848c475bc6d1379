package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vaultmesh/vaultmesh/testutil/keeper"
	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

func TestInitRegistry_Valid(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)
	oracle := newTestOracle(t)

	require.NoError(t, k.InitRegistry(ctx, oracle.keyHex(), "genesis attestation"))

	record, err := k.GetOracle(ctx)
	require.NoError(t, err)
	require.Equal(t, oracle.keyHex(), record.ConsensusKey)
	require.Equal(t, "genesis attestation", record.AttestationProof)
	require.Equal(t, ctx.BlockTime().Unix(), record.CreatedAt)

	count, err := k.GetAppCount(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)
}

func TestInitRegistry_AlreadyInitialized(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)
	oracle := newTestOracle(t)

	require.NoError(t, k.InitRegistry(ctx, oracle.keyHex(), "proof"))

	second := newTestOracle(t)
	err := k.InitRegistry(ctx, second.keyHex(), "proof")
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrRegistryInitialized)

	// The original oracle key survives the attempt.
	record, err := k.GetOracle(ctx)
	require.NoError(t, err)
	require.Equal(t, oracle.keyHex(), record.ConsensusKey)
}

func TestInitRegistry_InvalidKey(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)

	for _, key := range []string{"", "zz", "abcd", "not-hex-at-all"} {
		err := k.InitRegistry(ctx, key, "proof")
		require.Error(t, err)
		require.ErrorIs(t, err, types.ErrInvalidWorkerKey)
	}
}

func TestGetOracle_NotInitialized(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)

	_, err := k.GetOracle(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrRegistryNotInitialized)

	_, err = k.GetAppCount(ctx)
	require.ErrorIs(t, err, types.ErrRegistryNotInitialized)
}

func TestAnnounceWorker_RequiresRegistry(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)
	worker := newTestWorker(t)

	err := k.AnnounceWorker(ctx, worker.addr, "proof", worker.keyHex, "1.2.3.4:9000")
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrRegistryNotInitialized)
}

func TestAnnounceWorker_EmitsEvent(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)
	oracle := newTestOracle(t)
	require.NoError(t, k.InitRegistry(ctx, oracle.keyHex(), "proof"))

	worker := newTestWorker(t)
	require.NoError(t, k.AnnounceWorker(ctx, worker.addr, "proof", worker.keyHex, "1.2.3.4:9000"))

	events := ctx.EventManager().Events()
	var found bool
	for _, ev := range events {
		if ev.Type == types.EventTypeWorkerAnnounced {
			found = true
		}
	}
	require.True(t, found)
}

func TestRegisterApp_Valid(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)
	oracle := newTestOracle(t)
	require.NoError(t, k.InitRegistry(ctx, oracle.keyHex(), "proof"))

	creator := newTestAddr(t)
	id, err := k.RegisterApp(ctx, creator, "bafybeigdyrztmanifest", math.NewInt(250), creator)
	require.NoError(t, err)
	require.Equal(t, uint64(0), id)

	app, err := k.GetApp(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "bafybeigdyrztmanifest", app.ManifestHash)
	require.Equal(t, math.NewInt(250), app.BasePrice)
	require.Equal(t, creator.String(), app.Creator)
	require.Equal(t, creator.String(), app.PayoutAddress)

	count, err := k.GetAppCount(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), count)
}

func TestRegisterApp_SequentialIDs(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)
	oracle := newTestOracle(t)
	require.NoError(t, k.InitRegistry(ctx, oracle.keyHex(), "proof"))

	for want := uint64(0); want < 3; want++ {
		creator := newTestAddr(t)
		id, err := k.RegisterApp(ctx, creator, "manifest", math.NewInt(100), creator)
		require.NoError(t, err)
		require.Equal(t, want, id)
	}
}

func TestRegisterApp_PayoutMustBeCreator(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)
	oracle := newTestOracle(t)
	require.NoError(t, k.InitRegistry(ctx, oracle.keyHex(), "proof"))

	creator := newTestAddr(t)
	other := newTestAddr(t)
	_, err := k.RegisterApp(ctx, creator, "manifest", math.NewInt(100), other)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrAddressMismatch)
}

func TestRegisterApp_RequiresRegistry(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)

	creator := newTestAddr(t)
	_, err := k.RegisterApp(ctx, creator, "manifest", math.NewInt(100), creator)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrRegistryNotInitialized)
}

func TestGetApp_NotFound(t *testing.T) {
	k, ctx := keepertest.RentalKeeper(t)
	oracle := newTestOracle(t)
	require.NoError(t, k.InitRegistry(ctx, oracle.keyHex(), "proof"))

	_, err := k.GetApp(ctx, 99)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrAppNotFound)
}
