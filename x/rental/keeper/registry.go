package keeper

import (
	"context"
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// InitRegistry bootstraps the marketplace registry. It records the oracle
// consensus key every worker attestation must verify against and creates the
// app counter at zero. The registry can only be initialized once; the oracle
// record is immutable afterwards.
func (k Keeper) InitRegistry(ctx context.Context, consensusKey, attestationProof string) error {
	store := k.getStore(ctx)

	if store.Has(OracleKey) {
		return types.ErrRegistryInitialized
	}

	if _, err := types.ParseWorkerKey(consensusKey); err != nil {
		return types.ErrInvalidWorkerKey.Wrapf("consensus key: %v", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	oracle := types.Oracle{
		ConsensusKey:     consensusKey,
		AttestationProof: attestationProof,
		CreatedAt:        sdkCtx.BlockTime().Unix(),
	}

	bz, err := k.cdc.Marshal(&oracle)
	if err != nil {
		return types.ErrMarshalFailed.Wrapf("failed to marshal oracle: %v", err)
	}

	store.Set(OracleKey, bz)
	k.setAppCount(ctx, 0)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRegistryInitialized,
			sdk.NewAttribute(types.AttributeKeyOracleKey, consensusKey),
		),
	)

	return nil
}

// GetOracle retrieves the registry oracle record
func (k Keeper) GetOracle(ctx context.Context) (types.Oracle, error) {
	store := k.getStore(ctx)
	bz := store.Get(OracleKey)

	if bz == nil {
		return types.Oracle{}, types.ErrRegistryNotInitialized
	}

	var oracle types.Oracle
	if err := k.cdc.Unmarshal(bz, &oracle); err != nil {
		return types.Oracle{}, types.ErrUnmarshalFailed.Wrapf("failed to unmarshal oracle: %v", err)
	}

	return oracle, nil
}

// AnnounceWorker publishes a worker's attestation proof, transit key, and
// peer address as an event so subscribers can discover it off-chain. The
// announcement writes no state.
func (k Keeper) AnnounceWorker(ctx context.Context, worker sdk.AccAddress, attestationProof, transitKey, peerAddress string) error {
	if _, err := k.GetOracle(ctx); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWorkerAnnounced,
			sdk.NewAttribute(types.AttributeKeyWorker, worker.String()),
			sdk.NewAttribute(types.AttributeKeyWorkerKey, transitKey),
			sdk.NewAttribute(types.AttributeKeyPeerAddress, peerAddress),
		),
	)

	return nil
}

// GetAppCount returns the next app ID. The counter only exists once the
// registry has been bootstrapped.
func (k Keeper) GetAppCount(ctx context.Context) (uint64, error) {
	store := k.getStore(ctx)
	bz := store.Get(AppCountKey)

	if bz == nil {
		return 0, types.ErrRegistryNotInitialized
	}

	return binary.BigEndian.Uint64(bz), nil
}

func (k Keeper) setAppCount(ctx context.Context, count uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, count)
	store.Set(AppCountKey, bz)
}
