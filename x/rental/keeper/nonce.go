package keeper

import (
	"context"
	"encoding/binary"

	storetypes "cosmossdk.io/store/types"
)

// GetWorkerNonce returns the replay nonce a worker identity must attest to
// on its next authenticated call. A worker that has never called starts at
// zero.
func (k Keeper) GetWorkerNonce(ctx context.Context, identity []byte) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(WorkerNonceKey(identity))

	if bz == nil {
		return 0
	}

	return binary.BigEndian.Uint64(bz)
}

// SetWorkerNonce stores a worker identity's replay nonce
func (k Keeper) SetWorkerNonce(ctx context.Context, identity []byte, nonce uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, nonce)
	store.Set(WorkerNonceKey(identity), bz)
}

// bumpWorkerNonce advances a worker identity's replay nonce by one. Every
// successfully authenticated call burns exactly one nonce, consuming the
// signature it arrived with.
func (k Keeper) bumpWorkerNonce(ctx context.Context, identity []byte) {
	k.SetWorkerNonce(ctx, identity, k.GetWorkerNonce(ctx, identity)+1)
}

// IterateWorkerNonces iterates over all stored worker nonces
func (k Keeper) IterateWorkerNonces(ctx context.Context, cb func(identity []byte, nonce uint64) (stop bool)) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, WorkerNonceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		identity := iterator.Key()[len(WorkerNonceKeyPrefix):]
		nonce := binary.BigEndian.Uint64(iterator.Value())

		if cb(identity, nonce) {
			break
		}
	}
}
