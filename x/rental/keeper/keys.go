package keeper

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x01}

	// OracleKey is the key for the registry oracle record
	OracleKey = []byte{0x10}

	// AppCountKey is the key for the next app ID counter
	AppCountKey = []byte{0x11}

	// AppKeyPrefix is the prefix for app listing storage
	AppKeyPrefix = []byte{0x12}

	// EscrowKeyPrefix is the prefix for subscriber escrow accounts
	EscrowKeyPrefix = []byte{0x13}

	// SubscriptionKeyPrefix is the prefix for subscription storage.
	// Key: prefix + subscriber address + sequence id, so one subscriber's
	// subscriptions are contiguous under a single range.
	SubscriptionKeyPrefix = []byte{0x14}

	// WorkerNonceKeyPrefix is the prefix for worker replay nonces,
	// keyed by the 32-byte worker identity key
	WorkerNonceKeyPrefix = []byte{0x15}
)

// AppKey returns the store key for an app listing
func AppKey(appID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, appID)
	return append(AppKeyPrefix, bz...)
}

// EscrowAccountKey returns the store key for a subscriber's escrow account
func EscrowAccountKey(owner sdk.AccAddress) []byte {
	return append(EscrowKeyPrefix, owner.Bytes()...)
}

// SubscriptionKey returns the store key for one subscription
func SubscriptionKey(subscriber sdk.AccAddress, id uint64) []byte {
	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, id)
	return append(append(SubscriptionKeyPrefix, subscriber.Bytes()...), idBz...)
}

// SubscriptionPrefixForSubscriber returns the prefix covering all of one
// subscriber's subscriptions
func SubscriptionPrefixForSubscriber(subscriber sdk.AccAddress) []byte {
	return append(SubscriptionKeyPrefix, subscriber.Bytes()...)
}

// WorkerNonceKey returns the store key for a worker's replay nonce
func WorkerNonceKey(identity []byte) []byte {
	return append(WorkerNonceKeyPrefix, identity...)
}

// GetAppIDFromBytes converts bytes to an app ID
func GetAppIDFromBytes(bz []byte) uint64 {
	return binary.BigEndian.Uint64(bz)
}

// GetSubscriptionIDFromBytes converts the trailing bytes of a subscription
// key to a sequence ID
func GetSubscriptionIDFromBytes(bz []byte) uint64 {
	return binary.BigEndian.Uint64(bz)
}
