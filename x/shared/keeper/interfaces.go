// Package keeper provides shared keeper interfaces for cross-module communication.
// Versioned interfaces allow stable API contracts between modules.
package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// =============================================================================
// Rental Keeper Interfaces (Versioned)
// =============================================================================

// RentalKeeperV1 defines the minimal rental keeper interface for cross-module use.
// Version 1.0 - Initial release for testnet
// Modules should depend on this interface rather than the concrete keeper.
type RentalKeeperV1 interface {
	// GetAppInfo returns marketplace listing information by app ID.
	// Returns the listing and whether it exists.
	GetAppInfo(ctx context.Context, appID uint64) (AppInfo, bool)

	// IsBootstrapped checks whether the registry oracle record exists.
	IsBootstrapped(ctx context.Context) bool
}

// RentalKeeperV1Extended extends V1 with escrow and subscription queries.
// Use this when you need more rental functionality.
type RentalKeeperV1Extended interface {
	RentalKeeperV1

	// GetEscrowInfo returns a subscriber's escrow account state.
	GetEscrowInfo(ctx context.Context, owner sdk.AccAddress) (EscrowInfo, bool)

	// GetSubscriptionInfo returns one subscription by owner and sequence ID.
	GetSubscriptionInfo(ctx context.Context, owner sdk.AccAddress, id uint64) (SubscriptionInfo, bool)
}

// AppInfo holds listing data returned by rental queries.
type AppInfo struct {
	AppID         uint64
	ManifestHash  string
	BasePrice     sdkmath.Int
	Creator       sdk.AccAddress
	PayoutAddress sdk.AccAddress
}

// EscrowInfo holds escrow account data returned by rental queries.
type EscrowInfo struct {
	Owner             sdk.AccAddress
	Balance           sdkmath.Int
	SubscriptionCount uint64
}

// SubscriptionInfo holds subscription data returned by rental queries.
type SubscriptionInfo struct {
	ID           uint64
	Subscriber   sdk.AccAddress
	AppID        uint64
	CurrentPrice sdkmath.Int
	Assigned     bool
	Closed       bool
}

// =============================================================================
// Version Constants
// =============================================================================

const (
	// RentalKeeperVersion is the current rental keeper interface version.
	RentalKeeperVersion = "v1.0.0"
)

// =============================================================================
// Interface Compatibility Notes
// =============================================================================

/*
API Versioning Guidelines:

1. MINOR VERSION BUMP (v1.0 -> v1.1):
   - Add new methods to Extended interfaces
   - Never remove or change existing method signatures
   - Existing code continues to work

2. MAJOR VERSION BUMP (v1 -> v2):
   - Create new interface (e.g., RentalKeeperV2)
   - May change method signatures
   - Old interfaces remain for backwards compatibility
   - Deprecate old versions with timeline

3. DEPRECATION:
   - Add "Deprecated: use XxxV2 instead" comment
   - Keep deprecated interfaces for at least 2 minor releases
   - Remove in next major version

4. EMBEDDING:
   - V2 can embed V1 to inherit methods
   - Example: type RentalKeeperV2 interface { RentalKeeperV1; NewMethod() }

5. ADAPTER PATTERN:
   - If keeper doesn't match interface exactly, create an adapter
   - Adapters live in the module using the interface
*/
