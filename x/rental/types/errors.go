package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Rental module sentinel errors

var (
	// Registry errors
	ErrRegistryNotInitialized = sdkerrors.Register(ModuleName, 2, "registry not initialized")
	ErrRegistryInitialized    = sdkerrors.Register(ModuleName, 3, "registry already initialized")
	ErrInvalidAddress         = sdkerrors.Register(ModuleName, 4, "invalid address")
	ErrAddressMismatch        = sdkerrors.Register(ModuleName, 5, "address mismatch")

	// App registry errors
	ErrAppNotFound = sdkerrors.Register(ModuleName, 10, "app not found")
	ErrAppExists   = sdkerrors.Register(ModuleName, 11, "app already registered")

	// Escrow errors
	ErrInvalidDeposit     = sdkerrors.Register(ModuleName, 20, "deposit amount must be positive")
	ErrInsufficientFunds  = sdkerrors.Register(ModuleName, 21, "insufficient spendable funds")
	ErrInsufficientEscrow = sdkerrors.Register(ModuleName, 22, "insufficient escrow balance")
	ErrEscrowNotFound     = sdkerrors.Register(ModuleName, 23, "escrow account not found")

	// Subscription lifecycle errors
	ErrSubscriptionNotFound = sdkerrors.Register(ModuleName, 30, "subscription not found")
	ErrSubscriptionClosed   = sdkerrors.Register(ModuleName, 31, "subscription is closed")
	ErrBidWindowExpired     = sdkerrors.Register(ModuleName, 32, "bidding window expired")
	ErrAlreadyAssigned      = sdkerrors.Register(ModuleName, 33, "bid already claimed")
	ErrNotAssigned          = sdkerrors.Register(ModuleName, 34, "subscription has no assigned worker")
	ErrUnauthorizedWorker   = sdkerrors.Register(ModuleName, 35, "worker is not the recorded winner")
	ErrClaimWindowExpired   = sdkerrors.Register(ModuleName, 36, "claim window expired")
	ErrReportedTooEarly     = sdkerrors.Register(ModuleName, 37, "reported too early")
	ErrRestartPending       = sdkerrors.Register(ModuleName, 38, "subscription awaiting restart recovery")

	// Attestation errors
	ErrUntrustedConsensusKey = sdkerrors.Register(ModuleName, 40, "consensus key does not match registry oracle key")
	ErrMalformedReport       = sdkerrors.Register(ModuleName, 41, "malformed attestation record")
	ErrSignatureVerification = sdkerrors.Register(ModuleName, 42, "signature verification failed")
	ErrInvalidWorkerKey      = sdkerrors.Register(ModuleName, 43, "invalid worker identity key")

	// Internal errors
	ErrValidationFailed = sdkerrors.Register(ModuleName, 50, "message validation failed")
	ErrMarshalFailed    = sdkerrors.Register(ModuleName, 51, "failed to marshal state")
	ErrUnmarshalFailed  = sdkerrors.Register(ModuleName, 52, "failed to unmarshal state")
)
