package types

// Event types for the rental module
// All event types use lowercase with underscore separator (module_action format)
const (
	// Registry events
	EventTypeRegistryInitialized = "rental_registry_init"
	EventTypeWorkerAnnounced     = "rental_worker_announce"
	EventTypeAppRegistered       = "rental_app_register"

	// Escrow events
	EventTypeDeposit = "rental_deposit"
	EventTypePayout  = "rental_payout"

	// Subscription events
	EventTypeSubscriptionOpened = "rental_subscription_open"
	EventTypeSubscriptionClosed = "rental_subscription_close"

	// Auction events
	EventTypeBidPlaced  = "rental_bid_placed"
	EventTypeBidWon     = "rental_bid_won"
	EventTypeBidClaimed = "rental_bid_claim"

	// Liveness events
	EventTypeWorkReported   = "rental_work_report"
	EventTypeRestartFlagged = "rental_restart_flagged"

	// Governance events
	EventTypeParamsUpdated = "rental_params_updated"
)

// Event attribute keys for the rental module
const (
	AttributeKeyAuthority    = "authority"
	AttributeKeyOracleKey    = "oracle_key"
	AttributeKeyWorker       = "worker"
	AttributeKeyWorkerKey    = "worker_key"
	AttributeKeyPeerAddress  = "peer_address"
	AttributeKeyAppID        = "app_id"
	AttributeKeyManifest     = "manifest_hash"
	AttributeKeyPayout       = "payout_address"
	AttributeKeySubscriber   = "subscriber"
	AttributeKeyAmount       = "amount"
	AttributeKeyBalance      = "balance"
	AttributeKeySubscription = "subscription_id"
	AttributeKeyPrice        = "price"
	AttributeKeyBidEnd       = "bid_end"
	AttributeKeyWorkNonce    = "work_nonce"
	AttributeKeyReason       = "reason"
)
