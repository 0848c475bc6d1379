package api

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ==================== Authentication Types ====================

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Recover  bool   `json:"recover,omitempty"`  // If true, recover from mnemonic
	Mnemonic string `json:"mnemonic,omitempty"` // BIP39 mnemonic for recovery
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"` // Seconds until access token expires
	Username     string `json:"username"`
	UserID       string `json:"user_id"`
	Address      string `json:"address,omitempty"`
	Mnemonic     string `json:"mnemonic,omitempty"` // Only included on new wallet creation
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse represents a token refresh response
type RefreshTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // Seconds until access token expires
}

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

// ==================== Rental Market Types ====================

// RentalParamsResponse represents the rental module parameters
type RentalParamsResponse struct {
	Denom                 string `json:"denom"`
	BidWindowSeconds      int64  `json:"bid_window_seconds"`
	ClaimWindowSeconds    int64  `json:"claim_window_seconds"`
	ReportIntervalSeconds int64  `json:"report_interval_seconds"`
	SlaWindowSeconds      int64  `json:"sla_window_seconds"`
}

// RegistryResponse represents the registry bootstrap record
type RegistryResponse struct {
	ConsensusKey     string `json:"consensus_key"`
	AttestationProof string `json:"attestation_proof"`
	CreatedAt        int64  `json:"created_at"`
	AppCount         uint64 `json:"app_count"`
}

// AppListing represents a marketplace app listing
type AppListing struct {
	ID            uint64 `json:"id"`
	ManifestHash  string `json:"manifest_hash"`
	BasePrice     string `json:"base_price"`
	Creator       string `json:"creator"`
	PayoutAddress string `json:"payout_address"`
	CreatedAt     int64  `json:"created_at"`
}

// AppListResponse represents a page of app listings
type AppListResponse struct {
	Apps  []AppListing `json:"apps"`
	Total uint64       `json:"total"`
}

// EscrowAccountResponse represents a subscriber's escrow account
type EscrowAccountResponse struct {
	Owner             string `json:"owner"`
	Balance           string `json:"balance"`
	SubscriptionCount uint64 `json:"subscription_count"`
}

// SubscriptionView represents one rental subscription
type SubscriptionView struct {
	ID             uint64 `json:"id"`
	Subscriber     string `json:"subscriber"`
	AppID          uint64 `json:"app_id"`
	ParamsHash     string `json:"params_hash"`
	MaxPrice       string `json:"max_price"`
	CurrentPrice   string `json:"current_price"`
	Assigned       bool   `json:"assigned"`
	Executor       string `json:"executor,omitempty"`
	ExecutorKey    string `json:"executor_key,omitempty"`
	BidEndTime     int64  `json:"bid_end_time"`
	WorkNonce      uint64 `json:"work_nonce"`
	LastReportTime int64  `json:"last_report_time"`
	Restart        bool   `json:"restart"`
	Closed         bool   `json:"closed"`
}

// SubscriptionListResponse represents a page of subscriptions
type SubscriptionListResponse struct {
	Subscriptions []SubscriptionView `json:"subscriptions"`
	Total         uint64             `json:"total"`
}

// WorkerNonceResponse represents a worker's current replay nonce
type WorkerNonceResponse struct {
	WorkerKey string `json:"worker_key"`
	Nonce     uint64 `json:"nonce"`
}

// ==================== Wallet Types ====================

// BalanceResponse represents wallet balance response
type BalanceResponse struct {
	Address        string  `json:"address"`
	Balance        string  `json:"balance"`         // Native balance in uvlt
	DisplayBalance float64 `json:"display_balance"` // Balance in VLT
	USDBalance     float64 `json:"usd_balance,omitempty"`
}

// SendTokensRequest represents a token transfer request
type SendTokensRequest struct {
	ToAddress string `json:"to_address" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Denom     string `json:"denom" binding:"required"`
	Memo      string `json:"memo,omitempty"`
}

// SendTokensResponse represents a token transfer response
type SendTokensResponse struct {
	TxHash    string `json:"tx_hash"`
	Height    int64  `json:"height"`
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Transaction represents a blockchain transaction
type Transaction struct {
	Hash      string    `json:"hash"`
	Height    int64     `json:"height"`
	Type      string    `json:"type"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    string    `json:"amount"`
	Denom     string    `json:"denom"`
	Fee       string    `json:"fee"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Memo      string    `json:"memo,omitempty"`
}

// TransactionHistoryResponse represents transaction history
type TransactionHistoryResponse struct {
	Transactions []Transaction `json:"transactions"`
	TotalCount   int           `json:"total_count"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
}

// ==================== Market Data Types ====================

// MarketStats represents a marketplace overview
type MarketStats struct {
	TotalApps             uint64    `json:"total_apps"`
	Bootstrapped          bool      `json:"bootstrapped"`
	Denom                 string    `json:"denom"`
	BidWindowSeconds      int64     `json:"bid_window_seconds"`
	ClaimWindowSeconds    int64     `json:"claim_window_seconds"`
	ReportIntervalSeconds int64     `json:"report_interval_seconds"`
	SlaWindowSeconds      int64     `json:"sla_window_seconds"`
	LastUpdated           time.Time `json:"last_updated"`
}

// ==================== WebSocket Types ====================

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WSSubscribeMessage represents a subscription message
type WSSubscribeMessage struct {
	Type    string `json:"type"`    // "subscribe" or "unsubscribe"
	Channel string `json:"channel"` // "market", "subscriptions", "bids"
}

// ==================== Common Response Types ====================

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
	Offset   int `json:"offset"`
}

// DefaultPagination returns default pagination parameters
func DefaultPagination() PaginationParams {
	return PaginationParams{
		Page:     1,
		PageSize: 20,
		Offset:   0,
	}
}

// ==================== Helper Types ====================

// CoinsFromString converts string amount to sdk.Coins
func CoinsFromString(amount, denom string) (sdk.Coins, error) {
	coin, err := sdk.ParseCoinNormalized(amount + denom)
	if err != nil {
		return nil, err
	}
	return sdk.NewCoins(coin), nil
}
