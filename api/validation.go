package api

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
)

// Validation constants
const (
	MaxRequestSize    = 1 << 20 // 1 MB
	MaxUsernameLength = 50
	MinUsernameLength = 3
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxMemoLength     = 256
	MaxAmountLength   = 30
	MaxAddressLength  = 100
	MaxHashLength     = 128
	WorkerKeyHexLen   = 64 // 32-byte ed25519 key, hex encoded
)

// Regular expressions for validation
var (
	// alphanumeric with underscore and hyphen
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// Bech32 address format (vault1...)
	bech32Regex = regexp.MustCompile(`^[a-z]{3,10}1[a-z0-9]{38,100}$`)

	// Hex string (0x prefix optional)
	hexRegex = regexp.MustCompile(`^(0x)?[0-9a-fA-F]+$`)

	// Numeric string (positive decimal)
	numericRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	if !v.HasErrors() {
		return ""
	}
	var sb strings.Builder
	for i, err := range v.Errors {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return sb.String()
}

// ===================  Input Sanitization ====================

// SanitizeString removes potentially dangerous characters and HTML
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")
	// Escape HTML entities
	input = html.EscapeString(input)
	// Trim whitespace
	input = strings.TrimSpace(input)
	return input
}

// SanitizeURL validates and sanitizes URL input
func SanitizeURL(input string) (string, error) {
	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid URL format")
	}

	// Only allow http and https
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("only http and https schemes are allowed")
	}

	return parsed.String(), nil
}

// SanitizeJSON escapes JSON strings to prevent injection
func SanitizeJSON(input string) string {
	// Remove control characters
	input = strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, input)
	return input
}

// =================== Username Validation ===================

// ValidateUsername validates username format and length
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if len(username) < MinUsernameLength {
		return fmt.Errorf("username must be at least %d characters", MinUsernameLength)
	}

	if len(username) > MaxUsernameLength {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLength)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	// Check for reserved usernames
	reserved := []string{"admin", "root", "system", "api", "vaultmesh", "test"}
	lowerUsername := strings.ToLower(username)
	for _, r := range reserved {
		if lowerUsername == r {
			return fmt.Errorf("username is reserved")
		}
	}

	return nil
}

// =================== Password Validation ===================

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
	}

	// Check for at least one uppercase, one lowercase, one digit
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("password must contain at least one uppercase letter, one lowercase letter, and one digit")
	}

	return nil
}

// =================== Address Validation ===================

// ValidateAddress validates blockchain address format
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address is required")
	}

	address = strings.TrimSpace(address)

	if len(address) > MaxAddressLength {
		return fmt.Errorf("address too long")
	}

	// Try to parse as Cosmos SDK address
	_, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		// Check if it matches bech32 format at least
		if !bech32Regex.MatchString(address) {
			return fmt.Errorf("invalid address format")
		}
	}

	return nil
}

// =================== Amount Validation ===================

// ValidateAmount validates amount strings
func ValidateAmount(amount string) error {
	if amount == "" {
		return fmt.Errorf("amount is required")
	}

	amount = strings.TrimSpace(amount)

	if len(amount) > MaxAmountLength {
		return fmt.Errorf("amount too long")
	}

	if !numericRegex.MatchString(amount) {
		return fmt.Errorf("amount must be a positive number")
	}

	// Try to parse as SDK Dec (using LegacyNewDecFromStr for SDK v0.50+)
	_, err := math.LegacyNewDecFromStr(amount)
	if err != nil {
		return fmt.Errorf("invalid amount format: %w", err)
	}

	return nil
}

// =================== Token/Denom Validation ===================

// ValidateDenom validates token denomination
func ValidateDenom(denom string) error {
	if denom == "" {
		return fmt.Errorf("denom is required")
	}

	denom = strings.TrimSpace(denom)

	if len(denom) < 3 || len(denom) > 128 {
		return fmt.Errorf("denom must be between 3 and 128 characters")
	}

	// Check if it's alphanumeric with some special chars
	validDenom := regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/-]{2,127}$`)
	if !validDenom.MatchString(denom) {
		return fmt.Errorf("invalid denom format")
	}

	return nil
}

// =================== ID Validation ===================

// ValidateID parses a numeric path parameter used for app and subscription
// ids
func ValidateID(idStr string) (uint64, error) {
	if idStr == "" {
		return 0, fmt.Errorf("id is required")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be a non-negative integer")
	}

	return id, nil
}

// ValidateWorkerKey validates a hex-encoded ed25519 worker identity key
func ValidateWorkerKey(workerKey string) error {
	if workerKey == "" {
		return fmt.Errorf("worker key is required")
	}

	workerKey = strings.TrimSpace(workerKey)

	if len(workerKey) != WorkerKeyHexLen {
		return fmt.Errorf("worker key must be %d hex characters", WorkerKeyHexLen)
	}

	if !hexRegex.MatchString(workerKey) {
		return fmt.Errorf("worker key must be hex encoded")
	}

	return nil
}

// =================== Hash Validation ===================

// ValidateHash validates hex hash strings
func ValidateHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("hash is required")
	}

	hash = strings.TrimSpace(hash)

	// Remove 0x prefix if present
	hash = strings.TrimPrefix(hash, "0x")

	if len(hash) > MaxHashLength {
		return fmt.Errorf("hash too long")
	}

	if !hexRegex.MatchString(hash) {
		return fmt.Errorf("invalid hash format")
	}

	return nil
}

// =================== Memo Validation ===================

// ValidateMemo validates transaction memo
func ValidateMemo(memo string) error {
	if len(memo) > MaxMemoLength {
		return fmt.Errorf("memo must not exceed %d characters", MaxMemoLength)
	}

	// Check for null bytes and control characters
	for _, r := range memo {
		if r == 0 || (r < 32 && r != '\n' && r != '\r' && r != '\t') {
			return fmt.Errorf("memo contains invalid characters")
		}
	}

	return nil
}

// =================== Pagination Validation ===================

// ValidatePagination validates and sanitizes pagination parameters
func ValidatePagination(params *PaginationParams) error {
	if params.Page < 1 {
		params.Page = 1
	}

	if params.PageSize < 1 {
		params.PageSize = 20
	}

	if params.PageSize > 100 {
		params.PageSize = 100
	}

	params.Offset = (params.Page - 1) * params.PageSize

	return nil
}

// =================== Query Parameter Validation ===================

// ValidateLimit validates limit query parameter
func ValidateLimit(limitStr string, defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if limitStr != "" {
		if regexp.MustCompile(`^[0-9]+$`).MatchString(limitStr) {
			fmt.Sscanf(limitStr, "%d", &limit)
		}
	}

	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return limit
}

// ValidateHeight validates block height
func ValidateHeight(heightStr string) (int64, error) {
	if heightStr == "" {
		return 0, fmt.Errorf("height is required")
	}

	if !regexp.MustCompile(`^[0-9]+$`).MatchString(heightStr) {
		return 0, fmt.Errorf("height must be a positive integer")
	}

	var height int64
	_, err := fmt.Sscanf(heightStr, "%d", &height)
	if err != nil {
		return 0, fmt.Errorf("invalid height format")
	}

	if height < 0 {
		return 0, fmt.Errorf("height must be non-negative")
	}

	if height > 1e12 { // Sanity check
		return 0, fmt.Errorf("height too large")
	}

	return height, nil
}

// =================== Request Validation ===================

// ValidateRegisterRequest validates registration request
func ValidateRegisterRequest(req *RegisterRequest) error {
	errors := &ValidationErrors{}

	if err := ValidateUsername(req.Username); err != nil {
		errors.Add("username", err.Error())
	}

	if err := ValidatePassword(req.Password); err != nil {
		errors.Add("password", err.Error())
	}

	if errors.HasErrors() {
		return errors
	}

	// Sanitize
	req.Username = SanitizeString(req.Username)

	return nil
}

// ValidateLoginRequest validates login request
func ValidateLoginRequest(req *LoginRequest) error {
	errors := &ValidationErrors{}

	if req.Username == "" {
		errors.Add("username", "username is required")
	} else if len(req.Username) > MaxUsernameLength {
		errors.Add("username", "username too long")
	}

	if req.Password == "" {
		errors.Add("password", "password is required")
	} else if len(req.Password) > MaxPasswordLength {
		errors.Add("password", "password too long")
	}

	if errors.HasErrors() {
		return errors
	}

	// Sanitize
	req.Username = SanitizeString(req.Username)

	return nil
}

// ValidateSendTokensRequest validates token send request
func ValidateSendTokensRequest(req *SendTokensRequest) error {
	errors := &ValidationErrors{}

	if err := ValidateAddress(req.ToAddress); err != nil {
		errors.Add("to_address", err.Error())
	}

	if err := ValidateAmount(req.Amount); err != nil {
		errors.Add("amount", err.Error())
	}

	if err := ValidateDenom(req.Denom); err != nil {
		errors.Add("denom", err.Error())
	}

	if req.Memo != "" {
		if err := ValidateMemo(req.Memo); err != nil {
			errors.Add("memo", err.Error())
		}
	}

	if errors.HasErrors() {
		return errors
	}

	// Sanitize
	req.ToAddress = SanitizeString(req.ToAddress)
	req.Memo = SanitizeString(req.Memo)

	return nil
}

// =================== Helper Function for Gin Context ===================

// ValidateAndBindJSON validates and binds JSON with size limit
func ValidateAndBindJSON(c *gin.Context, obj interface{}) error {
	// Check content length
	if c.Request.ContentLength > MaxRequestSize {
		return fmt.Errorf("request body too large (max %d bytes)", MaxRequestSize)
	}

	// Bind JSON
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// GetUserFromContext safely retrieves user info from context
func GetUserFromContext(c *gin.Context) (userID, username, address string, err error) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return "", "", "", fmt.Errorf("user not authenticated")
	}

	usernameVal, _ := c.Get("username")
	addressVal, _ := c.Get("address")

	userID, _ = userIDVal.(string)
	username, _ = usernameVal.(string)
	address, _ = addressVal.(string)

	if userID == "" {
		return "", "", "", fmt.Errorf("invalid user context")
	}

	return userID, username, address, nil
}
