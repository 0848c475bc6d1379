package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer creates a test server instance without a backing node
func setupTestServer(t *testing.T) *Server {
	// Create codec
	interfaceRegistry := types.NewInterfaceRegistry()
	marshaler := codec.NewProtoCodec(interfaceRegistry)

	// Create client context
	clientCtx := client.Context{}.
		WithCodec(marshaler).
		WithInterfaceRegistry(interfaceRegistry)

	// Create test config
	config := &Config{
		Host:         "localhost",
		Port:         "5000",
		ChainID:      "vaultmesh-test",
		NodeURI:      "tcp://localhost:26657",
		JWTSecret:    []byte("test-secret"),
		CORSOrigins:  []string{"*"},
		RateLimitRPS: 1000,
		AuditEnabled: false,
	}

	// Create server
	server, err := NewServer(clientCtx, config)
	require.NoError(t, err)

	return server
}

// TestHealthCheck tests the health check endpoint
func TestHealthCheck(t *testing.T) {
	server := setupTestServer(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "healthy", response["status"])
	assert.NotNil(t, response["timestamp"])
}

// TestUserRegistration tests user registration
func TestUserRegistration(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		name           string
		payload        RegisterRequest
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "successful registration",
			payload: RegisterRequest{
				Username: "newuser",
				Password: "Password123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var response SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &response)
				require.NoError(t, err)
				assert.True(t, response.Success)
			},
		},
		{
			name: "username too short",
			payload: RegisterRequest{
				Username: "ab",
				Password: "Password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "weak password",
			payload: RegisterRequest{
				Username: "validuser",
				Password: "password",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "reserved username",
			payload: RegisterRequest{
				Username: "vaultmesh",
				Password: "Password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			payload: RegisterRequest{
				Username: "newuser",
				Password: "Password123",
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.payload)
			req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			server.router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

// TestUserLogin tests user login
func TestUserLogin(t *testing.T) {
	server := setupTestServer(t)

	// First register a user
	regPayload := RegisterRequest{
		Username: "logintest",
		Password: "Password123",
	}
	body, _ := json.Marshal(regPayload)
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// Test login
	loginPayload := LoginRequest{
		Username: "logintest",
		Password: "Password123",
	}
	body, _ = json.Marshal(loginPayload)
	req, _ = http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response AuthResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.NotEmpty(t, response.Token)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, "logintest", response.Username)
	assert.NotEmpty(t, response.UserID)

	// Wrong password yields a generic unauthorized error
	loginPayload.Password = "Wrongpass123"
	body, _ = json.Marshal(loginPayload)
	req, _ = http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestTokenRefresh tests exchanging a refresh token for a new access token
func TestTokenRefresh(t *testing.T) {
	server := setupTestServer(t)

	_, refreshToken := registerAndLogin(t, server, "refresher", "Password123")

	payload := RefreshTokenRequest{RefreshToken: refreshToken}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/auth/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response RefreshTokenResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Greater(t, response.ExpiresIn, int64(0))

	// An access token must not be accepted as a refresh token
	accessToken, _ := registerAndLogin(t, server, "refresher2", "Password123")
	payload = RefreshTokenRequest{RefreshToken: accessToken}
	body, _ = json.Marshal(payload)
	req, _ = http.NewRequest("POST", "/api/auth/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestLogoutRevokesToken tests that a logged-out token is rejected afterwards
func TestLogoutRevokesToken(t *testing.T) {
	server := setupTestServer(t)

	token, _ := registerAndLogin(t, server, "leaver", "Password123")

	req, _ := http.NewRequest("POST", "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Revoked token must fail the auth middleware
	req, _ = http.NewRequest("POST", "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddleware tests authentication middleware
func TestAuthMiddleware(t *testing.T) {
	server := setupTestServer(t)

	// Test without token
	req, _ := http.NewRequest("GET", "/api/wallet/address", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test with invalid token
	req, _ = http.NewRequest("GET", "/api/wallet/address", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test with valid token
	token, _ := registerAndLogin(t, server, "authtest", "Password123")
	req, _ = http.NewRequest("GET", "/api/wallet/address", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestRentalAppValidation tests request validation on the rental app endpoint
func TestRentalAppValidation(t *testing.T) {
	server := setupTestServer(t)

	req, _ := http.NewRequest("GET", "/api/rental/apps/notanumber", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "INVALID_APP_ID", response.Code)
}

// TestWorkerNonceValidation tests worker key format validation
func TestWorkerNonceValidation(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		name      string
		workerKey string
	}{
		{"too short", "abcd"},
		{"not hex", "zz" + string(bytes.Repeat([]byte("a"), 62))},
		{"too long", string(bytes.Repeat([]byte("a"), 65))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/api/rental/worker-nonce/"+tt.workerKey, nil)
			w := httptest.NewRecorder()
			server.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response ErrorResponse
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)
			assert.Equal(t, "INVALID_WORKER_KEY", response.Code)
		})
	}
}

// TestEscrowAddressValidation tests bech32 address validation on the escrow endpoint
func TestEscrowAddressValidation(t *testing.T) {
	server := setupTestServer(t)

	req, _ := http.NewRequest("GET", "/api/rental/escrow/not-an-address", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "INVALID_ADDRESS", response.Code)
}

// Helper function to register and login a user, returning access and refresh tokens
func registerAndLogin(t *testing.T, server *Server, username, password string) (string, string) {
	// Register
	regPayload := RegisterRequest{
		Username: username,
		Password: password,
	}
	body, _ := json.Marshal(regPayload)
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// Login
	loginPayload := LoginRequest{
		Username: username,
		Password: password,
	}
	body, _ = json.Marshal(loginPayload)
	req, _ = http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response AuthResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	return response.Token, response.RefreshToken
}
