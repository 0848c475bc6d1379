package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// refreshClaims are the claims carried by refresh tokens. The token kind is
// explicit so an access token can never be replayed as a refresh token.
type refreshClaims struct {
	UserID    string `json:"user_id"`
	TokenKind string `json:"token_kind"`
	jwt.RegisteredClaims
}

// GenerateTokenPair issues a short-lived access token and a long-lived
// refresh token for a user. Returns the access token expiry in seconds.
func (as *AuthService) GenerateTokenPair(user *User) (accessToken, refreshToken string, expiresIn int64, err error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Address:  user.Address,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "vaultmesh-api",
		},
	})
	accessToken, err = access.SignedString(as.jwtSecret)
	if err != nil {
		return "", "", 0, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, &refreshClaims{
		UserID:    user.ID,
		TokenKind: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "vaultmesh-api",
		},
	})
	refreshToken, err = refresh.SignedString(as.jwtSecret)
	if err != nil {
		return "", "", 0, err
	}

	return accessToken, refreshToken, int64(accessTokenTTL.Seconds()), nil
}

// RefreshAccessToken validates a refresh token and issues a new access
// token for its user.
func (as *AuthService) RefreshAccessToken(refreshToken string) (string, int64, error) {
	as.mu.RLock()
	_, isRevoked := as.revoked[refreshToken]
	as.mu.RUnlock()
	if isRevoked {
		return "", 0, fmt.Errorf("refresh token revoked")
	}

	claims := &refreshClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return as.jwtSecret, nil
	})
	if err != nil {
		return "", 0, err
	}
	if !token.Valid {
		return "", 0, fmt.Errorf("invalid refresh token")
	}
	if claims.TokenKind != "refresh" {
		return "", 0, fmt.Errorf("not a refresh token")
	}

	user, exists := as.GetUserByID(claims.UserID)
	if !exists {
		return "", 0, fmt.Errorf("user no longer exists")
	}

	now := time.Now()
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Address:  user.Address,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "vaultmesh-api",
		},
	})
	accessToken, err := access.SignedString(as.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return accessToken, int64(accessTokenTTL.Seconds()), nil
}

// RevokeToken marks a token as unusable until its natural expiry. Expired
// entries are pruned opportunistically on each call.
func (as *AuthService) RevokeToken(tokenString string) error {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return as.jwtSecret, nil
	})
	if err != nil {
		return fmt.Errorf("cannot revoke malformed token: %w", err)
	}

	expiry := time.Now().Add(accessTokenTTL)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	now := time.Now()
	for tok, exp := range as.revoked {
		if exp.Before(now) {
			delete(as.revoked, tok)
		}
	}

	as.revoked[tokenString] = expiry
	return nil
}
