// Package jwtmw issues and verifies the signed access/refresh tokens and
// provides the Gin middleware that guards authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token classes carried in the "class" claim. A refresh token must never be
// accepted where an access token is required, and vice versa.
const (
	ClassAccess  = "access"
	ClassRefresh = "refresh"
)

// ErrInvalidToken is returned for every verification failure: malformed
// encoding, bad signature, wrong signing method, wrong class, or expiry.
// Callers must not learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Manager はアクセストークンとリフレッシュトークンの発行・検証を行います。
// 秘密鍵とTTLは起動時に固定され、以降は読み取り専用です。
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager creates a token manager with the provided secret and the
// lifetimes for each token class.
func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken creates a signed short-lived access token for the user.
func (m *Manager) GenerateAccessToken(userID uint) (string, error) {
	return m.generate(userID, ClassAccess, m.accessTTL)
}

// GenerateRefreshToken creates a signed refresh token for the user. It is
// only good for minting a new access token, not for resource access.
func (m *Manager) GenerateRefreshToken(userID uint) (string, error) {
	return m.generate(userID, ClassRefresh, m.refreshTTL)
}

// generate creates a signed JWT with standard claims plus the token class.
func (m *Manager) generate(userID uint, class string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"class": class,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses the token, checks signature, expiry and token class, and
// returns the user ID it asserts. Verification is pure computation: no I/O,
// no shared mutable state, safe to call from concurrent requests.
func (m *Manager) Verify(tokenStr, class string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// 署名アルゴリズムを検証（HMACのみ許可）
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	// トークンクラスを必ず検証する（署名が正しいだけでは不十分）
	if c, _ := claims["class"].(string); c != class {
		return 0, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok || sub <= 0 {
		return 0, ErrInvalidToken
	}

	return uint(sub), nil
}
