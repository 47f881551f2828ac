package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestManager_RoundTrip は発行したトークンが同じクラスで検証できることを検証します。
func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID uint
		class  string
	}{
		{"access token, basic user", 1, ClassAccess},
		{"refresh token, basic user", 1, ClassRefresh},
		{"access token, large user id", 999999, ClassAccess},
		{"refresh token, large user id", 999999, ClassRefresh},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)

			var tokenStr string
			var err error
			if tt.class == ClassAccess {
				tokenStr, err = m.GenerateAccessToken(tt.userID)
			} else {
				tokenStr, err = m.GenerateRefreshToken(tt.userID)
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tokenStr == "" {
				t.Fatal("expected non-empty token")
			}

			got, err := m.Verify(tokenStr, tt.class)
			if err != nil {
				t.Fatalf("unexpected verify error: %v", err)
			}
			if got != tt.userID {
				t.Errorf("expected user ID %d, got %d", tt.userID, got)
			}
		})
	}
}

// TestManager_Verify_WrongClass はクラス違いのトークンが署名が正しくても拒否されることを検証します。
func TestManager_Verify_WrongClass(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	access, err := m.GenerateAccessToken(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refresh, err := m.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Access token presented where a refresh token is required
	if _, err := m.Verify(access, ClassRefresh); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	// Refresh token presented where an access token is required
	if _, err := m.Verify(refresh, ClassAccess); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

// TestManager_Verify_Expired は期限切れトークンが拒否されることを検証します。
func TestManager_Verify_Expired(t *testing.T) {
	t.Parallel()

	// Negative TTL issues a token that is already expired
	m := NewManager("test-secret", -time.Minute, -time.Minute)

	tokenStr, err := m.GenerateAccessToken(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Verify(tokenStr, ClassAccess); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

// TestManager_Verify_InvalidTokens は不正なトークンがすべて同一のエラーで拒否されることを検証します。
func TestManager_Verify_InvalidTokens(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	other := NewManager("other-secret", 15*time.Minute, 7*24*time.Hour)

	signedByOther, err := other.GenerateAccessToken(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Token signed with alg "none" must be rejected even if claims look fine
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":   1,
		"class": ClassAccess,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Token without a subject claim
	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"class": ClassAccess,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not.a.jwt"},
		{"wrong secret", signedByOther},
		{"alg none", noneToken},
		{"missing sub claim", noSub},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := m.Verify(tt.token, ClassAccess); err != ErrInvalidToken {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
