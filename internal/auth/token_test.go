// ABOUTME: Tests for unverified token expiry inspection
// ABOUTME: Forges HS256 tokens locally; no backend involved

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "alice"}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestTokenExpiry_ReadsExpClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	stored := "Bearer " + signedToken(t, exp)

	got, ok := TokenExpiry(stored)
	if !ok {
		t.Fatal("expected expiry to be found")
	}
	if !got.Equal(exp) {
		t.Errorf("expected %v, got %v", exp, got)
	}
}

func TestTokenExpiry_NoSchemePrefix(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	if _, ok := TokenExpiry(signedToken(t, exp)); !ok {
		t.Error("expected bare token to parse")
	}
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	if _, ok := TokenExpiry("Bearer not-a-jwt"); ok {
		t.Error("expected opaque token to report no expiry")
	}
	if _, ok := TokenExpiry(""); ok {
		t.Error("expected empty token to report no expiry")
	}
}

func TestTokenExpiry_MissingExpClaim(t *testing.T) {
	stored := "Bearer " + signedToken(t, time.Time{})
	if _, ok := TokenExpiry(stored); ok {
		t.Error("expected token without exp to report no expiry")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	past := "Bearer " + signedToken(t, now.Add(-time.Minute))
	future := "Bearer " + signedToken(t, now.Add(time.Minute))

	if !TokenExpired(past, now) {
		t.Error("expected past token to be expired")
	}
	if TokenExpired(future, now) {
		t.Error("expected future token to be valid")
	}
	if TokenExpired("Bearer opaque", now) {
		t.Error("opaque tokens must never be reported expired")
	}
}
