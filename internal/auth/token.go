// ABOUTME: Client-side inspection of the access token's expiry claim
// ABOUTME: Unverified parse only; the backend is the authority on validity

package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the exp claim from a stored (scheme-prefixed)
// access token without verifying its signature. The second return is
// false for opaque tokens or tokens without an expiry; callers must then
// fall back to letting the backend reject the token.
func TokenExpiry(stored string) (time.Time, bool) {
	raw := stored
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		raw = raw[i+1:]
	}
	if raw == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired reports whether the token is known to be expired. Opaque
// tokens are never reported as expired.
func TokenExpired(stored string, now time.Time) bool {
	exp, ok := TokenExpiry(stored)
	if !ok {
		return false
	}
	return !exp.After(now)
}
