package goPortal

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry recovers the exp claim from a backend JWT without validating the
// signature. The client never trusts the claim for authorization, only for
// scheduling: the backend remains the authority and rejects expired tokens
// with 401 regardless of what the client computed.
func tokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// sessionExpiry resolves the expiry for a freshly issued token. Fallback order:
// explicit ExpiresAt, ExpiresIn seconds, the token's own exp claim, and finally
// the configured default lifetime.
func sessionExpiry(resp *AuthResponse, now time.Time, defaultTTL time.Duration) time.Time {
	if resp.ExpiresAt != nil && !resp.ExpiresAt.IsZero() {
		return resp.ExpiresAt.UTC()
	}
	if resp.ExpiresIn > 0 {
		return now.Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	if exp, ok := tokenExpiry(resp.Token); ok && exp.After(now) {
		return exp.UTC()
	}
	return now.Add(defaultTTL)
}
