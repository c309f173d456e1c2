package pileus

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is assumed when the token carries no expiry.
const DefaultSessionTTL = 50 * time.Minute

// tokenExpiry reads the exp claim of a JWT without verifying it.
// The signature is checked by Pileus on every request.
func tokenExpiry(token string, now time.Time) time.Time {
	raw := strings.TrimSpace(token)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return now.Add(DefaultSessionTTL)
}
