package domain

import (
	"strconv"
	"strings"
	"time"
)

// Session holds the result of a successful authentication.
type Session struct {
	// AuthToken is sent verbatim in the Authorization header.
	AuthToken string

	// APIKey is the user-level api key, used for user queries.
	APIKey string

	// AccountAPIKey is the api key scoped to one account and division,
	// used for onboarding calls.
	AccountAPIKey string

	// ExpiresAt is when the token stops being accepted. Zero means unknown.
	ExpiresAt time.Time
}

// IsValid returns true if the session carries a token and an api key.
func (s *Session) IsValid() bool {
	return s != nil && s.AuthToken != "" && s.APIKey != ""
}

// IsExpired returns true if the token has expired.
func (s *Session) IsExpired() bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt)
}

// AccountScope identifies the account and division an api key is scoped to.
type AccountScope struct {
	AccountKey string
	DivisionID int
}

// String returns the scope in api key form ("<accountKey>:<divisionId>").
func (a AccountScope) String() string {
	return a.AccountKey + ":" + strconv.Itoa(a.DivisionID)
}

// unscopedSegment marks an api key that is not bound to an account.
const unscopedSegment = "-1"

// ScopeAPIKey replaces the trailing unscoped segment of apiKey with scope.
// Keys without a trailing "-1" segment are returned unchanged.
func ScopeAPIKey(apiKey string, scope AccountScope) string {
	if scope.AccountKey == "" {
		return apiKey
	}
	idx := strings.LastIndex(apiKey, ":")
	if idx < 0 || apiKey[idx+1:] != unscopedSegment {
		return apiKey
	}
	return apiKey[:idx+1] + scope.String()
}
