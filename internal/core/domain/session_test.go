package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsValid(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsValid())
	assert.False(t, (&Session{AuthToken: "t"}).IsValid())
	assert.False(t, (&Session{APIKey: "k"}).IsValid())
	assert.True(t, (&Session{AuthToken: "t", APIKey: "k"}).IsValid())
}

func TestSession_IsExpired(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsExpired())
	assert.False(t, (&Session{}).IsExpired(), "zero expiry never expires")
	assert.True(t, (&Session{ExpiresAt: time.Now().Add(-time.Minute)}).IsExpired())
	assert.False(t, (&Session{ExpiresAt: time.Now().Add(time.Hour)}).IsExpired())
}

func TestAccountScope_String(t *testing.T) {
	assert.Equal(t, "18745:0", AccountScope{AccountKey: "18745"}.String())
	assert.Equal(t, "42:3", AccountScope{AccountKey: "42", DivisionID: 3}.String())
}

func TestScopeAPIKey(t *testing.T) {
	scope := AccountScope{AccountKey: "18745", DivisionID: 0}

	tests := []struct {
		name     string
		apiKey   string
		scope    AccountScope
		expected string
	}{
		{"unscoped key", "a1b2-c3d4:-1", scope, "a1b2-c3d4:18745:0"},
		{"dash-one inside user key untouched", "abc-1def:-1", scope, "abc-1def:18745:0"},
		{"already scoped", "abc:12:0", scope, "abc:12:0"},
		{"no separator", "abc-1", scope, "abc-1"},
		{"empty scope", "abc:-1", AccountScope{}, "abc:-1"},
		{"division carried", "abc:-1", AccountScope{AccountKey: "7", DivisionID: 2}, "abc:7:2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScopeAPIKey(tt.apiKey, tt.scope))
		})
	}
}
