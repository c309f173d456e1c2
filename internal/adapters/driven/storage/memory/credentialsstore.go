package memory

import (
	"sync"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore is an in-memory implementation of driven.CredentialsStore.
type CredentialsStore struct {
	mu      sync.RWMutex
	creds   domain.Credentials
	exists  bool
	ignored bool
}

// NewCredentialsStore creates a store holding creds.
// A zero value behaves like a missing config.ini.
func NewCredentialsStore(creds domain.Credentials) *CredentialsStore {
	exists := creds.Username != "" || creds.Password != ""
	if exists && creds.Source == "" {
		creds.Source = domain.CredentialSourceConfig
	}
	return &CredentialsStore{creds: creds, exists: exists, ignored: true}
}

// Load returns the stored credentials.
func (s *CredentialsStore) Load() (domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, nil
}

// Save replaces the stored credentials.
func (s *CredentialsStore) Save(creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds.Source = domain.CredentialSourceConfig
	s.creds = creds
	s.exists = true
	return nil
}

// Generate stores the placeholder credentials.
func (s *CredentialsStore) Generate(force bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exists && !force {
		return false, nil
	}
	s.creds = domain.Credentials{
		Username: domain.PlaceholderUsername,
		Password: domain.PlaceholderPassword,
		Source:   domain.CredentialSourceConfig,
	}
	s.exists = true
	return true, nil
}

// Exists reports whether credentials were stored.
func (s *CredentialsStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exists
}

// SetIgnored controls the IgnoredByVCS answer.
func (s *CredentialsStore) SetIgnored(ignored bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignored = ignored
}

// IgnoredByVCS returns the value set by SetIgnored. Defaults to true.
func (s *CredentialsStore) IgnoredByVCS() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ignored, nil
}

// Path returns a pseudo path.
func (s *CredentialsStore) Path() string {
	return ":memory:"
}
