package services

import (
	"fmt"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driving"
)

// Ensure CredentialsService implements the interface.
var _ driving.CredentialsService = (*CredentialsService)(nil)

// CredentialsService manages the Pileus username and password.
type CredentialsService struct {
	store driven.CredentialsStore
}

// NewCredentialsService creates a new credentials service.
func NewCredentialsService(store driven.CredentialsStore) *CredentialsService {
	return &CredentialsService{
		store: store,
	}
}

// Get loads the current credentials.
// Returns domain.ErrMissingCredentials if either value is unset.
func (s *CredentialsService) Get() (domain.Credentials, error) {
	if s.store == nil {
		return domain.Credentials{}, domain.ErrNotImplemented
	}
	creds, err := s.store.Load()
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	if !creds.IsComplete() {
		return creds, domain.ErrMissingCredentials
	}
	return creds, nil
}

// Save writes credentials. Placeholder values are rejected.
func (s *CredentialsService) Save(creds domain.Credentials) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if !creds.IsComplete() {
		return fmt.Errorf("username and password are required: %w", domain.ErrInvalidInput)
	}
	return s.store.Save(creds)
}

// Init generates a default config.ini.
func (s *CredentialsService) Init(force bool) (bool, error) {
	if s.store == nil {
		return false, domain.ErrNotImplemented
	}
	return s.store.Generate(force)
}

// IgnoredByVCS reports whether config.ini is excluded from version control.
func (s *CredentialsService) IgnoredByVCS() (bool, error) {
	if s.store == nil {
		return false, domain.ErrNotImplemented
	}
	return s.store.IgnoredByVCS()
}

// Path returns the config.ini path.
func (s *CredentialsService) Path() string {
	if s.store == nil {
		return ""
	}
	return s.store.Path()
}
