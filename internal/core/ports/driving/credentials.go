package driving

import "github.com/custodia-labs/pileus-cli/internal/core/domain"

// CredentialsService manages the config.ini credentials file.
type CredentialsService interface {
	// Get loads the current credentials.
	Get() (domain.Credentials, error)

	// Save validates and writes credentials.
	Save(creds domain.Credentials) error

	// Init generates a default config.ini if none exists (or force is set).
	Init(force bool) (bool, error)

	// IgnoredByVCS reports whether config.ini is excluded from version control.
	IgnoredByVCS() (bool, error)

	// Path returns the config.ini path.
	Path() string
}
