package driven

import "github.com/custodia-labs/pileus-cli/internal/core/domain"

// CredentialsStore provides access to the config.ini credentials file.
type CredentialsStore interface {
	// Load reads the credentials. File values win; empty or placeholder
	// values fall back to the PILEUS_USERNAME / PILEUS_PASSWORD environment
	// variables. A missing file is not an error.
	Load() (domain.Credentials, error)

	// Save writes the credentials into the [AUTH] section,
	// preserving any other content.
	Save(creds domain.Credentials) error

	// Generate writes a default file with placeholder values.
	// Returns false without writing if the file exists and force is false.
	Generate(force bool) (bool, error)

	// Exists reports whether the file exists.
	Exists() bool

	// IgnoredByVCS reports whether a .gitignore next to the file excludes it.
	IgnoredByVCS() (bool, error)

	// Path returns the file path.
	Path() string
}
