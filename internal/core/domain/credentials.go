package domain

// Placeholder values written into a freshly generated config.ini.
//
//nolint:gosec // G101: template placeholders, not real credentials.
const (
	PlaceholderUsername = "your_username"
	PlaceholderPassword = "your_password"
)

// Where credential values were read from.
const (
	CredentialSourceConfig      = "config"
	CredentialSourceEnvironment = "environment"
	CredentialSourceMixed       = "mixed"
)

// Credentials is the Pileus username/password pair.
type Credentials struct {
	Username string
	Password string

	// Source records where the values came from (config, environment, mixed).
	// Empty when nothing was found.
	Source string
}

// IsComplete returns true when both fields hold real values.
func (c Credentials) IsComplete() bool {
	return IsCredentialValue(c.Username, PlaceholderUsername) &&
		IsCredentialValue(c.Password, PlaceholderPassword)
}

// IsCredentialValue reports whether v is set and differs from the template placeholder.
func IsCredentialValue(v, placeholder string) bool {
	return v != "" && v != placeholder
}
