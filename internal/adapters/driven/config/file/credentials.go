package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	gitignore "github.com/sabhiram/go-gitignore"
	"gopkg.in/ini.v1"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// config.ini layout.
//
//nolint:gosec // G101: These are key names, not actual credentials.
const (
	CredentialsFileName = "config.ini"
	authSection         = "AUTH"
	usernameKey         = "pileus_username"
	passwordKey         = "pileus_password"
	EnvUsername         = "PILEUS_USERNAME"
	EnvPassword         = "PILEUS_PASSWORD"
)

// loadOptions matches configparser: section names are case-sensitive,
// key names are not. Values are taken literally, including '#', ';',
// surrounding quotes and a trailing backslash.
var loadOptions = ini.LoadOptions{
	InsensitiveKeys:         true,
	Loose:                   true,
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
}

// CredentialsStore reads and writes the Pileus credentials in config.ini.
type CredentialsStore struct {
	path   string
	getenv func(string) string
}

// CredentialsOption configures a CredentialsStore.
type CredentialsOption func(*CredentialsStore)

// WithGetenv replaces the environment lookup.
func WithGetenv(getenv func(string) string) CredentialsOption {
	return func(s *CredentialsStore) {
		s.getenv = getenv
	}
}

// NewCredentialsStore creates a store for the file at path.
// An empty path means ./config.ini.
func NewCredentialsStore(path string, opts ...CredentialsOption) *CredentialsStore {
	if path == "" {
		path = CredentialsFileName
	}
	s := &CredentialsStore{
		path:   path,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the credentials, falling back to the environment per field.
func (s *CredentialsStore) Load() (domain.Credentials, error) {
	var fileUser, filePass string

	cfg, err := s.load()
	if err != nil {
		return domain.Credentials{}, err
	}
	if sec, err := cfg.GetSection(authSection); err == nil {
		fileUser = strings.TrimSpace(sec.Key(usernameKey).String())
		filePass = strings.TrimSpace(sec.Key(passwordKey).String())
	}

	user, userSource := s.resolve(fileUser, domain.PlaceholderUsername, EnvUsername)
	pass, passSource := s.resolve(filePass, domain.PlaceholderPassword, EnvPassword)

	creds := domain.Credentials{Username: user, Password: pass}
	switch {
	case userSource == "" && passSource == "":
	case userSource == passSource || passSource == "":
		creds.Source = userSource
	case userSource == "":
		creds.Source = passSource
	default:
		creds.Source = domain.CredentialSourceMixed
	}
	return creds, nil
}

// resolve picks the file value unless it is unset, then the environment.
// A placeholder is returned only when the environment has nothing better.
func (s *CredentialsStore) resolve(fileValue, placeholder, env string) (string, string) {
	if domain.IsCredentialValue(fileValue, placeholder) {
		return fileValue, domain.CredentialSourceConfig
	}
	if v := strings.TrimSpace(s.getenv(env)); v != "" {
		return v, domain.CredentialSourceEnvironment
	}
	if fileValue != "" {
		return fileValue, domain.CredentialSourceConfig
	}
	return "", ""
}

// Save writes the credentials into [AUTH], keeping everything else.
func (s *CredentialsStore) Save(creds domain.Credentials) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}
	sec := cfg.Section(authSection)
	sec.Key(usernameKey).SetValue(creds.Username)
	sec.Key(passwordKey).SetValue(creds.Password)
	return s.write(cfg)
}

// Generate writes the default file with placeholder values.
func (s *CredentialsStore) Generate(force bool) (bool, error) {
	if s.Exists() && !force {
		return false, nil
	}
	if err := s.write(DefaultCredentialsFile()); err != nil {
		return false, err
	}
	return true, nil
}

// DefaultCredentialsFile returns the generated config.ini content.
func DefaultCredentialsFile() *ini.File {
	cfg := ini.Empty(loadOptions)
	sec := cfg.Section(authSection)
	sec.Key(usernameKey).SetValue(domain.PlaceholderUsername)
	sec.Key(passwordKey).SetValue(domain.PlaceholderPassword)
	return cfg
}

// Exists reports whether the file exists.
func (s *CredentialsStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// IgnoredByVCS checks the .gitignore files from the config directory up to
// the enclosing git work tree.
func (s *CredentialsStore) IgnoredByVCS() (bool, error) {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return false, err
	}

	for dir := filepath.Dir(abs); ; dir = filepath.Dir(dir) {
		ignoreFile := filepath.Join(dir, ".gitignore")
		if _, err := os.Stat(ignoreFile); err == nil {
			gi, err := gitignore.CompileIgnoreFile(ignoreFile)
			if err != nil {
				return false, fmt.Errorf("read %s: %w", ignoreFile, err)
			}
			rel, err := filepath.Rel(dir, abs)
			if err != nil {
				return false, err
			}
			if gi.MatchesPath(filepath.ToSlash(rel)) {
				return true, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return false, nil
		}
		if parent := filepath.Dir(dir); parent == dir {
			return false, nil
		}
	}
}

// Path returns the file path.
func (s *CredentialsStore) Path() string {
	return s.path
}

func (s *CredentialsStore) load() (*ini.File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ini.Empty(loadOptions), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return cfg, nil
}

func (s *CredentialsStore) write(cfg *ini.File) error {
	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := renameio.WriteFile(s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
