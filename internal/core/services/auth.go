package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pileus-cli/internal/logger"
)

const loginKey = "login"

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService logs in to Pileus and caches the resulting session.
// Concurrent logins are collapsed into a single request.
type AuthService struct {
	api      driven.PileusAPI
	store    driven.CredentialsStore
	settings driving.SettingsService

	mu      sync.RWMutex
	session *domain.Session
	// generation is bumped by Invalidate. A login only caches its session
	// when no Invalidate happened since it started.
	generation uint64
	group      singleflight.Group
}

// NewAuthService creates a new auth service.
// settings may be nil, in which case onboarding uses the unscoped api key.
func NewAuthService(
	api driven.PileusAPI,
	store driven.CredentialsStore,
	settings driving.SettingsService,
) *AuthService {
	return &AuthService{
		api:      api,
		store:    store,
		settings: settings,
	}
}

// Authenticate performs a fresh login and caches the session.
func (s *AuthService) Authenticate(ctx context.Context) (*domain.Session, error) {
	v, err, _ := s.group.Do(loginKey, func() (any, error) {
		return s.login(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Session), nil
}

// Session returns the cached session, logging in if it is missing or expired.
func (s *AuthService) Session(ctx context.Context) (*domain.Session, error) {
	if session := s.Current(); session != nil && !session.IsExpired() {
		return session, nil
	}
	return s.Authenticate(ctx)
}

// Current returns the cached session without logging in.
func (s *AuthService) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Invalidate drops the cached session. A login already in flight finishes
// but its session is not cached, and later callers start a new login.
func (s *AuthService) Invalidate() {
	s.mu.Lock()
	s.session = nil
	s.generation++
	s.mu.Unlock()
	s.group.Forget(loginKey)
}

func (s *AuthService) login(ctx context.Context) (*domain.Session, error) {
	if s.api == nil || s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Section("Authentication")

	s.mu.RLock()
	generation := s.generation
	s.mu.RUnlock()

	creds, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if !creds.IsComplete() {
		logger.Error("Missing credentials")
		return nil, domain.ErrMissingCredentials
	}
	logger.Debug("Credentials loaded from %s", creds.Source)

	session, err := s.api.Authenticate(ctx, creds)
	if err != nil {
		logger.Error("Authentication failed: %v", err)
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !session.IsValid() {
		logger.Error("Authentication response carried no token")
		return nil, domain.ErrAuthInvalid
	}

	accountKey, err := s.accountAPIKey(ctx, session)
	if err != nil {
		return nil, err
	}
	session.AccountAPIKey = accountKey

	s.mu.Lock()
	if s.generation == generation {
		s.session = session
	} else {
		logger.Debug("Credentials changed during login, session not cached")
	}
	s.mu.Unlock()

	logger.Info("Authentication successful.")
	return session, nil
}

// accountAPIKey derives the api key used for onboarding calls.
// An explicit account key wins over an account name lookup.
func (s *AuthService) accountAPIKey(ctx context.Context, session *domain.Session) (string, error) {
	if s.settings == nil {
		return session.APIKey, nil
	}
	settings, err := s.settings.Get()
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}

	account := settings.Account
	switch {
	case account.Key != "":
		return domain.ScopeAPIKey(session.APIKey, account.Scope()), nil
	case account.Name != "":
		users, err := s.api.ListUsers(ctx, session)
		if err != nil {
			return "", fmt.Errorf("list accounts: %w", err)
		}
		found, err := domain.FindAccount(users, account.Name)
		if err != nil {
			return "", err
		}
		logger.Debug("Using account %s (%s)", found.Name, found.Scope())
		return domain.ScopeAPIKey(session.APIKey, found.Scope()), nil
	default:
		return session.APIKey, nil
	}
}

// withSession runs fn with the current session. When the API rejects the
// token, the session is dropped and fn is retried once with a fresh login.
func withSession[T any](
	ctx context.Context,
	auth driving.AuthService,
	fn func(*domain.Session) (T, error),
) (T, error) {
	var zero T
	if auth == nil {
		return zero, domain.ErrNotImplemented
	}

	session, err := auth.Session(ctx)
	if err != nil {
		return zero, err
	}
	result, err := fn(session)
	if err == nil || !errors.Is(err, domain.ErrAuthInvalid) {
		return result, err
	}

	logger.Debug("Session rejected, logging in again")
	auth.Invalidate()
	session, err = auth.Authenticate(ctx)
	if err != nil {
		return zero, err
	}
	return fn(session)
}
