package driving

import (
	"context"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// AuthService authenticates against Pileus and caches the session.
type AuthService interface {
	// Authenticate always performs a fresh login.
	Authenticate(ctx context.Context) (*domain.Session, error)

	// Session returns the cached session, logging in when it is missing or expired.
	Session(ctx context.Context) (*domain.Session, error)

	// Current returns the cached session without logging in. Nil if none.
	Current() *domain.Session

	// Invalidate drops the cached session.
	Invalidate()
}
