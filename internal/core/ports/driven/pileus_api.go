package driven

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// PileusAPI is the remote Pileus service.
type PileusAPI interface {
	// Authenticate exchanges credentials for a session.
	// AccountAPIKey is left for the caller to derive.
	Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Session, error)

	// ListUsers returns the raw user list, including the accounts list.
	ListUsers(ctx context.Context, session *domain.Session) (json.RawMessage, error)

	// ListUsersWithRoles returns the raw user list with role assignments.
	ListUsersWithRoles(ctx context.Context, session *domain.Session) (json.RawMessage, error)

	// OnboardAWS submits an onboarding payload for an AWS account.
	// The response is either JSON or a raw setup script.
	OnboardAWS(
		ctx context.Context, session *domain.Session, accountID string, payload map[string]any,
	) (*domain.OnboardingResponse, error)
}
