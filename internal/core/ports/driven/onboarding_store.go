package driven

import (
	"context"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// OnboardingStore persists the onboarding history.
type OnboardingStore interface {
	// Save stores a record. Creates if new, updates if exists.
	Save(ctx context.Context, record domain.OnboardingRecord) error

	// Get retrieves a record by ID. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.OnboardingRecord, error)

	// List returns records newest first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.OnboardingRecord, error)
}
