package driving

import (
	"context"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// OnboardingService onboards AWS accounts and keeps their history.
type OnboardingService interface {
	// OnboardAWS onboards an AWS account.
	OnboardAWS(ctx context.Context, req domain.AWSOnboarding) (*domain.OnboardingResult, error)

	// OnboardMSP onboards an AWS account for a reseller customer.
	OnboardMSP(ctx context.Context, req domain.MSPOnboarding) (*domain.OnboardingResult, error)

	// History returns past attempts, newest first. limit <= 0 returns all.
	History(ctx context.Context, limit int) ([]domain.OnboardingRecord, error)

	// OpenFolder opens the folder containing path.
	OpenFolder(path string) error
}
