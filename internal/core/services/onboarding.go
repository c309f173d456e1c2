package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pileus-cli/internal/logger"
)

// Ensure OnboardingService implements the interface.
var _ driving.OnboardingService = (*OnboardingService)(nil)

// OnboardingService onboards AWS accounts into Pileus.
// Every attempt that reaches the API is recorded in the history store.
type OnboardingService struct {
	api      driven.PileusAPI
	auth     driving.AuthService
	settings driving.SettingsService
	history  driven.OnboardingStore
	scripts  driven.ScriptStore
	opener   driven.FolderOpener

	now func() time.Time
}

// OnboardingDeps groups the optional collaborators of OnboardingService.
// A nil history store disables recording. A nil script store leaves
// returned scripts in the result only.
type OnboardingDeps struct {
	Settings driving.SettingsService
	History  driven.OnboardingStore
	Scripts  driven.ScriptStore
	Opener   driven.FolderOpener
}

// NewOnboardingService creates a new onboarding service.
func NewOnboardingService(api driven.PileusAPI, auth driving.AuthService, deps OnboardingDeps) *OnboardingService {
	return &OnboardingService{
		api:      api,
		auth:     auth,
		settings: deps.Settings,
		history:  deps.History,
		scripts:  deps.Scripts,
		opener:   deps.Opener,
		now:      time.Now,
	}
}

// OnboardAWS onboards an AWS account.
func (s *OnboardingService) OnboardAWS(
	ctx context.Context, req domain.AWSOnboarding,
) (*domain.OnboardingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	logger.Section("Onboard AWS account")

	region := s.defaultRegion()
	record := s.newRecord(domain.OnboardingModeAWS, req, region)
	return s.submit(ctx, req, req.Payload(region), record)
}

// OnboardMSP onboards an AWS account for a reseller customer.
func (s *OnboardingService) OnboardMSP(
	ctx context.Context, req domain.MSPOnboarding,
) (*domain.OnboardingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	logger.Section("Onboard MSP account")

	region := s.defaultRegion()
	record := s.newRecord(domain.OnboardingModeMSP, req.AWSOnboarding, region)
	record.AccountType = req.AccountType
	record.ResellerCustomerName = req.ResellerCustomerName
	return s.submit(ctx, req.AWSOnboarding, req.Payload(region), record)
}

// History returns past attempts, newest first.
func (s *OnboardingService) History(ctx context.Context, limit int) ([]domain.OnboardingRecord, error) {
	if s.history == nil {
		return []domain.OnboardingRecord{}, nil
	}
	return s.history.List(ctx, limit)
}

// OpenFolder opens path, or the folder containing it when path is a file.
func (s *OnboardingService) OpenFolder(path string) error {
	if s.opener == nil {
		return domain.ErrNotImplemented
	}
	if path == "" {
		return fmt.Errorf("path is required: %w", domain.ErrInvalidInput)
	}
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	return s.opener.Open(dir)
}

func (s *OnboardingService) submit(
	ctx context.Context,
	req domain.AWSOnboarding,
	payload map[string]any,
	record domain.OnboardingRecord,
) (*domain.OnboardingResult, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	logger.Debug("Onboarding payload for %s: %v", req.AccountID, payload)

	resp, err := withSession(ctx, s.auth, func(session *domain.Session) (*domain.OnboardingResponse, error) {
		return s.api.OnboardAWS(ctx, session, req.AccountID, payload)
	})
	if err != nil {
		record.Status = domain.OnboardingFailed
		record.Error = err.Error()
		s.record(ctx, record)
		logger.Error("Onboarding %s failed: %v", req.AccountID, err)
		return nil, fmt.Errorf("onboard account %s: %w", req.AccountID, err)
	}

	result := &domain.OnboardingResult{}
	if resp.IsScript() {
		result.Script = resp.Script
		if s.scripts != nil {
			path, err := s.scripts.Save(domain.ScriptFolderName(req.AccountName, req.AccountID), resp.Script)
			if err != nil {
				// The account is onboarded remotely; keep the script in the result.
				logger.Warn("Saving setup script failed: %v", err)
				record.Error = fmt.Sprintf("save script: %v", err)
			} else {
				logger.Info("Script saved to %s", path)
				result.ScriptPath = path
				record.ScriptPath = path
			}
		}
	} else {
		result.JSON = resp.JSON
	}

	record.Status = domain.OnboardingSucceeded
	s.record(ctx, record)
	result.Record = record

	logger.Info("Onboarding %s succeeded", req.AccountID)
	return result, nil
}

func (s *OnboardingService) newRecord(
	mode domain.OnboardingMode, req domain.AWSOnboarding, region string,
) domain.OnboardingRecord {
	return domain.OnboardingRecord{
		ID:           uuid.New().String(),
		Mode:         mode,
		AccountID:    req.AccountID,
		AccountName:  req.AccountName,
		BucketName:   req.Bucket(),
		BucketRegion: req.Region(region),
		CreatedAt:    s.now().UTC(),
	}
}

func (s *OnboardingService) record(ctx context.Context, record domain.OnboardingRecord) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, record); err != nil {
		logger.Warn("Recording onboarding history failed: %v", err)
	}
}

func (s *OnboardingService) defaultRegion() string {
	if s.settings == nil {
		return domain.DefaultBucketRegion
	}
	settings, err := s.settings.Get()
	if err != nil {
		return domain.DefaultBucketRegion
	}
	return settings.Onboarding.DefaultRegion
}
