package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
)

// Ensure OnboardingStore implements the interface.
var _ driven.OnboardingStore = (*OnboardingStore)(nil)

// OnboardingStore is an in-memory implementation of driven.OnboardingStore.
type OnboardingStore struct {
	mu      sync.RWMutex
	records map[string]domain.OnboardingRecord
}

// NewOnboardingStore creates a new in-memory onboarding store.
func NewOnboardingStore() *OnboardingStore {
	return &OnboardingStore{
		records: make(map[string]domain.OnboardingRecord),
	}
}

// Save stores or updates a record.
func (s *OnboardingStore) Save(_ context.Context, record domain.OnboardingRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

// Get retrieves a record by ID.
func (s *OnboardingStore) Get(_ context.Context, id string) (*domain.OnboardingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns records newest first.
func (s *OnboardingStore) List(_ context.Context, limit int) ([]domain.OnboardingRecord, error) {
	s.mu.RLock()
	result := make([]domain.OnboardingRecord, 0, len(s.records))
	for _, r := range s.records {
		result = append(result, r)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
