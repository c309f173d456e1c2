package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pileus-cli/internal/logger"
)

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService reads Pileus users.
type UserService struct {
	api  driven.PileusAPI
	auth driving.AuthService
}

// NewUserService creates a new user service.
func NewUserService(api driven.PileusAPI, auth driving.AuthService) *UserService {
	return &UserService{
		api:  api,
		auth: auth,
	}
}

// List returns the raw user list.
func (s *UserService) List(ctx context.Context) (json.RawMessage, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	logger.Section("Users")
	users, err := withSession(ctx, s.auth, func(session *domain.Session) (json.RawMessage, error) {
		return s.api.ListUsers(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListWithRoles returns the raw user list with role assignments.
func (s *UserService) ListWithRoles(ctx context.Context) (json.RawMessage, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	logger.Section("Users with roles")
	users, err := withSession(ctx, s.auth, func(session *domain.Session) (json.RawMessage, error) {
		return s.api.ListUsersWithRoles(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("list users with roles: %w", err)
	}
	return users, nil
}
