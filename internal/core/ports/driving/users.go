package driving

import (
	"context"
	"encoding/json"
)

// UserService reads Pileus users.
type UserService interface {
	// List returns the raw user list.
	List(ctx context.Context) (json.RawMessage, error)

	// ListWithRoles returns the raw user list with roles.
	ListWithRoles(ctx context.Context) (json.RawMessage, error)
}
