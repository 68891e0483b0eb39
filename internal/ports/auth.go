// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"

	domainauth "github.com/target/storefront-client/internal/domain/auth"
)

// Storage is durable client-side key/value storage for the session.
// Calls block until the backend has applied the operation.
type Storage interface {
	// GetItem returns the stored value, or an apperrors NotFound error when the key is absent.
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// Navigator exposes the client's current location and lets components move it.
type Navigator interface {
	CurrentPath() string
	Redirect(ctx context.Context, path string)
}

// UserAPI calls the backend's account endpoints.
type UserAPI interface {
	SignUp(ctx context.Context, in domainauth.SignUpInput) (domainauth.AuthResponse, error)
	SignIn(ctx context.Context, email, password string) (domainauth.AuthResponse, error)
}
