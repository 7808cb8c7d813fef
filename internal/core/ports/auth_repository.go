package ports

import (
	"context"

	"github.com/taskbid/marketplace/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	// Create persists a new user. Returns domain.ErrUserExists when the
	// username is already taken (case-sensitive exact match).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
