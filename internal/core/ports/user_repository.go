package ports

import (
	"context"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts user and returns it with its assigned ID.
	// Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// ListExcept returns every user but the one with the given ID.
	ListExcept(ctx context.Context, id string) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error)
}
