package ports

import (
	"context"
	"time"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// RegisterInput carries signup data. Role may be empty.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// Session is an issued credential together with the user it is bound to.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService covers signup, login, logout and session verification.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Logout revokes token when it is valid. It never fails.
	Logout(ctx context.Context, token string)
	// Authenticate resolves a session token to its user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// RevocationStore remembers token IDs that must no longer be accepted.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
