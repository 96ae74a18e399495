package ports

import (
	"context"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// UpdateProfileInput carries a partial profile update. Image is a raw image
// payload (data URL or http(s) URL) that is resolved to a stored reference.
type UpdateProfileInput struct {
	UserID string
	Bio    *string
	Skills *[]string
	Image  *string
}

// ProfileService exposes user profiles.
type ProfileService interface {
	GetProfile(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (*domain.User, error)
	// ListOthers returns every user except the caller.
	ListOthers(ctx context.Context, callerID string) ([]*domain.User, error)
}
