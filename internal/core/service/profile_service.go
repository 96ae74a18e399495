package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

type ProfileService struct {
	users  ports.UserRepository
	images ports.ImageUploader
}

func NewProfileService(users ports.UserRepository, images ports.ImageUploader) *ProfileService {
	return &ProfileService{users: users, images: images}
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByID(ctx, id)
}

// UpdateProfile merges the supplied fields into the caller's profile. An image
// payload is uploaded first and replaced by its stored reference.
func (s *ProfileService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
	patch := domain.ProfilePatch{Bio: in.Bio, Skills: in.Skills}

	if in.Image != nil && strings.TrimSpace(*in.Image) != "" {
		ref, err := s.images.Upload(ctx, *in.Image)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		patch.Image = &ref
	}
	if patch.Skills != nil {
		skills := cleanSkills(*patch.Skills)
		patch.Skills = &skills
	}

	if patch.Empty() {
		return nil, domain.ErrNoProfileFields
	}
	return s.users.UpdateProfile(ctx, in.UserID, patch)
}

func (s *ProfileService) ListOthers(ctx context.Context, callerID string) ([]*domain.User, error) {
	return s.users.ListExcept(ctx, callerID)
}

// cleanSkills trims entries and drops blanks. The result is never nil.
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
