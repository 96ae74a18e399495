package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

// AuthService implements registration, login and session verification.
type AuthService struct {
	users   ports.UserRepository
	tokens  *TokenIssuer
	revoked ports.RevocationStore
	log     zerolog.Logger
	now     func() time.Time
}

// NewAuthService wires the service. revoked may be nil, in which case logout
// only clears the client cookie.
func NewAuthService(users ports.UserRepository, tokens *TokenIssuer, revoked ports.RevocationStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, revoked: revoked, log: log, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := normalizeEmail(in.Email)
	if fullName == "" || email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	role := in.Role
	if role == "" {
		role = domain.RoleFreelancer
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	// The unique email index still backs the lookup above for concurrent signups.
	created, err := s.users.Create(ctx, &domain.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Skills:       []string{},
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return s.newSession(created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Spend the same bcrypt work as a real comparison.
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.newSession(user)
}

func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" || s.revoked == nil {
		return
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return
	}
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		s.log.Warn().Err(err).Str("user_id", claims.UserID).Msg("failed to revoke session")
		return
	}
	s.log.Debug().Str("user_id", claims.UserID).Msg("session revoked")
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", claims.UserID).Msg("revocation check failed, accepting token")
		} else if revoked {
			return nil, domain.ErrUnauthorized
		}
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

func (s *AuthService) newSession(user *domain.User) (*ports.Session, error) {
	token, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.Session{Token: token, ExpiresAt: exp, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

// dummyHash is compared against when the email is unknown so both login
// failure paths cost one bcrypt comparison.
func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("talenthub-dummy-password"), bcrypt.DefaultCost)
	})
	return dummy
}
