package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

func newTestAuthService(repo *stubUserRepo, revoked ports.RevocationStore) *AuthService {
	return NewAuthService(repo, NewTokenIssuer("secret", time.Hour), revoked, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	sess, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Alice Doe",
		Email:    "  Alice@Example.com ",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if sess.Token == "" {
		t.Fatalf("expected a session token")
	}
	user := sess.User
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != domain.RoleFreelancer {
		t.Fatalf("expected default role freelancer, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   ports.RegisterInput
		want error
	}{
		{"missing name", ports.RegisterInput{Email: "a@b.c", Password: "secret1"}, domain.ErrMissingFields},
		{"missing email", ports.RegisterInput{FullName: "A", Password: "secret1"}, domain.ErrMissingFields},
		{"missing password", ports.RegisterInput{FullName: "A", Email: "a@b.c"}, domain.ErrMissingFields},
		{"short password", ports.RegisterInput{FullName: "A", Email: "a@b.c", Password: "12345"}, domain.ErrPasswordTooShort},
		{"bad role", ports.RegisterInput{FullName: "A", Email: "a@b.c", Password: "123456", Role: "admin"}, domain.ErrInvalidRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_Register_ExactMinimumPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "A", Email: "a@b.c", Password: "123456", Role: domain.RoleEmployer,
	}); err != nil {
		t.Fatalf("expected six characters to be accepted, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	in := ports.RegisterInput{FullName: "Bob", Email: "bob@example.com", Password: "secret1"}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	in.Email = "BOB@example.com"
	if _, err := svc.Register(ctx, in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{FullName: "Carol", Email: "carol@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	sess, err := svc.Login(ctx, "carol@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if sess.User.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", sess.User)
	}

	if _, err := svc.Login(ctx, "carol@example.com", "wrong-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := svc.Login(ctx, "", "secret1"); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	sess, err := svc.Register(ctx, ports.RegisterInput{FullName: "Dan", Email: "dan@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Authenticate(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != sess.User.ID {
		t.Fatalf("expected user %s, got %s", sess.User.ID, user.ID)
	}

	if _, err := svc.Authenticate(ctx, ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "not-a-jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage token, got %v", err)
	}
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	sess, err := svc.Register(ctx, ports.RegisterInput{FullName: "Eve", Email: "eve@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	delete(repo.users, sess.User.ID)

	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Authenticate_ForeignSignature(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u1", Email: "u1@example.com"})
	svc := newTestAuthService(repo, nil)

	claims := SessionClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), forged); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Authenticate_Expired(t *testing.T) {
	repo := newStubUserRepo()
	tokens := NewTokenIssuer("secret", time.Hour)
	svc := NewAuthService(repo, tokens, nil, zerolog.Nop())
	ctx := context.Background()

	sess, err := svc.Register(ctx, ports.RegisterInput{FullName: "Fay", Email: "fay@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	repo := newStubUserRepo()
	revoked := newStubRevocations()
	svc := newTestAuthService(repo, revoked)
	ctx := context.Background()

	sess, err := svc.Register(ctx, ports.RegisterInput{FullName: "Gus", Email: "gus@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	svc.Logout(ctx, sess.Token)
	if len(revoked.revoked) != 1 {
		t.Fatalf("expected one revoked token, got %d", len(revoked.revoked))
	}
	for _, ttl := range revoked.revoked {
		if ttl <= 0 || ttl > time.Hour {
			t.Fatalf("unexpected revocation ttl %v", ttl)
		}
	}
	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}

	// Logging out without a token is a no-op.
	svc.Logout(ctx, "")
	svc.Logout(ctx, "garbage")
	if len(revoked.revoked) != 1 {
		t.Fatalf("expected no further revocations, got %d", len(revoked.revoked))
	}
}

func TestAuthService_Authenticate_RevocationStoreDown(t *testing.T) {
	repo := newStubUserRepo()
	revoked := newStubRevocations()
	revoked.checkErr = errors.New("redis down")
	svc := newTestAuthService(repo, revoked)
	ctx := context.Background()

	sess, err := svc.Register(ctx, ports.RegisterInput{FullName: "Hal", Email: "hal@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, sess.Token); err != nil {
		t.Fatalf("expected token to be accepted when revocation store fails, got %v", err)
	}
}

func TestTokenIssuer_UniqueTokenIDs(t *testing.T) {
	tokens := NewTokenIssuer("secret", time.Hour)

	a, _, err := tokens.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	b, _, err := tokens.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct tokens for repeated issuance")
	}

	ca, err := tokens.Parse(a)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cb, err := tokens.Parse(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ca.ID == cb.ID {
		t.Fatalf("expected distinct token IDs")
	}
	if ca.UserID != "u1" {
		t.Fatalf("unexpected user id %q", ca.UserID)
	}
}
