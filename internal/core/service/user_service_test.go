package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/softtronics/msw-portal/internal/core/domain"
	"github.com/softtronics/msw-portal/internal/core/ports"
)

const reservedAdmin = "mswadmin"

func newUserFixture(users ...*domain.User) (*UserService, *stubUserRepo, *stubTokenRepo) {
	repo := newStubUserRepo(users...)
	tokens := newStubTokenRepo()
	svc := NewUserService(repo, tokens, reservedAdmin, zerolog.Nop())
	return svc, repo, tokens
}

func TestUserService_Signup_Standard(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.Signup(context.Background(), ports.SignupInput{
		Username: "bob",
		Password: "longpassword",
		Name:     "Bob Jones",
		Email:    "bob@example.com",
		Vendor:   "V200",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.Role != domain.RoleStandard {
		t.Fatalf("expected standard role, got %q", user.Role)
	}
	if user.PasswordHash == "longpassword" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longpassword")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Signup_ReservedUsernameGetsAdminRole(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.Signup(context.Background(), ports.SignupInput{
		Username: reservedAdmin,
		Password: "longpassword",
		Name:     "Portal Admin",
		Email:    "admin@example.com",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("reserved username should receive admin role, got %q", user.Role)
	}
	if !user.IsAdmin() {
		t.Fatalf("IsAdmin should report true for the reserved account")
	}
}

func TestUserService_Signup_Duplicate(t *testing.T) {
	svc, _, _ := newUserFixture()

	input := ports.SignupInput{Username: "bob", Password: "longpassword", Name: "Bob", Email: "bob@example.com"}
	if _, err := svc.Signup(context.Background(), input); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Signup_MissingFields(t *testing.T) {
	svc, _, _ := newUserFixture()

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Username: "bob"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Delete_CascadesTokens(t *testing.T) {
	target := &domain.User{ID: "user_9", Username: "carol", Role: domain.RoleStandard}
	svc, repo, tokens := newUserFixture(target)

	now := time.Now().UTC()
	_ = tokens.Insert(context.Background(), &domain.RefreshTokenRecord{
		UserID: "user_9", TokenHash: "x", ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	})

	if err := svc.Delete(context.Background(), "user_9"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), "user_9"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present after delete")
	}
	if len(tokens.forUser("user_9")) != 0 {
		t.Fatalf("refresh-token records not cascaded")
	}
}

func TestUserService_Delete_AdminRefused(t *testing.T) {
	admin := &domain.User{ID: "user_1", Username: reservedAdmin, Role: domain.RoleAdmin}
	svc, repo, _ := newUserFixture(admin)

	if err := svc.Delete(context.Background(), "user_1"); !errors.Is(err, domain.ErrAdminProtected) {
		t.Fatalf("expected ErrAdminProtected, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), "user_1"); err != nil {
		t.Fatalf("admin account must survive the attempt: %v", err)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newUserFixture()

	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
