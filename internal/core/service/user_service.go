package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/softtronics/msw-portal/internal/core/domain"
	"github.com/softtronics/msw-portal/internal/core/ports"
)

// UserService implements the administrative account operations.
type UserService struct {
	users         ports.UserRepository
	tokens        ports.TokenRepository
	adminUsername string
	log           zerolog.Logger
}

func NewUserService(users ports.UserRepository, tokens ports.TokenRepository, adminUsername string, log zerolog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, adminUsername: adminUsername, log: log}
}

// Signup creates a portal account. The reserved administrator username is
// assigned the admin role at creation; every other account is standard. Role
// is stored explicitly so authorization checks never compare usernames.
func (s *UserService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Name == "" || input.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := HashSecret(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := domain.RoleStandard
	if input.Username == s.adminUsername {
		role = domain.RoleAdmin
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Vendor:       input.Vendor,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, storeErr(err)
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user created")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

// Delete removes an account and cascades deletion of its refresh-token
// records. The reserved administrator account is never deleted.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return storeErr(err)
	}

	if user.IsAdmin() {
		return domain.ErrAdminProtected
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return storeErr(err)
	}
	if err := s.tokens.DeleteByUser(ctx, id, ports.DeleteAll); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("failed to cascade refresh-token deletion")
	}

	s.log.Info().Str("username", user.Username).Msg("user deleted")
	return nil
}
