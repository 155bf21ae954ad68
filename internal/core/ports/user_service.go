package ports

import (
	"context"

	"github.com/softtronics/msw-portal/internal/core/domain"
)

// SignupInput carries the fields an administrator submits to create an account.
type SignupInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Vendor   string
}

// UserService covers the administrative account operations the portal needs.
type UserService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Delete removes an account and cascades deletion of its refresh-token
	// records. Deleting the reserved administrator is always refused.
	Delete(ctx context.Context, id string) error
}
