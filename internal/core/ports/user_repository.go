package ports

import (
	"context"

	"github.com/kudoshq/kudos-api/internal/core/domain"
)

// UserRepository defines the interface for user identity persistence.
// Uniqueness of email is enforced by the implementation.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, profile domain.Profile) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
