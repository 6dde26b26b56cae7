package ports

import (
	"context"

	"github.com/kudoshq/kudos-api/internal/core/domain"
)

// RegisterInput carries a credential submission plus the initial profile
// fields. Password is plaintext for the duration of the call only; it is
// hashed before anything is persisted.
type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Department domain.Department
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}
