package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kudoshq/kudos-api/internal/core/domain"
	"github.com/kudoshq/kudos-api/internal/core/ports"
)

// AuthService implements registration and login against the user repository.
type AuthService struct {
	repo   ports.UserRepository
	hasher *PasswordHasher
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *PasswordHasher, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, log: log}
}

// normalizeEmail is the uniqueness policy: emails are compared and stored
// lowercased and trimmed.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. A taken email fails with ErrUserExists and
// creates no record; a repository failure surfaces as ErrUserCreateFailed.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	count, err := s.repo.CountByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUserCreateFailed, err)
	}
	if count > 0 {
		return nil, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUserCreateFailed, err)
	}

	department := input.Department
	if !domain.ValidDepartment(department) {
		department = domain.DefaultDepartment
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Profile: domain.Profile{
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Department: department,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if err == domain.ErrUserExists {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUserCreateFailed, err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login authenticates an email/password pair. An unknown email and a wrong
// password both fail with ErrInvalidCredentials so a caller cannot probe
// which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
