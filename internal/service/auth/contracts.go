package auth

import (
	"context"

	"courier-track/internal/domain"
)

// userRepository defines storage operations required by the auth layer.
type userRepository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	EnsureAdmin(ctx context.Context, passwordHash, phone string) error
}

// tokenIssuer signs session tokens for authenticated users.
type tokenIssuer interface {
	Issue(s domain.Session) (string, error)
}
