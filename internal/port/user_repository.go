package port

import (
	"context"

	"github.com/google/uuid"

	"academico/internal/domain"
)

// UserRepository defines the contract for account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
