package ports

import (
	"context"
	"time"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

// UserRepository is the identity store.
//
// Lookups return domain.ErrUserNotFound when no record matches and an error
// wrapping domain.ErrStoreUnavailable when the store could not answer. The two
// are never conflated.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int64, error)
	UpdateRole(ctx context.Context, username, role string) (*domain.User, error)
	SetActive(ctx context.Context, username string, active bool) (*domain.User, error)
	TouchLastLogin(ctx context.Context, username string, at time.Time) error
}
