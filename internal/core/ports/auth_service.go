package ports

import (
	"context"
	"time"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords. Verify never errors; any
// internal failure reads as a mismatch.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer issues and verifies signed bearer tokens carrying a subject.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Verify(token string) (string, error)
	TTL() time.Duration
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	User        *domain.User
}

// RequestMeta describes the caller of an auth operation for auditing.
type RequestMeta struct {
	RemoteAddr string
	Actor      string
	ActorRole  string
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string, meta RequestMeta) (*domain.User, error)
	Login(ctx context.Context, username, password string, meta RequestMeta) (*LoginResult, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// UserAdminInput carries an administrator-provisioned account.
type UserAdminInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type UserService interface {
	Create(ctx context.Context, in UserAdminInput, meta RequestMeta) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int64, error)
	ChangeRole(ctx context.Context, username, role string, meta RequestMeta) (*domain.User, error)
	SetActive(ctx context.Context, username string, active bool, meta RequestMeta) (*domain.User, error)
}
