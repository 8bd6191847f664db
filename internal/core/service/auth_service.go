package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// dummyPassword is hashed once at construction so that logins for unknown
// usernames spend the same bcrypt time as real ones.
const dummyPassword = "timing-equalizer-not-a-credential"

// AuthService implements login, self-registration and request authentication.
type AuthService struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenIssuer
	audit     ports.AuditSink
	log       zerolog.Logger
	now       func() time.Time
	dummyHash string
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	audit ports.AuditSink,
	log zerolog.Logger,
) (*AuthService, error) {
	if audit == nil {
		audit = nopAudit{}
	}
	s := &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		audit:  audit,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
	h, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("hash timing placeholder: %w", err)
	}
	s.dummyHash = h
	return s, nil
}

// Register creates a self-service account. The role is always "user";
// elevated roles are only granted through UserService.
func (s *AuthService) Register(ctx context.Context, username, email, password string, meta ports.RequestMeta) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	user, err := newUser(s.hasher, username, email, password, domain.RoleUser, s.now())
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		Type:       domain.AuditRegister,
		Username:   created.Username,
		RemoteAddr: meta.RemoteAddr,
		OccurredAt: s.now(),
	})
	return created, nil
}

// Login verifies username and password and issues an access token. Unknown
// usernames, wrong passwords and deactivated accounts all yield
// domain.ErrInvalidCredentials. Store failures propagate as such.
func (s *AuthService) Login(ctx context.Context, username, password string, meta ports.RequestMeta) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			s.loginFailed(username, meta, "unknown_user")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.loginFailed(username, meta, "bad_password")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.loginFailed(username, meta, "inactive")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, 0)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.Username, now); err != nil {
		s.log.Warn().Err(err).Str("username", user.Username).Msg("failed to record last login")
	} else {
		user.LastLoginAt = &now
	}

	s.audit.Record(domain.AuditEvent{
		Type:       domain.AuditLogin,
		Username:   user.Username,
		RemoteAddr: meta.RemoteAddr,
		OccurredAt: now,
	})
	s.log.Info().Str("username", user.Username).Msg("login succeeded")

	return &ports.LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.tokens.TTL(),
		User:        user,
	}, nil
}

// Authenticate resolves a bearer token to the current user record. It does
// exactly one identity lookup. Users that no longer exist or were
// deactivated after the token was issued are unauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("username", subject).Msg("token subject no longer exists")
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !user.IsActive {
		s.log.Debug().Str("username", subject).Msg("token subject is deactivated")
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

func (s *AuthService) loginFailed(username string, meta ports.RequestMeta, reason string) {
	s.log.Info().Str("username", username).Str("reason", reason).Msg("login failed")
	s.audit.Record(domain.AuditEvent{
		Type:       domain.AuditLoginFailed,
		Username:   username,
		RemoteAddr: meta.RemoteAddr,
		Details:    map[string]string{"reason": reason},
		OccurredAt: s.now(),
	})
}

func newUser(hasher ports.PasswordHasher, username, email, password, role string, now time.Time) (*domain.User, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

type nopAudit struct{}

func (nopAudit) Record(domain.AuditEvent) {}
