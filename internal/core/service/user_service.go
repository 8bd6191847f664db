package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// UserService implements administrator account management.
type UserService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	audit  ports.AuditSink
	log    zerolog.Logger
	now    func() time.Time
}

func NewUserService(users ports.UserRepository, hasher ports.PasswordHasher, audit ports.AuditSink, log zerolog.Logger) *UserService {
	if audit == nil {
		audit = nopAudit{}
	}
	return &UserService{
		users:  users,
		hasher: hasher,
		audit:  audit,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create provisions an account with an explicit role.
func (s *UserService) Create(ctx context.Context, in ports.UserAdminInput, meta ports.RequestMeta) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}

	user, err := newUser(s.hasher, username, email, in.Password, in.Role, s.now())
	if err != nil {
		return nil, err
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		Type:       domain.AuditUserCreated,
		Username:   created.Username,
		Actor:      meta.Actor,
		RemoteAddr: meta.RemoteAddr,
		Details:    map[string]string{"role": created.Role},
		OccurredAt: s.now(),
	})
	return created, nil
}

func (s *UserService) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int64, error) {
	if filter.Role != "" && !domain.ValidRole(filter.Role) {
		return nil, 0, domain.ErrInvalidRole
	}
	return s.users.List(ctx, filter)
}

// ChangeRole assigns role to username.
func (s *UserService) ChangeRole(ctx context.Context, username, role string, meta ports.RequestMeta) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.users.UpdateRole(ctx, username, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("role", role).Str("actor", meta.Actor).Msg("role changed")
	s.audit.Record(domain.AuditEvent{
		Type:       domain.AuditRoleChanged,
		Username:   username,
		Actor:      meta.Actor,
		RemoteAddr: meta.RemoteAddr,
		Details:    map[string]string{"role": role},
		OccurredAt: s.now(),
	})
	return user, nil
}

// SetActive activates or deactivates username. Administrators cannot
// deactivate themselves, and only a superadmin may touch a superadmin.
func (s *UserService) SetActive(ctx context.Context, username string, active bool, meta ports.RequestMeta) (*domain.User, error) {
	if !active && username == meta.Actor {
		return nil, fmt.Errorf("%w: cannot deactivate your own account", domain.ErrInvalidInput)
	}
	if meta.ActorRole != domain.RoleSuperAdmin {
		target, err := s.users.FindByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if target.Role == domain.RoleSuperAdmin {
			return nil, &domain.ForbiddenError{Required: []string{domain.RoleSuperAdmin}}
		}
	}

	user, err := s.users.SetActive(ctx, username, active)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Bool("is_active", active).Str("actor", meta.Actor).Msg("active flag changed")
	s.audit.Record(domain.AuditEvent{
		Type:       domain.AuditActiveChanged,
		Username:   username,
		Actor:      meta.Actor,
		RemoteAddr: meta.RemoteAddr,
		Details:    map[string]string{"is_active": strconv.FormatBool(active)},
		OccurredAt: s.now(),
	})
	return user, nil
}
