package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
	"github.com/smeworks/backoffice-api/internal/infrastructure/security"
)

func newUserServiceFixture() (*UserService, *stubUserRepo, *recordingAudit) {
	repo := newStubUserRepo()
	audit := &recordingAudit{}
	svc := NewUserService(repo, security.NewBcryptHasher(bcrypt.MinCost), audit, zerolog.Nop())
	return svc, repo, audit
}

func TestUserService_Create(t *testing.T) {
	svc, _, audit := newUserServiceFixture()

	u, err := svc.Create(context.Background(), ports.UserAdminInput{
		Username: "admin1", Email: "admin1@example.com", Password: "pw", Role: domain.RoleAdmin1,
	}, ports.RequestMeta{Actor: "root"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Role != domain.RoleAdmin1 || !u.IsActive {
		t.Fatalf("unexpected user: %+v", u)
	}
	if len(audit.events) != 1 || audit.events[0].Actor != "root" {
		t.Fatalf("expected audit event with actor, got %+v", audit.events)
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc, _, _ := newUserServiceFixture()

	for _, role := range []string{"", "admin", "root"} {
		_, err := svc.Create(context.Background(), ports.UserAdminInput{
			Username: "x", Email: "x@example.com", Password: "pw", Role: role,
		}, ports.RequestMeta{})
		if !errors.Is(err, domain.ErrInvalidRole) {
			t.Fatalf("role %q: expected ErrInvalidRole, got %v", role, err)
		}
	}
}

func TestUserService_ChangeRole(t *testing.T) {
	svc, repo, audit := newUserServiceFixture()
	_, _ = repo.Create(context.Background(), &domain.User{Username: "alice", Email: "a@example.com", Role: domain.RoleUser, IsActive: true})

	u, err := svc.ChangeRole(context.Background(), "alice", domain.RoleAdmin2, ports.RequestMeta{Actor: "root"})
	if err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	if u.Role != domain.RoleAdmin2 {
		t.Fatalf("role = %s", u.Role)
	}
	if got := audit.types(); len(got) != 1 || got[0] != domain.AuditRoleChanged {
		t.Fatalf("unexpected audit trail: %v", got)
	}

	if _, err := svc.ChangeRole(context.Background(), "alice", "owner", ports.RequestMeta{}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.ChangeRole(context.Background(), "ghost", domain.RoleUser, ports.RequestMeta{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_SetActive(t *testing.T) {
	svc, repo, _ := newUserServiceFixture()
	_, _ = repo.Create(context.Background(), &domain.User{Username: "bob", Email: "b@example.com", Role: domain.RoleUser, IsActive: true})

	u, err := svc.SetActive(context.Background(), "bob", false, ports.RequestMeta{Actor: "admin1"})
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if u.IsActive {
		t.Fatalf("expected bob to be inactive")
	}
}

func TestUserService_SetActive_RefusesSelfDeactivation(t *testing.T) {
	svc, repo, _ := newUserServiceFixture()
	_, _ = repo.Create(context.Background(), &domain.User{Username: "admin1", Email: "a1@example.com", Role: domain.RoleAdmin1, IsActive: true})

	if _, err := svc.SetActive(context.Background(), "admin1", false, ports.RequestMeta{Actor: "admin1"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_SetActive_OnlySuperAdminTouchesSuperAdmin(t *testing.T) {
	svc, repo, audit := newUserServiceFixture()
	_, _ = repo.Create(context.Background(), &domain.User{Username: "root", Email: "root@example.com", Role: domain.RoleSuperAdmin, IsActive: true})
	_, _ = repo.Create(context.Background(), &domain.User{Username: "root2", Email: "root2@example.com", Role: domain.RoleSuperAdmin, IsActive: true})

	for _, role := range []string{domain.RoleAdmin1, domain.RoleAdmin2} {
		_, err := svc.SetActive(context.Background(), "root", false, ports.RequestMeta{Actor: "ops", ActorRole: role})
		var fe *domain.ForbiddenError
		if !errors.As(err, &fe) || len(fe.Required) != 1 || fe.Required[0] != domain.RoleSuperAdmin {
			t.Fatalf("%s: expected ForbiddenError requiring superadmin, got %v", role, err)
		}
	}
	if u, _ := repo.FindByUsername(context.Background(), "root"); !u.IsActive {
		t.Fatal("superadmin must stay active after a refused request")
	}
	if len(audit.events) != 0 {
		t.Fatalf("refused requests must not be audited as changes, got %+v", audit.events)
	}

	u, err := svc.SetActive(context.Background(), "root2", false, ports.RequestMeta{Actor: "root", ActorRole: domain.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("superadmin deactivating a peer: %v", err)
	}
	if u.IsActive {
		t.Fatal("expected root2 to be inactive")
	}
}

func TestUserService_SetActive_UnknownTarget(t *testing.T) {
	svc, _, _ := newUserServiceFixture()

	_, err := svc.SetActive(context.Background(), "ghost", false, ports.RequestMeta{Actor: "admin1", ActorRole: domain.RoleAdmin1})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List_RejectsUnknownRole(t *testing.T) {
	svc, _, _ := newUserServiceFixture()
	if _, _, err := svc.List(context.Background(), domain.UserFilter{Role: "admin"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
