package main

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

type stubUserService struct {
	existing map[string]bool
	failOn   string
	created  []ports.UserAdminInput
}

func (s *stubUserService) Create(_ context.Context, in ports.UserAdminInput, meta ports.RequestMeta) (*domain.User, error) {
	if meta.Actor != "provision" {
		return nil, errors.New("unexpected actor " + meta.Actor)
	}
	if in.Username == s.failOn {
		return nil, domain.ErrStoreUnavailable
	}
	if s.existing[in.Username] {
		return nil, domain.ErrUserExists
	}
	s.created = append(s.created, in)
	return &domain.User{Username: in.Username, Role: in.Role}, nil
}

func (s *stubUserService) List(context.Context, domain.UserFilter) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserService) ChangeRole(context.Context, string, string, ports.RequestMeta) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) SetActive(context.Context, string, bool, ports.RequestMeta) (*domain.User, error) {
	return nil, nil
}

func initialAccounts() []account {
	return []account{
		{Username: "superadmin", Email: "superadmin@example.com", Password: "s3cret-super", Role: domain.RoleSuperAdmin},
		{Username: "admin1", Email: "admin1@example.com", Password: "s3cret-admin1", Role: domain.RoleAdmin1},
		{Username: "admin2", Email: "admin2@example.com", Password: "s3cret-admin2", Role: domain.RoleAdmin2},
	}
}

func TestSeed_CreatesMissingAndSkipsExisting(t *testing.T) {
	svc := &stubUserService{existing: map[string]bool{"admin1": true}}

	res, err := seed(context.Background(), svc, initialAccounts(), zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Created) != 2 || res.Created[0] != "superadmin" || res.Created[1] != "admin2" {
		t.Errorf("unexpected created list: %v", res.Created)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "admin1" {
		t.Errorf("unexpected skipped list: %v", res.Skipped)
	}
	if svc.created[0].Role != domain.RoleSuperAdmin {
		t.Errorf("expected superadmin role, got %s", svc.created[0].Role)
	}
}

func TestSeed_SkipsAccountsWithoutPassword(t *testing.T) {
	accounts := initialAccounts()
	accounts[2].Password = ""
	svc := &stubUserService{}

	res, err := seed(context.Background(), svc, accounts, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.created) != 2 {
		t.Fatalf("expected 2 creations, got %d", len(svc.created))
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "admin2" {
		t.Errorf("unexpected skipped list: %v", res.Skipped)
	}
}

func TestSeed_StopsOnStoreFailure(t *testing.T) {
	svc := &stubUserService{failOn: "admin1"}

	res, err := seed(context.Background(), svc, initialAccounts(), zerolog.Nop())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if len(res.Created) != 1 {
		t.Errorf("expected only superadmin before the failure, got %v", res.Created)
	}
}
