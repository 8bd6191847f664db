package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

type recordingSink struct {
	events []domain.AuditEvent
}

func (s *recordingSink) Record(e domain.AuditEvent) { s.events = append(s.events, e) }

func newPolicyContext(user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(UserKey, user)
	}
	return c, rec
}

func TestRequirePolicy_Allows(t *testing.T) {
	tests := []struct {
		name   string
		policy domain.Policy
		role   string
	}{
		{"admin1 on admin route", domain.AdminOrSuperAdmin, domain.RoleAdmin1},
		{"admin2 on admin route", domain.AdminOrSuperAdmin, domain.RoleAdmin2},
		{"superadmin on admin route", domain.AdminOrSuperAdmin, domain.RoleSuperAdmin},
		{"superadmin on superadmin route", domain.SuperAdminOnly, domain.RoleSuperAdmin},
		{"custom policy", domain.Require("user", "admin2"), domain.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newPolicyContext(&domain.User{Username: "u", Role: tt.role})

			called := false
			handler := RequirePolicy(tt.policy, nil)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !called {
				t.Fatal("next handler not called")
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestRequirePolicy_Forbids(t *testing.T) {
	sink := &recordingSink{}
	c, _ := newPolicyContext(&domain.User{Username: "alice", Role: domain.RoleUser})

	err := RequirePolicy(domain.SuperAdminOnly, sink)(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	var fe *domain.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *ForbiddenError, got %T", err)
	}
	if !reflect.DeepEqual(fe.Required, []string{"superadmin"}) {
		t.Errorf("unexpected required roles: %v", fe.Required)
	}

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Type != domain.AuditAccessDenied || ev.Username != "alice" || ev.Details["policy"] != "superadmin" {
		t.Errorf("unexpected audit event: %+v", ev)
	}
}

func TestRequirePolicy_AdminTiersDoNotPassSuperAdmin(t *testing.T) {
	for _, role := range []string{domain.RoleAdmin1, domain.RoleAdmin2} {
		c, _ := newPolicyContext(&domain.User{Username: role, Role: role})
		err := RequirePolicy(domain.SuperAdminOnly, nil)(func(c echo.Context) error { return nil })(c)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestRequirePolicy_MissingUser(t *testing.T) {
	c, _ := newPolicyContext(nil)

	err := RequirePolicy(domain.AdminOrSuperAdmin, nil)(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
