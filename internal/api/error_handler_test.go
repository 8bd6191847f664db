package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"unauthenticated", fmt.Errorf("verify: %w", domain.ErrUnauthenticated), http.StatusUnauthorized, "could not validate credentials"},
		{"forbidden sentinel", domain.ErrForbidden, http.StatusForbidden, "insufficient permissions"},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, "too many login attempts"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"record not found", domain.ErrRecordNotFound, http.StatusNotFound, "record not found"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest, "invalid role"},
		{"invalid input", fmt.Errorf("%w: limit must be between 1 and 1000", domain.ErrInvalidInput), http.StatusBadRequest, "limit must be between 1 and 1000"},
		{"bare invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
		{"store unavailable", fmt.Errorf("%w: find user: %w", domain.ErrStoreUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable, "service temporarily unavailable"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			want := fmt.Sprintf(`{"error":%q}`, tt.wantMsg)
			if got := rec.Body.String(); got != want+"\n" {
				t.Errorf("expected body %s, got %s", want, got)
			}
		})
	}
}

func TestHTTPErrorHandler_ForbiddenListsRequiredRoles(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(&domain.ForbiddenError{Required: []string{"admin", "superadmin"}}, c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	want := `{"error":"insufficient permissions","required_roles":["admin","superadmin"]}` + "\n"
	if rec.Body.String() != want {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_UnauthorizedSetsChallenge(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrUnauthenticated, c)

	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Error("expected WWW-Authenticate: Bearer on 401")
	}
}
