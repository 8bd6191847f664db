package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/smeworks/backoffice-api/internal/api/middleware"
	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// currentUser returns the user injected by the Authenticate middleware.
// Its absence means the route was mounted without authentication.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return u, nil
}

// requestMeta describes the caller for audit records.
func requestMeta(c echo.Context) ports.RequestMeta {
	meta := ports.RequestMeta{RemoteAddr: c.RealIP()}
	if u, ok := middleware.CurrentUser(c); ok {
		meta.Actor = u.Username
		meta.ActorRole = u.Role
	}
	return meta
}
