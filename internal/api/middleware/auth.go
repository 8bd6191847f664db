package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smeworks/backoffice-api/internal/api/metrics"
	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// UserKey is the echo context key holding the authenticated *domain.User.
const UserKey = "user"

// Authenticate resolves the bearer token to an active user and injects it
// into the context. Every failure surfaces as domain.ErrUnauthenticated,
// except store outages which stay matchable as domain.ErrStoreUnavailable.
func Authenticate(svc ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthenticationsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			user, err := svc.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					metrics.AuthenticationsTotal.WithLabelValues("invalid_token").Inc()
				} else {
					metrics.AuthenticationsTotal.WithLabelValues("error").Inc()
				}
				return err
			}

			metrics.AuthenticationsTotal.WithLabelValues("success").Inc()
			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Authenticate.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(UserKey).(*domain.User)
	return u, ok && u != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
