package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/smeworks/backoffice-api/internal/api/metrics"
	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// RequirePolicy enforces role-based access control on top of Authenticate.
// Denials are counted and, when audit is non-nil, recorded.
func RequirePolicy(p domain.Policy, audit ports.AuditSink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if p.Allows(user.Role) {
				return next(c)
			}

			metrics.AuthzDenialsTotal.WithLabelValues(p.Name()).Inc()
			if audit != nil {
				audit.Record(domain.AuditEvent{
					Type:       domain.AuditAccessDenied,
					Username:   user.Username,
					RemoteAddr: c.RealIP(),
					Details: map[string]string{
						"method": c.Request().Method,
						"path":   c.Path(),
						"role":   user.Role,
						"policy": p.Name(),
					},
				})
			}
			return &domain.ForbiddenError{Required: p.Roles()}
		}
	}
}
