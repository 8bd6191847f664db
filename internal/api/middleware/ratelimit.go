package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smeworks/backoffice-api/internal/api/metrics"
	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

const maxPeekBytes = 4 << 10

// LoginRateLimit throttles login attempts per client IP and username. The
// request body is restored for the handler after the username is read.
// Limiter errors fail open.
func LoginRateLimit(limiter ports.LoginLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP() + ":" + peekUsername(c)

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Msg("login rate limiter error, failing open")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}

func peekUsername(c echo.Context) string {
	req := c.Request()
	if req.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(req.Body, maxPeekBytes))
	rest := req.Body
	req.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(raw), rest), rest}
	if err != nil {
		return ""
	}

	var body struct {
		Username string `json:"username"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Username))
}
