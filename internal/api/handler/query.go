package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

const dateLayout = "2006-01-02"

// pageParams reads skip and limit. Unlike domain.Page.Normalize, values
// outside the accepted range are rejected rather than clamped.
func pageParams(c echo.Context) (domain.Page, error) {
	p := domain.Page{Skip: 0, Limit: domain.DefaultLimit}

	if raw := c.QueryParam("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return p, fmt.Errorf("%w: skip must be a non-negative integer", domain.ErrInvalidInput)
		}
		p.Skip = n
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > domain.MaxLimit {
			return p, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, domain.MaxLimit)
		}
		p.Limit = n
	}
	return p, nil
}

// boolParam parses an optional true/false query parameter.
func boolParam(c echo.Context, name string) (*bool, error) {
	switch c.QueryParam(name) {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	default:
		return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, name)
	}
}

// dateParam parses an optional YYYY-MM-DD query parameter.
func dateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format", domain.ErrInvalidInput, name)
	}
	return &t, nil
}
