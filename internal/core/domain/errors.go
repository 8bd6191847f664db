package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
	ErrRecordNotFound     = errors.New("record not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrRateLimited        = errors.New("too many login attempts")
)

// ForbiddenError carries the roles an endpoint required. It matches
// ErrForbidden under errors.Is.
type ForbiddenError struct {
	Required []string
}

func (e *ForbiddenError) Error() string {
	return "insufficient permissions, required: " + strings.Join(e.Required, ", ")
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// ConfigurationError reports settings the process cannot start with.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Field + ": " + e.Reason
}
