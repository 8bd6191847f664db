package domain

import "time"

// User models an account that can sign in to the back office.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// UserFilter narrows a user listing. Nil pointers mean "no filter".
type UserFilter struct {
	Role     string
	IsActive *bool
	Page     Page
}
