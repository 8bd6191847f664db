package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// account is one of the initial back-office administrators.
type account struct {
	Username string
	Email    string
	Password string
	Role     string
}

type seedResult struct {
	Created []string
	Skipped []string
}

// seed creates every account that does not exist yet. Accounts without a
// password are skipped. Any other failure stops the run.
func seed(ctx context.Context, users ports.UserService, accounts []account, log zerolog.Logger) (seedResult, error) {
	var res seedResult
	meta := ports.RequestMeta{Actor: "provision"}

	for _, a := range accounts {
		if a.Password == "" {
			log.Warn().Str("username", a.Username).Msg("no password supplied, skipping")
			res.Skipped = append(res.Skipped, a.Username)
			continue
		}

		_, err := users.Create(ctx, ports.UserAdminInput{
			Username: a.Username,
			Email:    a.Email,
			Password: a.Password,
			Role:     a.Role,
		}, meta)
		switch {
		case errors.Is(err, domain.ErrUserExists):
			log.Info().Str("username", a.Username).Msg("user already exists")
			res.Skipped = append(res.Skipped, a.Username)
		case err != nil:
			return res, fmt.Errorf("create %s: %w", a.Username, err)
		default:
			log.Info().Str("username", a.Username).Str("role", a.Role).Msg("user created")
			res.Created = append(res.Created, a.Username)
		}
	}
	return res, nil
}
