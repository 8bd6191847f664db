// Command provision seeds the initial superadmin, admin1 and admin2 accounts.
//
// Passwords are read from PROVISION_SUPERADMIN_PASSWORD,
// PROVISION_ADMIN1_PASSWORD and PROVISION_ADMIN2_PASSWORD, or from the
// matching flags, which take precedence.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/service"
	"github.com/smeworks/backoffice-api/internal/infrastructure/config"
	"github.com/smeworks/backoffice-api/internal/infrastructure/db/mongo"
	"github.com/smeworks/backoffice-api/internal/infrastructure/queue"
	"github.com/smeworks/backoffice-api/internal/infrastructure/security"
	"github.com/smeworks/backoffice-api/pkg/logger"
)

type provisionEnv struct {
	SuperadminPassword string `env:"PROVISION_SUPERADMIN_PASSWORD"`
	Admin1Password     string `env:"PROVISION_ADMIN1_PASSWORD"`
	Admin2Password     string `env:"PROVISION_ADMIN2_PASSWORD"`
	EmailDomain        string `env:"PROVISION_EMAIL_DOMAIN, default=example.com"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, nil)
	if err != nil {
		bootstrap := zerolog.New(os.Stderr).With().Timestamp().Str("service", "backoffice-provision").Logger()
		bootstrap.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "backoffice-provision"})

	if err := run(ctx, cfg, log); err != nil {
		stop()
		log.Fatal().Err(err).Msg("provisioning failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var env provisionEnv
	if err := envconfig.Process(ctx, &env); err != nil {
		return err
	}

	superPw := flag.String("superadmin-password", env.SuperadminPassword, "password for the superadmin account")
	admin1Pw := flag.String("admin1-password", env.Admin1Password, "password for the admin1 account")
	admin2Pw := flag.String("admin2-password", env.Admin2Password, "password for the admin2 account")
	emailDomain := flag.String("email-domain", env.EmailDomain, "domain used for the seeded e-mail addresses")
	flag.Parse()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "backoffice-provision",
	})
	if err != nil {
		return err
	}
	defer mongo.Disconnect(client, log)

	userRepo := mongo.NewUserRepository(db)
	auditRepo := mongo.NewAuditRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	dispatcher := queue.NewDispatcher(1, auditRepo, log)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	users := service.NewUserService(userRepo, security.NewBcryptHasher(cfg.BcryptCost), dispatcher, log)

	res, err := seed(ctx, users, []account{
		{Username: "superadmin", Email: "superadmin@" + *emailDomain, Password: *superPw, Role: domain.RoleSuperAdmin},
		{Username: "admin1", Email: "admin1@" + *emailDomain, Password: *admin1Pw, Role: domain.RoleAdmin1},
		{Username: "admin2", Email: "admin2@" + *emailDomain, Password: *admin2Pw, Role: domain.RoleAdmin2},
	}, log)
	if err != nil {
		return err
	}

	log.Info().Strs("created", res.Created).Strs("skipped", res.Skipped).Msg("provisioning finished")
	return nil
}
