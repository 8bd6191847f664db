// @title                      SME Back-Office API
// @version                    1.0
// @description                Authentication, role-based access control and read access to SME records.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/smeworks/backoffice-api/internal/api"
	"github.com/smeworks/backoffice-api/internal/api/handler"
	"github.com/smeworks/backoffice-api/internal/core/service"
	"github.com/smeworks/backoffice-api/internal/infrastructure/config"
	"github.com/smeworks/backoffice-api/internal/infrastructure/db/mongo"
	"github.com/smeworks/backoffice-api/internal/infrastructure/db/postgres"
	"github.com/smeworks/backoffice-api/internal/infrastructure/db/redis"
	"github.com/smeworks/backoffice-api/internal/infrastructure/queue"
	"github.com/smeworks/backoffice-api/internal/infrastructure/security"
	"github.com/smeworks/backoffice-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, nil)
	if err != nil {
		bootstrap := zerolog.New(os.Stderr).With().Timestamp().Str("service", "backoffice-api").Logger()
		bootstrap.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "backoffice-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		stop()
		log.Fatal().Err(err).Msg("application error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	proxies, err := cfg.TrustedProxyNets()
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "backoffice-api",
	})
	if err != nil {
		return err
	}
	defer mongo.Disconnect(mongoClient, log)
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	pg, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.Postgres.URL,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer pg.Close()
	if err := postgres.Migrate(ctx, pg); err != nil {
		return err
	}
	log.Info().Int("max_open_conns", cfg.Postgres.MaxOpenConns).Msg("postgres connected")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	userRepo := mongo.NewUserRepository(mongoDB)
	auditRepo := mongo.NewAuditRepository(mongoDB)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret:    cfg.Token.Secret,
		Algorithm: cfg.Token.Algorithm,
		TTL:       cfg.TokenTTL(),
	})
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	log.Info().Str("algorithm", tokens.Algorithm()).Int("bcrypt_cost", hasher.Cost()).Msg("security configured")

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, logger.Component("audit"))
	authSvc, err := service.NewAuthService(userRepo, hasher, tokens, dispatcher, log)
	if err != nil {
		return err
	}
	userSvc := service.NewUserService(userRepo, hasher, dispatcher, log)
	recordSvc := service.NewRecordService(postgres.NewRecordRepository(pg))
	dispatcher.Start(context.Background())

	limiter := redis.NewLoginLimiter(rdb,
		redis.PerMinute(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),
		logger.Component("ratelimit"))

	e := api.NewRouter(api.Deps{
		Auth:      authSvc,
		Users:     userSvc,
		Records:   recordSvc,
		AuditLog:  auditRepo,
		AuditSink: dispatcher,
		Limiter:   limiter,
		Checks: []handler.DependencyCheck{
			{Name: "mongo", Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
			{Name: "postgres", Ping: pg.PingContext},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		Log:            log,
		TrustedProxies: proxies,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Int("trusted_proxies", len(proxies)).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		dispatcher.Stop()
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	dispatcher.Stop()
	log.Info().Msg("audit dispatcher drained")
	return nil
}
