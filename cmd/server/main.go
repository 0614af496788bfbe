package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/tourhub/marketplace/internal/api"
	"github.com/tourhub/marketplace/internal/api/handler"
	"github.com/tourhub/marketplace/internal/core/ports"
	"github.com/tourhub/marketplace/internal/core/service"
	"github.com/tourhub/marketplace/internal/infrastructure/airtable"
	"github.com/tourhub/marketplace/internal/infrastructure/db/mongo"
	"github.com/tourhub/marketplace/internal/infrastructure/db/redis"
	"github.com/tourhub/marketplace/internal/infrastructure/voucher"
	"github.com/tourhub/marketplace/internal/pkg/config"
	"github.com/tourhub/marketplace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       TourHub Marketplace API
// @version                     1.0
// @description                 Accounts, sessions, bookings and published content for the TourHub tours marketplace.
// @BasePath                    /
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        auth_token
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel, "marketplace-api"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	creds, err := service.NewCredentialService(cfg.JWTSecret)
	if err != nil {
		return err
	}

	store := airtable.NewClient(airtable.Config{
		BaseURL: cfg.Airtable.BaseURL,
		APIKey:  cfg.Airtable.APIKey,
		BaseID:  cfg.Airtable.BaseID,
		Timeout: cfg.Airtable.Timeout,
	})
	users := airtable.NewUserRepository(store, cfg.Airtable.UsersTable, log)
	bookings := airtable.NewBookingRepository(store, cfg.Airtable.BookingsTable)
	content := airtable.NewContentRepository(store, airtable.ContentTables{
		Listings:     cfg.Airtable.ListingsTable,
		Destinations: cfg.Airtable.DestinationsTable,
		Blog:         cfg.Airtable.BlogTable,
	})

	var (
		cache   ports.Cache
		revoker ports.TokenRevoker
		audit   ports.AuditRepository
		checks  []handler.DependencyCheck
	)

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		cache = redis.NewCache(rdb, "marketplace:")
		revoker = redis.NewTokenDenyList(rdb, "marketplace:")
		checks = append(checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		log.Warn().Msg("REDIS_ADDR not set: content caching and logout revocation disabled")
	}

	if cfg.Mongo.URI != "" {
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()

		repo := mongo.NewAuditRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		audit = repo
		checks = append(checks, handler.DependencyCheck{
			Name: "mongo",
			Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		})
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")
	} else {
		log.Warn().Msg("MONGO_URI not set: auth audit trail disabled")
	}

	e := api.NewRouter(api.Services{
		Auth:     service.NewAuthService(users, creds, revoker, audit, log),
		Bookings: service.NewBookingService(bookings, voucher.NewRenderer(""), cfg.PublicBaseURL, log),
		Content:  service.NewContentService(content, cache, cfg.CacheTTL, log),
	}, api.Options{
		Log:                log,
		ExposeErrorDetails: cfg.IsDevelopment(),
		SecureCookies:      cfg.IsProduction(),
		CORSOrigins:        cfg.CORSOrigins,
		AuthRatePerMinute:  cfg.AuthRateLimit,
		ReadinessChecks:    checks,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
