// Command api runs the med-detector credential gateway.
//
// @title                       Med Detector Credential Gateway
// @version                     1.0
// @description                 Authentication, session tokens and provider approval for the med-detector record store.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        Authorization
// @description                 Session token issued by /login. A Bearer prefix is optional.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meddetector/credential-gateway/internal/api"
	"github.com/meddetector/credential-gateway/internal/api/metrics"
	"github.com/meddetector/credential-gateway/internal/core/domain"
	"github.com/meddetector/credential-gateway/internal/core/service"
	mongodb "github.com/meddetector/credential-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/meddetector/credential-gateway/internal/infrastructure/db/redis"
	"github.com/meddetector/credential-gateway/internal/infrastructure/http/handlers"
	"github.com/meddetector/credential-gateway/internal/infrastructure/queue"
	"github.com/meddetector/credential-gateway/internal/infrastructure/security"
	"github.com/meddetector/credential-gateway/internal/pkg/config"
	"github.com/meddetector/credential-gateway/pkg/logger"
)

const (
	serviceName     = "credential-gateway"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{Service: serviceName})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
		Env:     cfg.Env,
	})
	if cfg.InsecureSecret {
		log.Warn().Msg("JWT_SECRET and SECRET_KEY are not set, signing tokens with the built-in development secret")
	}

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongodb.Disconnect(context.Background(), mongoClient); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}

	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()
	hasher := queue.NewHashPool(cfg.HashWorkers, security.NewBcryptHasher(cfg.BcryptCost), logger.Component("hash_pool"))
	hasher.Start(poolCtx)

	tokens := security.NewJWTIssuer(cfg.JWTSecret, domain.SessionTTL)

	// --- Services ---
	authService := service.NewAuthService(users, hasher, tokens, logger.Component("auth"))
	accountService := service.NewAccountService(users, hasher, redisdb.NewLocker(rdb), logger.Component("accounts"))
	guard := service.NewGuard(tokens, users)

	seeded, err := accountService.Bootstrap(ctx, cfg.Seeds())
	if err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}
	metrics.AdminsSeededTotal.Add(float64(seeded))

	// --- HTTP ---
	e := api.NewRouter(api.Services{
		Auth:     authService,
		Accounts: accountService,
		Guard:    guard,
	}, api.Options{
		CORSOrigins: cfg.CORSOrigins,
		Readiness: map[string]handlers.Pinger{
			"mongodb": handlers.MongoPinger(db),
			"redis":   handlers.RedisPinger(rdb),
		},
	}, logger.Component("http"))

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
