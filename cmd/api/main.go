// @title                       Formotex Inventory API
// @version                     1.0
// @description                 Equipment inventory with JWT authentication, admin/user roles and per-record ownership.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/formotex/inventory-api/internal/api"
	"github.com/formotex/inventory-api/internal/api/handler"
	"github.com/formotex/inventory-api/internal/core/service"
	"github.com/formotex/inventory-api/internal/infrastructure/db/mongo"
	"github.com/formotex/inventory-api/internal/infrastructure/db/redis"
	"github.com/formotex/inventory-api/internal/pkg/config"
	"github.com/formotex/inventory-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "inventory-api",
	})

	store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := mongo.EnsureIndexes(ctx, store.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure MongoDB indexes")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	hasher, err := service.NewBcryptHasher(cfg.BcryptSaltRounds)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid bcrypt cost")
	}
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token settings")
	}

	users := mongo.NewUserRepository(store.DB)
	equipment := mongo.NewEquipmentRepository(store.DB)

	e := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(users, hasher, tokens, redis.NewDenylist(rdb), logger.Component("auth")),
		Users:     service.NewUserService(users, hasher, logger.Component("users")),
		Equipment: service.NewEquipmentService(equipment, users, logger.Component("equipment")),
		Checkers: map[string]handler.Checker{
			"mongodb": store.Ping,
			"redis":   redis.Ping(rdb),
		},
		Log:        logger.Component("http"),
		Env:        cfg.Env,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("inventory API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
}
