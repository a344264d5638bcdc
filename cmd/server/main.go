// Package main is the entry point for the CampusPay API server. It
// wires configuration, storage, cache, the ledger engine and the HTTP
// layer together; nothing here holds business logic.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campuspay/internal/config"
	"campuspay/internal/logger"
	"campuspay/internal/repositories"
	"campuspay/internal/repositories/cache"
	"campuspay/internal/routes"
	"campuspay/internal/services/ledger"
	"campuspay/internal/services/topup"
	"campuspay/internal/services/user"
)

func main() {
	config.LoadEnv()

	log := logger.New("campuspay", config.GetEnv("LOG_LEVEL", "info"), !config.IsProduction())

	db, err := repositories.InitDB(repositories.DBConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("database initialization failed")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get database instance")
	}
	defer sqlDB.Close()
	log.Info().Msg("connected to database")

	store := repositories.NewStore(db)

	// The cache is an optimization; the service runs without it.
	var cacheSvc *cache.Service
	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
		redisClient = nil
	} else {
		cacheSvc = cache.NewService(redisClient, cache.WalletTTL)
		defer cacheSvc.Close()
		log.Info().Msg("connected to redis")
	}

	metrics := ledger.NewPrometheusCollector()

	var engineCache ledger.CacheOperator
	if cacheSvc != nil {
		engineCache = cacheSvc
	}
	engine := ledger.NewService(store, engineCache, metrics, log)

	var gateway topup.CardGateway
	if key := config.GetEnv("STRIPE_SECRET_KEY", ""); key != "" {
		gateway = topup.NewStripeGateway(key)
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY not set, card top-ups disabled")
	}
	workflow := topup.NewService(store, engine, gateway, log)
	users := user.NewService(store, log)

	app := fiber.New(fiber.Config{
		AppName:      "CampusPay",
		ReadTimeout:  config.GetDurationEnv("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: config.GetDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID, X-Admin-ID",
		AllowMethods: "GET,POST,DELETE",
	}))
	app.Use(fiberlogger.New())
	app.Use("/api/register", limiter.New(limiter.Config{
		Max:        5,
		Expiration: time.Minute,
	}))

	routes.Setup(app, routes.Deps{
		DB:       db,
		Store:    store,
		Cache:    cacheSvc,
		Engine:   engine,
		Workflow: workflow,
		Users:    users,
		Metrics:  promhttp.Handler(),
	})

	go func() {
		addr := ":" + config.GetEnv("PORT", "3000")
		log.Info().Str("addr", addr).Msg("server listening")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
