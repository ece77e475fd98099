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

	"github.com/pressroom/auth-service/internal/api"
	"github.com/pressroom/auth-service/internal/api/handler"
	"github.com/pressroom/auth-service/internal/infrastructure/crypto"
	mongodb "github.com/pressroom/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/pressroom/auth-service/internal/infrastructure/db/redis"
	"github.com/pressroom/auth-service/internal/infrastructure/queue"
	"github.com/pressroom/auth-service/internal/infrastructure/token"
	"github.com/pressroom/auth-service/internal/pkg/config"
	"github.com/pressroom/auth-service/pkg/logger"
)

const serviceName = "newsroom-auth"

func main() {
	// A local .env is optional; real environment variables take precedence.
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := token.NewJWTIssuer([]byte(cfg.JWTSecret), config.SessionTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	hashPool := queue.NewHashPool(cfg.Auth.HashWorkers, crypto.NewBcryptHasher(crypto.DefaultCost), logger.Component("hash_pool"))
	// Outlives ctx so requests drained during shutdown can still hash.
	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()
	hashPool.Start(poolCtx)

	router := api.NewRouter(api.Deps{
		Users:          redisdb.NewUserCache(users, rdb, cfg.Redis.UserTTL, logger.Component("user_cache")),
		Hasher:         hashPool,
		Tokens:         tokens,
		SessionTTL:     config.SessionTTL,
		EnforceSession: cfg.Auth.EnforceSession,
		CookieSecure:   cfg.Auth.CookieSecure,
		CORSOrigins:    cfg.CORS.AllowOrigins,
		Pingers: map[string]handler.Pinger{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log: logger.Component("http"),
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
}
