package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/opus-favorites/config"
	"github.com/oksasatya/opus-favorites/internal/application"
	pginfra "github.com/oksasatya/opus-favorites/internal/infrastructure/postgres"
	"github.com/oksasatya/opus-favorites/internal/infrastructure/redisstore"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
)

// seed creates a demo account through the same signup path the site uses.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.WithError(err).Warn("session store not reachable, continuing without it")
	}
	defer func() { _ = rdb.Close() }()

	creds := application.NewCredentialService(
		pginfra.NewUserRepository(pool),
		redisstore.NewSessionRepository(rdb),
		logger,
	)

	in := application.SignupInput{
		Username: envOr("SEED_USERNAME", "demo"),
		Email:    envOr("SEED_EMAIL", "demo@example.com"),
		Password: envOr("SEED_PASSWORD", "secret123"),
	}
	u, err := creds.Signup(ctx, in)
	switch {
	case errors.Is(err, application.ErrDuplicateCredential):
		logger.WithError(err).Info("demo user already present")
		return
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}
	logger.WithField("user_id", u.ID).Infof("seeded user %s <%s>", u.Username, u.Email)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
