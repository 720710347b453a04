package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/config"
	"github.com/oksasatya/opus-favorites/internal/application"
	"github.com/oksasatya/opus-favorites/internal/domain/repository"
	"github.com/oksasatya/opus-favorites/internal/infrastructure/openopus"
	pginfra "github.com/oksasatya/opus-favorites/internal/infrastructure/postgres"
	"github.com/oksasatya/opus-favorites/internal/infrastructure/redisstore"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
)

// Container holds everything built at startup. It is constructed once in
// main and passed down explicitly; nothing here is package-level state.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Pool    *pgxpool.Pool
	Redis   *redis.Client
	Signer  *helpers.SessionSigner
	Cookies *helpers.Manager

	Users     repository.UserRepository
	Favorites repository.FavoriteRepository
	Sessions  repository.SessionRepository
	Catalog   repository.CatalogProvider

	Credentials     *application.CredentialService
	SessionSvc      *application.SessionService
	FavoriteSvc     *application.FavoriteService
	Recommendations *application.RecommendationService
}

// New wires repositories and services on top of already opened clients.
func New(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool, rdb *redis.Client) *Container {
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Pool:    pool,
		Redis:   rdb,
		Signer:  helpers.NewSessionSigner(cfg.SessionSecret, cfg.AppName),
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}

	c.Users = pginfra.NewUserRepository(pool)
	c.Favorites = pginfra.NewFavoriteRepository(pool)
	c.Sessions = redisstore.NewSessionRepository(rdb)
	c.Catalog = openopus.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, logger)

	c.Credentials = application.NewCredentialService(c.Users, c.Sessions, logger)
	c.SessionSvc = application.NewSessionService(c.Sessions, c.Users, c.Signer, cfg.SessionTTL, logger)
	c.FavoriteSvc = application.NewFavoriteService(c.Favorites, c.Catalog, logger)
	c.Recommendations = application.NewRecommendationService(c.Favorites, c.Catalog, logger)
	return c
}
