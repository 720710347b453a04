package router

import (
	"github.com/oksasatya/opus-favorites/internal/container"
	handlers "github.com/oksasatya/opus-favorites/internal/interface/http"
	"github.com/oksasatya/opus-favorites/internal/router/modules"
)

// InitModules builds the handlers from the container and registers every
// feature module. Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	authH := handlers.NewAuthHandler(c.Credentials, c.SessionSvc, c.Cookies, c.Logger)
	catalogH := handlers.NewCatalogHandler(c.Catalog, c.Recommendations, c.Cookies, c.Logger)
	favoriteH := handlers.NewFavoriteHandler(c.FavoriteSvc, c.Cookies, c.Logger)

	r.Add(modules.NewCatalogModule(catalogH, c.Cookies))
	r.Add(modules.NewAuthModule(authH, c.Cookies))
	r.Add(modules.NewFavoriteModule(favoriteH, c.Cookies))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
