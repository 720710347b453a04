package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/opus-favorites/internal/interface/http"
	"github.com/oksasatya/opus-favorites/internal/interface/middleware"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
)

// FavoriteModule serves the favorites ledger. Every route requires login.
type FavoriteModule struct {
	Handler *handlers.FavoriteHandler
	Cookies *helpers.Manager
}

func NewFavoriteModule(h *handlers.FavoriteHandler, cookies *helpers.Manager) *FavoriteModule {
	return &FavoriteModule{Handler: h, Cookies: cookies}
}

func (m *FavoriteModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Cookies))
	{
		auth.GET("/favorites", m.Handler.Index)
		auth.GET("/addfavorite/:workId", m.Handler.Add)
		auth.GET("/playlists", m.Handler.Playlists)
		auth.POST("/removefavorite/:workId", m.Handler.Remove)
	}
}
