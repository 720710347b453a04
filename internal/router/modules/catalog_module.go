package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/opus-favorites/internal/interface/http"
	"github.com/oksasatya/opus-favorites/internal/interface/middleware"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
)

// CatalogModule serves the homepage, composer search and recommendations.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
	Cookies *helpers.Manager
}

func NewCatalogModule(h *handlers.CatalogHandler, cookies *helpers.Manager) *CatalogModule {
	return &CatalogModule{Handler: h, Cookies: cookies}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Home)
	rg.GET("/search", m.Handler.SearchForm)
	rg.GET("/searchname", m.Handler.SearchName)
	rg.GET("/composer/:id", m.Handler.Composer)

	rg.GET("/recs", middleware.RequireAuth(m.Cookies), m.Handler.Recommendations)
}
