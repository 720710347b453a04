package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/internal/application"
	"github.com/oksasatya/opus-favorites/internal/domain/repository"
	"github.com/oksasatya/opus-favorites/internal/interface/middleware"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
	"github.com/oksasatya/opus-favorites/pkg/response"
)

type Recommender interface {
	RecommendFor(ctx context.Context, userID int64) (*application.Recommendation, error)
}

type CatalogHandler struct {
	Catalog     repository.CatalogProvider
	Recommender Recommender
	Cookies     *helpers.Manager
	Logger      *logrus.Logger
}

func NewCatalogHandler(catalog repository.CatalogProvider, rec Recommender, cookies *helpers.Manager, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Recommender: rec, Cookies: cookies, Logger: logger}
}

// Home GET /
func (h *CatalogHandler) Home(c *gin.Context) {
	rc := middleware.Current(c)
	data := gin.H{"notice": h.Cookies.PopFlash(c), "user": nil}
	if rc.Authenticated() {
		data["user"] = userView(rc.User)
	}
	response.Success(c, http.StatusOK, data, "opus favorites", nil)
}

// SearchForm GET /search
func (h *CatalogHandler) SearchForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"form": formView("/searchname", http.MethodGet, "search"),
	}, "search composers", nil)
}

// SearchName GET /searchname?search=
func (h *CatalogHandler) SearchName(c *gin.Context) {
	q := strings.TrimSpace(c.Query("search"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid query", map[string]string{"search": "is required"})
		return
	}
	composers, err := h.Catalog.SearchComposers(c.Request.Context(), q)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	names := make([]string, 0, len(composers))
	for _, cp := range composers {
		names = append(names, cp.CompleteName)
	}
	response.Success(c, http.StatusOK, gin.H{"names": names, "composers": composers}, "search results", map[string]any{"count": len(names)})
}

// Composer GET /composer/:id
func (h *CatalogHandler) Composer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	composer, works, err := h.Catalog.ListWorks(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"composer": composer,
		"works":    works,
		"notice":   h.Cookies.PopFlash(c),
	}, "composer works", map[string]any{"count": len(works)})
}

// Recommendations GET /recs
func (h *CatalogHandler) Recommendations(c *gin.Context) {
	rc := middleware.Current(c)
	rec, err := h.Recommender.RecommendFor(c.Request.Context(), rc.UserID())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, rec, "recommended composers", map[string]any{"count": len(rec.Composers)})
}
