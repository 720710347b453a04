package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	"github.com/oksasatya/opus-favorites/internal/interface/middleware"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
	"github.com/oksasatya/opus-favorites/pkg/response"
)

type Favorites interface {
	Add(ctx context.Context, userID, workID int64) (*entity.Favorite, bool, error)
	Remove(ctx context.Context, favoriteID, userID int64) error
	List(ctx context.Context, userID int64) ([]entity.Favorite, error)
}

type FavoriteHandler struct {
	Favorites Favorites
	Cookies   *helpers.Manager
	Logger    *logrus.Logger
}

func NewFavoriteHandler(favs Favorites, cookies *helpers.Manager, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{Favorites: favs, Cookies: cookies, Logger: logger}
}

// Index GET /favorites
func (h *FavoriteHandler) Index(c *gin.Context) {
	rc := middleware.Current(c)
	favs, err := h.Favorites.List(c.Request.Context(), rc.UserID())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"count":  len(favs),
		"links":  gin.H{"playlists": "/playlists", "recommendations": "/recs", "search": "/search"},
		"notice": h.Cookies.PopFlash(c),
	}, "favorites", nil)
}

// Add GET /addfavorite/:workId, then back to the composer's page.
func (h *FavoriteHandler) Add(c *gin.Context) {
	workID, ok := idParam(c, "workId")
	if !ok {
		return
	}
	rc := middleware.Current(c)
	fav, created, err := h.Favorites.Add(c.Request.Context(), rc.UserID(), workID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if created {
		h.Cookies.SetFlash(c, "Added "+fav.Title+" to your favorites.")
	} else {
		h.Cookies.SetFlash(c, fav.Title+" is already in your favorites.")
	}
	c.Redirect(http.StatusFound, "/composer/"+strconv.FormatInt(fav.ComposerID, 10))
}

// Playlists GET /playlists
func (h *FavoriteHandler) Playlists(c *gin.Context) {
	rc := middleware.Current(c)
	favs, err := h.Favorites.List(c.Request.Context(), rc.UserID())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, favoriteViews(favs), "playlists", map[string]any{"count": len(favs)})
}

// Remove POST /removefavorite/:workId where the segment is the favorite id.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	id, ok := idParam(c, "workId")
	if !ok {
		return
	}
	rc := middleware.Current(c)
	if err := h.Favorites.Remove(c.Request.Context(), id, rc.UserID()); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": id}, "favorite removed", nil)
}
