package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/internal/application"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
	"github.com/oksasatya/opus-favorites/pkg/response"
)

// writeError maps the application error taxonomy onto HTTP statuses.
// Anything unrecognised is logged and answered with a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var dup *application.DuplicateCredentialError
	var invalid *application.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{invalid.Field: invalid.Reason})
	case errors.As(err, &dup):
		response.Error[any](c, http.StatusConflict, dup.Error(), map[string]string{dup.Field: "already taken"})
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "Invalid credentials.", nil)
	case errors.Is(err, application.ErrCatalogUnavailable):
		helpers.LogError(logger, "catalog unavailable", err, logrus.Fields{"request_id": c.GetString("request_id")})
		response.Error[any](c, http.StatusBadGateway, "The music catalog is unavailable, please try again later.", nil)
	case errors.Is(err, application.ErrNoFavorites):
		response.Error[any](c, http.StatusNotFound, "Add some favorites to get recommendations.", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrUnauthenticated):
		response.Error[any](c, http.StatusUnauthorized, "unauthenticated", nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{"request_id": c.GetString("request_id"), "path": c.FullPath()})
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

// idParam parses a positive integer path parameter, answering 400 otherwise.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid "+name, map[string]string{name: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	response.Error[any](c, http.StatusNotFound, "page not found", map[string]string{"path": c.Request.URL.Path})
}
