package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/internal/application"
	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
)

type SessionResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (*entity.User, error)
}

// Session resolves the current user before any handler runs. Stale or
// tampered cookies are cleared; store failures degrade to anonymous.
func Session(resolver SessionResolver, cookies *helpers.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := &RequestContext{RequestID: c.GetString("request_id")}
		token := cookies.Session(c)

		u, err := resolver.ResolveCurrentUser(c.Request.Context(), token)
		switch {
		case errors.Is(err, application.ErrUnauthenticated):
			cookies.ClearSession(c)
		case err != nil:
			if logger != nil {
				logger.WithError(err).WithField("request_id", rc.RequestID).Warn("session lookup failed")
			}
		case u != nil:
			rc.User = u
			rc.SessionToken = token
		}

		attach(c, rc)
		c.Next()
	}
}
