package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
)

const requestContextKey = "request_context"

type ctxKey struct{}

// RequestContext is the per-request identity populated once by Session and
// read by every handler. User is nil for anonymous requests.
type RequestContext struct {
	RequestID    string
	User         *entity.User
	SessionToken string
}

func (rc *RequestContext) Authenticated() bool { return rc != nil && rc.User != nil }

// UserID returns 0 for anonymous requests.
func (rc *RequestContext) UserID() int64 {
	if !rc.Authenticated() {
		return 0
	}
	return rc.User.ID
}

// Current returns the request context attached to c, creating an anonymous
// one when the session middleware has not run.
func Current(c *gin.Context) *RequestContext {
	if v, ok := c.Get(requestContextKey); ok {
		if rc, ok := v.(*RequestContext); ok {
			return rc
		}
	}
	rc := &RequestContext{RequestID: c.GetString("request_id")}
	attach(c, rc)
	return rc
}

func attach(c *gin.Context, rc *RequestContext) {
	c.Set(requestContextKey, rc)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ctxKey{}, rc))
}

// FromContext exposes the request context to code that only sees a
// context.Context.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(ctxKey{}).(*RequestContext)
	return rc, ok
}
