package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/opus-favorites/pkg/helpers"
)

const LoginNotice = "Please log in first."

// RequireAuth sends anonymous requests to /login with a flash notice. It
// must run after Session.
func RequireAuth(cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Current(c).Authenticated() {
			c.Next()
			return
		}
		cookies.SetFlash(c, LoginNotice)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}
