package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/opus-favorites/internal/interface/http"
	"github.com/oksasatya/opus-favorites/internal/interface/middleware"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
)

// AuthModule serves signup, login, logout and account deletion.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Cookies *helpers.Manager
}

func NewAuthModule(h *handlers.AuthHandler, cookies *helpers.Manager) *AuthModule {
	return &AuthModule{Handler: h, Cookies: cookies}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/signup", m.Handler.SignupForm)
	rg.POST("/signup", m.Handler.Signup)
	rg.GET("/login", m.Handler.LoginForm)
	rg.POST("/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Cookies))
	{
		auth.GET("/logout", m.Handler.Logout)
		auth.POST("/users/delete", m.Handler.DeleteAccount)
	}
}
