package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/opus-favorites/internal/application"
	"github.com/oksasatya/opus-favorites/internal/domain/entity"
	"github.com/oksasatya/opus-favorites/internal/interface/middleware"
	"github.com/oksasatya/opus-favorites/pkg/helpers"
	"github.com/oksasatya/opus-favorites/pkg/response"
	"github.com/oksasatya/opus-favorites/pkg/validation"
)

type Credentials interface {
	Signup(ctx context.Context, in application.SignupInput) (*entity.User, error)
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

type Sessions interface {
	Login(ctx context.Context, u *entity.User, currentToken string) (string, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	Credentials Credentials
	Sessions    Sessions
	Cookies     *helpers.Manager
	Logger      *logrus.Logger
}

func NewAuthHandler(creds Credentials, sessions Sessions, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Credentials: creds, Sessions: sessions, Cookies: cookies, Logger: logger}
}

type signupRequest struct {
	Username string `form:"username" json:"username" binding:"required,max=50"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6,max=72"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required,min=6,max=72"`
}

// SignupForm GET /signup
func (h *AuthHandler) SignupForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"form":   formView("/signup", http.MethodPost, "username", "email", "password"),
		"notice": h.Cookies.PopFlash(c),
	}, "signup", nil)
}

// Signup POST /signup creates the account and signs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Credentials.Signup(c.Request.Context(), application.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if !h.establish(c, u) {
		return
	}
	response.Success(c, http.StatusCreated, userView(u), "Welcome, "+u.Username+"!", nil)
}

// LoginForm GET /login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"form":   formView("/login", http.MethodPost, "username", "password"),
		"notice": h.Cookies.PopFlash(c),
	}, "login", nil)
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Credentials.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if !h.establish(c, u) {
		return
	}
	response.Success(c, http.StatusOK, userView(u), "Hello, "+u.Username+"!", nil)
}

// establish binds u to a fresh session and hands the client its cookie.
func (h *AuthHandler) establish(c *gin.Context, u *entity.User) bool {
	rc := middleware.Current(c)
	token, err := h.Sessions.Login(c.Request.Context(), u, h.Cookies.Session(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return false
	}
	h.Cookies.SetSession(c, token)
	rc.User = u
	rc.SessionToken = token
	return true
}

// Logout GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	rc := middleware.Current(c)
	if err := h.Sessions.Logout(c.Request.Context(), rc.SessionToken); err != nil {
		helpers.LogError(h.Logger, "logout failed", err, logrus.Fields{"user_id": rc.UserID()})
	}
	h.Cookies.ClearSession(c)
	h.Cookies.SetFlash(c, "Goodbye")
	c.Redirect(http.StatusFound, "/")
}

// DeleteAccount POST /users/delete removes the user, their favorites and
// every session they hold.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	rc := middleware.Current(c)
	if err := h.Credentials.DeleteAccount(c.Request.Context(), rc.UserID()); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.ClearSession(c)
	h.Cookies.SetFlash(c, "Your account has been deleted.")
	c.Redirect(http.StatusFound, "/signup")
}
