package helpers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	FlashCookie   = "flash"
)

type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

// SetSession stores the signed session token. MaxAge 0 makes it a browser
// session cookie; the server-side TTL bounds its useful life.
func (m *Manager) SetSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, 0, "/", m.Domain, m.Secure, true)
}

func (m *Manager) Session(c *gin.Context) string {
	v, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return v
}

func (m *Manager) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", m.Domain, m.Secure, true)
}

// SetFlash leaves a one-shot notice for the next request.
func (m *Manager) SetFlash(c *gin.Context, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, url.QueryEscape(msg), 60, "/", m.Domain, m.Secure, true)
}

// PopFlash returns the pending notice, if any, and clears it.
func (m *Manager) PopFlash(c *gin.Context) string {
	v, err := c.Cookie(FlashCookie)
	if err != nil || v == "" {
		return ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, "", -1, "/", m.Domain, m.Secure, true)
	msg, err := url.QueryUnescape(v)
	if err != nil {
		return ""
	}
	return msg
}
