package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "token"

// CookieManager writes and clears the session cookie. In production the
// cookie is Secure with SameSite=None (cross-site frontend); elsewhere
// SameSite=Strict.
type CookieManager struct {
	Domain     string
	Production bool
}

func NewCookieManager(domain string, production bool) *CookieManager {
	return &CookieManager{Domain: domain, Production: production}
}

func (m *CookieManager) sameSite() http.SameSite {
	if m.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

// Set writes the session token cookie, HTTP-only, expiring with the token.
func (m *CookieManager) Set(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(SessionCookie, token, maxAgeFrom(exp), "/", m.Domain, m.Production, true)
}

// Clear removes the session cookie.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(SessionCookie, "", -1, "/", m.Domain, m.Production, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
