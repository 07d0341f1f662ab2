package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swagatom/blog-api/internal/domain/entity"
	"github.com/swagatom/blog-api/internal/domain/repository"
	"github.com/swagatom/blog-api/pkg/helpers"
	"github.com/swagatom/blog-api/pkg/response"
)

// Context keys set by Auth.
const (
	CtxUserID = "userID"
	CtxUser   = "currentUser"
)

// Auth validates the session cookie and loads the caller's account. On
// success the user ID and the full entity are set in the Gin context, so
// handlers and RequireAdmin never re-parse the token. A token whose account
// has since been deleted is rejected the same way as a missing one.
func Auth(users repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookie)
		if err != nil || token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "token not found", nil)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "invalid token", nil)
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "user not found", nil)
			return
		}

		c.Set(CtxUserID, u.ID)
		c.Set(CtxUser, u)
		c.Next()
	}
}

// RequireAdmin gates a route on the role loaded by Auth. It must run after
// Auth in the chain.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !u.IsAdmin() {
			response.AbortError[any](c, http.StatusForbidden, "admin access required", nil)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the account Auth loaded, or nil outside an
// authenticated chain.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
