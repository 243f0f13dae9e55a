package auth

import (
	"context"
	"errors"
	"net/http"

	dom "TaskTracker/internal/domain"
	"TaskTracker/internal/flash"
	"TaskTracker/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie holding the session ID.
const SessionCookieName = "session_id"

type userKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, u dom.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the user stored by WithUser.
func UserFromContext(ctx context.Context) (dom.User, bool) {
	u, ok := ctx.Value(userKey{}).(dom.User)
	return u, ok
}

// CurrentUser returns the user resolved for this request by LoadUser.
func CurrentUser(c *gin.Context) (dom.User, bool) {
	return UserFromContext(c.Request.Context())
}

// SessionID returns the session cookie value, or "".
func SessionID(c *gin.Context) string {
	id, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return id
}

// LoadUser resolves the session cookie to a user on every request and
// stores it in the request context. Anonymous requests pass through;
// storage failures abort with 500.
func LoadUser(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := SessionID(c)
		if sessionID == "" {
			c.Next()
			return
		}
		u, err := users.CurrentUser(c.Request.Context(), sessionID)
		switch {
		case err == nil:
			c.Request = c.Request.WithContext(WithUser(c.Request.Context(), u))
		case errors.Is(err, service.ErrAuth):
			// Stale cookie: drop it so the browser stops sending it.
			ClearSessionCookie(c)
		default:
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Next()
	}
}

// RequirePage redirects anonymous requests to the login form.
func RequirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			flash.Set(c, flash.Error, "Please log in to continue.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPI responds 401 to anonymous API requests.
func RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Next()
	}
}

// SetSessionCookie issues the session cookie.
func SetSessionCookie(c *gin.Context, id string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, id, maxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
