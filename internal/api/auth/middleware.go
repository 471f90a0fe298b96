package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quillhub/quill/internal/storage"
	"github.com/quillhub/quill/internal/types"
	"github.com/quillhub/quill/internal/utils"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "quill_session"

	// LoginPath is where anonymous callers are sent; the original request
	// path rides along in ?next= so login can resume the action.
	LoginPath = "/auth/login"

	contextUserKey = "currentUser"
)

// CurrentUser resolves the session cookie (or a bearer token) into the
// request context. It never blocks a request; missing or invalid credentials
// just leave the request anonymous.
func CurrentUser(store storage.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
				raw = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if raw == "" {
			c.Next()
			return
		}

		claims, err := ParseToken(secret, raw)
		if err != nil {
			utils.Zlog.Debug("Rejected session token", zap.Error(err))
			c.Next()
			return
		}

		user, err := store.UserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireAuth redirects anonymous callers to the login page with a
// continuation back to the attempted action.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); !ok {
			target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user set by CurrentUser, if any.
func UserFrom(c *gin.Context) (*types.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*types.User)
	return user, ok
}
