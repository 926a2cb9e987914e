package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cortemaestro/barbershop-api/internal/config"
	"github.com/cortemaestro/barbershop-api/internal/session"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"

	loginPath = "/admin/login"
)

// AuthMiddleware gates the admin surface on the session cookie.
// Browser navigations get redirected to the login page; API calls get
// a 401 JSON body.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			reject(c)
			return
		}

		claims, err := session.Verify(cfg.JWTSecret, token)
		if err != nil {
			reject(c)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)

		c.Next()
	}
}

func reject(c *gin.Context) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, loginPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func wantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html")
}
