package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the requesting user's identity. Full JWT
// authentication is handled upstream; this service only needs a stable
// user identifier for scoping saved calculations.
//
// TODO: extract the user ID from validated token claims here once token
// verification lands, instead of trusting the header.
const UserIDHeader = "X-User-ID"

// RequireUser is a gin middleware that extracts the requesting user's ID and
// injects it into the request context. Requests without an identity are
// rejected with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			slog.DebugContext(c.Request.Context(), "request without user identity", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserIDHeader + " header"})
			return
		}

		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}
