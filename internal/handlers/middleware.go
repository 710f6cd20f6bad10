package handlers

import (
	"errors"
	"net/http"
	"strings"

	"grinder_relay/internal/service"

	"github.com/gin-gonic/gin"
)

// Context key for the authenticated dashboard identity.
const ctxKeyUser = "user"

// bearerToken extracts the token from an Authorization header. Returns
// ("", false) when the header is absent or not Bearer-shaped.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// userAuthMiddleware gates dashboard endpoints with a signed bearer token.
// Websocket clients cannot set headers, so a token query parameter is
// accepted as a fallback.
func (h *Handler) userAuthMiddleware(c *gin.Context) {
	var token string
	if header := c.GetHeader("Authorization"); header != "" {
		var ok bool
		if token, ok = bearerToken(header); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Invalid Authorization header format",
			})
			return
		}
	} else if qt := c.Query("token"); qt != "" {
		token = qt
	} else {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false, "message": "Missing token",
		})
		return
	}

	identity, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false, "message": "Invalid/expired token",
		})
		return
	}

	c.Set(ctxKeyUser, identity)
	c.Next()
}

// gatewayAuthMiddleware gates ingest endpoints with the gateway's static
// shared secret: missing token → 401, mismatch → 403.
func (h *Handler) gatewayAuthMiddleware(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.services.VerifyGatewayToken(token); err != nil {
		if errors.Is(err, service.ErrGatewayForbidden) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}
