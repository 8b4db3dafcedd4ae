package middlewares

import (
	"net/http"
	"strings"

	authUtils "urbanreport-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RelayAuth only lets requests carrying a relay token signed with secret
// through to the mail relay.
func RelayAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Relay secret not configured"})
			c.Abort()
			return
		}

		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}

		// Extracting token from "Bearer <token>" format
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if err := authUtils.ParseRelayToken(secret, tokenString); err != nil {
			log.Warn().Err(err).Str("client_ip", c.ClientIP()).Msg("relay token validation failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
