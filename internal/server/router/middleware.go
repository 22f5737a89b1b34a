package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/server/handlers"
	authsvc "github.com/salonhq/ledger/internal/service/auth"
)

// authRequired verifies the Authorization bearer token and places the account
// identity in the gin context for downstream handlers.
func authRequired(svc *authsvc.Service, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := svc.ParseToken(token)
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(handlers.ContextKeyUserID, claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
