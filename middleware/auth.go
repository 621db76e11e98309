package middleware

import (
	"context"
	"net/http"
	"strings"

	"ceremo/models"
	"ceremo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const actorKey = "actor"

// JWTAuthMiddleware validates the bearer token, rejects revoked tokens via
// the Redis auth cache, and places the acting party on the context. When
// requiredRole is non-empty the token's role claim must match.
func JWTAuthMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		actorID, role, err := utils.ExtractActorFromToken(tokenString)
		if err != nil || actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if requiredRole != "" && role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden for this role"})
			return
		}

		// Revoked tokens are denylisted by hash in the auth cache.
		revokedKey := utils.AuthCachePrefix + "revoked:" + utils.HashToken(tokenString)
		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			if _, err := authCache.Get(context.Background(), revokedKey).Result(); err == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
				return
			} else if err != redis.Nil {
				utils.GetLogger().Sugar().Warnf("auth cache lookup failed: %v", err)
			}
		}

		c.Set(actorKey, models.Actor{ID: actorID, Role: role})
		c.Next()
	}
}

// ActorFromContext returns the authenticated actor set by JWTAuthMiddleware.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
