package middleware

import (
	"context"
	"strings"

	"practicehub/internal/service"
	"practicehub/pkg/utils/contextkey"
	"practicehub/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware guards a route with bearer-token authentication.
// A request without a credential is rejected 401; a credential that cannot
// be verified is rejected 403. Both rejections carry no body.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.AbortUnauthorized(c)
			return
		}

		identity, err := authService.Authenticate(token)
		if err != nil {
			response.AbortForbidden(c)
			return
		}

		c.Set(identityKey, identity)
		ctx := context.WithValue(c.Request.Context(), contextkey.UserID, identity.ID.Hex())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CallerIdentity returns the authenticated identity attached by AuthMiddleware.
func CallerIdentity(c *gin.Context) (service.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return service.Identity{}, false
	}
	identity, ok := value.(service.Identity)
	return identity, ok
}

func extractBearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
