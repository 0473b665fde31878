package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/domain/account"
)

const currentUserKey = "currentUser"

// UserResolver maps a verified email claim back to a user record.
type UserResolver interface {
	UserByEmail(ctx context.Context, email string) (*account.User, error)
}

// Middleware resolves the optional current user from the Authorization
// header. Requests without a valid bearer token proceed anonymously; the
// domain services decide which operations require authentication.
func Middleware(manager *Manager, users UserResolver, log zerolog.Logger) gin.HandlerFunc {
	logger := log.With().Str("component", "auth-middleware").Logger()

	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.Next()
			return
		}

		email, err := manager.Verify(tokenString)
		if err != nil {
			logger.Debug().Err(err).Msg("rejected bearer token")
			c.Next()
			return
		}

		user, err := users.UserByEmail(c.Request.Context(), email)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to resolve token user")
			c.Next()
			return
		}
		if user != nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *account.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*account.User)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
