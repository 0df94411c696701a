package middleware

import (
	"context"

	"hairbook/models"
	"hairbook/services/auth"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key of the authenticated models.Identity.
const IdentityKey = "identity"

// TokenVerifier checks a bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// UserResolver finds the account a token was issued to.
type UserResolver interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticate verifies the bearer token and stores the caller's identity on the context.
func Authenticate(verifier TokenVerifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := loggerFrom(c)
		ctx := c.Request.Context()

		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			utils.RespondError(c, logger, err)
			return
		}
		claims, err := verifier.Verify(ctx, token)
		if err != nil {
			utils.RespondError(c, logger, err)
			return
		}
		user, err := users.GetUserByEmail(ctx, claims.Email)
		if err != nil {
			utils.RespondError(c, logger, err)
			return
		}

		c.Set(IdentityKey, models.Identity{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
			Token:  token,
		})
		c.Next()
	}
}

// GetIdentity returns the identity stored by Authenticate.
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}
