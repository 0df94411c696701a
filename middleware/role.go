package middleware

import (
	"hairbook/models"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

var errRoleNotAllowed = utils.NewError(utils.KindForbidden, "You do not have permission to access this resource")

// Authorize admits only callers whose role is in roles. It must run after Authenticate.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			utils.RespondError(c, loggerFrom(c), utils.NewError(utils.KindUnauthorized, "Authentication required"))
			return
		}
		if !allowed[identity.Role] {
			utils.RespondError(c, loggerFrom(c), errRoleNotAllowed)
			return
		}
		c.Next()
	}
}
