package handlers

import (
	"hairbook/middleware"
	"hairbook/models"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped logger, falling back to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(middleware.LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// identityOrAbort returns the authenticated caller, answering 401 when there is none.
func identityOrAbort(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		utils.RespondError(c, getLogger(c), utils.NewError(utils.KindUnauthorized, "Authentication required"))
	}
	return identity, ok
}

// bindJSON decodes the body, answering 400 on malformed input.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		utils.RespondError(c, getLogger(c), utils.WrapError(utils.KindValidation, "Invalid request body", err))
		return false
	}
	return true
}
