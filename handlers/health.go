package handlers

import (
	"net/http"

	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last snapshot taken by the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.CheckedAt.IsZero() && !status.Store {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm hairbook"})
}
