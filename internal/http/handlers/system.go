package handlers

import (
	"net/http"
	"time"

	"backend/internal/config"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// DBCheck pings the database so load balancers can verify readiness.
func DBCheck(c *gin.Context) {
	if err := config.EnsureDB(); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database tidak tersedia", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": "ok"})
}
