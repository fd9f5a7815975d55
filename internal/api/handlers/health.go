package handlers

import (
	"net/http"

	"example.com/eventhub/services/events/internal/database"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	db database.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health checks the service and its database connection
func (h *HealthHandler) Health(c *gin.Context) {
	gormDB, err := h.db.DB()
	if err == nil {
		var one int
		err = gormDB.WithContext(c.Request.Context()).Raw("SELECT 1").Scan(&one).Error
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"database": "error",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "connected",
	})
}

// RegisterRoutes registers the handler's routes
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
}
