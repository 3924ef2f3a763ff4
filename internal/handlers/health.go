package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck reports whether the database answers a ping.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	database := "ok"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		database = "unavailable"
	}

	if database != "ok" {
		respond(c, http.StatusServiceUnavailable, gin.H{"database": database}, "Service unavailable")
		return
	}
	respond(c, http.StatusOK, gin.H{"database": database}, "OK")
}
