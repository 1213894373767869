package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polyglotcap/captions/internal/common"
)

func (h *Handler) Health(c *gin.Context) {
	common.OK(c, gin.H{"status": "ok"})
}

func (h *Handler) Live(c *gin.Context) {
	common.OK(c, gin.H{"status": "ok"})
}

// Ready reports per-dependency status plus an aggregate. Speech and
// translator are configuration booleans (the stubs serve unconfigured
// deployments), so only store and cache connectivity gate readiness.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbOK := true
	if h.DB != nil {
		dbOK = false
		if sqlDB, err := h.DB.DB(); err == nil {
			dbOK = sqlDB.PingContext(ctx) == nil
		}
	}

	redisOK := true
	if h.Cache != nil {
		redisOK = h.Cache.Ping(ctx) == nil
	}

	checks := gin.H{
		"db":                    dbOK,
		"redis":                 redisOK,
		"speech_configured":     h.Cfg.AzureSpeechKey != "",
		"translator_configured": h.Cfg.UseAzureTranslator && h.Cfg.AzureTranslatorKey != "",
	}

	ready := dbOK && redisOK
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"code":    0,
		"message": "ok",
		"data":    gin.H{"ready": ready, "checks": checks},
	})
}
