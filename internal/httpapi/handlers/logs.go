package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/polyglotcap/captions/internal/caption"
	"github.com/polyglotcap/captions/internal/common"
)

// RecentCaptions is the unauthenticated dashboard feed, cached in
// redis for a short TTL when a cache is wired.
func (h *Handler) RecentCaptions(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			common.Fail(c, http.StatusBadRequest, 10030, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	ctx := c.Request.Context()

	if h.Cache != nil {
		items, err := h.Cache.GetRecent(ctx, limit)
		if err == nil {
			common.OK(c, gin.H{"count": len(items), "items": items})
			return
		}
		if !errors.Is(err, redis.Nil) {
			log.Printf("logs: cache read failed: %v", err)
		}
	}

	items, err := h.Svc.Recent(ctx, limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50009, "failed to fetch recent captions")
		return
	}
	if items == nil {
		items = []caption.Caption{}
	}

	if h.Cache != nil {
		if err := h.Cache.SetRecent(ctx, limit, items); err != nil {
			log.Printf("logs: cache write failed: %v", err)
		}
	}

	common.OK(c, gin.H{"count": len(items), "items": items})
}
