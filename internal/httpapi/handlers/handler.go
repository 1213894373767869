package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/polyglotcap/captions/internal/caption"
	"github.com/polyglotcap/captions/internal/config"
	"github.com/polyglotcap/captions/internal/httpapi/middleware"
	"github.com/polyglotcap/captions/internal/store/rabbitmq"
	"github.com/polyglotcap/captions/internal/store/redisstore"
	"github.com/polyglotcap/captions/internal/users"
)

type Handler struct {
	Cfg   config.Config
	Users users.Store
	Svc   *caption.Service

	// Cache, Rabbit and DB may be nil (feed served uncached, async
	// translation disabled, in-memory store).
	Cache  *redisstore.Store
	Rabbit *rabbitmq.Publisher
	DB     *gorm.DB
}

func NewHandler(cfg config.Config, us users.Store, svc *caption.Service, cache *redisstore.Store, rabbit *rabbitmq.Publisher, db *gorm.DB) *Handler {
	return &Handler{Cfg: cfg, Users: us, Svc: svc, Cache: cache, Rabbit: rabbit, DB: db}
}

func userFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.UserKey)
	if !ok {
		return "", false
	}
	u, ok := v.(string)
	return u, ok && u != ""
}
