package httpapi

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/polyglotcap/captions/internal/caption"
	"github.com/polyglotcap/captions/internal/common"
	"github.com/polyglotcap/captions/internal/config"
	"github.com/polyglotcap/captions/internal/httpapi/handlers"
	"github.com/polyglotcap/captions/internal/httpapi/middleware"
	"github.com/polyglotcap/captions/internal/store/rabbitmq"
	"github.com/polyglotcap/captions/internal/store/redisstore"
	"github.com/polyglotcap/captions/internal/users"
)

func NewRouter(cfg config.Config, us users.Store, svc *caption.Service, cache *redisstore.Store, rabbit *rabbitmq.Publisher, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.Default())

	// Unmatched GETs fall through to the static frontend.
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && serveStatic(c, cfg.StaticDir) {
			return
		}
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(cfg, us, svc, cache, rabbit, db)

	r.GET("/health", h.Health)
	r.GET("/api/health/live", h.Live)
	r.GET("/api/health/ready", h.Ready)

	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)

	r.GET("/api/logs/recent", h.RecentCaptions)

	authGroup := r.Group("/api")
	authGroup.Use(middleware.AuthRequired(cfg.JWTSecret))
	authGroup.GET("/auth/me", h.Me)

	authGroup.POST("/captions", h.CreateCaption)
	authGroup.GET("/captions", h.ListCaptions)
	authGroup.PUT("/captions/:id", h.UpdateCaption)
	authGroup.DELETE("/captions/:id", h.DeleteCaption)

	authGroup.POST("/manual/translate", h.ManualTranslate)
	authGroup.POST("/manual/translate/async", h.ManualTranslateAsync)
	authGroup.GET("/manual/jobs/:job_id", h.GetTranslateJob)
	authGroup.POST("/manual/save", h.ManualSave)

	return r
}

func serveStatic(c *gin.Context, dir string) bool {
	if dir == "" {
		return false
	}
	path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		path = filepath.Join(path, "index.html")
		info, err = os.Stat(path)
	}
	if err != nil || info.IsDir() {
		return false
	}
	c.File(path)
	return true
}
