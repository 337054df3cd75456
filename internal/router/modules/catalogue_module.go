package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/careerboost/internal/interface/http"
	"github.com/oksasatya/careerboost/internal/interface/middleware"
)

// OfferModule serves the public catalogue: GET /api/offers, /api/offers/:id.
type OfferModule struct {
	Handler *handlers.OfferHandler
	Redis   *redis.Client
}

func NewOfferModule(h *handlers.OfferHandler, rdb *redis.Client) *OfferModule {
	return &OfferModule{Handler: h, Redis: rdb}
}

func (m *OfferModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/offers")
	g.Use(middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))
	{
		g.GET("", m.Handler.List)
		g.GET("/search", m.Handler.List)
		g.GET("/:id", m.Handler.Get)
	}
}

// SkillModule serves GET /api/skills and POST /api/skills/parse.
type SkillModule struct {
	Handler *handlers.SkillHandler
	Redis   *redis.Client
}

func NewSkillModule(h *handlers.SkillHandler, rdb *redis.Client) *SkillModule {
	return &SkillModule{Handler: h, Redis: rdb}
}

func (m *SkillModule) Register(rg *gin.RouterGroup) {
	rg.GET("/skills", middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil), m.Handler.List)
	// parsing is CPU bound, keep it tighter
	rg.POST("/skills/parse", middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIP(), nil), m.Handler.Parse)
}

// HealthModule serves GET /api/health without limits.
type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule { return &HealthModule{Handler: h} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Health)
}
