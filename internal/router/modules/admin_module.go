package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	handlers "github.com/oksasatya/careerboost/internal/interface/http"
	"github.com/oksasatya/careerboost/internal/interface/middleware"
)

type AdminModule struct {
	Handler *handlers.AdminHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewAdminModule(h *handlers.AdminHandler, auth gin.HandlerFunc, rdb *redis.Client) *AdminModule {
	return &AdminModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/admin")
	g.Use(m.Auth, middleware.RequireRole(entity.RoleAdmin),
		middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("/dashboard", m.Handler.Dashboard)
		g.GET("/companies", m.Handler.ListCompanies)
		g.PATCH("/companies/:id/review", m.Handler.ReviewCompany)
		g.GET("/offers", m.Handler.ListOffers)
		g.PATCH("/offers/:id/moderation", m.Handler.ModerateOffer)
		g.GET("/users", m.Handler.ListUsers)
		g.PATCH("/users/:id/active", m.Handler.SetUserActive)
		g.GET("/audit-logs", m.Handler.AuditLog)
		g.POST("/sync/france-travail",
			middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByUserID(), nil),
			m.Handler.TriggerSync)
	}
}
