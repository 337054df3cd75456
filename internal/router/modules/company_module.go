package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	handlers "github.com/oksasatya/careerboost/internal/interface/http"
	"github.com/oksasatya/careerboost/internal/interface/middleware"
)

// CompanyModule exposes the verified company directory and the recruiter
// side company management under /api/recruiter/companies.
type CompanyModule struct {
	Handler *handlers.CompanyHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewCompanyModule(h *handlers.CompanyHandler, auth gin.HandlerFunc, rdb *redis.Client) *CompanyModule {
	return &CompanyModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *CompanyModule) Register(rg *gin.RouterGroup) {
	public := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/companies", public, m.Handler.List)
	rg.GET("/companies/:id", public, m.Handler.Get)

	g := rg.Group("/recruiter/companies")
	g.Use(m.Auth, middleware.RequireRole(entity.RoleRecruiter),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("", m.Handler.ListMine)
		g.POST("", m.Handler.Create)
		g.PUT("/:id", m.Handler.Update)
		g.GET("/:id/members", m.Handler.Members)
		g.POST("/:id/members", m.Handler.AddMember)
	}
}
