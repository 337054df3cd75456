package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	handlers "github.com/oksasatya/careerboost/internal/interface/http"
	"github.com/oksasatya/careerboost/internal/interface/middleware"
)

// RecruiterModule mounts offer management and applicant review under /api/recruiter.
type RecruiterModule struct {
	Handler *handlers.RecruiterHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewRecruiterModule(h *handlers.RecruiterHandler, auth gin.HandlerFunc, rdb *redis.Client) *RecruiterModule {
	return &RecruiterModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *RecruiterModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/recruiter")
	g.Use(m.Auth, middleware.RequireRole(entity.RoleRecruiter),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("/offers", m.Handler.ListOffers)
		g.POST("/offers", m.Handler.CreateOffer)
		g.GET("/offers/:id", m.Handler.GetOffer)
		g.PUT("/offers/:id", m.Handler.UpdateOffer)
		g.DELETE("/offers/:id", m.Handler.DeleteOffer)
		g.PATCH("/offers/:id/status", m.Handler.ChangeOfferStatus)
		g.GET("/offers/:id/applications", m.Handler.Applicants)
		g.PATCH("/applications/:id/status", m.Handler.ChangeApplicationStatus)
		g.GET("/applications/:id/history", m.Handler.ApplicationHistory)
	}
}
