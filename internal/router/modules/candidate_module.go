package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	handlers "github.com/oksasatya/careerboost/internal/interface/http"
	"github.com/oksasatya/careerboost/internal/interface/middleware"
)

// CandidateModule mounts /api/candidate for CANDIDATE accounts.
type CandidateModule struct {
	Handler *handlers.CandidateHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewCandidateModule(h *handlers.CandidateHandler, auth gin.HandlerFunc, rdb *redis.Client) *CandidateModule {
	return &CandidateModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *CandidateModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/candidate")
	g.Use(m.Auth, middleware.RequireRole(entity.RoleCandidate),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("/profile", m.Handler.GetProfile)
		g.PUT("/profile", m.Handler.UpdateProfile)
		g.PUT("/skills", m.Handler.SetSkills)
		g.GET("/applications", m.Handler.ListApplications)
		g.POST("/applications/:id/withdraw", m.Handler.Withdraw)
		g.POST("/offers/:id/apply",
			middleware.RateLimit(m.Redis, 20, time.Hour, middleware.KeyByUserID(), nil),
			m.Handler.Apply)
		g.GET("/offers/:id/match", m.Handler.MatchDetail)
		g.GET("/recommendations", m.Handler.Recommendations)
	}
}
