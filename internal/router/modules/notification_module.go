package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/careerboost/internal/interface/http"
	"github.com/oksasatya/careerboost/internal/interface/middleware"
)

// NotificationModule is open to every authenticated role.
type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewNotificationModule(h *handlers.NotificationHandler, auth gin.HandlerFunc, rdb *redis.Client) *NotificationModule {
	return &NotificationModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/notifications")
	// the unread badge polls, so this group gets a looser budget
	g.Use(m.Auth, middleware.RateLimit(m.Redis, 240, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("", m.Handler.List)
		g.GET("/unread-count", m.Handler.UnreadCount)
		g.POST("/read-all", m.Handler.MarkAllRead)
		g.POST("/:id/read", m.Handler.MarkRead)
	}
}
