package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/application"
	"github.com/oksasatya/careerboost/pkg/response"
)

type SkillHandler struct {
	Svc    *application.SkillService
	Logger *logrus.Logger
}

func NewSkillHandler(svc *application.SkillService, logger *logrus.Logger) *SkillHandler {
	return &SkillHandler{Svc: svc, Logger: logger}
}

type skillQuery struct {
	Q        string `form:"q" binding:"max=80"`
	Category string `form:"category" binding:"max=40"`
}

type parseRequest struct {
	Text string `json:"text" binding:"required,max=50000"`
}

func (h *SkillHandler) List(c *gin.Context) {
	var q skillQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	list, err := h.Svc.List(c.Request.Context(), q.Q, q.Category)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, skillViews(list), "skills", nil)
}

// Parse extracts skills, experience and contract type from free text.
func (h *SkillHandler) Parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Svc.Parse(req.Text)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "parsed", nil)
}
