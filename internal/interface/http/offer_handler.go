package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/application"
	"github.com/oksasatya/careerboost/internal/domain/entity"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/pkg/response"
)

// OfferHandler serves the public catalogue.
type OfferHandler struct {
	Svc    *application.OfferService
	Logger *logrus.Logger
}

func NewOfferHandler(svc *application.OfferService, logger *logrus.Logger) *OfferHandler {
	return &OfferHandler{Svc: svc, Logger: logger}
}

type offerQuery struct {
	pageQuery
	Q            string `form:"q" binding:"max=200"`
	ContractType string `form:"contract_type" binding:"omitempty,contract"`
	City         string `form:"city" binding:"max=120"`
	Skill        string `form:"skill" binding:"max=80"`
	CompanyID    string `form:"company_id" binding:"omitempty,uuid"`
}

func (q offerQuery) filter(c *gin.Context) repo.OfferFilter {
	return repo.OfferFilter{
		ContractType: entity.ContractType(q.ContractType),
		City:         strings.TrimSpace(q.City),
		Remote:       queryBool(c, "remote"),
		Skill:        strings.TrimSpace(q.Skill),
		CompanyID:    q.CompanyID,
		Page:         q.page(),
	}
}

// List filters visible offers. A non-empty q goes through the search index.
func (h *OfferHandler) List(c *gin.Context) {
	var q offerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	f := q.filter(c)
	var (
		offers []entity.JobOffer
		total  int
		err    error
	)
	if text := strings.TrimSpace(q.Q); text != "" {
		offers, total, err = h.Svc.Search(c.Request.Context(), text, f)
	} else {
		offers, total, err = h.Svc.List(c.Request.Context(), f)
	}
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, offerViews(offers), "offers", pageMeta(f.Page, total))
}

func (h *OfferHandler) Get(c *gin.Context) {
	o, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newOfferView(o), "offer", nil)
}
