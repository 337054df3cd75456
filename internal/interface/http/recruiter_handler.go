package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/application"
	"github.com/oksasatya/careerboost/internal/domain/entity"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/pkg/response"
)

type RecruiterHandler struct {
	Svc    *application.RecruiterService
	Logger *logrus.Logger
}

func NewRecruiterHandler(svc *application.RecruiterService, logger *logrus.Logger) *RecruiterHandler {
	return &RecruiterHandler{Svc: svc, Logger: logger}
}

type offerSkillRequest struct {
	Name     string  `json:"name" binding:"required,max=80"`
	Required bool    `json:"required"`
	Weight   float64 `json:"weight" binding:"gte=0,lte=5"`
}

type offerRequest struct {
	CompanyID          string              `json:"company_id" binding:"omitempty,uuid"`
	Title              string              `json:"title" binding:"required,max=200"`
	Description        string              `json:"description" binding:"required,max=20000"`
	ContractType       string              `json:"contract_type" binding:"omitempty,contract"`
	City               string              `json:"city" binding:"max=120"`
	Latitude           *float64            `json:"latitude" binding:"omitempty,latitude"`
	Longitude          *float64            `json:"longitude" binding:"omitempty,longitude"`
	Remote             bool                `json:"remote"`
	SalaryMin          *int                `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax          *int                `json:"salary_max" binding:"omitempty,gte=0"`
	ExperienceMinYears *int                `json:"experience_min_years" binding:"omitempty,gte=0,lte=40"`
	Status             string              `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED"`
	Skills             []offerSkillRequest `json:"skills" binding:"omitempty,max=40,dive"`
}

func (r offerRequest) input() application.OfferInput {
	in := application.OfferInput{
		CompanyID:          r.CompanyID,
		Title:              r.Title,
		Description:        r.Description,
		ContractType:       entity.ContractType(r.ContractType),
		City:               r.City,
		Latitude:           r.Latitude,
		Longitude:          r.Longitude,
		Remote:             r.Remote,
		SalaryMin:          r.SalaryMin,
		SalaryMax:          r.SalaryMax,
		ExperienceMinYears: r.ExperienceMinYears,
		Status:             entity.OfferStatus(r.Status),
	}
	for _, s := range r.Skills {
		in.Skills = append(in.Skills, application.SkillInput{Name: s.Name, Required: s.Required, Weight: s.Weight})
	}
	return in
}

type offerStatusRequest struct {
	Status string `json:"status" binding:"required,offerstatus"`
}

type applicationStatusRequest struct {
	Status string `json:"status" binding:"required,appstatus"`
	Note   string `json:"note" binding:"max=2000"`
}

type recruiterOfferQuery struct {
	pageQuery
	CompanyID string `form:"company_id" binding:"omitempty,uuid"`
}

func (h *RecruiterHandler) CreateOffer(c *gin.Context) {
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if req.CompanyID == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"company_id": "is required"})
		return
	}
	o, err := h.Svc.CreateOffer(c.Request.Context(), userID(c), req.input())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, newOfferView(o), "offer created, awaiting moderation", nil)
}

func (h *RecruiterHandler) ListOffers(c *gin.Context) {
	var q recruiterOfferQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	f := repo.OfferFilter{Page: q.page()}
	offers, total, err := h.Svc.ListOffers(c.Request.Context(), userID(c), q.CompanyID, f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, offerViews(offers), "offers", pageMeta(f.Page, total))
}

func (h *RecruiterHandler) GetOffer(c *gin.Context) {
	o, err := h.Svc.GetOffer(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newOfferView(o), "offer", nil)
}

func (h *RecruiterHandler) UpdateOffer(c *gin.Context) {
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	o, err := h.Svc.UpdateOffer(c.Request.Context(), userID(c), c.Param("id"), req.input())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newOfferView(o), "offer updated, awaiting moderation", nil)
}

func (h *RecruiterHandler) DeleteOffer(c *gin.Context) {
	if err := h.Svc.DeleteOffer(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "offer deleted", nil)
}

func (h *RecruiterHandler) ChangeOfferStatus(c *gin.Context) {
	var req offerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	o, err := h.Svc.ChangeOfferStatus(c.Request.Context(), userID(c), c.Param("id"), entity.OfferStatus(req.Status))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newOfferView(o), "offer status updated", nil)
}

func (h *RecruiterHandler) Applicants(c *gin.Context) {
	list, err := h.Svc.Applicants(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, applicantViews(list), "applicants", nil)
}

func (h *RecruiterHandler) ChangeApplicationStatus(c *gin.Context) {
	var req applicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	app, err := h.Svc.ChangeApplicationStatus(c.Request.Context(), userID(c), c.Param("id"),
		entity.ApplicationStatus(req.Status), req.Note)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newApplicationView(app), "application status updated", nil)
}

func (h *RecruiterHandler) ApplicationHistory(c *gin.Context) {
	events, err := h.Svc.ApplicationHistory(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, eventViews(events), "history", nil)
}
