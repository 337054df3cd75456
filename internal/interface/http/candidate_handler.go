package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/application"
	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/pkg/response"
)

type CandidateHandler struct {
	Svc    *application.CandidateService
	Logger *logrus.Logger
}

func NewCandidateHandler(svc *application.CandidateService, logger *logrus.Logger) *CandidateHandler {
	return &CandidateHandler{Svc: svc, Logger: logger}
}

type profileRequest struct {
	Headline        string   `json:"headline" binding:"max=200"`
	DesiredTitle    string   `json:"desired_title" binding:"max=200"`
	Bio             string   `json:"bio" binding:"max=5000"`
	City            string   `json:"city" binding:"max=120"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,longitude"`
	MaxDistanceKm   int      `json:"max_distance_km" binding:"gte=0,lte=1000"`
	ExperienceYears int      `json:"experience_years" binding:"gte=0,lte=60"`
	ContractTypes   []string `json:"contract_types" binding:"omitempty,max=6,dive,contract"`
	RemoteOK        bool     `json:"remote_ok"`
	Skills          []string `json:"skills" binding:"omitempty,max=50"`
	CVURL           string   `json:"cv_url" binding:"omitempty,url"`
	PhotoURL        string   `json:"photo_url" binding:"omitempty,url"`
}

type skillsRequest struct {
	Skills []string `json:"skills" binding:"required,max=50"`
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
}

type limitQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

func (h *CandidateHandler) GetProfile(c *gin.Context) {
	p, err := h.Svc.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newProfileView(p), "profile", nil)
}

func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	contracts := make([]entity.ContractType, 0, len(req.ContractTypes))
	for _, ct := range req.ContractTypes {
		contracts = append(contracts, entity.ContractType(ct))
	}
	p, err := h.Svc.UpdateProfile(c.Request.Context(), userID(c), application.ProfileInput{
		Headline:        req.Headline,
		DesiredTitle:    req.DesiredTitle,
		Bio:             req.Bio,
		City:            req.City,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		MaxDistanceKm:   req.MaxDistanceKm,
		ExperienceYears: req.ExperienceYears,
		ContractTypes:   contracts,
		RemoteOK:        req.RemoteOK,
		Skills:          req.Skills,
		CVURL:           req.CVURL,
		PhotoURL:        req.PhotoURL,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newProfileView(p), "profile updated", nil)
}

func (h *CandidateHandler) SetSkills(c *gin.Context) {
	var req skillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	skills, err := h.Svc.SetSkills(c.Request.Context(), userID(c), req.Skills)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"skills": skills}, "skills updated", nil)
}

func (h *CandidateHandler) ListApplications(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	p := q.page()
	apps, total, err := h.Svc.ListApplications(c.Request.Context(), userID(c), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, applicationViews(apps), "applications", pageMeta(p, total))
}

func (h *CandidateHandler) Apply(c *gin.Context) {
	var req applyRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badPayload(c, err)
			return
		}
	}
	app, err := h.Svc.Apply(c.Request.Context(), userID(c), c.Param("id"), req.CoverLetter)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, newApplicationView(app), "application sent", nil)
}

func (h *CandidateHandler) Withdraw(c *gin.Context) {
	app, err := h.Svc.Withdraw(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newApplicationView(app), "application withdrawn", nil)
}

func (h *CandidateHandler) Recommendations(c *gin.Context) {
	var q limitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	recs, err := h.Svc.Recommendations(c.Request.Context(), userID(c), q.Limit)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]recommendationView, 0, len(recs))
	for i := range recs {
		out = append(out, newRecommendationView(&recs[i]))
	}
	response.Success(c, http.StatusOK, out, "recommendations", nil)
}

func (h *CandidateHandler) MatchDetail(c *gin.Context) {
	rec, err := h.Svc.MatchDetail(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newRecommendationView(rec), "match", nil)
}
