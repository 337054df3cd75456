package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/application"
	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/pkg/response"
)

type CompanyHandler struct {
	Svc    *application.CompanyService
	Logger *logrus.Logger
}

func NewCompanyHandler(svc *application.CompanyService, logger *logrus.Logger) *CompanyHandler {
	return &CompanyHandler{Svc: svc, Logger: logger}
}

type companyRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Siret       string `json:"siret" binding:"omitempty,siret"`
	Description string `json:"description" binding:"max=5000"`
	Website     string `json:"website" binding:"omitempty,url"`
	City        string `json:"city" binding:"max=120"`
}

func (r companyRequest) input() application.CompanyInput {
	return application.CompanyInput{Name: r.Name, Siret: r.Siret, Description: r.Description, Website: r.Website, City: r.City}
}

type memberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type companyQuery struct {
	pageQuery
	Q string `form:"q" binding:"max=200"`
}

// List is the public directory of verified companies.
func (h *CompanyHandler) List(c *gin.Context) {
	var q companyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	p := q.page()
	list, total, err := h.Svc.ListVerified(c.Request.Context(), strings.TrimSpace(q.Q), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, companyViews(list), "companies", pageMeta(p, total))
}

func (h *CompanyHandler) Get(c *gin.Context) {
	co, err := h.Svc.GetVerified(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newCompanyView(co), "company", nil)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	co, err := h.Svc.Create(c.Request.Context(), userID(c), req.input())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, newCompanyView(co), "company submitted for verification", nil)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	co, err := h.Svc.Update(c.Request.Context(), userID(c), c.Param("id"), req.input())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newCompanyView(co), "company updated", nil)
}

func (h *CompanyHandler) ListMine(c *gin.Context) {
	list, err := h.Svc.ListMine(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, companyViews(list), "companies", nil)
}

func (h *CompanyHandler) Members(c *gin.Context) {
	list, err := h.Svc.Members(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, memberViews(list), "members", nil)
}

func (h *CompanyHandler) AddMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	m, err := h.Svc.AddMember(c.Request.Context(), userID(c), c.Param("id"), req.Email)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, memberViews([]entity.CompanyMembership{*m})[0], "member added", nil)
}
