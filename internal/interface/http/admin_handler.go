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

type AdminHandler struct {
	Svc    *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type adminCompanyQuery struct {
	pageQuery
	Status string `form:"status" binding:"omitempty,companystatus"`
	Q      string `form:"q" binding:"max=200"`
}

type adminOfferQuery struct {
	pageQuery
	AdminStatus string `form:"admin_status" binding:"omitempty,oneof=PENDING APPROVED REJECTED FLAGGED"`
	Source      string `form:"source" binding:"omitempty,oneof=CAREERBOOST FRANCE_TRAVAIL"`
	Q           string `form:"q" binding:"max=200"`
}

type adminUserQuery struct {
	pageQuery
	Role string `form:"role" binding:"omitempty,role"`
	Q    string `form:"q" binding:"max=200"`
}

type auditQuery struct {
	pageQuery
	Action string `form:"action" binding:"max=80"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

type reviewCompanyRequest struct {
	Status string `json:"status" binding:"required,oneof=VERIFIED REJECTED"`
	Reason string `json:"reason" binding:"max=1000"`
}

type moderateOfferRequest struct {
	Status string `json:"status" binding:"required,moderation"`
	Reason string `json:"reason" binding:"max=1000"`
}

type userActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// actor resolves the calling admin or writes the error.
func (h *AdminHandler) actor(c *gin.Context) (application.Admin, bool) {
	a, err := h.Svc.Actor(c.Request.Context(), userID(c), requestMeta(c))
	if err != nil {
		fail(c, h.Logger, err)
		return application.Admin{}, false
	}
	return a, true
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.Svc.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "dashboard", nil)
}

func (h *AdminHandler) ListCompanies(c *gin.Context) {
	var q adminCompanyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	f := repo.CompanyFilter{Status: entity.CompanyStatus(q.Status), Q: strings.TrimSpace(q.Q), Page: q.page()}
	list, total, err := h.Svc.ListCompanies(c.Request.Context(), f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, companyViews(list), "companies", pageMeta(f.Page, total))
}

func (h *AdminHandler) ReviewCompany(c *gin.Context) {
	var req reviewCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	admin, ok := h.actor(c)
	if !ok {
		return
	}
	co, err := h.Svc.ReviewCompany(c.Request.Context(), admin, c.Param("id"), entity.CompanyStatus(req.Status), req.Reason)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newCompanyView(co), "company reviewed", nil)
}

func (h *AdminHandler) ListOffers(c *gin.Context) {
	var q adminOfferQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	f := repo.OfferFilter{
		AdminStatus: entity.AdminStatus(q.AdminStatus),
		Source:      entity.OfferSource(q.Source),
		Q:           strings.TrimSpace(q.Q),
		Page:        q.page(),
	}
	list, total, err := h.Svc.ListOffers(c.Request.Context(), f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, offerViews(list), "offers", pageMeta(f.Page, total))
}

func (h *AdminHandler) ModerateOffer(c *gin.Context) {
	var req moderateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	admin, ok := h.actor(c)
	if !ok {
		return
	}
	o, err := h.Svc.ModerateOffer(c.Request.Context(), admin, c.Param("id"), entity.AdminStatus(req.Status), req.Reason)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newOfferView(o), "offer moderated", nil)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q adminUserQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	f := repo.UserFilter{Role: entity.Role(q.Role), Q: strings.TrimSpace(q.Q), Page: q.page()}
	list, total, err := h.Svc.ListUsers(c.Request.Context(), f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]userView, 0, len(list))
	for i := range list {
		out = append(out, newUserView(&list[i]))
	}
	response.Success(c, http.StatusOK, out, "users", pageMeta(f.Page, total))
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	var req userActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	admin, ok := h.actor(c)
	if !ok {
		return
	}
	u, err := h.Svc.SetUserActive(c.Request.Context(), admin, c.Param("id"), *req.Active)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newUserView(u), "user updated", nil)
}

func (h *AdminHandler) AuditLog(c *gin.Context) {
	var q auditQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	f := repo.AuditFilter{Action: q.Action, UserID: q.UserID, Page: q.page()}
	list, total, err := h.Svc.AuditLog(c.Request.Context(), f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, auditViews(list), "audit log", pageMeta(f.Page, total))
}

func (h *AdminHandler) TriggerSync(c *gin.Context) {
	admin, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.Svc.TriggerSync(c.Request.Context(), admin); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusAccepted, gin.H{"started": true}, "sync started", nil)
}
