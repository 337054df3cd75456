package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/application"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/internal/interface/middleware"
	"github.com/oksasatya/careerboost/pkg/response"
	"github.com/oksasatya/careerboost/pkg/validation"
)

// errorStatus maps application errors to HTTP statuses. Anything else is a 500.
var errorStatus = []struct {
	err    error
	status int
}{
	{application.ErrNotFound, http.StatusNotFound},
	{application.ErrInvalidCredentials, http.StatusUnauthorized},
	{application.ErrSessionExpired, http.StatusUnauthorized},
	{application.ErrAccountDisabled, http.StatusForbidden},
	{application.ErrRoleNotAllowed, http.StatusForbidden},
	{application.ErrForbidden, http.StatusForbidden},
	{application.ErrCompanyNotVerified, http.StatusForbidden},
	{application.ErrEmailTaken, http.StatusConflict},
	{application.ErrAlreadyApplied, http.StatusConflict},
	{application.ErrAlreadyMember, http.StatusConflict},
	{application.ErrSyncRunning, http.StatusConflict},
	{application.ErrInvalidTransition, http.StatusConflict},
	{application.ErrOfferNotOpen, http.StatusUnprocessableEntity},
	{application.ErrProfileIncomplete, http.StatusUnprocessableEntity},
	{application.ErrInvalidInput, http.StatusBadRequest},
	{application.ErrSyncDisabled, http.StatusServiceUnavailable},
}

func statusOf(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// fail writes the error envelope. Unmapped errors are logged and hidden.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, status, "internal server error", nil)
		return
	}
	response.Error[any](c, status, publicMessage(err), nil)
}

// publicMessage keeps the caller-facing text of a mapped error. Errors
// wrapping ErrNotFound may carry driver text, so they answer with the
// sentinel alone.
func publicMessage(err error) string {
	if errors.Is(err, application.ErrNotFound) {
		return application.ErrNotFound.Error()
	}
	return err.Error()
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

func userID(c *gin.Context) string { return c.GetString(middleware.CtxUserID) }

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{IP: clientIP(c), UserAgent: c.Request.UserAgent()}
}

// pageQuery uses pointers so an explicit page=0 or limit=0 is rejected
// while an absent parameter falls back to the defaults.
type pageQuery struct {
	Page  *int `form:"page" binding:"omitempty,min=1"`
	Limit *int `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q pageQuery) page() repo.Page {
	var page, limit int
	if q.Page != nil {
		page = *q.Page
	}
	if q.Limit != nil {
		limit = *q.Limit
	}
	return repo.NewPage(page, limit)
}

func pageMeta(p repo.Page, total int) response.PageMeta {
	return response.NewPageMeta(p.Page, p.Limit, total)
}

func queryBool(c *gin.Context, key string) *bool {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
