package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/repository"
)

// Audit actions.
const (
	AuditRegister      = "auth.register"
	AuditLogin         = "auth.login"
	AuditLoginFailed   = "auth.login_failed"
	AuditLogout        = "auth.logout"
	AuditCompanyReview = "admin.company_review"
	AuditOfferModerate = "admin.offer_moderate"
	AuditUserActive    = "admin.user_active"
	AuditSyncTrigger   = "admin.sync_trigger"
)

// Auditor writes audit rows. Failures are logged, never returned.
type Auditor struct {
	Repo   repository.AuditRepository
	Logger *logrus.Logger
}

func NewAuditor(repo repository.AuditRepository, logger *logrus.Logger) *Auditor {
	return &Auditor{Repo: repo, Logger: logger}
}

func (a *Auditor) Record(ctx context.Context, userID, email, action string, meta RequestMeta, data map[string]any) {
	if a == nil || a.Repo == nil {
		return
	}
	entry := &entity.AuditLog{
		UserID:    userID,
		Email:     email,
		Action:    action,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Metadata:  data,
	}
	if err := a.Repo.Insert(ctx, entry); err != nil && a.Logger != nil {
		a.Logger.WithError(err).WithField("action", action).Warn("audit insert failed")
	}
}
