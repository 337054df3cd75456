package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
)

type AdminService struct {
	Users     repo.UserRepository
	Companies repo.CompanyRepository
	Offers    repo.OfferRepository
	Stats     repo.StatsRepository
	AuditLogs repo.AuditRepository
	Sessions  SessionStore
	Catalogue *OfferService
	Notify    *NotificationService
	Sync      *AggregationService
	Audit     *Auditor
	Logger    *logrus.Logger
}

func NewAdminService(users repo.UserRepository, companies repo.CompanyRepository, offers repo.OfferRepository,
	stats repo.StatsRepository, auditLogs repo.AuditRepository, sessions SessionStore, catalogue *OfferService,
	notify *NotificationService, sync *AggregationService, audit *Auditor, logger *logrus.Logger) *AdminService {
	return &AdminService{
		Users:     users,
		Companies: companies,
		Offers:    offers,
		Stats:     stats,
		AuditLogs: auditLogs,
		Sessions:  sessions,
		Catalogue: catalogue,
		Notify:    notify,
		Sync:      sync,
		Audit:     audit,
		Logger:    logger,
	}
}

// Admin is the acting administrator.
type Admin struct {
	ID    string
	Email string
	Meta  RequestMeta
}

// Actor loads the acting administrator for audit rows.
func (s *AdminService) Actor(ctx context.Context, userID string, meta RequestMeta) (Admin, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return Admin{}, err
	}
	if u.Role != entity.RoleAdmin || !u.CanLogin() {
		return Admin{}, ErrForbidden
	}
	return Admin{ID: u.ID, Email: u.Email, Meta: meta}, nil
}

// DashboardStats groups the counters shown on the admin home page.
type DashboardStats struct {
	UsersByRole          map[string]int `json:"users_by_role"`
	CompaniesByStatus    map[string]int `json:"companies_by_status"`
	OffersByAdminStatus  map[string]int `json:"offers_by_admin_status"`
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
}

// Dashboard runs the four counts in parallel.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	out := &DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.UsersByRole, err = s.Stats.CountUsersByRole(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.CompaniesByStatus, err = s.Stats.CountCompaniesByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.OffersByAdminStatus, err = s.Stats.CountOffersByAdminStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.ApplicationsByStatus, err = s.Stats.CountApplicationsByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return out, nil
}

func (s *AdminService) ListCompanies(ctx context.Context, f repo.CompanyFilter) ([]entity.Company, int, error) {
	return s.Companies.List(ctx, f)
}

// ReviewCompany verifies or rejects a company and tells its creator.
func (s *AdminService) ReviewCompany(ctx context.Context, admin Admin, companyID string, status entity.CompanyStatus, reason string) (*entity.Company, error) {
	reason = strings.TrimSpace(reason)
	if status != entity.CompanyVerified && status != entity.CompanyRejected {
		return nil, ErrInvalidTransition
	}
	if status == entity.CompanyRejected && reason == "" {
		return nil, fmt.Errorf("%w: a reason is required to reject", ErrInvalidInput)
	}
	if status == entity.CompanyVerified {
		reason = ""
	}
	c, err := s.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := s.Companies.SetStatus(ctx, companyID, status, reason); err != nil {
		return nil, fmt.Errorf("set company status: %w", err)
	}
	c.Status, c.RejectionReason = status, reason

	s.Audit.Record(ctx, admin.ID, admin.Email, AuditCompanyReview, admin.Meta,
		map[string]any{"company_id": companyID, "status": string(status), "reason": reason})

	msg := fmt.Sprintf("Votre entreprise « %s » a été vérifiée. Vous pouvez publier des offres.", c.Name)
	if status == entity.CompanyRejected {
		msg = fmt.Sprintf("Votre entreprise « %s » a été refusée : %s", c.Name, reason)
	}
	s.Notify.Notify(ctx, &entity.Notification{
		UserID:  c.CreatedBy,
		Type:    entity.NotifyCompanyReviewed,
		Title:   "Vérification de votre entreprise",
		Message: msg,
		Data:    map[string]any{"company_id": c.ID, "status": string(status)},
	}, "/recruiter/companies/"+c.ID)
	return c, nil
}

func (s *AdminService) ListOffers(ctx context.Context, f repo.OfferFilter) ([]entity.JobOffer, int, error) {
	f.VisibleOnly = false
	return s.Offers.List(ctx, f)
}

// ModerateOffer sets the admin status, keeps the search index in line and
// tells the author.
func (s *AdminService) ModerateOffer(ctx context.Context, admin Admin, offerID string, status entity.AdminStatus, reason string) (*entity.JobOffer, error) {
	reason = strings.TrimSpace(reason)
	if status == entity.AdminPending || !status.Valid() {
		return nil, ErrInvalidTransition
	}
	if status != entity.AdminApproved && reason == "" {
		return nil, fmt.Errorf("%w: a reason is required", ErrInvalidInput)
	}
	o, err := s.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if err := s.Offers.SetAdminStatus(ctx, offerID, status, reason); err != nil {
		return nil, fmt.Errorf("set admin status: %w", err)
	}
	o.AdminStatus, o.ModerationReason = status, reason
	s.Catalogue.Refresh(ctx, offerID)

	s.Audit.Record(ctx, admin.ID, admin.Email, AuditOfferModerate, admin.Meta,
		map[string]any{"offer_id": offerID, "status": string(status), "reason": reason})

	if o.CreatedBy != nil {
		msg := fmt.Sprintf("Votre offre « %s » a été approuvée.", o.Title)
		switch status {
		case entity.AdminRejected:
			msg = fmt.Sprintf("Votre offre « %s » a été refusée : %s", o.Title, reason)
		case entity.AdminFlagged:
			msg = fmt.Sprintf("Votre offre « %s » a été signalée : %s", o.Title, reason)
		}
		s.Notify.Notify(ctx, &entity.Notification{
			UserID:  *o.CreatedBy,
			Type:    entity.NotifyOfferModerated,
			Title:   "Modération de votre offre",
			Message: msg,
			Data:    map[string]any{"offer_id": o.ID, "admin_status": string(status)},
		}, "/recruiter/offers/"+o.ID)
	}
	return o, nil
}

func (s *AdminService) ListUsers(ctx context.Context, f repo.UserFilter) ([]entity.User, int, error) {
	return s.Users.List(ctx, f)
}

// SetUserActive enables or disables an account. Disabling drops its session.
func (s *AdminService) SetUserActive(ctx context.Context, admin Admin, userID string, active bool) (*entity.User, error) {
	if userID == admin.ID && !active {
		return nil, fmt.Errorf("%w: cannot deactivate your own account", ErrInvalidInput)
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Users.SetActive(ctx, userID, active); err != nil {
		return nil, fmt.Errorf("set user active: %w", err)
	}
	u.IsActive = active
	if !active && s.Sessions != nil {
		if err := s.Sessions.Delete(ctx, userID); err != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("revoke session failed")
		}
	}
	s.Audit.Record(ctx, admin.ID, admin.Email, AuditUserActive, admin.Meta,
		map[string]any{"target_user_id": userID, "active": active})
	return u, nil
}

func (s *AdminService) AuditLog(ctx context.Context, f repo.AuditFilter) ([]entity.AuditLog, int, error) {
	return s.AuditLogs.List(ctx, f)
}

// TriggerSync starts a France Travail import in the background.
func (s *AdminService) TriggerSync(ctx context.Context, admin Admin) error {
	if err := s.Sync.Trigger(ctx); err != nil {
		return err
	}
	s.Audit.Record(ctx, admin.ID, admin.Email, AuditSyncTrigger, admin.Meta, nil)
	return nil
}
