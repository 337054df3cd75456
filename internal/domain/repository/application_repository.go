package repository

import (
	"context"

	"github.com/oksasatya/careerboost/internal/domain/entity"
)

type ApplicationRepository interface {
	// Create returns ErrDuplicate when the candidate already applied to the offer.
	Create(ctx context.Context, a *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	ListByCandidate(ctx context.Context, candidateID string, p Page) ([]entity.Application, int, error)
	ListByOffer(ctx context.Context, offerID string) ([]entity.Application, error)
	// UpdateStatus moves an application from one status to another and records
	// the event in the same transaction. ErrConflict if the status moved meanwhile.
	UpdateStatus(ctx context.Context, ev entity.ApplicationEvent) error
	ListEvents(ctx context.Context, applicationID string) ([]entity.ApplicationEvent, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, userID string, unreadOnly bool, p Page) ([]entity.Notification, int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type AuditFilter struct {
	Action string
	UserID string
	Page   Page
}

type AuditRepository interface {
	Insert(ctx context.Context, l *entity.AuditLog) error
	List(ctx context.Context, f AuditFilter) ([]entity.AuditLog, int, error)
}

// StatsRepository serves the admin dashboard counters.
type StatsRepository interface {
	CountUsersByRole(ctx context.Context) (map[string]int, error)
	CountCompaniesByStatus(ctx context.Context) (map[string]int, error)
	CountOffersByAdminStatus(ctx context.Context) (map[string]int, error)
	CountApplicationsByStatus(ctx context.Context) (map[string]int, error)
}
