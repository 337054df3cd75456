package repository

import (
	"context"

	"github.com/oksasatya/careerboost/internal/domain/entity"
)

// OfferFilter narrows offer listings. Zero values mean "no filter".
type OfferFilter struct {
	VisibleOnly  bool
	Q            string
	ContractType entity.ContractType
	City         string
	Remote       *bool
	Skill        string
	CompanyID    string
	CreatedBy    string
	AdminStatus  entity.AdminStatus
	Source       entity.OfferSource
	Page         Page
}

type OfferRepository interface {
	Create(ctx context.Context, o *entity.JobOffer) error
	GetByID(ctx context.Context, id string) (*entity.JobOffer, error)
	Update(ctx context.Context, o *entity.JobOffer) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, f OfferFilter) ([]entity.JobOffer, int, error)
	// ListVisible returns visible offers with their skills, newest first.
	ListVisible(ctx context.Context, limit int) ([]entity.JobOffer, error)
	// ListVisibleByIDs returns visible offers in the order of ids, skipping missing ones.
	ListVisibleByIDs(ctx context.Context, ids []string) ([]entity.JobOffer, error)
	SetStatus(ctx context.Context, id string, status entity.OfferStatus) error
	SetAdminStatus(ctx context.Context, id string, status entity.AdminStatus, reason string) error
	ReplaceSkills(ctx context.Context, offerID string, skills []entity.OfferSkill) error
	// InsertImported inserts an offer unless (source, external_id) already exists.
	InsertImported(ctx context.Context, o *entity.JobOffer) (bool, error)
}

type SkillRepository interface {
	List(ctx context.Context, q, category string) ([]entity.Skill, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]entity.Skill, error)
	Upsert(ctx context.Context, s *entity.Skill) error
}
