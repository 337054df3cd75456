package repository

import (
	"context"

	"github.com/oksasatya/careerboost/internal/domain/entity"
)

type CompanyFilter struct {
	Status entity.CompanyStatus
	Q      string
	Page   Page
}

type CompanyRepository interface {
	// Create inserts the company and the owner membership atomically.
	Create(ctx context.Context, c *entity.Company, ownerID string) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	Update(ctx context.Context, c *entity.Company) error
	SetStatus(ctx context.Context, id string, status entity.CompanyStatus, reason string) error
	List(ctx context.Context, f CompanyFilter) ([]entity.Company, int, error)
	ListByMember(ctx context.Context, userID string) ([]entity.Company, error)
	GetMembership(ctx context.Context, companyID, userID string) (*entity.CompanyMembership, error)
	AddMember(ctx context.Context, m entity.CompanyMembership) error
	ListMembers(ctx context.Context, companyID string) ([]entity.CompanyMembership, error)
}
