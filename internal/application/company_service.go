package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
)

type CompanyService struct {
	Companies repo.CompanyRepository
	Users     repo.UserRepository
	Logger    *logrus.Logger
}

func NewCompanyService(companies repo.CompanyRepository, users repo.UserRepository, logger *logrus.Logger) *CompanyService {
	return &CompanyService{Companies: companies, Users: users, Logger: logger}
}

// ListVerified is the public directory.
func (s *CompanyService) ListVerified(ctx context.Context, q string, p repo.Page) ([]entity.Company, int, error) {
	return s.Companies.List(ctx, repo.CompanyFilter{Status: entity.CompanyVerified, Q: q, Page: p})
}

// GetVerified hides companies that are not verified yet.
func (s *CompanyService) GetVerified(ctx context.Context, id string) (*entity.Company, error) {
	c, err := s.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != entity.CompanyVerified {
		return nil, ErrNotFound
	}
	return c, nil
}

type CompanyInput struct {
	Name        string
	Siret       string
	Description string
	Website     string
	City        string
}

func (in CompanyInput) apply(c *entity.Company) {
	c.Name = strings.TrimSpace(in.Name)
	c.Siret = strings.TrimSpace(in.Siret)
	c.Description = strings.TrimSpace(in.Description)
	c.Website = strings.TrimSpace(in.Website)
	c.City = strings.TrimSpace(in.City)
}

// Create registers a PENDING company owned by the recruiter.
func (s *CompanyService) Create(ctx context.Context, recruiterID string, in CompanyInput) (*entity.Company, error) {
	c := &entity.Company{Status: entity.CompanyPending, CreatedBy: recruiterID}
	in.apply(c)
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.Companies.Create(ctx, c, recruiterID); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("%w: siret already registered", ErrInvalidInput)
		}
		return nil, fmt.Errorf("create company: %w", err)
	}
	return c, nil
}

// Update edits company details. A rejected company goes back to review.
func (s *CompanyService) Update(ctx context.Context, recruiterID, companyID string, in CompanyInput) (*entity.Company, error) {
	if _, err := s.membership(ctx, companyID, recruiterID); err != nil {
		return nil, err
	}
	c, err := s.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	in.apply(c)
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.Companies.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	if c.Status == entity.CompanyRejected {
		if err := s.Companies.SetStatus(ctx, c.ID, entity.CompanyPending, ""); err != nil {
			return nil, fmt.Errorf("resubmit company: %w", err)
		}
		c.Status = entity.CompanyPending
		c.RejectionReason = ""
	}
	return c, nil
}

func (s *CompanyService) ListMine(ctx context.Context, recruiterID string) ([]entity.Company, error) {
	return s.Companies.ListByMember(ctx, recruiterID)
}

// Members lists the members of a company the caller belongs to.
func (s *CompanyService) Members(ctx context.Context, recruiterID, companyID string) ([]entity.CompanyMembership, error) {
	if _, err := s.membership(ctx, companyID, recruiterID); err != nil {
		return nil, err
	}
	return s.Companies.ListMembers(ctx, companyID)
}

// AddMember lets an owner invite another recruiter by email.
func (s *CompanyService) AddMember(ctx context.Context, ownerID, companyID, email string) (*entity.CompanyMembership, error) {
	m, err := s.membership(ctx, companyID, ownerID)
	if err != nil {
		return nil, err
	}
	if m.Role != entity.MembershipOwner {
		return nil, ErrForbidden
	}
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	// disabled and deleted accounts are invisible to other users
	if !u.CanLogin() {
		return nil, ErrNotFound
	}
	if u.Role != entity.RoleRecruiter {
		return nil, fmt.Errorf("%w: only recruiters can join a company", ErrInvalidInput)
	}
	member := entity.CompanyMembership{CompanyID: companyID, UserID: u.ID, Role: entity.MembershipMember}
	if err := s.Companies.AddMember(ctx, member); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("add member: %w", err)
	}
	return &member, nil
}

// membership maps "not a member" to ErrForbidden.
func (s *CompanyService) membership(ctx context.Context, companyID, userID string) (*entity.CompanyMembership, error) {
	m, err := s.Companies.GetMembership(ctx, companyID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrForbidden
	}
	return m, err
}
