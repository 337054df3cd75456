package entity

import "time"

type CompanyStatus string

const (
	CompanyPending  CompanyStatus = "PENDING"
	CompanyVerified CompanyStatus = "VERIFIED"
	CompanyRejected CompanyStatus = "REJECTED"
)

func (s CompanyStatus) Valid() bool {
	switch s {
	case CompanyPending, CompanyVerified, CompanyRejected:
		return true
	}
	return false
}

type Company struct {
	ID              string
	Name            string
	Siret           string
	Description     string
	Website         string
	City            string
	Status          CompanyStatus
	RejectionReason string
	CreatedBy       string
	VerifiedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

type MembershipRole string

const (
	MembershipOwner  MembershipRole = "OWNER"
	MembershipMember MembershipRole = "MEMBER"
)

// CompanyMembership links a recruiter to a company.
type CompanyMembership struct {
	CompanyID string
	UserID    string
	Role      MembershipRole
	CreatedAt time.Time
}
