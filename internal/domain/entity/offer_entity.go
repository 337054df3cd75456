package entity

import (
	"strings"
	"time"
)

type ContractType string

const (
	ContractCDI        ContractType = "CDI"
	ContractCDD        ContractType = "CDD"
	ContractStage      ContractType = "STAGE"
	ContractAlternance ContractType = "ALTERNANCE"
	ContractFreelance  ContractType = "FREELANCE"
	ContractInterim    ContractType = "INTERIM"
)

func (c ContractType) Valid() bool {
	switch c {
	case ContractCDI, ContractCDD, ContractStage, ContractAlternance, ContractFreelance, ContractInterim:
		return true
	}
	return false
}

// ParseContractType accepts user input or job-board codes; unknown values yield "".
func ParseContractType(s string) ContractType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CDI":
		return ContractCDI
	case "CDD":
		return ContractCDD
	case "STAGE", "INTERNSHIP":
		return ContractStage
	case "ALTERNANCE", "APPRENTISSAGE", "CONTRAT PRO":
		return ContractAlternance
	case "FREELANCE", "LIB", "LIBERAL":
		return ContractFreelance
	case "INTERIM", "MIS", "INTÉRIM":
		return ContractInterim
	}
	return ""
}

type OfferStatus string

const (
	OfferDraft     OfferStatus = "DRAFT"
	OfferPublished OfferStatus = "PUBLISHED"
	OfferArchived  OfferStatus = "ARCHIVED"
)

var offerTransitions = map[OfferStatus][]OfferStatus{
	OfferDraft:     {OfferPublished, OfferArchived},
	OfferPublished: {OfferDraft, OfferArchived},
}

// CanTransition reports whether a recruiter may move an offer from s to next.
func (s OfferStatus) CanTransition(next OfferStatus) bool {
	for _, allowed := range offerTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AdminStatus is the moderation state of an offer.
type AdminStatus string

const (
	AdminPending  AdminStatus = "PENDING"
	AdminApproved AdminStatus = "APPROVED"
	AdminRejected AdminStatus = "REJECTED"
	AdminFlagged  AdminStatus = "FLAGGED"
)

func (s AdminStatus) Valid() bool {
	switch s {
	case AdminPending, AdminApproved, AdminRejected, AdminFlagged:
		return true
	}
	return false
}

type OfferSource string

const (
	SourceCareerBoost   OfferSource = "CAREERBOOST"
	SourceFranceTravail OfferSource = "FRANCE_TRAVAIL"
)

type JobOffer struct {
	ID                 string
	CompanyID          *string
	CompanyName        string
	Title              string
	Description        string
	ContractType       ContractType
	City               string
	Latitude           *float64
	Longitude          *float64
	Remote             bool
	SalaryMin          *int
	SalaryMax          *int
	ExperienceMinYears int
	Status             OfferStatus
	AdminStatus        AdminStatus
	ModerationReason   string
	Source             OfferSource
	ExternalID         string
	ExternalURL        string
	CreatedBy          *string
	PublishedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time

	Skills []OfferSkill
}

// IsVisible reports whether candidates can see and apply to the offer.
func (o *JobOffer) IsVisible() bool {
	return o.Status == OfferPublished && o.AdminStatus == AdminApproved && o.DeletedAt == nil
}

func (o *JobOffer) HasLocation() bool {
	return o.Latitude != nil && o.Longitude != nil
}

func (o *JobOffer) SkillNames() []string {
	out := make([]string, 0, len(o.Skills))
	for _, s := range o.Skills {
		out = append(out, s.Name)
	}
	return out
}
