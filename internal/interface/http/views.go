package handlers

import (
	"time"

	"github.com/oksasatya/careerboost/internal/application"
	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/matching"
)

// JSON views. Entities carry no tags so storage fields never leak.

type userView struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Role        entity.Role `json:"role"`
	IsActive    bool        `json:"is_active"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func newUserView(u *entity.User) userView {
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

type profileView struct {
	UserID          string                `json:"user_id"`
	Headline        string                `json:"headline"`
	DesiredTitle    string                `json:"desired_title"`
	Bio             string                `json:"bio"`
	City            string                `json:"city"`
	Latitude        *float64              `json:"latitude,omitempty"`
	Longitude       *float64              `json:"longitude,omitempty"`
	MaxDistanceKm   int                   `json:"max_distance_km"`
	ExperienceYears int                   `json:"experience_years"`
	ContractTypes   []entity.ContractType `json:"contract_types"`
	RemoteOK        bool                  `json:"remote_ok"`
	Skills          []string              `json:"skills"`
	CVURL           string                `json:"cv_url,omitempty"`
	PhotoURL        string                `json:"photo_url,omitempty"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func newProfileView(p *entity.CandidateProfile) profileView {
	v := profileView{
		UserID:          p.UserID,
		Headline:        p.Headline,
		DesiredTitle:    p.DesiredTitle,
		Bio:             p.Bio,
		City:            p.City,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		MaxDistanceKm:   p.MaxDistanceKm,
		ExperienceYears: p.ExperienceYears,
		ContractTypes:   p.ContractTypes,
		RemoteOK:        p.RemoteOK,
		Skills:          p.Skills,
		CVURL:           p.CVURL,
		PhotoURL:        p.PhotoURL,
		UpdatedAt:       p.UpdatedAt,
	}
	if v.ContractTypes == nil {
		v.ContractTypes = []entity.ContractType{}
	}
	if v.Skills == nil {
		v.Skills = []string{}
	}
	return v
}

type companyView struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Siret           string               `json:"siret,omitempty"`
	Description     string               `json:"description"`
	Website         string               `json:"website,omitempty"`
	City            string               `json:"city"`
	Status          entity.CompanyStatus `json:"status"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	VerifiedAt      *time.Time           `json:"verified_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

func newCompanyView(c *entity.Company) companyView {
	return companyView{
		ID:              c.ID,
		Name:            c.Name,
		Siret:           c.Siret,
		Description:     c.Description,
		Website:         c.Website,
		City:            c.City,
		Status:          c.Status,
		RejectionReason: c.RejectionReason,
		VerifiedAt:      c.VerifiedAt,
		CreatedAt:       c.CreatedAt,
	}
}

func companyViews(in []entity.Company) []companyView {
	out := make([]companyView, 0, len(in))
	for i := range in {
		out = append(out, newCompanyView(&in[i]))
	}
	return out
}

type memberView struct {
	UserID    string                `json:"user_id"`
	Role      entity.MembershipRole `json:"role"`
	CreatedAt time.Time             `json:"created_at"`
}

func memberViews(in []entity.CompanyMembership) []memberView {
	out := make([]memberView, 0, len(in))
	for _, m := range in {
		out = append(out, memberView{UserID: m.UserID, Role: m.Role, CreatedAt: m.CreatedAt})
	}
	return out
}

type offerSkillView struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Required bool    `json:"required"`
	Weight   float64 `json:"weight"`
}

type offerView struct {
	ID                 string              `json:"id"`
	CompanyID          *string             `json:"company_id,omitempty"`
	CompanyName        string              `json:"company_name"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	ContractType       entity.ContractType `json:"contract_type"`
	City               string              `json:"city"`
	Latitude           *float64            `json:"latitude,omitempty"`
	Longitude          *float64            `json:"longitude,omitempty"`
	Remote             bool                `json:"remote"`
	SalaryMin          *int                `json:"salary_min,omitempty"`
	SalaryMax          *int                `json:"salary_max,omitempty"`
	ExperienceMinYears int                 `json:"experience_min_years"`
	Status             entity.OfferStatus  `json:"status"`
	AdminStatus        entity.AdminStatus  `json:"admin_status"`
	ModerationReason   string              `json:"moderation_reason,omitempty"`
	Source             entity.OfferSource  `json:"source"`
	ExternalURL        string              `json:"external_url,omitempty"`
	PublishedAt        *time.Time          `json:"published_at,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Skills             []offerSkillView    `json:"skills"`
}

func newOfferView(o *entity.JobOffer) offerView {
	v := offerView{
		ID:                 o.ID,
		CompanyID:          o.CompanyID,
		CompanyName:        o.CompanyName,
		Title:              o.Title,
		Description:        o.Description,
		ContractType:       o.ContractType,
		City:               o.City,
		Latitude:           o.Latitude,
		Longitude:          o.Longitude,
		Remote:             o.Remote,
		SalaryMin:          o.SalaryMin,
		SalaryMax:          o.SalaryMax,
		ExperienceMinYears: o.ExperienceMinYears,
		Status:             o.Status,
		AdminStatus:        o.AdminStatus,
		ModerationReason:   o.ModerationReason,
		Source:             o.Source,
		ExternalURL:        o.ExternalURL,
		PublishedAt:        o.PublishedAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		Skills:             make([]offerSkillView, 0, len(o.Skills)),
	}
	for _, s := range o.Skills {
		v.Skills = append(v.Skills, offerSkillView{Name: s.Name, Slug: s.Slug, Required: s.IsRequired, Weight: s.Weight})
	}
	return v
}

func offerViews(in []entity.JobOffer) []offerView {
	out := make([]offerView, 0, len(in))
	for i := range in {
		out = append(out, newOfferView(&in[i]))
	}
	return out
}

type applicationView struct {
	ID             string                   `json:"id"`
	OfferID        string                   `json:"offer_id"`
	OfferTitle     string                   `json:"offer_title,omitempty"`
	CompanyName    string                   `json:"company_name,omitempty"`
	CandidateID    string                   `json:"candidate_id"`
	CandidateName  string                   `json:"candidate_name,omitempty"`
	CandidateEmail string                   `json:"candidate_email,omitempty"`
	Status         entity.ApplicationStatus `json:"status"`
	CoverLetter    string                   `json:"cover_letter,omitempty"`
	MatchScore     int                      `json:"match_score"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func newApplicationView(a *entity.Application) applicationView {
	return applicationView{
		ID:             a.ID,
		OfferID:        a.OfferID,
		OfferTitle:     a.OfferTitle,
		CompanyName:    a.CompanyName,
		CandidateID:    a.CandidateID,
		CandidateName:  a.CandidateName,
		CandidateEmail: a.CandidateEmail,
		Status:         a.Status,
		CoverLetter:    a.CoverLetter,
		MatchScore:     a.MatchScore,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func applicationViews(in []entity.Application) []applicationView {
	out := make([]applicationView, 0, len(in))
	for i := range in {
		out = append(out, newApplicationView(&in[i]))
	}
	return out
}

type applicantView struct {
	applicationView
	Match matching.Result `json:"match"`
}

func applicantViews(in []application.Applicant) []applicantView {
	out := make([]applicantView, 0, len(in))
	for _, a := range in {
		out = append(out, applicantView{applicationView: newApplicationView(&a.Application), Match: a.Match})
	}
	return out
}

type eventView struct {
	FromStatus entity.ApplicationStatus `json:"from_status"`
	ToStatus   entity.ApplicationStatus `json:"to_status"`
	ActorID    string                   `json:"actor_id"`
	Note       string                   `json:"note,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
}

func eventViews(in []entity.ApplicationEvent) []eventView {
	out := make([]eventView, 0, len(in))
	for _, e := range in {
		out = append(out, eventView{FromStatus: e.FromStatus, ToStatus: e.ToStatus, ActorID: e.ActorID, Note: e.Note, CreatedAt: e.CreatedAt})
	}
	return out
}

type recommendationView struct {
	Offer offerView       `json:"offer"`
	Match matching.Result `json:"match"`
}

func newRecommendationView(r *application.Recommendation) recommendationView {
	return recommendationView{Offer: newOfferView(&r.Offer), Match: r.Match}
}

type notificationView struct {
	ID        string                  `json:"id"`
	Type      entity.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Data      map[string]any          `json:"data,omitempty"`
	IsRead    bool                    `json:"is_read"`
	ReadAt    *time.Time              `json:"read_at,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

func notificationViews(in []entity.Notification) []notificationView {
	out := make([]notificationView, 0, len(in))
	for _, n := range in {
		out = append(out, notificationView{
			ID: n.ID, Type: n.Type, Title: n.Title, Message: n.Message,
			Data: n.Data, IsRead: n.IsRead, ReadAt: n.ReadAt, CreatedAt: n.CreatedAt,
		})
	}
	return out
}

type skillView struct {
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases,omitempty"`
}

func skillViews(in []entity.Skill) []skillView {
	out := make([]skillView, 0, len(in))
	for _, s := range in {
		out = append(out, skillView{Name: s.Name, Slug: s.Slug, Category: s.Category, Aliases: s.Aliases})
	}
	return out
}

type auditView struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Action    string         `json:"action"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func auditViews(in []entity.AuditLog) []auditView {
	out := make([]auditView, 0, len(in))
	for _, l := range in {
		out = append(out, auditView{
			ID: l.ID, UserID: l.UserID, Email: l.Email, Action: l.Action,
			IP: l.IP, UserAgent: l.UserAgent, Metadata: l.Metadata, CreatedAt: l.CreatedAt,
		})
	}
	return out
}
