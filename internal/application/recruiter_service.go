package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/matching"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/internal/domain/skills"
)

const applicantScoreWorkers = 8

type RecruiterService struct {
	Companies    repo.CompanyRepository
	Offers       repo.OfferRepository
	Candidates   repo.CandidateRepository
	Applications repo.ApplicationRepository
	Catalogue    *OfferService
	Notify       *NotificationService
	Weights      matching.Weights
	Logger       *logrus.Logger
}

func NewRecruiterService(companies repo.CompanyRepository, offers repo.OfferRepository, candidates repo.CandidateRepository,
	apps repo.ApplicationRepository, catalogue *OfferService, notify *NotificationService, w matching.Weights,
	logger *logrus.Logger) *RecruiterService {
	return &RecruiterService{
		Companies:    companies,
		Offers:       offers,
		Candidates:   candidates,
		Applications: apps,
		Catalogue:    catalogue,
		Notify:       notify,
		Weights:      w,
		Logger:       logger,
	}
}

type SkillInput struct {
	Name     string
	Required bool
	Weight   float64
}

type OfferInput struct {
	CompanyID          string
	Title              string
	Description        string
	ContractType       entity.ContractType
	City               string
	Latitude           *float64
	Longitude          *float64
	Remote             bool
	SalaryMin          *int
	SalaryMax          *int
	ExperienceMinYears *int
	Status             entity.OfferStatus
	Skills             []SkillInput
}

func (in OfferInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: title and description are required", ErrInvalidInput)
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude go together", ErrInvalidInput)
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return fmt.Errorf("%w: salary_min exceeds salary_max", ErrInvalidInput)
	}
	return nil
}

// fill copies the input onto o, inferring what the description reveals when
// the recruiter left it out.
func (in OfferInput) fill(o *entity.JobOffer) error {
	o.Title = strings.TrimSpace(in.Title)
	o.Description = strings.TrimSpace(in.Description)
	o.City = strings.TrimSpace(in.City)
	o.Latitude, o.Longitude = in.Latitude, in.Longitude
	o.Remote = in.Remote
	o.SalaryMin, o.SalaryMax = in.SalaryMin, in.SalaryMax

	text := o.Title + "\n" + o.Description
	o.ContractType = in.ContractType
	if o.ContractType == "" {
		o.ContractType = skills.DetectContractType(text)
	}
	if in.ExperienceMinYears != nil {
		o.ExperienceMinYears = *in.ExperienceMinYears
	} else {
		o.ExperienceMinYears = skills.ExtractExperienceYears(text)
	}

	offerSkills, err := resolveOfferSkills(in.Skills, text)
	if err != nil {
		return err
	}
	o.Skills = offerSkills
	return nil
}

// resolveOfferSkills canonicalises explicit skills, or extracts them from
// text when none are given.
func resolveOfferSkills(in []SkillInput, text string) ([]entity.OfferSkill, error) {
	p := skills.Default()
	out := []entity.OfferSkill{}
	if len(in) == 0 {
		for _, m := range p.Extract(text) {
			out = append(out, entity.OfferSkill{Name: m.Name, Slug: m.Slug, IsRequired: m.Required})
		}
		return out, nil
	}
	seen := map[string]bool{}
	var unknown []string
	for _, s := range in {
		e, ok := p.Canonical(s.Name)
		if !ok {
			unknown = append(unknown, s.Name)
			continue
		}
		slug := skills.Slugify(e.Name)
		if seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, entity.OfferSkill{Name: e.Name, Slug: slug, IsRequired: s.Required, Weight: s.Weight})
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown skills %s", ErrInvalidInput, strings.Join(unknown, ", "))
	}
	return out, nil
}

// CreateOffer publishes an offer for a verified company the recruiter
// belongs to. The offer awaits moderation.
func (s *RecruiterService) CreateOffer(ctx context.Context, recruiterID string, in OfferInput) (*entity.JobOffer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.Companies.GetMembership(ctx, in.CompanyID, recruiterID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	company, err := s.Companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.Status != entity.CompanyVerified {
		return nil, ErrCompanyNotVerified
	}

	status := in.Status
	if status == "" {
		status = entity.OfferDraft
	}
	if status != entity.OfferDraft && status != entity.OfferPublished {
		return nil, ErrInvalidTransition
	}
	o := &entity.JobOffer{
		CompanyID:   &company.ID,
		CompanyName: company.Name,
		Status:      status,
		AdminStatus: entity.AdminPending,
		Source:      entity.SourceCareerBoost,
		CreatedBy:   &recruiterID,
	}
	if status == entity.OfferPublished {
		now := time.Now()
		o.PublishedAt = &now
	}
	if err := in.fill(o); err != nil {
		return nil, err
	}
	if err := s.Offers.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return o, nil
}

// ownOffer loads an offer the recruiter may manage.
func (s *RecruiterService) ownOffer(ctx context.Context, recruiterID, offerID string) (*entity.JobOffer, error) {
	o, err := s.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if o.CreatedBy != nil && *o.CreatedBy == recruiterID {
		return o, nil
	}
	if o.CompanyID == nil {
		return nil, ErrForbidden
	}
	if _, err := s.Companies.GetMembership(ctx, *o.CompanyID, recruiterID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return o, nil
}

func (s *RecruiterService) GetOffer(ctx context.Context, recruiterID, offerID string) (*entity.JobOffer, error) {
	return s.ownOffer(ctx, recruiterID, offerID)
}

// UpdateOffer edits an offer and sends it back to moderation.
func (s *RecruiterService) UpdateOffer(ctx context.Context, recruiterID, offerID string, in OfferInput) (*entity.JobOffer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	o, err := s.ownOffer(ctx, recruiterID, offerID)
	if err != nil {
		return nil, err
	}
	if err := in.fill(o); err != nil {
		return nil, err
	}
	o.AdminStatus = entity.AdminPending
	o.ModerationReason = ""
	if err := s.Offers.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}
	s.Catalogue.Refresh(ctx, o.ID)
	return o, nil
}

func (s *RecruiterService) DeleteOffer(ctx context.Context, recruiterID, offerID string) error {
	if _, err := s.ownOffer(ctx, recruiterID, offerID); err != nil {
		return err
	}
	if err := s.Offers.SoftDelete(ctx, offerID); err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	s.Catalogue.Refresh(ctx, offerID)
	return nil
}

// ChangeOfferStatus moves DRAFT/PUBLISHED/ARCHIVED along the allowed transitions.
func (s *RecruiterService) ChangeOfferStatus(ctx context.Context, recruiterID, offerID string, next entity.OfferStatus) (*entity.JobOffer, error) {
	o, err := s.ownOffer(ctx, recruiterID, offerID)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(next) {
		return nil, ErrInvalidTransition
	}
	if err := s.Offers.SetStatus(ctx, offerID, next); err != nil {
		return nil, fmt.Errorf("set offer status: %w", err)
	}
	o.Status = next
	if next == entity.OfferPublished && o.PublishedAt == nil {
		now := time.Now()
		o.PublishedAt = &now
	}
	s.Catalogue.Refresh(ctx, offerID)
	return o, nil
}

// ListOffers lists the offers of one company the recruiter belongs to, or
// the offers they authored when companyID is empty.
func (s *RecruiterService) ListOffers(ctx context.Context, recruiterID, companyID string, f repo.OfferFilter) ([]entity.JobOffer, int, error) {
	f.VisibleOnly = false
	if companyID == "" {
		f.CreatedBy = recruiterID
		return s.Offers.List(ctx, f)
	}
	if _, err := s.Companies.GetMembership(ctx, companyID, recruiterID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, 0, ErrForbidden
		}
		return nil, 0, err
	}
	f.CompanyID = companyID
	return s.Offers.List(ctx, f)
}

// Applicant is an application with a freshly computed match.
type Applicant struct {
	Application entity.Application
	Match       matching.Result
}

// Applicants returns the offer's applications, best match first.
func (s *RecruiterService) Applicants(ctx context.Context, recruiterID, offerID string) ([]Applicant, error) {
	o, err := s.ownOffer(ctx, recruiterID, offerID)
	if err != nil {
		return nil, err
	}
	apps, err := s.Applications.ListByOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	out := make([]Applicant, len(apps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(applicantScoreWorkers)
	for i := range apps {
		i := i
		g.Go(func() error {
			p, err := s.Candidates.GetProfile(gctx, apps[i].CandidateID)
			if errors.Is(err, repo.ErrNotFound) {
				p = &entity.CandidateProfile{UserID: apps[i].CandidateID}
			} else if err != nil {
				return err
			}
			out[i] = Applicant{Application: apps[i], Match: matching.Score(matching.FromProfile(p), o, s.Weights)}
			out[i].Application.MatchScore = out[i].Match.Score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.Score > out[j].Match.Score
	})
	return out, nil
}

// ChangeApplicationStatus applies a recruiter decision and tells the candidate.
func (s *RecruiterService) ChangeApplicationStatus(ctx context.Context, recruiterID, applicationID string,
	next entity.ApplicationStatus, note string) (*entity.Application, error) {
	if next == entity.ApplicationWithdrawn || next == entity.ApplicationPending {
		return nil, ErrInvalidTransition
	}
	app, err := s.Applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	o, err := s.ownOffer(ctx, recruiterID, app.OfferID)
	if err != nil {
		return nil, err
	}
	if !app.Status.CanTransition(next) {
		return nil, ErrInvalidTransition
	}
	ev := entity.ApplicationEvent{
		ApplicationID: app.ID,
		FromStatus:    app.Status,
		ToStatus:      next,
		ActorID:       recruiterID,
		Note:          strings.TrimSpace(note),
	}
	if err := s.Applications.UpdateStatus(ctx, ev); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}
	app.Status = next

	s.Notify.Notify(ctx, &entity.Notification{
		UserID:  app.CandidateID,
		Type:    entity.NotifyApplicationStatus,
		Title:   "Mise à jour de votre candidature",
		Message: applicationStatusMessage(o.Title, next),
		Data:    map[string]any{"application_id": app.ID, "offer_id": o.ID, "status": string(next)},
	}, "/candidate/applications")
	return app, nil
}

func (s *RecruiterService) ApplicationHistory(ctx context.Context, recruiterID, applicationID string) ([]entity.ApplicationEvent, error) {
	app, err := s.Applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownOffer(ctx, recruiterID, app.OfferID); err != nil {
		return nil, err
	}
	return s.Applications.ListEvents(ctx, applicationID)
}
