package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/matching"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/internal/domain/skills"
)

const (
	recommendationPool    = 500
	defaultRecommendLimit = 10
	maxRecommendLimit     = 50
	maxCoverLetter        = 5000
)

type CandidateService struct {
	Users        repo.UserRepository
	Candidates   repo.CandidateRepository
	Offers       repo.OfferRepository
	Applications repo.ApplicationRepository
	Notify       *NotificationService
	Weights      matching.Weights
	Logger       *logrus.Logger
}

func NewCandidateService(users repo.UserRepository, candidates repo.CandidateRepository, offers repo.OfferRepository,
	apps repo.ApplicationRepository, notify *NotificationService,
	w matching.Weights, logger *logrus.Logger) *CandidateService {
	return &CandidateService{
		Users:        users,
		Candidates:   candidates,
		Offers:       offers,
		Applications: apps,
		Notify:       notify,
		Weights:      w,
		Logger:       logger,
	}
}

// GetProfile returns the profile, or an empty one when none was saved yet.
func (s *CandidateService) GetProfile(ctx context.Context, userID string) (*entity.CandidateProfile, error) {
	p, err := s.Candidates.GetProfile(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return &entity.CandidateProfile{UserID: userID, Skills: []string{}, ContractTypes: []entity.ContractType{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

type ProfileInput struct {
	Headline        string
	DesiredTitle    string
	Bio             string
	City            string
	Latitude        *float64
	Longitude       *float64
	MaxDistanceKm   int
	ExperienceYears int
	ContractTypes   []entity.ContractType
	RemoteOK        bool
	Skills          []string
	CVURL           string
	PhotoURL        string
}

// UpdateProfile upserts the whole profile. Skills, when given, are normalised.
func (s *CandidateService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*entity.CandidateProfile, error) {
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude go together", ErrInvalidInput)
	}
	current, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := &entity.CandidateProfile{
		UserID:          userID,
		Headline:        strings.TrimSpace(in.Headline),
		DesiredTitle:    strings.TrimSpace(in.DesiredTitle),
		Bio:             strings.TrimSpace(in.Bio),
		City:            strings.TrimSpace(in.City),
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		MaxDistanceKm:   in.MaxDistanceKm,
		ExperienceYears: in.ExperienceYears,
		ContractTypes:   dedupeContracts(in.ContractTypes),
		RemoteOK:        in.RemoteOK,
		Skills:          current.Skills,
		CVURL:           in.CVURL,
		PhotoURL:        in.PhotoURL,
	}
	if in.Skills != nil {
		normalized, err := NormalizeSkills(in.Skills)
		if err != nil {
			return nil, err
		}
		p.Skills = normalized
	}
	if err := s.Candidates.UpsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return p, nil
}

// SetSkills replaces the candidate's skills with their canonical names.
func (s *CandidateService) SetSkills(ctx context.Context, userID string, names []string) ([]string, error) {
	normalized, err := NormalizeSkills(names)
	if err != nil {
		return nil, err
	}
	if _, err := s.Candidates.GetProfile(ctx, userID); errors.Is(err, repo.ErrNotFound) {
		if err := s.Candidates.UpsertProfile(ctx, &entity.CandidateProfile{UserID: userID}); err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
	} else if err != nil {
		return nil, err
	}
	if err := s.Candidates.SetSkills(ctx, userID, normalized); err != nil {
		return nil, fmt.Errorf("set skills: %w", err)
	}
	return normalized, nil
}

// NormalizeSkills maps names to dictionary entries, deduplicated in input
// order. Unknown names fail with ErrInvalidInput.
func NormalizeSkills(names []string) ([]string, error) {
	p := skills.Default()
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	var unknown []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		e, ok := p.Canonical(n)
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		out = append(out, e.Name)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown skills %s", ErrInvalidInput, strings.Join(unknown, ", "))
	}
	return out, nil
}

func dedupeContracts(in []entity.ContractType) []entity.ContractType {
	out := make([]entity.ContractType, 0, len(in))
	seen := map[entity.ContractType]bool{}
	for _, c := range in {
		if !c.Valid() || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func (s *CandidateService) ListApplications(ctx context.Context, userID string, p repo.Page) ([]entity.Application, int, error) {
	return s.Applications.ListByCandidate(ctx, userID, p)
}

// Apply creates a PENDING application with the current match score and
// notifies the offer's author.
func (s *CandidateService) Apply(ctx context.Context, userID, offerID, coverLetter string) (*entity.Application, error) {
	coverLetter = strings.TrimSpace(coverLetter)
	if len(coverLetter) > maxCoverLetter {
		return nil, fmt.Errorf("%w: cover letter too long", ErrInvalidInput)
	}
	offer, err := s.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !offer.IsVisible() {
		return nil, ErrOfferNotOpen
	}
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := matching.Score(matching.FromProfile(profile), offer, s.Weights)

	app := &entity.Application{
		OfferID:     offer.ID,
		CandidateID: userID,
		Status:      entity.ApplicationPending,
		CoverLetter: coverLetter,
		MatchScore:  res.Score,
		OfferTitle:  offer.Title,
		CompanyName: offer.CompanyName,
	}
	if err := s.Applications.Create(ctx, app); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	if offer.CreatedBy != nil {
		s.Notify.Notify(ctx, &entity.Notification{
			UserID:  *offer.CreatedBy,
			Type:    entity.NotifyApplicationReceived,
			Title:   "Nouvelle candidature",
			Message: fmt.Sprintf("Une nouvelle candidature a été déposée pour « %s » (score %d).", offer.Title, res.Score),
			Data:    map[string]any{"application_id": app.ID, "offer_id": offer.ID, "match_score": res.Score},
		}, "/recruiter/offers/"+offer.ID+"/applications")
	}
	return app, nil
}

// Withdraw lets a candidate cancel an application still under review.
func (s *CandidateService) Withdraw(ctx context.Context, userID, applicationID string) (*entity.Application, error) {
	app, err := s.Applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.CandidateID != userID {
		return nil, ErrNotFound
	}
	if !app.Status.CanTransition(entity.ApplicationWithdrawn) {
		return nil, ErrInvalidTransition
	}
	ev := entity.ApplicationEvent{
		ApplicationID: app.ID,
		FromStatus:    app.Status,
		ToStatus:      entity.ApplicationWithdrawn,
		ActorID:       userID,
	}
	if err := s.Applications.UpdateStatus(ctx, ev); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("withdraw application: %w", err)
	}
	app.Status = entity.ApplicationWithdrawn
	return app, nil
}

// Recommendation is a ranked offer with its score breakdown.
type Recommendation struct {
	Offer entity.JobOffer
	Match matching.Result
}

// Recommendations ranks the most recent visible offers for the candidate.
func (s *CandidateService) Recommendations(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}
	if limit > maxRecommendLimit {
		limit = maxRecommendLimit
	}

	var (
		profile *entity.CandidateProfile
		offers  []entity.JobOffer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.GetProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		offers, err = s.Offers.ListVisible(gctx, recommendationPool)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(offers))
	for i := range offers {
		byID[offers[i].ID] = i
	}
	ranked := matching.Rank(matching.FromProfile(profile), offers, s.Weights, limit)
	out := make([]Recommendation, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, Recommendation{Offer: offers[byID[r.OfferID]], Match: r})
	}
	return out, nil
}

// MatchDetail scores one visible offer, including filtered results.
func (s *CandidateService) MatchDetail(ctx context.Context, userID, offerID string) (*Recommendation, error) {
	var (
		profile *entity.CandidateProfile
		offer   *entity.JobOffer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.GetProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		offer, err = s.Offers.GetByID(gctx, offerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !offer.IsVisible() {
		return nil, ErrNotFound
	}
	return &Recommendation{Offer: *offer, Match: matching.Score(matching.FromProfile(profile), offer, s.Weights)}, nil
}
