package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/internal/domain/skills"
)

const (
	skillsCacheTTL    = time.Hour
	skillsCachePrefix = "skills:list:"
	maxParseText      = 50000
)

type SkillService struct {
	Skills repo.SkillRepository
	Cache  Cache
	Logger *logrus.Logger
}

func NewSkillService(r repo.SkillRepository, cache Cache, logger *logrus.Logger) *SkillService {
	return &SkillService{Skills: r, Cache: cache, Logger: logger}
}

// List searches the catalogue, cached per (q, category).
func (s *SkillService) List(ctx context.Context, q, category string) ([]entity.Skill, error) {
	q = strings.TrimSpace(q)
	key := skillsCachePrefix + skills.Slugify(category) + ":" + skills.Slugify(q)
	if s.Cache != nil {
		var cached []entity.Skill
		if ok, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		} else if err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("skills cache read failed")
		}
	}
	list, err := s.Skills.List(ctx, q, category)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entity.Skill{}
	}
	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, key, list, skillsCacheTTL); err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("skills cache write failed")
		}
	}
	return list, nil
}

// ParseResult is what the parser reads out of a job description or CV.
type ParseResult struct {
	Skills          []skills.Match      `json:"skills"`
	ExperienceYears int                 `json:"experience_years"`
	ContractType    entity.ContractType `json:"contract_type,omitempty"`
}

func (s *SkillService) Parse(text string) (ParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return ParseResult{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if len(text) > maxParseText {
		return ParseResult{}, fmt.Errorf("%w: text too long", ErrInvalidInput)
	}
	found := skills.Default().Extract(text)
	if found == nil {
		found = []skills.Match{}
	}
	return ParseResult{
		Skills:          found,
		ExperienceYears: skills.ExtractExperienceYears(text),
		ContractType:    skills.DetectContractType(text),
	}, nil
}

// Seed upserts the built-in dictionary into the catalogue.
func (s *SkillService) Seed(ctx context.Context) (int, error) {
	n := 0
	for _, e := range skills.Dictionary() {
		sk := &entity.Skill{Name: e.Name, Slug: skills.Slugify(e.Name), Category: e.Category, Aliases: e.Aliases}
		if sk.Aliases == nil {
			sk.Aliases = []string{}
		}
		if err := s.Skills.Upsert(ctx, sk); err != nil {
			return n, fmt.Errorf("upsert skill %s: %w", e.Name, err)
		}
		n++
	}
	if s.Cache != nil {
		if err := s.Cache.DeletePattern(ctx, skillsCachePrefix+"*"); err != nil {
			s.Logger.WithError(err).Warn("skills cache invalidation failed")
		}
	}
	return n, nil
}
