package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/internal/infrastructure/search"
)

const offerCacheTTL = 5 * time.Minute

func offerCacheKey(id string) string { return "offer:" + id }

// OfferService serves the public offer catalogue.
type OfferService struct {
	Offers repo.OfferRepository
	Index  OfferIndexer
	Cache  Cache
	Logger *logrus.Logger
}

func NewOfferService(offers repo.OfferRepository, index OfferIndexer, cache Cache, logger *logrus.Logger) *OfferService {
	return &OfferService{Offers: offers, Index: index, Cache: cache, Logger: logger}
}

// List returns visible offers only.
func (s *OfferService) List(ctx context.Context, f repo.OfferFilter) ([]entity.JobOffer, int, error) {
	f.VisibleOnly = true
	return s.Offers.List(ctx, f)
}

// Get returns a visible offer, served from cache when possible.
func (s *OfferService) Get(ctx context.Context, id string) (*entity.JobOffer, error) {
	key := offerCacheKey(id)
	if s.Cache != nil {
		var cached entity.JobOffer
		if ok, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		} else if err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("offer cache read failed")
		}
	}
	o, err := s.Offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.IsVisible() {
		return nil, ErrNotFound
	}
	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, key, o, offerCacheTTL); err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("offer cache write failed")
		}
	}
	return o, nil
}

// Search runs a full-text query on Elasticsearch and falls back to Postgres ILIKE.
func (s *OfferService) Search(ctx context.Context, q string, f repo.OfferFilter) ([]entity.JobOffer, int, error) {
	f.Q = q
	if s.Index == nil || q == "" || f.Skill != "" || f.CompanyID != "" {
		return s.List(ctx, f)
	}
	ids, total, err := s.Index.Search(ctx, search.Query{
		Text:         q,
		ContractType: f.ContractType,
		City:         f.City,
		Remote:       f.Remote,
		From:         f.Page.Offset(),
		Size:         f.Page.Limit,
	})
	if err != nil {
		s.Logger.WithError(err).WithField("q", q).Warn("es search failed, falling back to postgres")
		return s.List(ctx, f)
	}
	offers, err := s.Offers.ListVisibleByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

// Refresh drops the cached copy and re-syncs the search index after a write.
func (s *OfferService) Refresh(ctx context.Context, id string) {
	if s.Cache != nil {
		if err := s.Cache.Delete(ctx, offerCacheKey(id)); err != nil {
			s.Logger.WithError(err).WithField("offer_id", id).Warn("offer cache invalidation failed")
		}
	}
	if s.Index == nil {
		return
	}
	o, err := s.Offers.GetByID(ctx, id)
	if err != nil {
		// soft-deleted or gone
		if err := s.Index.Delete(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("offer_id", id).Warn("es delete failed")
		}
		return
	}
	if err := s.Index.Sync(ctx, o); err != nil {
		s.Logger.WithError(err).WithField("offer_id", id).Warn("es sync failed")
	}
}
