package application

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/internal/domain/skills"
	"github.com/oksasatya/careerboost/internal/infrastructure/francetravail"
)

const (
	syncLockKey      = "lock:sync:france_travail"
	syncLockTTL      = 30 * time.Minute
	triggeredTimeout = 20 * time.Minute
)

// Published at /api/debug/vars under "france_travail_sync".
var syncVars = expvar.NewMap("france_travail_sync")

// SyncReport summarises one aggregation run.
type SyncReport struct {
	Fetched    int           `json:"fetched"`
	Inserted   int           `json:"inserted"`
	Duplicates int           `json:"duplicates"`
	Failed     int           `json:"failed"`
	Archived   int           `json:"archived"`
	Duration   time.Duration `json:"duration"`
}

// AggregationService imports offers from France Travail.
type AggregationService struct {
	Source   JobSource
	Offers   repo.OfferRepository
	Index    OfferIndexer
	Archive  Archiver
	Lock     Locker
	Queries  []string
	MaxPages int
	Logger   *logrus.Logger

	running atomic.Bool
	now     func() time.Time
}

func NewAggregationService(source JobSource, offers repo.OfferRepository, index OfferIndexer, archive Archiver,
	lock Locker, queries []string, maxPages int, logger *logrus.Logger) *AggregationService {
	if maxPages <= 0 {
		maxPages = 1
	}
	return &AggregationService{
		Source:   source,
		Offers:   offers,
		Index:    index,
		Archive:  archive,
		Lock:     lock,
		Queries:  queries,
		MaxPages: maxPages,
		Logger:   logger,
		now:      time.Now,
	}
}

func (s *AggregationService) Enabled() bool {
	return s != nil && s.Source != nil && len(s.Queries) > 0
}

// Run performs one sync. Only one run at a time proceeds across instances.
func (s *AggregationService) Run(ctx context.Context) (SyncReport, error) {
	if !s.Enabled() {
		return SyncReport{}, ErrSyncDisabled
	}
	if !s.running.CompareAndSwap(false, true) {
		return SyncReport{}, ErrSyncRunning
	}
	defer s.running.Store(false)
	return s.run(ctx)
}

// run does the work of Run once the in-process guard is held.
func (s *AggregationService) run(ctx context.Context) (SyncReport, error) {
	if s.Lock != nil {
		unlock, ok, err := s.Lock.TryLock(ctx, syncLockKey, syncLockTTL)
		if err != nil {
			return SyncReport{}, fmt.Errorf("acquire sync lock: %w", err)
		}
		if !ok {
			return SyncReport{}, ErrSyncRunning
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				s.Logger.WithError(err).Warn("release sync lock failed")
			}
		}()
	}

	start := s.now()
	var report SyncReport
	seen := make(map[string]bool)
	for _, q := range s.Queries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		s.syncQuery(ctx, q, seen, &report)
	}
	report.Duration = s.now().Sub(start)
	s.publish(report)

	s.Logger.WithFields(logrus.Fields{
		"fetched":    report.Fetched,
		"inserted":   report.Inserted,
		"duplicates": report.Duplicates,
		"failed":     report.Failed,
		"duration":   report.Duration.String(),
	}).Info("france travail sync finished")
	return report, nil
}

func (s *AggregationService) syncQuery(ctx context.Context, query string, seen map[string]bool, report *SyncReport) {
	log := s.Logger.WithField("query", query)
	first := 0
	for page := 0; page < s.MaxPages; page++ {
		p, err := s.Source.Search(ctx, francetravail.SearchParams{Keywords: query}, first)
		if err != nil {
			if !errors.Is(err, francetravail.ErrRangeExceeded) {
				report.Failed++
				log.WithError(err).WithField("first", first).Warn("france travail search failed")
			}
			return
		}
		report.Fetched += len(p.Offers)
		s.archive(ctx, query, p, report)

		for i := range p.Offers {
			src := &p.Offers[i]
			if src.ID == "" || seen[src.ID] {
				report.Duplicates++
				continue
			}
			seen[src.ID] = true
			s.importOffer(ctx, src, report)
		}
		if !p.HasMore() {
			return
		}
		first = p.Last + 1
	}
}

func (s *AggregationService) importOffer(ctx context.Context, src *francetravail.Offer, report *SyncReport) {
	o := ToJobOffer(src)
	inserted, err := s.Offers.InsertImported(ctx, o)
	if err != nil {
		report.Failed++
		s.Logger.WithError(err).WithField("external_id", src.ID).Warn("insert imported offer failed")
		return
	}
	if !inserted {
		report.Duplicates++
		return
	}
	report.Inserted++
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, o); err != nil {
		s.Logger.WithError(err).WithField("offer_id", o.ID).Warn("es index imported offer failed")
	}
}

func (s *AggregationService) archive(ctx context.Context, query string, p *francetravail.Page, report *SyncReport) {
	if s.Archive == nil || len(p.Raw) == 0 {
		return
	}
	name := fmt.Sprintf("%s/%s-%d.json", s.now().UTC().Format("2006/01/02/150405"), skills.Slugify(query), p.First)
	if _, err := s.Archive.Archive(ctx, name, p.Raw); err != nil {
		s.Logger.WithError(err).WithField("object", name).Warn("archive raw page failed")
		return
	}
	report.Archived++
}

func (s *AggregationService) publish(r SyncReport) {
	syncVars.Add("runs", 1)
	syncVars.Add("fetched", int64(r.Fetched))
	syncVars.Add("inserted", int64(r.Inserted))
	syncVars.Add("duplicates", int64(r.Duplicates))
	syncVars.Add("failed", int64(r.Failed))
	last := new(expvar.Int)
	last.Set(r.Duration.Milliseconds())
	syncVars.Set("last_duration_ms", last)
	at := new(expvar.String)
	at.Set(s.now().UTC().Format(time.RFC3339))
	syncVars.Set("last_run_at", at)
}

// Start runs a sync immediately and then every interval until ctx is done.
func (s *AggregationService) Start(ctx context.Context, interval time.Duration) {
	if !s.Enabled() || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if _, err := s.Run(ctx); err != nil && !errors.Is(err, ErrSyncRunning) && ctx.Err() == nil {
				s.Logger.WithError(err).Error("france travail sync failed")
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Trigger starts a run in the background, detached from the request.
func (s *AggregationService) Trigger(ctx context.Context) error {
	if !s.Enabled() {
		return ErrSyncDisabled
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrSyncRunning
	}
	go func() {
		defer s.running.Store(false)
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), triggeredTimeout)
		defer cancel()
		_, err := s.run(runCtx)
		switch {
		case errors.Is(err, ErrSyncRunning):
			s.Logger.Info("triggered france travail sync skipped, another instance holds the lock")
		case err != nil:
			s.Logger.WithError(err).Error("triggered france travail sync failed")
		}
	}()
	return nil
}

// ToJobOffer maps a France Travail listing to an approved, published offer.
func ToJobOffer(src *francetravail.Offer) *entity.JobOffer {
	published := src.Published()
	if published.IsZero() {
		published = time.Now()
	}
	o := &entity.JobOffer{
		CompanyName:        strings.TrimSpace(src.Entreprise.Nom),
		Title:              strings.TrimSpace(src.Intitule),
		Description:        strings.TrimSpace(src.Description),
		ContractType:       entity.ParseContractType(src.TypeContrat),
		City:               src.LieuTravail.City(),
		ExperienceMinYears: src.ExperienceYears(),
		Status:             entity.OfferPublished,
		AdminStatus:        entity.AdminApproved,
		Source:             entity.SourceFranceTravail,
		ExternalID:         src.ID,
		ExternalURL:        src.PublicURL(),
		PublishedAt:        &published,
	}
	if src.Alternance {
		o.ContractType = entity.ContractAlternance
	}
	if o.ContractType == "" {
		o.ContractType = skills.DetectContractType(o.Title + "\n" + o.Description)
	}
	if o.ExperienceMinYears == 0 {
		o.ExperienceMinYears = skills.ExtractExperienceYears(o.Description)
	}
	if src.LieuTravail.HasCoordinates() {
		lat, lon := src.LieuTravail.Latitude, src.LieuTravail.Longitude
		o.Latitude, o.Longitude = &lat, &lon
	}
	o.Remote = strings.Contains(skills.Fold(o.Title+" "+o.Description), "teletravail")
	o.Skills = importedSkills(src, o.Title+"\n"+o.Description)
	return o
}

// importedSkills merges the parser's findings with the listing's own
// competences, whose exigence decides whether the skill is required.
func importedSkills(src *francetravail.Offer, text string) []entity.OfferSkill {
	p := skills.Default()
	out := []entity.OfferSkill{}
	index := map[string]int{}
	for _, m := range p.Extract(text) {
		index[m.Slug] = len(out)
		out = append(out, entity.OfferSkill{Name: m.Name, Slug: m.Slug, IsRequired: m.Required})
	}
	for _, c := range src.Competences {
		for _, m := range p.Extract(c.Libelle) {
			required := c.Exigence != "S"
			if i, ok := index[m.Slug]; ok {
				out[i].IsRequired = required
				continue
			}
			index[m.Slug] = len(out)
			out = append(out, entity.OfferSkill{Name: m.Name, Slug: m.Slug, IsRequired: required})
		}
	}
	return out
}
