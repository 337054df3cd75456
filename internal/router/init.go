package router

import (
	"context"

	"github.com/oksasatya/careerboost/internal/application"
	"github.com/oksasatya/careerboost/internal/container"
	"github.com/oksasatya/careerboost/internal/domain/matching"
	"github.com/oksasatya/careerboost/internal/infrastructure/archive"
	"github.com/oksasatya/careerboost/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/careerboost/internal/infrastructure/postgres"
	"github.com/oksasatya/careerboost/internal/infrastructure/search"
	handlers "github.com/oksasatya/careerboost/internal/interface/http"
	"github.com/oksasatya/careerboost/internal/interface/middleware"
	"github.com/oksasatya/careerboost/internal/router/modules"
)

// Services are the application services shared by the HTTP modules and the
// background jobs started from main.
type Services struct {
	Auth          *application.AuthService
	Offers        *application.OfferService
	Notifications *application.NotificationService
	Candidates    *application.CandidateService
	Companies     *application.CompanyService
	Recruiters    *application.RecruiterService
	Skills        *application.SkillService
	Aggregation   *application.AggregationService
	Admin         *application.AdminService
}

// BuildServices wires repositories and infrastructure from the container.
// Optional infrastructure (search, queue, archive, job board) stays nil when
// the container has no client for it.
func BuildServices() *Services {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()

	users := pginfra.NewUserRepository(pool)
	candidates := pginfra.NewCandidateRepository(pool)
	companies := pginfra.NewCompanyRepository(pool)
	offers := pginfra.NewOfferRepository(pool)
	apps := pginfra.NewApplicationRepository(pool)
	audit := pginfra.NewAuditRepository(pool)

	sessions := cache.NewSessionStore(rdb)
	jsonCache := cache.NewJSONCache(rdb)

	var index application.OfferIndexer
	if es := container.GetES(); es != nil {
		index = search.NewOfferIndex(es, cfg.ESOffersIndex, log)
	}
	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	var store application.Archiver
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		store = archive.NewGCSArchiver(gcs, cfg.GCSBucket, cfg.GCSImportPrefix)
	}
	var source application.JobSource
	if jb := container.GetJobBoard(); jb != nil && cfg.FranceTravailSyncEnabled {
		source = jb
	}

	weights := matching.Weights{
		Skills:     cfg.MatchWeightSkills,
		Experience: cfg.MatchWeightExperience,
		Bonus:      cfg.MatchWeightBonus,
	}
	auditor := application.NewAuditor(audit, log)

	s := &Services{}
	s.Auth = application.NewAuthService(users, candidates, container.GetJWT(), sessions, cfg.SessionTTL, auditor, log)
	s.Offers = application.NewOfferService(offers, index, jsonCache, log)
	s.Notifications = application.NewNotificationService(pginfra.NewNotificationRepository(pool), users, pub, cfg.AppBaseURL, log)
	s.Candidates = application.NewCandidateService(users, candidates, offers, apps, s.Notifications, weights, log)
	s.Companies = application.NewCompanyService(companies, users, log)
	s.Recruiters = application.NewRecruiterService(companies, offers, candidates, apps, s.Offers, s.Notifications, weights, log)
	s.Skills = application.NewSkillService(pginfra.NewSkillRepository(pool), jsonCache, log)
	s.Aggregation = application.NewAggregationService(source, offers, index, store, cache.NewLocker(rdb),
		cfg.FranceTravailQueries(), cfg.FranceTravailMaxPages, log)
	s.Admin = application.NewAdminService(users, companies, offers, pginfra.NewStatsRepository(pool), audit, sessions,
		s.Offers, s.Notifications, s.Aggregation, auditor, log)
	return s
}

// InitModules builds the services and registers every HTTP module.
// It should be called once during startup; the returned services let main
// start background jobs.
func InitModules(r *Registry) *Services {
	cfg := container.GetConfig()
	log := container.GetLogger()
	rdb := container.GetRedis()
	s := BuildServices()

	auth := middleware.Auth(container.GetJWT(), s.Auth)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(map[string]handlers.Check{
		"postgres": container.GetPGPool().Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(s.Auth, log, cfg.CookieDomain, cfg.CookieSecure), auth, rdb))
	r.Add(modules.NewOfferModule(handlers.NewOfferHandler(s.Offers, log), rdb))
	r.Add(modules.NewSkillModule(handlers.NewSkillHandler(s.Skills, log), rdb))
	r.Add(modules.NewCompanyModule(handlers.NewCompanyHandler(s.Companies, log), auth, rdb))
	r.Add(modules.NewCandidateModule(handlers.NewCandidateHandler(s.Candidates, log), auth, rdb))
	r.Add(modules.NewRecruiterModule(handlers.NewRecruiterHandler(s.Recruiters, log), auth, rdb))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(s.Notifications, log), auth, rdb))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(s.Admin, log), auth, rdb))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
	return s
}
