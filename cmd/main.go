package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/careerboost/config"
	"github.com/oksasatya/careerboost/internal/container"
	"github.com/oksasatya/careerboost/internal/infrastructure/francetravail"
	pginfra "github.com/oksasatya/careerboost/internal/infrastructure/postgres"
	"github.com/oksasatya/careerboost/internal/infrastructure/search"
	"github.com/oksasatya/careerboost/internal/interface/middleware"
	"github.com/oksasatya/careerboost/internal/router"
	"github.com/oksasatya/careerboost/pkg/helpers"
	"github.com/oksasatya/careerboost/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL))

	// Optional infrastructure: the API keeps serving without it.
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs unavailable, raw imports will not be archived")
		} else {
			defer func() { _ = gcsClient.Close() }()
			container.SetGCS(gcsClient)
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err == nil {
			ensureCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err = search.NewOfferIndex(es, cfg.ESOffersIndex, logger).EnsureIndex(ensureCtx)
			cancel()
		}
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable, offer search falls back to postgres")
		} else {
			container.SetES(es)
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNotificationQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, notification emails disabled")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	if cfg.FranceTravailSyncEnabled {
		container.SetJobBoard(francetravail.New(ctx, francetravail.Config{
			BaseURL:      cfg.FranceTravailAPIURL,
			TokenURL:     cfg.FranceTravailTokenURL,
			ClientID:     cfg.FranceTravailClientID,
			ClientSecret: cfg.FranceTravailClientSecret,
			Scope:        cfg.FranceTravailScope,
			PageSize:     cfg.FranceTravailPageSize,
			RPS:          cfg.FranceTravailRPS,
		}, logger))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	services := router.InitModules(reg)
	reg.RegisterAll()

	if n, err := services.Skills.Seed(ctx); err != nil {
		logger.WithError(err).Warn("skills catalogue seed failed")
	} else {
		logger.WithField("count", n).Info("skills catalogue ready")
	}

	if cfg.FranceTravailSyncEnabled {
		services.Aggregation.Start(ctx, cfg.FranceTravailInterval)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		os.Exit(1)
	}
	logger.Info("server exited properly")
}
