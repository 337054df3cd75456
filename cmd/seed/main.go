package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/config"
	"github.com/oksasatya/careerboost/internal/application"
	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/careerboost/internal/infrastructure/postgres"
	"github.com/oksasatya/careerboost/pkg/helpers"
)

// seed creates the first administrator and the skill reference list.
// Running it twice is harmless.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	if err := seedAdmin(ctx, pginfra.NewUserRepository(pool), cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		logger.Fatalf("failed to seed admin: %v", err)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	skills := application.NewSkillService(pginfra.NewSkillRepository(pool), cache.NewJSONCache(rdb), logger)
	n, err := skills.Seed(ctx)
	if err != nil {
		logger.Fatalf("failed to seed skills: %v", err)
	}
	logger.WithField("count", n).Info("skills seeded")
}

func seedAdmin(ctx context.Context, users repository.UserRepository, email, password string, logger *logrus.Logger) error {
	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != entity.RoleAdmin {
			logger.WithField("email", email).Warn("account exists with another role, left untouched")
			return nil
		}
		logger.WithField("id", existing.ID).Info("admin already present")
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	u := &entity.User{
		Email:     email,
		Password:  hash,
		FirstName: "Admin",
		LastName:  "CareerBoost",
		Role:      entity.RoleAdmin,
		IsActive:  true,
	}
	if err := users.Create(ctx, u); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"id": u.ID, "email": email}).Info("admin created")
	return nil
}
