package repository

import (
	"context"
	"time"

	"github.com/oksasatya/careerboost/internal/domain/entity"
)

type UserFilter struct {
	Role entity.Role
	Q    string
	Page Page
}

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	TouchLogin(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, f UserFilter) ([]entity.User, int, error)
}

type CandidateRepository interface {
	GetProfile(ctx context.Context, userID string) (*entity.CandidateProfile, error)
	UpsertProfile(ctx context.Context, p *entity.CandidateProfile) error
	SetSkills(ctx context.Context, userID string, skills []string) error
}
