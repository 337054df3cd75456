package application

import (
	"context"
	"time"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/infrastructure/francetravail"
	"github.com/oksasatya/careerboost/internal/infrastructure/search"
)

// Infrastructure the services depend on. A nil value disables the feature.

type SessionStore interface {
	Save(ctx context.Context, s entity.Session, ttl time.Duration) error
	Get(ctx context.Context, userID string) (*entity.Session, error)
	Delete(ctx context.Context, userID string) error
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}

type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(context.Context) error, ok bool, err error)
}

type OfferIndexer interface {
	Sync(ctx context.Context, o *entity.JobOffer) error
	Index(ctx context.Context, o *entity.JobOffer) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q search.Query) ([]string, int, error)
}

type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type Archiver interface {
	Archive(ctx context.Context, name string, body []byte) (string, error)
}

// JobSource is the external job board polled by the aggregation job.
type JobSource interface {
	Search(ctx context.Context, p francetravail.SearchParams, first int) (*francetravail.Page, error)
}

// RequestMeta carries caller details recorded in audit rows.
type RequestMeta struct {
	IP        string
	UserAgent string
}
