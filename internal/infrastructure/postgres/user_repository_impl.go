package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/repository"
)

const userColumns = `id, email, password_hash, first_name, last_name, role, is_active,
	last_login_at, created_at, updated_at, deleted_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &role, &u.IsActive,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt); err != nil {
		return nil, translate(err)
	}
	u.Role = entity.Role(role)
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.FirstName, u.LastName, string(u.Role), u.IsActive)
	return translate(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail also returns soft-deleted rows so callers can refuse the login explicitly.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, first_name = $3, last_name = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL
	`, u.Email, u.Password, u.FirstName, u.LastName, u.UpdatedAt, u.ID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
	return translate(err)
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET is_active = $1, updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL
	`, active, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f repository.UserFilter) ([]entity.User, int, error) {
	w := &where{}
	w.raw("deleted_at IS NULL")
	if f.Role != "" {
		w.add("role = $%d", string(f.Role))
	}
	if f.Q != "" {
		w.add("(email ILIKE $%[1]d OR first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d)", contains(f.Q))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}

	q := `SELECT ` + userColumns + ` FROM users` + w.String() +
		` ORDER BY created_at DESC LIMIT ` + w.arg(f.Page.Limit) + ` OFFSET ` + w.arg(f.Page.Offset())
	rows, err := r.pool.Query(ctx, q, w.args...)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	out := make([]entity.User, 0, f.Page.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	return out, total, rows.Err()
}

// CandidateRepository stores candidate_profiles rows.
type CandidateRepository struct {
	pool *pgxpool.Pool
}

func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

func (r *CandidateRepository) GetProfile(ctx context.Context, userID string) (*entity.CandidateProfile, error) {
	p := &entity.CandidateProfile{}
	var contracts []string
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, headline, desired_title, bio, city, latitude, longitude, max_distance_km,
		       experience_years, contract_types, remote_ok, skills, cv_url, photo_url, updated_at
		FROM candidate_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Headline, &p.DesiredTitle, &p.Bio, &p.City, &p.Latitude, &p.Longitude,
		&p.MaxDistanceKm, &p.ExperienceYears, &contracts, &p.RemoteOK, &p.Skills, &p.CVURL, &p.PhotoURL, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	p.ContractTypes = make([]entity.ContractType, 0, len(contracts))
	for _, c := range contracts {
		p.ContractTypes = append(p.ContractTypes, entity.ContractType(c))
	}
	return p, nil
}

func (r *CandidateRepository) UpsertProfile(ctx context.Context, p *entity.CandidateProfile) error {
	contracts := make([]string, 0, len(p.ContractTypes))
	for _, c := range p.ContractTypes {
		contracts = append(contracts, string(c))
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO candidate_profiles (user_id, headline, desired_title, bio, city, latitude, longitude,
			max_distance_km, experience_years, contract_types, remote_ok, skills, cv_url, photo_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())
		ON CONFLICT (user_id) DO UPDATE SET
			headline = EXCLUDED.headline,
			desired_title = EXCLUDED.desired_title,
			bio = EXCLUDED.bio,
			city = EXCLUDED.city,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			max_distance_km = EXCLUDED.max_distance_km,
			experience_years = EXCLUDED.experience_years,
			contract_types = EXCLUDED.contract_types,
			remote_ok = EXCLUDED.remote_ok,
			skills = EXCLUDED.skills,
			cv_url = EXCLUDED.cv_url,
			photo_url = EXCLUDED.photo_url,
			updated_at = now()
		RETURNING updated_at
	`, p.UserID, p.Headline, p.DesiredTitle, p.Bio, p.City, p.Latitude, p.Longitude, p.MaxDistanceKm,
		p.ExperienceYears, contracts, p.RemoteOK, skills, p.CVURL, p.PhotoURL)
	return translate(row.Scan(&p.UpdatedAt))
}

func (r *CandidateRepository) SetSkills(ctx context.Context, userID string, skills []string) error {
	if skills == nil {
		skills = []string{}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO candidate_profiles (user_id, skills) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET skills = EXCLUDED.skills, updated_at = now()
	`, userID, skills)
	return translate(err)
}

var (
	_ repository.UserRepository      = (*UserRepository)(nil)
	_ repository.CandidateRepository = (*CandidateRepository)(nil)
)
