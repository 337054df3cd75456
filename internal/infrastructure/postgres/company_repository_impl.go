package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/repository"
)

const companyColumns = `c.id, c.name, c.siret, c.description, c.website, c.city, c.status, c.rejection_reason,
	c.created_by, c.verified_at, c.created_at, c.updated_at, c.deleted_at`

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	c := &entity.Company{}
	var siret, createdBy *string
	var status string
	if err := row.Scan(&c.ID, &c.Name, &siret, &c.Description, &c.Website, &c.City, &status, &c.RejectionReason,
		&createdBy, &c.VerifiedAt, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return nil, translate(err)
	}
	c.Siret = deref(siret)
	c.CreatedBy = deref(createdBy)
	c.Status = entity.CompanyStatus(status)
	return c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *entity.Company, ownerID string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if c.Status == "" {
			c.Status = entity.CompanyPending
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO companies (name, siret, description, website, city, status, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`, c.Name, nullable(c.Siret), c.Description, c.Website, c.City, string(c.Status), nullable(ownerID)).
			Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return translate(err)
		}
		c.CreatedBy = ownerID
		_, err = tx.Exec(ctx, `
			INSERT INTO company_memberships (company_id, user_id, role) VALUES ($1, $2, $3)
		`, c.ID, ownerID, string(entity.MembershipOwner))
		return translate(err)
	})
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return scanCompany(r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies c WHERE c.id = $1 AND c.deleted_at IS NULL`, id))
}

func (r *CompanyRepository) Update(ctx context.Context, c *entity.Company) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE companies
		SET name = $1, siret = $2, description = $3, website = $4, city = $5, updated_at = now()
		WHERE id = $6 AND deleted_at IS NULL
	`, c.Name, nullable(c.Siret), c.Description, c.Website, c.City, c.ID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) SetStatus(ctx context.Context, id string, status entity.CompanyStatus, reason string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE companies
		SET status = $1,
		    rejection_reason = $2,
		    verified_at = CASE WHEN $1 = 'VERIFIED' THEN now() ELSE NULL END,
		    updated_at = now()
		WHERE id = $3 AND deleted_at IS NULL
	`, string(status), reason, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) List(ctx context.Context, f repository.CompanyFilter) ([]entity.Company, int, error) {
	w := &where{}
	w.raw("c.deleted_at IS NULL")
	if f.Status != "" {
		w.add("c.status = $%d", string(f.Status))
	}
	if f.Q != "" {
		w.add("(c.name ILIKE $%[1]d OR c.city ILIKE $%[1]d)", contains(f.Q))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM companies c`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}
	q := `SELECT ` + companyColumns + ` FROM companies c` + w.String() +
		` ORDER BY c.created_at DESC LIMIT ` + w.arg(f.Page.Limit) + ` OFFSET ` + w.arg(f.Page.Offset())
	out, err := r.collect(ctx, q, w.args...)
	return out, total, err
}

func (r *CompanyRepository) ListByMember(ctx context.Context, userID string) ([]entity.Company, error) {
	return r.collect(ctx, `
		SELECT `+companyColumns+`
		FROM companies c
		JOIN company_memberships m ON m.company_id = c.id
		WHERE m.user_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.name
	`, userID)
}

func (r *CompanyRepository) collect(ctx context.Context, q string, args ...any) ([]entity.Company, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	out := []entity.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CompanyRepository) GetMembership(ctx context.Context, companyID, userID string) (*entity.CompanyMembership, error) {
	m := &entity.CompanyMembership{}
	var role string
	err := r.pool.QueryRow(ctx, `
		SELECT company_id, user_id, role, created_at
		FROM company_memberships
		WHERE company_id = $1 AND user_id = $2
	`, companyID, userID).Scan(&m.CompanyID, &m.UserID, &role, &m.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	m.Role = entity.MembershipRole(role)
	return m, nil
}

func (r *CompanyRepository) AddMember(ctx context.Context, m entity.CompanyMembership) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO company_memberships (company_id, user_id, role) VALUES ($1, $2, $3)
	`, m.CompanyID, m.UserID, string(m.Role))
	return translate(err)
}

func (r *CompanyRepository) ListMembers(ctx context.Context, companyID string) ([]entity.CompanyMembership, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT company_id, user_id, role, created_at
		FROM company_memberships
		WHERE company_id = $1
		ORDER BY created_at
	`, companyID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	out := []entity.CompanyMembership{}
	for rows.Next() {
		var m entity.CompanyMembership
		var role string
		if err := rows.Scan(&m.CompanyID, &m.UserID, &role, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Role = entity.MembershipRole(role)
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ repository.CompanyRepository = (*CompanyRepository)(nil)
