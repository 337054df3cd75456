package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/repository"
)

const offerColumns = `o.id, o.company_id, o.company_name, o.title, o.description, o.contract_type, o.city,
	o.latitude, o.longitude, o.remote, o.salary_min, o.salary_max, o.experience_min_years, o.status,
	o.admin_status, o.moderation_reason, o.source, o.external_id, o.external_url, o.created_by,
	o.published_at, o.created_at, o.updated_at, o.deleted_at`

const visibleCond = `o.deleted_at IS NULL AND o.status = 'PUBLISHED' AND o.admin_status = 'APPROVED'`

type OfferRepository struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

func scanOffer(row pgx.Row) (*entity.JobOffer, error) {
	o := &entity.JobOffer{}
	var contract, status, adminStatus, source string
	var externalID *string
	if err := row.Scan(&o.ID, &o.CompanyID, &o.CompanyName, &o.Title, &o.Description, &contract, &o.City,
		&o.Latitude, &o.Longitude, &o.Remote, &o.SalaryMin, &o.SalaryMax, &o.ExperienceMinYears, &status,
		&adminStatus, &o.ModerationReason, &source, &externalID, &o.ExternalURL, &o.CreatedBy,
		&o.PublishedAt, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt); err != nil {
		return nil, translate(err)
	}
	o.ContractType = entity.ContractType(contract)
	o.Status = entity.OfferStatus(status)
	o.AdminStatus = entity.AdminStatus(adminStatus)
	o.Source = entity.OfferSource(source)
	o.ExternalID = deref(externalID)
	return o, nil
}

func (r *OfferRepository) Create(ctx context.Context, o *entity.JobOffer) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := insertOffer(ctx, tx, o, ""); err != nil {
			return err
		}
		return writeSkills(ctx, tx, o.ID, o.Skills)
	})
}

// insertOffer runs the INSERT; suffix may carry an ON CONFLICT clause.
func insertOffer(ctx context.Context, tx pgx.Tx, o *entity.JobOffer, suffix string) error {
	if o.Source == "" {
		o.Source = entity.SourceCareerBoost
	}
	return translate(tx.QueryRow(ctx, `
		INSERT INTO job_offers (company_id, company_name, title, description, contract_type, city, latitude,
			longitude, remote, salary_min, salary_max, experience_min_years, status, admin_status, source,
			external_id, external_url, created_by, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		`+suffix+`
		RETURNING id, created_at, updated_at
	`, o.CompanyID, o.CompanyName, o.Title, o.Description, string(o.ContractType), o.City, o.Latitude,
		o.Longitude, o.Remote, o.SalaryMin, o.SalaryMax, o.ExperienceMinYears, string(o.Status),
		string(o.AdminStatus), string(o.Source), nullable(o.ExternalID), o.ExternalURL, o.CreatedBy,
		o.PublishedAt).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt))
}

// linkSkillSQL registers the skill when the catalogue does not know it yet,
// then links it to the offer.
const linkSkillSQL = `
	WITH created AS (
		INSERT INTO skills (name, slug) VALUES ($5, $2)
		ON CONFLICT DO NOTHING
		RETURNING id
	), skill AS (
		SELECT id FROM created
		UNION ALL
		SELECT id FROM skills WHERE slug = $2 OR name = $5
		LIMIT 1
	)
	INSERT INTO job_offer_skills (offer_id, skill_id, is_required, weight)
	SELECT $1, id, $3, $4 FROM skill
	ON CONFLICT (offer_id, skill_id) DO NOTHING
`

// writeSkills links every skill to the offer, creating catalogue rows for
// skills that were never seeded.
func writeSkills(ctx context.Context, tx pgx.Tx, offerID string, skills []entity.OfferSkill) error {
	if len(skills) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, s := range skills {
		if s.Slug == "" {
			continue
		}
		name := s.Name
		if name == "" {
			name = s.Slug
		}
		b.Queue(linkSkillSQL, offerID, s.Slug, s.IsRequired, s.Weight, name)
	}
	if b.Len() == 0 {
		return nil
	}
	return translate(tx.SendBatch(ctx, b).Close())
}

func (r *OfferRepository) GetByID(ctx context.Context, id string) (*entity.JobOffer, error) {
	o, err := scanOffer(r.pool.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM job_offers o WHERE o.id = $1 AND o.deleted_at IS NULL`, id))
	if err != nil {
		return nil, err
	}
	offers := []entity.JobOffer{*o}
	if err := r.attachSkills(ctx, offers); err != nil {
		return nil, err
	}
	return &offers[0], nil
}

func (r *OfferRepository) Update(ctx context.Context, o *entity.JobOffer) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `
			UPDATE job_offers
			SET title = $1, description = $2, contract_type = $3, city = $4, latitude = $5, longitude = $6,
			    remote = $7, salary_min = $8, salary_max = $9, experience_min_years = $10,
			    admin_status = $11, moderation_reason = $12, updated_at = now()
			WHERE id = $13 AND deleted_at IS NULL
		`, o.Title, o.Description, string(o.ContractType), o.City, o.Latitude, o.Longitude, o.Remote,
			o.SalaryMin, o.SalaryMax, o.ExperienceMinYears, string(o.AdminStatus), o.ModerationReason, o.ID)
		if err != nil {
			return translate(err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		if o.Skills == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM job_offer_skills WHERE offer_id = $1`, o.ID); err != nil {
			return translate(err)
		}
		return writeSkills(ctx, tx, o.ID, o.Skills)
	})
}

func (r *OfferRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE job_offers SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *OfferRepository) List(ctx context.Context, f repository.OfferFilter) ([]entity.JobOffer, int, error) {
	w := offerWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM job_offers o`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}
	q := `SELECT ` + offerColumns + ` FROM job_offers o` + w.String() +
		` ORDER BY COALESCE(o.published_at, o.created_at) DESC, o.id LIMIT ` + w.arg(f.Page.Limit) +
		` OFFSET ` + w.arg(f.Page.Offset())
	out, err := r.collect(ctx, q, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, r.attachSkills(ctx, out)
}

func offerWhere(f repository.OfferFilter) *where {
	w := &where{}
	if f.VisibleOnly {
		w.raw(visibleCond)
	} else {
		w.raw("o.deleted_at IS NULL")
	}
	if f.Q != "" {
		w.add("(o.title ILIKE $%[1]d OR o.description ILIKE $%[1]d OR o.company_name ILIKE $%[1]d)", contains(f.Q))
	}
	if f.ContractType != "" {
		w.add("o.contract_type = $%d", string(f.ContractType))
	}
	if f.City != "" {
		w.add("o.city ILIKE $%d", contains(f.City))
	}
	if f.Remote != nil {
		w.add("o.remote = $%d", *f.Remote)
	}
	if f.Skill != "" {
		w.add(`EXISTS (SELECT 1 FROM job_offer_skills os JOIN skills sk ON sk.id = os.skill_id
			WHERE os.offer_id = o.id AND (sk.slug = $%[1]d OR lower(sk.name) = lower($%[1]d)))`, f.Skill)
	}
	if f.CompanyID != "" {
		w.add("o.company_id = $%d", f.CompanyID)
	}
	if f.CreatedBy != "" {
		w.add("o.created_by = $%d", f.CreatedBy)
	}
	if f.AdminStatus != "" {
		w.add("o.admin_status = $%d", string(f.AdminStatus))
	}
	if f.Source != "" {
		w.add("o.source = $%d", string(f.Source))
	}
	return w
}

func (r *OfferRepository) ListVisible(ctx context.Context, limit int) ([]entity.JobOffer, error) {
	out, err := r.collect(ctx, `
		SELECT `+offerColumns+` FROM job_offers o
		WHERE `+visibleCond+`
		ORDER BY o.published_at DESC NULLS LAST
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return out, r.attachSkills(ctx, out)
}

func (r *OfferRepository) ListVisibleByIDs(ctx context.Context, ids []string) ([]entity.JobOffer, error) {
	if len(ids) == 0 {
		return []entity.JobOffer{}, nil
	}
	found, err := r.collect(ctx, `
		SELECT `+offerColumns+` FROM job_offers o
		WHERE `+visibleCond+` AND o.id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return nil, err
	}
	if err := r.attachSkills(ctx, found); err != nil {
		return nil, err
	}
	byID := make(map[string]entity.JobOffer, len(found))
	for _, o := range found {
		byID[o.ID] = o
	}
	out := make([]entity.JobOffer, 0, len(found))
	for _, id := range ids {
		if o, ok := byID[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *OfferRepository) collect(ctx context.Context, q string, args ...any) ([]entity.JobOffer, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	out := []entity.JobOffer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// attachSkills loads skills for all offers in one query.
func (r *OfferRepository) attachSkills(ctx context.Context, offers []entity.JobOffer) error {
	if len(offers) == 0 {
		return nil
	}
	ids := make([]string, len(offers))
	idx := make(map[string]int, len(offers))
	for i := range offers {
		ids[i] = offers[i].ID
		idx[offers[i].ID] = i
		offers[i].Skills = []entity.OfferSkill{}
	}
	rows, err := r.pool.Query(ctx, `
		SELECT os.offer_id, sk.id, sk.name, sk.slug, os.is_required, os.weight
		FROM job_offer_skills os
		JOIN skills sk ON sk.id = os.skill_id
		WHERE os.offer_id = ANY($1::uuid[])
		ORDER BY os.is_required DESC, sk.name
	`, ids)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()
	for rows.Next() {
		var offerID string
		var s entity.OfferSkill
		if err := rows.Scan(&offerID, &s.SkillID, &s.Name, &s.Slug, &s.IsRequired, &s.Weight); err != nil {
			return err
		}
		if i, ok := idx[offerID]; ok {
			offers[i].Skills = append(offers[i].Skills, s)
		}
	}
	return rows.Err()
}

func (r *OfferRepository) SetStatus(ctx context.Context, id string, status entity.OfferStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE job_offers
		SET status = $1,
		    published_at = CASE WHEN $1 = 'PUBLISHED' THEN COALESCE(published_at, now()) ELSE published_at END,
		    updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL
	`, string(status), id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *OfferRepository) SetAdminStatus(ctx context.Context, id string, status entity.AdminStatus, reason string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE job_offers SET admin_status = $1, moderation_reason = $2, updated_at = now()
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

func (r *OfferRepository) ReplaceSkills(ctx context.Context, offerID string, skills []entity.OfferSkill) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM job_offer_skills WHERE offer_id = $1`, offerID); err != nil {
			return translate(err)
		}
		return writeSkills(ctx, tx, offerID, skills)
	})
}

func (r *OfferRepository) InsertImported(ctx context.Context, o *entity.JobOffer) (bool, error) {
	inserted := false
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := insertOffer(ctx, tx, o, `ON CONFLICT (source, external_id) DO NOTHING`)
		if errors.Is(err, repository.ErrNotFound) {
			// no RETURNING row: the listing is already stored
			return nil
		}
		if err != nil {
			return err
		}
		inserted = true
		return writeSkills(ctx, tx, o.ID, o.Skills)
	})
	return inserted, err
}

// SkillRepository serves the skills catalogue.
type SkillRepository struct {
	pool *pgxpool.Pool
}

func NewSkillRepository(pool *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{pool: pool}
}

func (r *SkillRepository) List(ctx context.Context, q, category string) ([]entity.Skill, error) {
	w := &where{}
	if q != "" {
		w.add("(name ILIKE $%[1]d OR slug ILIKE $%[1]d OR EXISTS (SELECT 1 FROM unnest(aliases) a WHERE a ILIKE $%[1]d))", contains(q))
	}
	if category != "" {
		w.add("category = $%d", category)
	}
	return r.collect(ctx, `SELECT id, name, slug, category, aliases FROM skills`+w.String()+` ORDER BY name`, w.args...)
}

func (r *SkillRepository) GetBySlugs(ctx context.Context, slugs []string) ([]entity.Skill, error) {
	if len(slugs) == 0 {
		return []entity.Skill{}, nil
	}
	return r.collect(ctx, `SELECT id, name, slug, category, aliases FROM skills WHERE slug = ANY($1) ORDER BY name`, slugs)
}

func (r *SkillRepository) collect(ctx context.Context, q string, args ...any) ([]entity.Skill, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	out := []entity.Skill{}
	for rows.Next() {
		var s entity.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Category, &s.Aliases); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SkillRepository) Upsert(ctx context.Context, s *entity.Skill) error {
	aliases := s.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return translate(r.pool.QueryRow(ctx, `
		INSERT INTO skills (name, slug, category, aliases) VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category, aliases = EXCLUDED.aliases
		RETURNING id
	`, s.Name, s.Slug, s.Category, aliases).Scan(&s.ID))
}

var (
	_ repository.OfferRepository = (*OfferRepository)(nil)
	_ repository.SkillRepository = (*SkillRepository)(nil)
)
