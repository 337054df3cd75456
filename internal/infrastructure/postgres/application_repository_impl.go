package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/repository"
)

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *entity.Application) error {
	if a.Status == "" {
		a.Status = entity.ApplicationPending
	}
	return translate(r.pool.QueryRow(ctx, `
		INSERT INTO applications (offer_id, candidate_id, status, cover_letter, match_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, a.OfferID, a.CandidateID, string(a.Status), a.CoverLetter, a.MatchScore).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

const applicationSelect = `
	SELECT a.id, a.offer_id, a.candidate_id, a.status, a.cover_letter, a.match_score, a.created_at, a.updated_at,
	       o.title, o.company_name, trim(u.first_name || ' ' || u.last_name), u.email
	FROM applications a
	JOIN job_offers o ON o.id = a.offer_id
	JOIN users u ON u.id = a.candidate_id`

func scanApplication(row pgx.Row) (*entity.Application, error) {
	a := &entity.Application{}
	var status string
	if err := row.Scan(&a.ID, &a.OfferID, &a.CandidateID, &status, &a.CoverLetter, &a.MatchScore, &a.CreatedAt,
		&a.UpdatedAt, &a.OfferTitle, &a.CompanyName, &a.CandidateName, &a.CandidateEmail); err != nil {
		return nil, translate(err)
	}
	a.Status = entity.ApplicationStatus(status)
	return a, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	return scanApplication(r.pool.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string, p repository.Page) ([]entity.Application, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM applications WHERE candidate_id = $1`, candidateID).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}
	out, err := r.collect(ctx, applicationSelect+`
		WHERE a.candidate_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`, candidateID, p.Limit, p.Offset())
	return out, total, err
}

func (r *ApplicationRepository) ListByOffer(ctx context.Context, offerID string) ([]entity.Application, error) {
	return r.collect(ctx, applicationSelect+`
		WHERE a.offer_id = $1
		ORDER BY a.match_score DESC, a.created_at
	`, offerID)
}

func (r *ApplicationRepository) collect(ctx context.Context, q string, args ...any) ([]entity.Application, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	out := []entity.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, ev entity.ApplicationEvent) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `
			UPDATE applications SET status = $1, updated_at = now()
			WHERE id = $2 AND status = $3
		`, string(ev.ToStatus), ev.ApplicationID, string(ev.FromStatus))
		if err != nil {
			return translate(err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrConflict
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO application_events (application_id, from_status, to_status, actor_id, note)
			VALUES ($1, $2, $3, $4, $5)
		`, ev.ApplicationID, string(ev.FromStatus), string(ev.ToStatus), nullable(ev.ActorID), ev.Note)
		return translate(err)
	})
}

func (r *ApplicationRepository) ListEvents(ctx context.Context, applicationID string) ([]entity.ApplicationEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, application_id, from_status, to_status, actor_id, note, created_at
		FROM application_events
		WHERE application_id = $1
		ORDER BY created_at
	`, applicationID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	out := []entity.ApplicationEvent{}
	for rows.Next() {
		var ev entity.ApplicationEvent
		var from, to string
		var actor *string
		if err := rows.Scan(&ev.ID, &ev.ApplicationID, &from, &to, &actor, &ev.Note, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.FromStatus = entity.ApplicationStatus(from)
		ev.ToStatus = entity.ApplicationStatus(to)
		ev.ActorID = deref(actor)
		out = append(out, ev)
	}
	return out, rows.Err()
}

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	data := n.Data
	if data == nil {
		data = map[string]any{}
	}
	return translate(r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, n.UserID, string(n.Type), n.Title, n.Message, data).Scan(&n.ID, &n.CreatedAt))
}

func (r *NotificationRepository) List(ctx context.Context, userID string, unreadOnly bool, p repository.Page) ([]entity.Notification, int, error) {
	w := &where{}
	w.add("user_id = $%d", userID)
	if unreadOnly {
		w.raw("NOT is_read")
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM notifications`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications`+w.String()+`
		ORDER BY created_at DESC
		LIMIT `+w.arg(p.Limit)+` OFFSET `+w.arg(p.Offset()), w.args...)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()
	out := []entity.Notification{}
	for rows.Next() {
		var n entity.Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &n.Data, &n.IsRead, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		n.Type = entity.NotificationType(typ)
		out = append(out, n)
	}
	return out, total, rows.Err()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&n)
	return n, translate(err)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = COALESCE(read_at, now())
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = now()
		WHERE user_id = $1 AND NOT is_read
	`, userID)
	if err != nil {
		return 0, translate(err)
	}
	return res.RowsAffected(), nil
}

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, l *entity.AuditLog) error {
	meta := l.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return translate(r.pool.QueryRow(ctx, `
		INSERT INTO audit_logs (user_id, email, action, ip, user_agent, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, nullable(l.UserID), nullable(l.Email), l.Action, nullable(l.IP), nullable(l.UserAgent), meta).
		Scan(&l.ID, &l.CreatedAt))
}

func (r *AuditRepository) List(ctx context.Context, f repository.AuditFilter) ([]entity.AuditLog, int, error) {
	w := &where{}
	if f.Action != "" {
		w.add("action = $%d", f.Action)
	}
	if f.UserID != "" {
		w.add("user_id = $%d", f.UserID)
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM audit_logs`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, email, action, ip, user_agent, metadata, created_at
		FROM audit_logs`+w.String()+`
		ORDER BY created_at DESC
		LIMIT `+w.arg(f.Page.Limit)+` OFFSET `+w.arg(f.Page.Offset()), w.args...)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()
	out := []entity.AuditLog{}
	for rows.Next() {
		var l entity.AuditLog
		var userID, email, ip, ua *string
		if err := rows.Scan(&l.ID, &userID, &email, &l.Action, &ip, &ua, &l.Metadata, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		l.UserID, l.Email, l.IP, l.UserAgent = deref(userID), deref(email), deref(ip), deref(ua)
		out = append(out, l)
	}
	return out, total, rows.Err()
}

// StatsRepository runs the grouped counts behind the admin dashboard.
type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) grouped(ctx context.Context, q string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, translate(err)
	}
	return countMap(rows)
}

func (r *StatsRepository) CountUsersByRole(ctx context.Context) (map[string]int, error) {
	return r.grouped(ctx, `SELECT role, count(*) FROM users WHERE deleted_at IS NULL GROUP BY role`)
}

func (r *StatsRepository) CountCompaniesByStatus(ctx context.Context) (map[string]int, error) {
	return r.grouped(ctx, `SELECT status, count(*) FROM companies WHERE deleted_at IS NULL GROUP BY status`)
}

func (r *StatsRepository) CountOffersByAdminStatus(ctx context.Context) (map[string]int, error) {
	return r.grouped(ctx, `SELECT admin_status, count(*) FROM job_offers WHERE deleted_at IS NULL GROUP BY admin_status`)
}

func (r *StatsRepository) CountApplicationsByStatus(ctx context.Context) (map[string]int, error) {
	return r.grouped(ctx, `SELECT status, count(*) FROM applications GROUP BY status`)
}

var (
	_ repository.ApplicationRepository  = (*ApplicationRepository)(nil)
	_ repository.NotificationRepository = (*NotificationRepository)(nil)
	_ repository.AuditRepository        = (*AuditRepository)(nil)
	_ repository.StatsRepository        = (*StatsRepository)(nil)
)
