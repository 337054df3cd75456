package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/repository"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, repository.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), repository.ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "applications_offer_id_candidate_id_key"}, repository.ErrDuplicate},
		{"bad uuid", &pgconn.PgError{Code: "22P02"}, repository.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("translate = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("translate = %v, want %v", got, tt.want)
			}
		})
	}

	bad := translate(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`})
	if diff := cmp.Diff(repository.ErrNotFound.Error(), bad.Error()); diff != "" {
		t.Errorf("not-found message (-want +got):\n%s", diff)
	}

	other := errors.New("boom")
	if got := translate(other); got != other {
		t.Fatalf("unrelated errors must pass through, got %v", got)
	}
}

func TestWhereBuilder(t *testing.T) {
	w := &where{}
	if w.String() != "" {
		t.Fatalf("empty where = %q", w.String())
	}
	w.raw("deleted_at IS NULL")
	w.add("role = $%d", "ADMIN")
	w.add("(email ILIKE $%[1]d OR first_name ILIKE $%[1]d)", contains("ann"))
	limit := w.arg(20)

	want := " WHERE deleted_at IS NULL AND role = $1 AND (email ILIKE $2 OR first_name ILIKE $2)"
	if got := w.String(); got != want {
		t.Fatalf("String() =\n%q\nwant\n%q", got, want)
	}
	if limit != "$3" {
		t.Fatalf("limit placeholder = %q", limit)
	}
	if diff := cmp.Diff([]any{"ADMIN", "%ann%", 20}, w.args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestContainsEscapes(t *testing.T) {
	if got := contains(" 100%_dev "); got != `%100\%\_dev%` {
		t.Fatalf("contains = %q", got)
	}
}

func TestOfferWhere(t *testing.T) {
	remote := true
	w := offerWhere(repository.OfferFilter{VisibleOnly: true, City: "Lyon", Remote: &remote, Skill: "go"})
	if len(w.args) != 3 {
		t.Fatalf("args = %v", w.args)
	}
	if len(w.conds) != 4 {
		t.Fatalf("conds = %v", w.conds)
	}
	if w.conds[0] != visibleCond {
		t.Fatalf("first condition should restrict to visible offers, got %q", w.conds[0])
	}
}

// batchTx records the batch sent through a transaction.
type batchTx struct {
	pgx.Tx
	batch *pgx.Batch
}

func (t *batchTx) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	t.batch = b
	return closedResults{}
}

type closedResults struct{ pgx.BatchResults }

func (closedResults) Close() error { return nil }

func TestWriteSkillsCreatesUnknownSkills(t *testing.T) {
	tx := &batchTx{}
	skills := []entity.OfferSkill{
		{Name: "Go", Slug: "go", IsRequired: true},
		{Slug: "kubernetes"},
		{Name: "no slug"},
	}
	if err := writeSkills(context.Background(), tx, "offer-1", skills); err != nil {
		t.Fatal(err)
	}
	if tx.batch == nil || tx.batch.Len() != 2 {
		t.Fatalf("queued %v, want 2 statements", tx.batch)
	}
	var got [][]any
	for _, q := range tx.batch.QueuedQueries {
		if !strings.Contains(q.SQL, "INSERT INTO skills") || !strings.Contains(q.SQL, "INSERT INTO job_offer_skills") {
			t.Errorf("statement does not register the skill before linking it:\n%s", q.SQL)
		}
		got = append(got, q.Arguments)
	}
	want := [][]any{
		{"offer-1", "go", true, 0.0, "Go"},
		{"offer-1", "kubernetes", false, 0.0, "kubernetes"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("arguments (-want +got):\n%s", diff)
	}

	empty := &batchTx{}
	if err := writeSkills(context.Background(), empty, "offer-1", nil); err != nil || empty.batch != nil {
		t.Errorf("no skills should send nothing, batch=%v err=%v", empty.batch, err)
	}
}
