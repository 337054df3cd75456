package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oksasatya/careerboost/internal/domain/entity"
)

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	stats, err := f.admin.Dashboard(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := &DashboardStats{
		UsersByRole:          map[string]int{"CANDIDATE": 3, "RECRUITER": 1},
		CompaniesByStatus:    map[string]int{"PENDING": 1},
		OffersByAdminStatus:  map[string]int{"APPROVED": 2},
		ApplicationsByStatus: map[string]int{"PENDING": 4},
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
}

func TestReviewCompany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adm := f.user(t, "admin@example.com", entity.RoleAdmin)
	rec := f.user(t, "rec@example.com", entity.RoleRecruiter)
	c, err := f.company.Create(ctx, rec.ID, CompanyInput{Name: "Acme", Siret: "12345678901234"})
	if err != nil {
		t.Fatal(err)
	}
	admin := Admin{ID: adm.ID, Email: adm.Email}

	if _, err := f.admin.ReviewCompany(ctx, admin, c.ID, entity.CompanyRejected, " "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("reject without reason err = %v", err)
	}
	if _, err := f.admin.ReviewCompany(ctx, admin, c.ID, entity.CompanyPending, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("back to pending err = %v", err)
	}
	got, err := f.admin.ReviewCompany(ctx, admin, c.ID, entity.CompanyVerified, "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != entity.CompanyVerified {
		t.Errorf("status = %s", got.Status)
	}
	public, _, err := f.company.ListVerified(ctx, "", repoPage(1, 20))
	if err != nil || len(public) != 1 {
		t.Errorf("verified list = %v, %v", public, err)
	}
	notes := f.notifications.forUser(rec.ID)
	if len(notes) != 1 || notes[0].Type != entity.NotifyCompanyReviewed {
		t.Errorf("owner notifications = %+v", notes)
	}
	if diff := cmp.Diff([]string{AuditCompanyReview}, f.audit.actions()); diff != "" {
		t.Errorf("audit (-want +got):\n%s", diff)
	}
}

func TestModerateOffer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adm := f.user(t, "admin@example.com", entity.RoleAdmin)
	rec := f.user(t, "rec@example.com", entity.RoleRecruiter)
	company := f.verifiedCompany(t, rec.ID)
	o, err := f.recruiter.CreateOffer(ctx, rec.ID, OfferInput{
		CompanyID: company.ID, Title: "Dev", Description: "Python", Status: entity.OfferPublished,
	})
	if err != nil {
		t.Fatal(err)
	}
	admin := Admin{ID: adm.ID, Email: adm.Email}

	if _, err := f.catalogue.Get(ctx, o.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("pending offer should be hidden, err = %v", err)
	}
	if _, err := f.admin.ModerateOffer(ctx, admin, o.ID, entity.AdminFlagged, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("flag without reason err = %v", err)
	}
	if _, err := f.admin.ModerateOffer(ctx, admin, o.ID, entity.AdminApproved, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !f.index.has(o.ID) {
		t.Error("approved offer should be indexed")
	}
	if _, err := f.catalogue.Get(ctx, o.ID); err != nil {
		t.Fatalf("approved offer should be public: %v", err)
	}

	if _, err := f.admin.ModerateOffer(ctx, admin, o.ID, entity.AdminRejected, "duplicate"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if f.index.has(o.ID) {
		t.Error("rejected offer should leave the index")
	}
	if _, err := f.catalogue.Get(ctx, o.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cached copy should be invalidated, err = %v", err)
	}
	if n := len(f.notifications.forUser(rec.ID)); n != 2 {
		t.Errorf("creator notifications = %d, want 2", n)
	}
}

func TestSetUserActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adm := f.user(t, "admin@example.com", entity.RoleAdmin)
	admin := Admin{ID: adm.ID, Email: adm.Email}
	u, _, err := f.auth.Register(ctx, RegisterInput{Email: "c@example.com", Password: "secret123", Role: entity.RoleCandidate}, RequestMeta{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.admin.SetUserActive(ctx, admin, adm.ID, false); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("self deactivation err = %v", err)
	}
	got, err := f.admin.SetUserActive(ctx, admin, u.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.IsActive {
		t.Error("user still active")
	}
	if sess, _ := f.sessions.Get(ctx, u.ID); sess != nil {
		t.Error("session should be revoked")
	}
	if _, _, err := f.auth.Login(ctx, "c@example.com", "secret123", RequestMeta{}); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("login err = %v", err)
	}
}

func TestTriggerSyncDisabled(t *testing.T) {
	f := newFixture(t)
	if err := f.admin.TriggerSync(context.Background(), Admin{}); !errors.Is(err, ErrSyncDisabled) {
		t.Fatalf("err = %v, want ErrSyncDisabled", err)
	}
}

func TestAdminActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adm := f.user(t, "admin@example.com", entity.RoleAdmin)
	rec := f.user(t, "rec@example.com", entity.RoleRecruiter)

	got, err := f.admin.Actor(ctx, adm.ID, RequestMeta{IP: "10.0.0.1"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Admin{ID: adm.ID, Email: "admin@example.com", Meta: RequestMeta{IP: "10.0.0.1"}}, got); diff != "" {
		t.Errorf("actor (-want +got):\n%s", diff)
	}
	if _, err := f.admin.Actor(ctx, rec.ID, RequestMeta{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("recruiter actor err = %v, want ErrForbidden", err)
	}
}
