package application

import (
	"context"
	"testing"
	"time"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/matching"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/pkg/helpers"
)

// fixture wires every service over in-memory fakes.
type fixture struct {
	users         *fakeUsers
	candidates    *fakeCandidates
	companies     *fakeCompanies
	offers        *fakeOffers
	apps          *fakeApplications
	notifications *fakeNotifications
	audit         *fakeAudit
	sessions      *fakeSessions
	cache         *memCache
	index         *fakeIndex
	pub           *fakePublisher

	auth      *AuthService
	catalogue *OfferService
	notify    *NotificationService
	candidate *CandidateService
	company   *CompanyService
	recruiter *RecruiterService
	admin     *AdminService
	skills    *SkillService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	helpers.PasswordCost = 4
	log := quietLogger()
	f := &fixture{
		users:         newFakeUsers(),
		candidates:    newFakeCandidates(),
		companies:     newFakeCompanies(),
		offers:        newFakeOffers(),
		apps:          newFakeApplications(),
		notifications: &fakeNotifications{},
		audit:         &fakeAudit{},
		sessions:      newFakeSessions(),
		cache:         newMemCache(),
		index:         newFakeIndex(),
		pub:           &fakePublisher{},
	}
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	auditor := NewAuditor(f.audit, log)
	w := matching.DefaultWeights()

	f.auth = NewAuthService(f.users, f.candidates, jwt, f.sessions, time.Hour, auditor, log)
	f.catalogue = NewOfferService(f.offers, f.index, f.cache, log)
	f.notify = NewNotificationService(f.notifications, f.users, f.pub, "http://app.test", log)
	f.candidate = NewCandidateService(f.users, f.candidates, f.offers, f.apps, f.notify, w, log)
	f.company = NewCompanyService(f.companies, f.users, log)
	f.recruiter = NewRecruiterService(f.companies, f.offers, f.candidates, f.apps, f.catalogue, f.notify, w, log)
	f.admin = NewAdminService(f.users, f.companies, f.offers, fakeStats{}, f.audit, f.sessions, f.catalogue,
		f.notify, nil, auditor, log)
	f.skills = NewSkillService(&fakeSkills{}, f.cache, log)
	return f
}

func (f *fixture) user(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, FirstName: "Test", LastName: string(role), Role: role, IsActive: true}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// verifiedCompany creates a VERIFIED company owned by recruiterID.
func (f *fixture) verifiedCompany(t *testing.T, recruiterID string) *entity.Company {
	t.Helper()
	c := &entity.Company{Name: "Acme", Status: entity.CompanyVerified, CreatedBy: recruiterID}
	if err := f.companies.Create(context.Background(), c, recruiterID); err != nil {
		t.Fatalf("create company: %v", err)
	}
	return c
}

// visibleOffer stores a PUBLISHED and APPROVED offer authored by recruiterID.
func (f *fixture) visibleOffer(t *testing.T, recruiterID, companyID, title string, skills ...entity.OfferSkill) *entity.JobOffer {
	t.Helper()
	now := time.Now()
	o := &entity.JobOffer{
		CompanyID:    &companyID,
		CompanyName:  "Acme",
		Title:        title,
		Description:  "Poste de " + title,
		ContractType: entity.ContractCDI,
		City:         "Lyon",
		Status:       entity.OfferPublished,
		AdminStatus:  entity.AdminApproved,
		Source:       entity.SourceCareerBoost,
		CreatedBy:    &recruiterID,
		PublishedAt:  &now,
		Skills:       skills,
	}
	if err := f.offers.Create(context.Background(), o); err != nil {
		t.Fatalf("create offer: %v", err)
	}
	return o
}

func repoPage(page, limit int) repo.Page { return repo.NewPage(page, limit) }
