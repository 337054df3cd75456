package application

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	repo "github.com/oksasatya/careerboost/internal/domain/repository"
	"github.com/oksasatya/careerboost/internal/infrastructure/francetravail"
	"github.com/oksasatya/careerboost/internal/infrastructure/search"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var idSeq struct {
	sync.Mutex
	n int
}

func nextID(prefix string) string {
	idSeq.Lock()
	defer idSeq.Unlock()
	idSeq.n++
	return fmt.Sprintf("%s-%d", prefix, idSeq.n)
}

func paginate[T any](items []T, p repo.Page) []T {
	if p.Limit <= 0 {
		return items
	}
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+p.Limit, len(items))
	return items[start:end]
}

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*entity.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.byID {
		if strings.EqualFold(x.Email, u.Email) {
			return repo.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = nextID("user")
	}
	u.CreatedAt = time.Now()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) TouchLogin(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (f *fakeUsers) SetActive(_ context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeUsers) List(_ context.Context, fl repo.UserFilter) ([]entity.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.User
	for _, u := range f.byID {
		if fl.Role != "" && u.Role != fl.Role {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, fl.Page), len(out), nil
}

type fakeCandidates struct {
	mu       sync.Mutex
	profiles map[string]*entity.CandidateProfile
}

func newFakeCandidates() *fakeCandidates {
	return &fakeCandidates{profiles: map[string]*entity.CandidateProfile{}}
}

func (f *fakeCandidates) GetProfile(_ context.Context, userID string) (*entity.CandidateProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCandidates) UpsertProfile(_ context.Context, p *entity.CandidateProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.profiles[p.UserID] = &cp
	return nil
}

func (f *fakeCandidates) SetSkills(_ context.Context, userID string, skills []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Skills = skills
	return nil
}

type fakeCompanies struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
	members   []entity.CompanyMembership
}

func newFakeCompanies() *fakeCompanies { return &fakeCompanies{companies: map[string]*entity.Company{}} }

func (f *fakeCompanies) Create(_ context.Context, c *entity.Company, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = nextID("company")
	}
	cp := *c
	f.companies[c.ID] = &cp
	f.members = append(f.members, entity.CompanyMembership{CompanyID: c.ID, UserID: ownerID, Role: entity.MembershipOwner})
	return nil
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCompanies) Update(_ context.Context, c *entity.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.companies[c.ID] = &cp
	return nil
}

func (f *fakeCompanies) SetStatus(_ context.Context, id string, status entity.CompanyStatus, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[id]
	if !ok {
		return repo.ErrNotFound
	}
	c.Status, c.RejectionReason = status, reason
	return nil
}

func (f *fakeCompanies) List(_ context.Context, fl repo.CompanyFilter) ([]entity.Company, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Company
	for _, c := range f.companies {
		if fl.Status != "" && c.Status != fl.Status {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, fl.Page), len(out), nil
}

func (f *fakeCompanies) ListByMember(_ context.Context, userID string) ([]entity.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Company
	for _, m := range f.members {
		if m.UserID == userID {
			out = append(out, *f.companies[m.CompanyID])
		}
	}
	return out, nil
}

func (f *fakeCompanies) GetMembership(_ context.Context, companyID, userID string) (*entity.CompanyMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.CompanyID == companyID && m.UserID == userID {
			cp := m
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeCompanies) AddMember(_ context.Context, m entity.CompanyMembership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.members {
		if x.CompanyID == m.CompanyID && x.UserID == m.UserID {
			return repo.ErrDuplicate
		}
	}
	f.members = append(f.members, m)
	return nil
}

func (f *fakeCompanies) ListMembers(_ context.Context, companyID string) ([]entity.CompanyMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.CompanyMembership
	for _, m := range f.members {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeOffers struct {
	mu     sync.Mutex
	offers map[string]*entity.JobOffer
	order  []string
}

func newFakeOffers() *fakeOffers { return &fakeOffers{offers: map[string]*entity.JobOffer{}} }

func (f *fakeOffers) put(o *entity.JobOffer) {
	if o.ID == "" {
		o.ID = nextID("offer")
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	if _, ok := f.offers[o.ID]; !ok {
		f.order = append(f.order, o.ID)
	}
	cp := *o
	cp.Skills = append([]entity.OfferSkill(nil), o.Skills...)
	f.offers[o.ID] = &cp
}

func (f *fakeOffers) Create(_ context.Context, o *entity.JobOffer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.put(o)
	return nil
}

func (f *fakeOffers) GetByID(_ context.Context, id string) (*entity.JobOffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[id]
	if !ok || o.DeletedAt != nil {
		return nil, repo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOffers) Update(_ context.Context, o *entity.JobOffer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.offers[o.ID]; !ok {
		return repo.ErrNotFound
	}
	f.put(o)
	return nil
}

func (f *fakeOffers) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[id]
	if !ok || o.DeletedAt != nil {
		return repo.ErrNotFound
	}
	now := time.Now()
	o.DeletedAt = &now
	return nil
}

func (f *fakeOffers) List(_ context.Context, fl repo.OfferFilter) ([]entity.JobOffer, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.JobOffer
	for _, id := range f.order {
		o := f.offers[id]
		if o.DeletedAt != nil || (fl.VisibleOnly && !o.IsVisible()) {
			continue
		}
		if fl.CreatedBy != "" && (o.CreatedBy == nil || *o.CreatedBy != fl.CreatedBy) {
			continue
		}
		if fl.CompanyID != "" && (o.CompanyID == nil || *o.CompanyID != fl.CompanyID) {
			continue
		}
		if fl.AdminStatus != "" && o.AdminStatus != fl.AdminStatus {
			continue
		}
		if fl.Q != "" && !strings.Contains(strings.ToLower(o.Title), strings.ToLower(fl.Q)) {
			continue
		}
		out = append(out, *o)
	}
	return paginate(out, fl.Page), len(out), nil
}

func (f *fakeOffers) ListVisible(_ context.Context, limit int) ([]entity.JobOffer, error) {
	list, _, err := f.List(context.Background(), repo.OfferFilter{VisibleOnly: true})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, err
}

func (f *fakeOffers) ListVisibleByIDs(_ context.Context, ids []string) ([]entity.JobOffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.JobOffer
	for _, id := range ids {
		if o, ok := f.offers[id]; ok && o.IsVisible() {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOffers) SetStatus(_ context.Context, id string, status entity.OfferStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[id]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOffers) SetAdminStatus(_ context.Context, id string, status entity.AdminStatus, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[id]
	if !ok {
		return repo.ErrNotFound
	}
	o.AdminStatus, o.ModerationReason = status, reason
	return nil
}

func (f *fakeOffers) ReplaceSkills(_ context.Context, offerID string, skills []entity.OfferSkill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[offerID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Skills = skills
	return nil
}

func (f *fakeOffers) InsertImported(_ context.Context, o *entity.JobOffer) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.offers {
		if x.Source == o.Source && x.ExternalID == o.ExternalID {
			return false, nil
		}
	}
	f.put(o)
	return true, nil
}

type fakeApplications struct {
	mu     sync.Mutex
	apps   map[string]*entity.Application
	order  []string
	events []entity.ApplicationEvent
}

func newFakeApplications() *fakeApplications {
	return &fakeApplications{apps: map[string]*entity.Application{}}
}

func (f *fakeApplications) Create(_ context.Context, a *entity.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.apps {
		if x.OfferID == a.OfferID && x.CandidateID == a.CandidateID {
			return repo.ErrDuplicate
		}
	}
	a.ID = nextID("app")
	a.CreatedAt = time.Now()
	cp := *a
	f.apps[a.ID] = &cp
	f.order = append(f.order, a.ID)
	return nil
}

func (f *fakeApplications) GetByID(_ context.Context, id string) (*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApplications) ListByCandidate(_ context.Context, candidateID string, p repo.Page) ([]entity.Application, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Application
	for _, id := range f.order {
		if a := f.apps[id]; a.CandidateID == candidateID {
			out = append(out, *a)
		}
	}
	return paginate(out, p), len(out), nil
}

func (f *fakeApplications) ListByOffer(_ context.Context, offerID string) ([]entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Application
	for _, id := range f.order {
		if a := f.apps[id]; a.OfferID == offerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplications) UpdateStatus(_ context.Context, ev entity.ApplicationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[ev.ApplicationID]
	if !ok {
		return repo.ErrNotFound
	}
	if a.Status != ev.FromStatus {
		return repo.ErrConflict
	}
	a.Status = ev.ToStatus
	ev.ID = nextID("event")
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeApplications) ListEvents(_ context.Context, applicationID string) ([]entity.ApplicationEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.ApplicationEvent
	for _, e := range f.events {
		if e.ApplicationID == applicationID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeNotifications struct {
	mu    sync.Mutex
	items []entity.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = nextID("notif")
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeNotifications) List(_ context.Context, userID string, unreadOnly bool, p repo.Page) ([]entity.Notification, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Notification
	for _, n := range f.items {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return paginate(out, p), len(out), nil
}

func (f *fakeNotifications) CountUnread(_ context.Context, userID string) (int, error) {
	list, _, err := f.List(context.Background(), userID, true, repo.Page{})
	return len(list), err
}

func (f *fakeNotifications) MarkRead(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items[i].IsRead = true
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.items {
		if f.items[i].UserID == userID && !f.items[i].IsRead {
			f.items[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeNotifications) forUser(userID string) []entity.Notification {
	list, _, _ := f.List(context.Background(), userID, false, repo.Page{})
	return list
}

type fakeAudit struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func (f *fakeAudit) Insert(_ context.Context, l *entity.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, *l)
	return nil
}

func (f *fakeAudit) List(_ context.Context, fl repo.AuditFilter) ([]entity.AuditLog, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.AuditLog
	for _, l := range f.logs {
		if fl.Action == "" || l.Action == fl.Action {
			out = append(out, l)
		}
	}
	return paginate(out, fl.Page), len(out), nil
}

func (f *fakeAudit) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.logs))
	for _, l := range f.logs {
		out = append(out, l.Action)
	}
	return out
}

type fakeStats struct{}

func (fakeStats) CountUsersByRole(context.Context) (map[string]int, error) {
	return map[string]int{"CANDIDATE": 3, "RECRUITER": 1}, nil
}
func (fakeStats) CountCompaniesByStatus(context.Context) (map[string]int, error) {
	return map[string]int{"PENDING": 1}, nil
}
func (fakeStats) CountOffersByAdminStatus(context.Context) (map[string]int, error) {
	return map[string]int{"APPROVED": 2}, nil
}
func (fakeStats) CountApplicationsByStatus(context.Context) (map[string]int, error) {
	return map[string]int{"PENDING": 4}, nil
}

type fakeSkills struct {
	mu     sync.Mutex
	skills map[string]entity.Skill
	lists  int
}

func (f *fakeSkills) List(_ context.Context, q, category string) ([]entity.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	var out []entity.Skill
	for _, s := range f.skills {
		if category != "" && s.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(q)) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeSkills) GetBySlugs(_ context.Context, slugs []string) ([]entity.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Skill
	for _, slug := range slugs {
		if s, ok := f.skills[slug]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSkills) Upsert(_ context.Context, s *entity.Skill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.skills == nil {
		f.skills = map[string]entity.Skill{}
	}
	if s.ID == "" {
		s.ID = "skill-" + s.Slug
	}
	f.skills[s.Slug] = *s
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
}

func newFakeSessions() *fakeSessions { return &fakeSessions{sessions: map[string]entity.Session{}} }

func (f *fakeSessions) Save(_ context.Context, s entity.Session, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.UserID] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, userID string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessions) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, userID)
	return nil
}

// memCache stores values in memory without encoding them.
type memCache struct {
	mu    sync.Mutex
	items map[string]any
	hits  int
}

func newMemCache() *memCache { return &memCache{items: map[string]any{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return false, nil
	}
	c.hits++
	switch d := dest.(type) {
	case *entity.JobOffer:
		*d = v.(entity.JobOffer)
	case *[]entity.Skill:
		*d = v.([]entity.Skill)
	default:
		return false, fmt.Errorf("memCache: unsupported type %T", dest)
	}
	return true, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch x := v.(type) {
	case *entity.JobOffer:
		c.items[key] = *x
	default:
		c.items[key] = x
	}
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body)
	return nil
}

type fakeIndex struct {
	mu      sync.Mutex
	docs    map[string]bool
	hits    []string
	total   int
	err     error
	queries []search.Query
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]bool{}} }

func (x *fakeIndex) Sync(ctx context.Context, o *entity.JobOffer) error {
	if !o.IsVisible() {
		return x.Delete(ctx, o.ID)
	}
	return x.Index(ctx, o)
}

func (x *fakeIndex) Index(_ context.Context, o *entity.JobOffer) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.docs[o.ID] = true
	return nil
}

func (x *fakeIndex) Delete(_ context.Context, id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.docs, id)
	return nil
}

func (x *fakeIndex) Search(_ context.Context, q search.Query) ([]string, int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.queries = append(x.queries, q)
	return x.hits, x.total, x.err
}

func (x *fakeIndex) has(id string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.docs[id]
}

type fakeLocker struct {
	mu       sync.Mutex
	held     bool
	released int
}

func (l *fakeLocker) TryLock(_ context.Context, _ string, _ time.Duration) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return nil, false, nil
	}
	l.held = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.held = false
		l.released++
		return nil
	}, true, nil
}

type fakeArchiver struct {
	mu    sync.Mutex
	names []string
}

func (a *fakeArchiver) Archive(_ context.Context, name string, _ []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.names = append(a.names, name)
	return "gs://bucket/" + name, nil
}

// fakeSource serves pre-built pages keyed by query then first index.
type fakeSource struct {
	mu    sync.Mutex
	pages map[string]map[int]*francetravail.Page
	errs  map[string]error
	calls []string
	// block, when set, holds every search until it is closed
	block chan struct{}
}

func (s *fakeSource) Search(_ context.Context, p francetravail.SearchParams, first int) (*francetravail.Page, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fmt.Sprintf("%s@%d", p.Keywords, first))
	if err := s.errs[p.Keywords]; err != nil {
		return nil, err
	}
	page, ok := s.pages[p.Keywords][first]
	if !ok {
		return &francetravail.Page{First: first}, nil
	}
	return page, nil
}
