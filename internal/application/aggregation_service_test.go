package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/infrastructure/francetravail"
)

func ftOffer(id, title, desc string) francetravail.Offer {
	return francetravail.Offer{
		ID:           id,
		Intitule:     title,
		Description:  desc,
		DateCreation: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		LieuTravail:  francetravail.Lieu{Libelle: "69 - Lyon 3e", Latitude: 45.76, Longitude: 4.85},
		Entreprise:   francetravail.Entreprise{Nom: "Acme"},
		TypeContrat:  "CDD",
	}
}

func TestToJobOffer(t *testing.T) {
	src := ftOffer("123ABC", "Développeur Python (H/F)", "Télétravail partiel. Python et SQL requis.")
	src.ExperienceLibelle = "2 An(s)"
	src.Competences = []francetravail.Competence{
		{Libelle: "Utiliser Docker", Exigence: "S"},
		{Libelle: "Maîtrise de Python", Exigence: "E"},
	}

	o := ToJobOffer(&src)
	if o.Source != entity.SourceFranceTravail || o.ExternalID != "123ABC" {
		t.Errorf("source fields = %s/%s", o.Source, o.ExternalID)
	}
	if !o.IsVisible() {
		t.Error("imported offers are published and approved")
	}
	if o.ContractType != entity.ContractCDD || o.City != "Lyon 3e" || o.ExperienceMinYears != 2 {
		t.Errorf("unexpected mapping %+v", o)
	}
	if !o.Remote || !o.HasLocation() {
		t.Errorf("remote=%v location=%v", o.Remote, o.HasLocation())
	}
	got := map[string]bool{}
	for _, s := range o.Skills {
		got[s.Name] = s.IsRequired
	}
	if diff := cmp.Diff(map[string]bool{"Python": true, "SQL": true, "Docker": false}, got); diff != "" {
		t.Errorf("skills (-want +got):\n%s", diff)
	}
}

func TestAggregationRun(t *testing.T) {
	offers := newFakeOffers()
	index := newFakeIndex()
	archive := &fakeArchiver{}
	lock := &fakeLocker{}
	source := &fakeSource{
		pages: map[string]map[int]*francetravail.Page{
			"developpeur": {
				0: {Offers: []francetravail.Offer{ftOffer("A", "Dev Go", "Go"), ftOffer("B", "Dev Java", "Java")}, Raw: []byte(`{}`), First: 0, Last: 1, Total: 3},
				2: {Offers: []francetravail.Offer{ftOffer("C", "Dev PHP", "PHP")}, Raw: []byte(`{}`), First: 2, Last: 2, Total: 3},
			},
			"data": {
				0: {Offers: []francetravail.Offer{ftOffer("B", "Dev Java", "Java"), ftOffer("D", "Data engineer", "Spark")}, Raw: []byte(`{}`), First: 0, Last: 1, Total: 2},
			},
		},
		errs: map[string]error{"broken": errors.New("boom")},
	}
	svc := NewAggregationService(source, offers, index, archive, lock, []string{"developpeur", "data", "broken"}, 5, quietLogger())

	// one listing already stored by a previous run
	if _, err := offers.InsertImported(context.Background(), ToJobOffer(&francetravail.Offer{ID: "D", Intitule: "old"})); err != nil {
		t.Fatal(err)
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	report.Duration = 0
	want := SyncReport{Fetched: 5, Inserted: 3, Duplicates: 2, Failed: 1, Archived: 3}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"developpeur@0", "developpeur@2", "data@0", "broken@0"}, source.calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
	if len(index.docs) != 3 {
		t.Errorf("indexed %d offers, want 3", len(index.docs))
	}
	if lock.held || lock.released != 1 {
		t.Errorf("lock held=%v released=%d", lock.held, lock.released)
	}
}

func TestAggregationLockAndDisabled(t *testing.T) {
	lock := &fakeLocker{held: true}
	svc := NewAggregationService(&fakeSource{}, newFakeOffers(), nil, nil, lock, []string{"dev"}, 1, quietLogger())
	if _, err := svc.Run(context.Background()); !errors.Is(err, ErrSyncRunning) {
		t.Errorf("locked run err = %v, want ErrSyncRunning", err)
	}

	disabled := NewAggregationService(nil, newFakeOffers(), nil, nil, nil, []string{"dev"}, 1, quietLogger())
	if _, err := disabled.Run(context.Background()); !errors.Is(err, ErrSyncDisabled) {
		t.Errorf("disabled run err = %v", err)
	}
	if err := disabled.Trigger(context.Background()); !errors.Is(err, ErrSyncDisabled) {
		t.Errorf("disabled trigger err = %v", err)
	}
}

func TestAggregationMaxPages(t *testing.T) {
	source := &fakeSource{pages: map[string]map[int]*francetravail.Page{
		"dev": {
			0: {Offers: []francetravail.Offer{ftOffer("A", "Dev", "")}, First: 0, Last: 0, Total: 10},
			1: {Offers: []francetravail.Offer{ftOffer("B", "Dev", "")}, First: 1, Last: 1, Total: 10},
		},
	}}
	svc := NewAggregationService(source, newFakeOffers(), nil, nil, nil, []string{"dev"}, 2, quietLogger())
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Inserted != 2 || len(source.calls) != 2 {
		t.Errorf("inserted=%d calls=%v", report.Inserted, source.calls)
	}
}

func TestTriggerRejectsConcurrentRun(t *testing.T) {
	source := &fakeSource{block: make(chan struct{})}
	svc := NewAggregationService(source, newFakeOffers(), nil, nil, nil, []string{"dev"}, 1, quietLogger())

	if err := svc.Trigger(context.Background()); err != nil {
		t.Fatalf("first trigger: %v", err)
	}
	if err := svc.Trigger(context.Background()); !errors.Is(err, ErrSyncRunning) {
		t.Errorf("second trigger err = %v, want ErrSyncRunning", err)
	}
	if _, err := svc.Run(context.Background()); !errors.Is(err, ErrSyncRunning) {
		t.Errorf("run during trigger err = %v, want ErrSyncRunning", err)
	}

	close(source.block)
	deadline := time.Now().Add(2 * time.Second)
	for svc.running.Load() {
		if time.Now().After(deadline) {
			t.Fatal("triggered run never finished")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if err := svc.Trigger(context.Background()); err != nil {
		t.Errorf("trigger after completion: %v", err)
	}
}
