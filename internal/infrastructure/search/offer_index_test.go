package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/domain/entity"
)

type recorded struct {
	method, path, body string
}

func newTestIndex(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*OfferIndex, *[]recorded) {
	t.Helper()
	var mu sync.Mutex
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recorded{r.Method, r.URL.Path, string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatal(err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewOfferIndex(es, "job_offers", logger), &calls
}

func TestIndexAndDelete(t *testing.T) {
	x, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	now := time.Now()
	o := &entity.JobOffer{
		ID: "o1", Title: "Dev Go", Status: entity.OfferPublished, AdminStatus: entity.AdminApproved,
		PublishedAt: &now, Skills: []entity.OfferSkill{{Name: "Go"}},
	}
	if err := x.Sync(context.Background(), o); err != nil {
		t.Fatalf("Sync(visible): %v", err)
	}
	o.AdminStatus = entity.AdminFlagged
	if err := x.Sync(context.Background(), o); err != nil {
		t.Fatalf("Sync(hidden) should tolerate 404: %v", err)
	}

	if len(*calls) != 2 {
		t.Fatalf("calls = %+v", *calls)
	}
	first := (*calls)[0]
	if first.method != http.MethodPut || first.path != "/job_offers/_doc/o1" {
		t.Fatalf("index call = %s %s", first.method, first.path)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(first.body), &doc); err != nil {
		t.Fatal(err)
	}
	if doc["title"] != "Dev Go" {
		t.Fatalf("doc = %v", doc)
	}
	if second := (*calls)[1]; second.method != http.MethodDelete {
		t.Fatalf("expected delete, got %s", second.method)
	}
}

func TestSearch(t *testing.T) {
	x, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":42},"hits":[{"_id":"b"},{"_id":"a"}]}}`))
	})
	remote := true
	ids, total, err := x.Search(context.Background(), Query{Text: "golang", Remote: &remote, Size: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 42 {
		t.Fatalf("total = %d", total)
	}
	if diff := cmp.Diff([]string{"b", "a"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	call := (*calls)[0]
	if !strings.HasSuffix(call.path, "/job_offers/_search") {
		t.Fatalf("path = %s", call.path)
	}
	if !strings.Contains(call.body, `"multi_match"`) || !strings.Contains(call.body, `"remote":true`) {
		t.Fatalf("unexpected query body %s", call.body)
	}
}

func TestBuildQueryMatchAll(t *testing.T) {
	q := buildQuery(Query{})
	if q["size"] != 20 {
		t.Fatalf("default size = %v", q["size"])
	}
	b, _ := json.Marshal(q)
	if !strings.Contains(string(b), "match_all") {
		t.Fatalf("empty text should match all: %s", b)
	}
}
