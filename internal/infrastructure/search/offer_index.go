// Package search keeps job offers in an Elasticsearch index for full-text search.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/internal/domain/skills"
)

const requestTimeout = 3 * time.Second

const offersMapping = `{
  "settings": {
    "analysis": {
      "analyzer": {
        "folded": {"tokenizer": "standard", "filter": ["lowercase", "asciifolding"]}
      }
    }
  },
  "mappings": {
    "properties": {
      "title":         {"type": "text", "analyzer": "folded"},
      "description":   {"type": "text", "analyzer": "folded"},
      "company_name":  {"type": "text", "analyzer": "folded"},
      "skills":        {"type": "text", "analyzer": "folded", "fields": {"slug": {"type": "keyword"}}},
      "city":          {"type": "text", "analyzer": "folded", "fields": {"raw": {"type": "keyword"}}},
      "contract_type": {"type": "keyword"},
      "remote":        {"type": "boolean"},
      "source":        {"type": "keyword"},
      "published_at":  {"type": "date"}
    }
  }
}`

// Query is a full-text search request.
type Query struct {
	Text         string
	ContractType entity.ContractType
	City         string
	Remote       *bool
	From, Size   int
}

// OfferIndex indexes visible offers.
type OfferIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewOfferIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *OfferIndex {
	return &OfferIndex{es: es, index: index, logger: logger}
}

type offerDoc struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	CompanyName  string     `json:"company_name"`
	Skills       []string   `json:"skills"`
	City         string     `json:"city"`
	ContractType string     `json:"contract_type"`
	Remote       bool       `json:"remote"`
	Source       string     `json:"source"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

// EnsureIndex creates the index with its mapping when missing.
func (x *OfferIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(c, x.es)
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = esapi.IndicesCreateRequest{Index: x.index, Body: strings.NewReader(offersMapping)}.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %s", x.index, res.Status())
	}
	return nil
}

// Sync indexes a visible offer and removes any other one.
func (x *OfferIndex) Sync(ctx context.Context, o *entity.JobOffer) error {
	if o.IsVisible() {
		return x.Index(ctx, o)
	}
	return x.Delete(ctx, o.ID)
}

func (x *OfferIndex) Index(ctx context.Context, o *entity.JobOffer) error {
	doc := offerDoc{
		ID:           o.ID,
		Title:        o.Title,
		Description:  o.Description,
		CompanyName:  o.CompanyName,
		Skills:       o.SkillNames(),
		City:         o.City,
		ContractType: string(o.ContractType),
		Remote:       o.Remote,
		Source:       string(o.Source),
		PublishedAt:  o.PublishedAt,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.IndexRequest{Index: x.index, DocumentID: o.ID, Body: bytes.NewReader(b), Refresh: "false"}.Do(c, x.es)
	if err != nil {
		x.logger.WithError(err).WithField("offer_id", o.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		x.logger.WithField("status", res.Status()).WithField("offer_id", o.ID).Warn("es index response error")
		return fmt.Errorf("index offer %s: %s", o.ID, res.Status())
	}
	return nil
}

// Delete is a no-op for documents that were never indexed.
func (x *OfferIndex) Delete(ctx context.Context, id string) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: x.index, DocumentID: id}.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete offer %s: %s", id, res.Status())
	}
	return nil
}

// Search returns matching offer ids in relevance order and the total hit count.
func (x *OfferIndex) Search(ctx context.Context, q Query) ([]string, int, error) {
	body, err := json.Marshal(buildQuery(q))
	if err != nil {
		return nil, 0, err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(body)),
		x.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, 0, fmt.Errorf("search offers: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, parsed.Hits.Total.Value, nil
}

func buildQuery(q Query) map[string]any {
	must := []any{}
	if t := strings.TrimSpace(q.Text); t != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":     t,
				"fields":    []string{"title^3", "skills^2", "company_name", "description"},
				"fuzziness": "AUTO",
			},
		})
	} else {
		must = append(must, map[string]any{"match_all": map[string]any{}})
	}
	filter := []any{}
	if q.ContractType != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"contract_type": string(q.ContractType)}})
	}
	if q.Remote != nil {
		filter = append(filter, map[string]any{"term": map[string]any{"remote": *q.Remote}})
	}
	if q.City != "" {
		filter = append(filter, map[string]any{"match": map[string]any{"city": skills.Fold(q.City)}})
	}
	size := q.Size
	if size <= 0 {
		size = 20
	}
	return map[string]any{
		"from":    q.From,
		"size":    size,
		"_source": false,
		"query":   map[string]any{"bool": map[string]any{"must": must, "filter": filter}},
		"sort":    []any{"_score", map[string]any{"published_at": map[string]any{"order": "desc", "unmapped_type": "date"}}},
	}
}
