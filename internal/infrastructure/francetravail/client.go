// Package francetravail is a client for the France Travail "Offres d'emploi v2" search API.
package francetravail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	// MaxPageSize is the widest range the API accepts in one call.
	MaxPageSize = 150
	// MaxFirstIndex is the highest first index of a range.
	MaxFirstIndex = 3000
)

var (
	ErrRangeExceeded = errors.New("france travail: range beyond first index limit")
	ErrUnauthorized  = errors.New("france travail: unauthorized")
)

// Config configures the client. Scope is space separated.
type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scope        string
	PageSize     int
	RPS          float64
	MaxRetries   int
	// HTTPClient is used for both token and API calls when set.
	HTTPClient *http.Client
}

type Client struct {
	http       *http.Client
	baseURL    string
	pageSize   int
	maxRetries int
	backoff    time.Duration
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

func New(ctx context.Context, cfg Config, logger *logrus.Logger) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       strings.Fields(cfg.Scope),
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 20 * time.Second}
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	hc := cc.Client(ctx)
	hc.Timeout = base.Timeout

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = 3
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	return &Client{
		http:       hc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		pageSize:   pageSize,
		maxRetries: retries,
		backoff:    500 * time.Millisecond,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

func (c *Client) PageSize() int { return c.pageSize }

// SearchParams are the query filters forwarded to /offres/search.
type SearchParams struct {
	Keywords    string
	Departement string
	MinCreated  time.Time
}

// Page is one slice of search results. Raw is the response body as received.
type Page struct {
	Offers []Offer
	Raw    []byte
	First  int
	Last   int
	Total  int
}

// HasMore reports whether another range can still be requested.
func (p *Page) HasMore() bool {
	return len(p.Offers) > 0 && p.Last+1 < p.Total && p.Last+1 <= MaxFirstIndex
}

// Search fetches the range starting at first.
func (c *Client) Search(ctx context.Context, p SearchParams, first int) (*Page, error) {
	if first > MaxFirstIndex {
		return nil, ErrRangeExceeded
	}
	last := first + c.pageSize - 1

	q := url.Values{}
	q.Set("range", fmt.Sprintf("%d-%d", first, last))
	if p.Keywords != "" {
		q.Set("motsCles", p.Keywords)
	}
	if p.Departement != "" {
		q.Set("departement", p.Departement)
	}
	if !p.MinCreated.IsZero() {
		q.Set("minCreationDate", p.MinCreated.UTC().Format("2006-01-02T15:04:05Z"))
		q.Set("maxCreationDate", time.Now().UTC().Format("2006-01-02T15:04:05Z"))
	}
	endpoint := c.baseURL + "/offres/search?" + q.Encode()

	resp, body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	page := &Page{First: first, Last: last, Raw: body}
	if resp.StatusCode == http.StatusNoContent || len(body) == 0 {
		return page, nil
	}
	var parsed struct {
		Resultats []Offer `json:"resultats"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("france travail: decode search: %w", err)
	}
	page.Offers = parsed.Resultats
	if f, l, total, ok := parseContentRange(resp.Header.Get("Content-Range")); ok {
		page.First, page.Last, page.Total = f, l, total
	} else {
		page.Last = first + len(parsed.Resultats) - 1
		page.Total = first + len(parsed.Resultats)
	}
	return page, nil
}

// get performs a throttled GET, retrying 429 and 5xx with linear backoff.
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, []byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * c.backoff
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			continue
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusPartialContent,
			resp.StatusCode == http.StatusNoContent:
			return resp, body, nil
		case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
			return nil, nil, fmt.Errorf("%w: %s", ErrUnauthorized, resp.Status)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("france travail: %s", resp.Status)
			c.logger.WithField("status", resp.StatusCode).WithField("attempt", attempt+1).Warn("france travail request retry")
			continue
		default:
			return nil, nil, fmt.Errorf("france travail: unexpected status %s: %s", resp.Status, truncate(body, 200))
		}
	}
	return nil, nil, fmt.Errorf("france travail: after %d attempts: %w", c.maxRetries, lastErr)
}

var contentRangeRe = regexp.MustCompile(`(\d+)-(\d+)/(\d+)`)

// parseContentRange reads headers like "offres 0-149/3624".
func parseContentRange(h string) (first, last, total int, ok bool) {
	m := contentRangeRe.FindStringSubmatch(h)
	if m == nil {
		return 0, 0, 0, false
	}
	first, _ = strconv.Atoi(m[1])
	last, _ = strconv.Atoi(m[2])
	total, _ = strconv.Atoi(m[3])
	return first, last, total, true
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
