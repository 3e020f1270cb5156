package history

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/errgroup"
)

// HTTPQuerier fetches per-parameter series from the historical-data
// service over REST. Whole query results are cached briefly so the
// 30s chart refresh does not hammer the backend when several charts
// share parameters.
type HTTPQuerier struct {
	BaseURL string
	Client  *http.Client

	once  sync.Once
	cache *ttlcache.Cache[string, map[string][]Sample]
}

func NewHTTPQuerier(baseURL string) *HTTPQuerier {
	return &HTTPQuerier{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (h *HTTPQuerier) init() {
	h.cache = ttlcache.New[string, map[string][]Sample](
		ttlcache.WithTTL[string, map[string][]Sample](30 * time.Second),
	)
	if h.Client == nil {
		h.Client = &http.Client{Timeout: 15 * time.Second}
	}
}

func (q Query) cacheKey() string {
	var b strings.Builder
	b.WriteString(q.SiteID)
	b.WriteByte('|')
	b.WriteString(q.Start.UTC().Format(time.RFC3339))
	b.WriteByte('|')
	b.WriteString(q.End.UTC().Format(time.RFC3339))
	b.WriteByte('|')
	b.WriteString(string(q.Aggregation))
	for _, p := range q.Parameters {
		b.WriteByte('|')
		b.WriteString(p.Key())
	}
	return b.String()
}

// Query fetches every parameter concurrently and returns the series
// keyed by Parameter.Key. Transient failures are retried; a failure
// after retries fails the whole query so the widget can show its
// inline error state.
func (h *HTTPQuerier) Query(ctx context.Context, q Query) (map[string][]Sample, error) {
	h.once.Do(h.init)

	key := q.cacheKey()
	if itm := h.cache.Get(key); itm != nil {
		return itm.Value(), nil
	}

	var mu sync.Mutex
	out := make(map[string][]Sample, len(q.Parameters))

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range q.Parameters {
		p := p
		g.Go(func() error {
			samples, err := h.fetchParameter(gctx, q, p)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", p.Key(), err)
			}
			mu.Lock()
			out[p.Key()] = samples
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	h.cache.Set(key, out, ttlcache.DefaultTTL)
	return out, nil
}

func (h *HTTPQuerier) fetchParameter(ctx context.Context, q Query, p Parameter) ([]Sample, error) {
	vals := url.Values{}
	vals.Set("site", q.SiteID)
	vals.Set("device", p.DeviceID)
	vals.Set("register", p.Register)
	vals.Set("start", q.Start.UTC().Format(time.RFC3339))
	vals.Set("end", q.End.UTC().Format(time.RFC3339))
	vals.Set("aggregation", string(q.Aggregation))
	endpoint := h.BaseURL + "/history?" + vals.Encode()

	var samples []Sample
	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		resp, err := h.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("history responded %s", resp.Status)
		}
		samples = samples[:0]
		if err := json.NewDecoder(resp.Body).Decode(&samples); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		return nil
	},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.Context(ctx),
	)
	return samples, err
}
