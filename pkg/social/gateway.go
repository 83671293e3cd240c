package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/internal/resilience"
)

// Option configures the gateway client.
type Option func(*GatewayClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *GatewayClient) {
		c.http = hc
	}
}

// WithRateLimit sets the requests-per-second limit toward the gateway.
func WithRateLimit(rps float64) Option {
	return func(c *GatewayClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithRetries sets the number of retry attempts after a failed request.
func WithRetries(n int) Option {
	return func(c *GatewayClient) {
		c.retry.MaxAttempts = n + 1
	}
}

// GatewayClient talks to a content-search gateway over HTTP. Request
// failures degrade to the offline client so the planner always gets
// candidates; the degradation is logged, never surfaced as an error.
type GatewayClient struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	retry    resilience.RetryConfig
	fallback *OfflineClient
}

// NewGatewayClient creates a client for the given gateway base URL.
func NewGatewayClient(baseURL string, opts ...Option) *GatewayClient {
	c := &GatewayClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter:  rate.NewLimiter(2, 1),
		retry:    resilience.RetryConfig{MaxAttempts: 2},
		fallback: NewOfflineClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Notes []Note `json:"notes"`
}

type postsResponse struct {
	Posts []Post `json:"posts"`
}

// SearchPOIs implements Client.
func (c *GatewayClient) SearchPOIs(ctx context.Context, keyword string, max int) ([]model.Candidate, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("limit", fmt.Sprint(max))

	var sr searchResponse
	if err := c.getJSON(ctx, "/search", q, &sr); err != nil {
		zap.L().Warn("social: gateway search failed, using offline data",
			zap.String("keyword", keyword),
			zap.Error(err),
		)
		return c.fallback.SearchPOIs(ctx, keyword, max)
	}

	var pois []model.Candidate
	for _, note := range sr.Notes {
		pois = append(pois, ExtractPOIs(note)...)
		if len(pois) >= max {
			pois = pois[:max]
			break
		}
	}
	return pois, nil
}

// RecentPosts implements Client.
func (c *GatewayClient) RecentPosts(ctx context.Context, poiName string, n int) ([]Post, error) {
	q := url.Values{}
	q.Set("poi", poiName)
	q.Set("limit", fmt.Sprint(n))

	var pr postsResponse
	if err := c.getJSON(ctx, "/posts", q, &pr); err != nil {
		zap.L().Warn("social: gateway posts fetch failed, using offline data",
			zap.String("poi", poiName),
			zap.Error(err),
		)
		return c.fallback.RecentPosts(ctx, poiName, n)
	}

	if len(pr.Posts) > n {
		pr.Posts = pr.Posts[:n]
	}
	return pr.Posts, nil
}

func (c *GatewayClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	body, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
		if err != nil {
			return nil, eris.Wrap(err, "social: build request")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "social: do request")
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "social: read response body")
		}

		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(
				eris.Errorf("social: status %d", resp.StatusCode), resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("social: status %d: %s", resp.StatusCode, string(data))
		}
		return data, nil
	})
	if err != nil {
		return err
	}
	return eris.Wrap(json.Unmarshal(body, out), "social: decode response")
}
