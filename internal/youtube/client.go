// Package youtube talks to the YouTube Data API and the search suggestion endpoint.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/mmcdole/tubes/internal/domain"
)

const (
	DefaultBaseURL           = "https://www.googleapis.com/youtube/v3"
	DefaultRequestsPerSecond = 5
	DefaultTimeout           = 10 * time.Second

	// maxIDsPerRequest is the provider's limit on comma-joined ids
	maxIDsPerRequest = 50
)

// Options configures a Client
type Options struct {
	BaseURL           string
	APIKey            string
	RequestsPerSecond float64 // <= 0 uses DefaultRequestsPerSecond
	Timeout           time.Duration
	HTTPClient        *http.Client
}

// Client is a thin read-only client for the Data API.
// Requests are paced by a token bucket but never retried.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	svc     *yt.Service
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a client, filling unset options with defaults
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")

	// The generated service resolves "youtube/v3/..." against the API root.
	// option.WithAPIKey is ignored next to a custom HTTP client, so call
	// sends the key per request.
	svc, err := yt.NewService(context.Background(),
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(strings.TrimSuffix(baseURL, "/youtube/v3")+"/"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  opts.APIKey,
		http:    httpClient,
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		logger:  logger,
	}, nil
}

// call runs one generated API request with the key, pacing and error
// classification shared with Get
func call[T any](ctx context.Context, c *Client, name string, do func(...googleapi.CallOption) (T, error)) (T, error) {
	var zero T
	if c.apiKey == "" {
		return zero, domain.ErrAPIKeyMissing
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := do(googleapi.QueryParameter("key", c.apiKey))
	c.logger.Debug("api request", "call", name, "duration", time.Since(start), "error", err)
	if err != nil {
		return zero, wrapError(ctx, err)
	}
	return resp, nil
}

// wrapError maps a failed request onto the domain errors
func wrapError(ctx context.Context, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return classify(err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%w: %v", domain.ErrProviderOffline, err)
	}
	return err
}

// Get issues GET baseURL/path?params&key=... and decodes the JSON body into dest.
// Non-2xx responses become a *googleapi.Error carrying the provider's message.
func (c *Client) Get(ctx context.Context, path string, params url.Values, dest any) error {
	if c.apiKey == "" {
		return domain.ErrAPIKeyMissing
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("key", c.apiKey)

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/") + "?" + q.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", domain.ErrProviderOffline, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if err := googleapi.CheckResponse(resp); err != nil {
		return classify(err)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// classify wraps quota rejections so callers can test with errors.Is
func classify(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	if gerr.Code == http.StatusForbidden {
		for _, item := range gerr.Errors {
			switch item.Reason {
			case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
				return fmt.Errorf("%w: %s", domain.ErrQuotaExceeded, gerr.Message)
			}
		}
	}
	return err
}

// ErrorMessage returns the provider's human-readable message for err if it has one
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	return err.Error()
}
