package youtube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/mmcdole/tubes/internal/domain"
)

const DefaultSuggestURL = "https://suggestqueries.google.com/complete/search"

// SuggestClient fetches search-as-you-type completions. It needs no credentials.
type SuggestClient struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// NewSuggestClient creates a suggestion client. Empty endpoint uses DefaultSuggestURL.
func NewSuggestClient(endpoint string, httpClient *http.Client, logger *slog.Logger) *SuggestClient {
	if endpoint == "" {
		endpoint = DefaultSuggestURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestClient{endpoint: endpoint, http: httpClient, logger: logger}
}

// Suggest returns completions for query in provider order.
// The body is a JSON array whose second element is the list of suggestions.
func (s *SuggestClient) Suggest(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("client", "firefox")
	params.Set("ds", "yt")
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderOffline, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggest request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestions: %w", err)
	}

	return parseSuggestions(body)
}

func parseSuggestions(body []byte) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, domain.ErrSuggestionFormat
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, domain.ErrSuggestionFormat
	}
	list := root.Get("1")
	if !list.IsArray() {
		return nil, domain.ErrSuggestionFormat
	}

	var out []string
	list.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String && item.Str != "" {
			out = append(out, item.Str)
		}
		return true
	})
	return out, nil
}

var _ domain.SuggestionSource = (*SuggestClient)(nil)
