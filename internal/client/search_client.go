// internal/client/search_client.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"reddit-search-mcp/internal/config"
	"reddit-search-mcp/pkg/utils"
)

const maxErrorBody = 512

// SearchClient talks to the ScrapeCreators Reddit search endpoint.
type SearchClient struct {
	client  *utils.RetryableClient
	apiKey  string
	baseURL string
	logger  *zap.Logger
}

func NewSearchClient(cfg *config.Config, logger *zap.Logger) (*SearchClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("search base URL is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient, err := utils.NewRetryableClient(utils.ClientOptions{
		ProxyURLs:      cfg.ProxyURLs,
		MaxRetries:     cfg.MaxRetries,
		Backoff:        cfg.RetryBackoff,
		UserAgent:      cfg.UserAgent,
		Timeout:        cfg.RequestTimeout,
		TLSFingerprint: cfg.TLSFingerprint,
		Logger:         logger.Named("http"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &SearchClient{
		client:  httpClient,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: cfg.BaseURL,
		logger:  logger,
	}, nil
}

// GetSearchURL renders the request URL for params. params must be valid.
func (c *SearchClient) GetSearchURL(params SearchParams) string {
	sort, _ := ParseSort(params.Sort)
	timeframe, _ := ParseTimeframe(params.Timeframe)

	values := url.Values{}
	values.Set("query", BuildQuery(params.Query, params.Modifiers))
	values.Set("sort", string(sort))
	values.Set("timeframe", string(timeframe))
	if params.After != "" {
		values.Set("after", params.After)
	}

	return c.baseURL + "?" + values.Encode()
}

// Search fetches one page of results. Parameters are validated before any
// network traffic; the returned body is guaranteed to be valid JSON.
func (c *SearchClient) Search(ctx context.Context, params SearchParams) (json.RawMessage, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: Reddit API key not found. Please set REDDIT_API_KEY environment variable or create a .env.local file", ErrAuthentication)
	}

	apiURL := c.GetSearchURL(params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("performing reddit search", zap.Stringer("params", params))

	resp, body, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to the API: %w", ErrConnection, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: invalid API key (status %d)", ErrAuthentication, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if !gjson.ValidBytes(body) {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    "response body is not valid JSON",
			Err:        ErrMalformedResponse,
		}
	}

	return body, nil
}

// errorMessage prefers the message field of a JSON error body and falls
// back to the raw body.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		res := gjson.GetManyBytes(body, "message", "error.message", "error", "detail")
		for _, r := range res {
			if r.Type == gjson.String && r.Str != "" {
				return truncate(r.Str, maxErrorBody)
			}
		}
	}
	return truncate(strings.TrimSpace(string(body)), maxErrorBody)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
