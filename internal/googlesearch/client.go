// Package googlesearch wraps the Google Custom Search API: credential
// validation, request spacing, and mapping of HTTP outcomes onto a small
// typed error taxonomy.
package googlesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	searchAPIURL = "https://www.googleapis.com/customsearch/v1"
	userAgent    = "strands-agent/1.0"

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 10 * time.Second

	// DefaultMinRequestInterval is the minimum spacing between two requests
	// issued through one client instance.
	DefaultMinRequestInterval = 100 * time.Millisecond

	minAPIKeyLength         = 20
	minSearchEngineIDLength = 10

	minQueryLength = 2
	maxQueryLength = 500
	maxResults     = 10
)

// HTTPClient is an interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Custom Search API. Requests issued through one
// instance are serialised and spaced by at least the configured interval,
// so callers that need independent pacing should use separate instances.
type Client struct {
	apiKey         string
	searchEngineID string
	baseURL        string
	httpClient     HTTPClient
	logger         *logrus.Logger

	// mu serialises limiter waits so back-to-back calls keep their order.
	mu      sync.Mutex
	limiter *rate.Limiter
}

// NewClient creates a Client with the default request interval. Credentials
// are validated immediately, before any network activity.
func NewClient(apiKey, searchEngineID string, logger *logrus.Logger) (*Client, error) {
	return NewClientWithInterval(apiKey, searchEngineID, DefaultMinRequestInterval, logger)
}

// NewClientWithInterval creates a Client with a custom minimum spacing
// between requests.
func NewClientWithInterval(apiKey, searchEngineID string, minInterval time.Duration, logger *logrus.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	searchEngineID = strings.TrimSpace(searchEngineID)

	if apiKey == "" {
		return nil, &ValidationError{Message: "Google API key is required and cannot be empty"}
	}
	if len(apiKey) < minAPIKeyLength {
		return nil, &ValidationError{Message: fmt.Sprintf("Google API key appears to be too short (minimum %d characters expected)", minAPIKeyLength)}
	}
	if searchEngineID == "" {
		return nil, &ValidationError{Message: "Search engine ID is required and cannot be empty"}
	}
	if len(searchEngineID) < minSearchEngineIDLength {
		return nil, &ValidationError{Message: fmt.Sprintf("Search engine ID appears to be too short (minimum %d characters expected)", minSearchEngineIDLength)}
	}
	if minInterval <= 0 {
		minInterval = DefaultMinRequestInterval
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Client{
		apiKey:         apiKey,
		searchEngineID: searchEngineID,
		baseURL:        searchAPIURL,
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		logger:         logger,
		limiter:        rate.NewLimiter(rate.Every(minInterval), 1),
	}, nil
}

// Search performs one search query and returns the provider's items in
// relevance order. An empty slice is a valid, non-error outcome.
func (c *Client) Search(ctx context.Context, query string, numResults int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Message: "search query cannot be empty or only whitespace"}
	}
	if len(query) < minQueryLength {
		return nil, &ValidationError{Message: fmt.Sprintf("search query must be at least %d characters long", minQueryLength)}
	}
	if len(query) > maxQueryLength {
		return nil, &ValidationError{Message: fmt.Sprintf("search query is too long (maximum %d characters)", maxQueryLength)}
	}
	if numResults < 1 || numResults > maxResults {
		return nil, &ValidationError{Message: fmt.Sprintf("number of results must be between 1 and %d", maxResults)}
	}

	// Space requests: all calls through this instance share one limiter, and
	// the mutex keeps waiters in arrival order.
	c.mu.Lock()
	err := c.limiter.Wait(ctx)
	c.mu.Unlock()
	if err != nil {
		return nil, &SearchError{Message: "search request cancelled while waiting for rate limiter", Err: err}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.searchEngineID)
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", numResults))

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &SearchError{Message: fmt.Sprintf("failed to create search request: %v", err), Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.WithField("query", query).Debug("Dispatching Custom Search API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WithError(closeErr).Warn("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SearchError{Message: "failed to read search response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, mapStatusError(resp.StatusCode, body)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &SearchError{Message: "failed to parse search response", Err: err}
	}

	// Google occasionally reports errors inside a 200 body.
	if parsed.Error != nil {
		msg := parsed.Error.Message
		if msg == "" {
			msg = "Unknown API error"
		}
		return nil, &SearchError{Message: fmt.Sprintf("API error: %s", msg)}
	}

	results := make([]SearchResult, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		// A completely empty item is malformed; skip it rather than failing
		// the whole call.
		if item.Title == "" && item.Snippet == "" && item.Link == "" {
			continue
		}

		title := item.Title
		if title == "" {
			title = "No title"
		}
		snippet := item.Snippet
		if snippet == "" {
			snippet = "No description available"
		}

		results = append(results, SearchResult{
			Title:   title,
			Snippet: snippet,
			URL:     item.Link,
		})
	}

	c.logger.WithFields(logrus.Fields{
		"query":        query,
		"result_count": len(results),
	}).Debug("Search completed successfully")

	return results, nil
}

// TestConnection issues a minimal search to validate the configured
// credentials. It reports success or failure without surfacing the error.
func (c *Client) TestConnection(ctx context.Context) bool {
	if _, err := c.Search(ctx, "test", 1); err != nil {
		c.logger.WithError(err).Warn("API connection test failed")
		return false
	}
	c.logger.Info("API connection test successful")
	return true
}

// mapTransportError converts a network-level failure into a SearchError with
// a user-facing connectivity message.
func mapTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &SearchError{Message: "Search request timed out. Please try again.", Err: err}
	}
	return &SearchError{Message: "Network connection error. Please check your internet connection.", Err: err}
}

// mapStatusError converts a non-200 status into the typed error taxonomy.
func mapStatusError(status int, body []byte) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Message: "Search API rate limit exceeded. Please wait a moment before trying again."}

	case status == http.StatusForbidden:
		return mapForbidden(body)

	case status == http.StatusBadRequest:
		if msg := parseErrorMessage(body); msg != "" {
			return &SearchError{Message: fmt.Sprintf("Invalid search request: %s", msg)}
		}
		return &SearchError{Message: "Invalid search request. Please check your search parameters."}

	case status == http.StatusNotFound:
		return &SearchError{Message: "Search service not found. Please verify your search engine ID."}

	case status >= http.StatusInternalServerError:
		return &SearchError{Message: "Google Search service is temporarily unavailable. Please try again later."}

	default:
		return &SearchError{Message: fmt.Sprintf("Search request failed with status %d. Please try again.", status)}
	}
}

// mapForbidden distinguishes quota exhaustion from credential problems using
// the error reason Google includes in 403 bodies.
func mapForbidden(body []byte) error {
	reason := parseErrorReason(body)
	lower := strings.ToLower(reason)

	switch {
	case reason == "":
		return &SearchError{Message: "Access forbidden. Please verify your API credentials and permissions."}
	case strings.Contains(lower, "quota") || strings.Contains(lower, "limit"):
		return &RateLimitError{Message: "Daily search quota exceeded. Please try again tomorrow or check your API usage limits."}
	case strings.Contains(lower, "credentials") || strings.Contains(lower, "key"):
		return &SearchError{Message: "Invalid API credentials. Please check your Google API key and search engine ID."}
	case strings.Contains(lower, "disabled"):
		return &SearchError{Message: "Search API is disabled for this project. Please enable the Custom Search API in Google Cloud Console."}
	default:
		return &SearchError{Message: fmt.Sprintf("Access forbidden: %s. Please check your API configuration.", reason)}
	}
}

func parseErrorReason(body []byte) string {
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.Error.reason()
}

func parseErrorMessage(body []byte) string {
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == nil {
		return ""
	}
	return parsed.Error.Message
}
