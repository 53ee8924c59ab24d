package shopware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
	"github.com/custodia-labs/shopctl/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// PageLimit is the page size of the pagination loops.
	PageLimit = 100
)

// Ensure Client implements the interface.
var _ driven.AdminClient = (*Client)(nil)

// Config holds the connection settings of one shop.
type Config struct {
	// APIURL is the shop's base URL, like "https://shop.example.com".
	APIURL string

	// ClientID and ClientSecret belong to an integration created in the
	// shop administration under Settings > System > Integrations.
	ClientID     string
	ClientSecret string

	Timeout time.Duration
}

// Client talks to a shop's admin HTTP API. It owns the OAuth2 session via
// the client-credentials grant, paces requests through a rate limiter and
// retries transient failures.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a client for the shop described by the config. The
// first request acquires an access token; expired tokens refresh
// transparently.
func NewClient(ctx context.Context, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	credentials := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     strings.TrimSuffix(cfg.APIURL, "/") + "/api/oauth/token",
	}
	httpClient := credentials.Client(ctx)
	httpClient.Timeout = timeout

	return &Client{
		baseURL:     strings.TrimSuffix(cfg.APIURL, "/"),
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(),
	}
}

// NewClientWithHTTPClient creates a client over a caller-supplied
// http.Client that already handles authentication.
func NewClientWithHTTPClient(apiURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(apiURL, "/"),
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(),
	}
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// ValidateCredentials checks the configured credentials with a cheap
// authenticated call.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "_info/version", nil)
	return err
}

// Post sends a JSON payload to an endpoint and returns the parsed response.
func (c *Client) Post(ctx context.Context, endpoint string, payload any) (*driven.Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, payload)
}

// Patch partially updates a record.
func (c *Client) Patch(ctx context.Context, endpoint string, payload any) error {
	_, err := c.do(ctx, http.MethodPatch, endpoint, payload)
	return err
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	_, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	return err
}

// GetPaginated lists an entity endpoint, following pagination until all
// records are read. Criteria beyond paging cannot ride on a GET body, so a
// non-trivial criteria reroutes to the search endpoint.
func (c *Client) GetPaginated(ctx context.Context, endpoint string, criteria *driven.Criteria) ([]domain.Record, error) {
	if criteria != nil && !trivialCriteria(criteria) {
		return c.PostPaginated(ctx, "search/"+endpoint, criteria)
	}

	var all []domain.Record
	for page := 1; ; page++ {
		paged := fmt.Sprintf("%s%cpage=%d&limit=%d", endpoint, querySeparator(endpoint), page, PageLimit)
		resp, err := c.do(ctx, http.MethodGet, paged, nil)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Data...)
		if len(resp.Data) < PageLimit {
			break
		}
	}
	return all, nil
}

// PostPaginated searches an endpoint, following pagination until all
// records are read. Page and limit of the criteria are overridden.
func (c *Client) PostPaginated(ctx context.Context, endpoint string, criteria *driven.Criteria) ([]domain.Record, error) {
	if criteria == nil {
		criteria = &driven.Criteria{}
	}
	paged := *criteria
	paged.Limit = PageLimit

	var all []domain.Record
	for page := 1; ; page++ {
		paged.Page = page
		resp, err := c.do(ctx, http.MethodPost, endpoint, &paged)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Data...)
		if len(resp.Data) < PageLimit {
			break
		}
	}
	return all, nil
}

// do runs one request with rate limiting and retries. Transient failures
// (HTTP 5xx and 429) retry with a growing delay; everything else surfaces
// immediately as an APIError.
func (c *Client) do(ctx context.Context, method, endpoint string, payload any) (*driven.Response, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s: %w", method, endpoint, err)
		}
	}
	requestURL := c.baseURL + "/api/" + endpoint

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * RetryDelay
			logger.Debug("retrying %s %s in %s (attempt %d/%d)", method, endpoint, delay, attempt, MaxRetries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		resp, retryable, err := c.roundTrip(ctx, method, requestURL, body)
		if err == nil {
			return resp, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) roundTrip(ctx context.Context, method, requestURL string, body []byte) (*driven.Response, bool, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, false, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network-level failures are worth a retry.
		return nil, true, fmt.Errorf("%s %s: %w", method, requestURL, err)
	}
	defer resp.Body.Close()

	c.rateLimiter.UpdateFromResponse(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &driven.APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
			URL:        requestURL,
		}
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, apiErr
	}

	parsed := &driven.Response{}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, parsed); err != nil {
			return nil, false, fmt.Errorf("decoding response of %s %s: %w", method, requestURL, err)
		}
	}
	return parsed, false, nil
}

// errorMessage extracts the human-readable part of an admin API error body.
func errorMessage(body []byte) string {
	var parsed struct {
		Errors []struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Errors) == 0 {
		return strings.TrimSpace(string(body))
	}

	parts := make([]string, 0, len(parsed.Errors))
	for _, e := range parsed.Errors {
		switch {
		case e.Detail != "":
			parts = append(parts, e.Detail)
		case e.Title != "":
			parts = append(parts, e.Title)
		}
	}
	return strings.Join(parts, "; ")
}

// trivialCriteria reports whether the criteria carries nothing beyond
// paging, which the pagination loop overrides anyway.
func trivialCriteria(criteria *driven.Criteria) bool {
	return criteria.Term == "" &&
		len(criteria.Filter) == 0 &&
		len(criteria.Sort) == 0 &&
		len(criteria.Includes) == 0
}

func querySeparator(endpoint string) byte {
	if strings.Contains(endpoint, "?") {
		return '&'
	}
	return '?'
}
