// Package amadeus implements the offer-source port against the Amadeus
// Self-Service flight-offers API. The adapter makes exactly one attempt per
// search and maps upstream failures onto domain.SourceError kinds; retries
// and caller-level timeouts are deliberately left to the HTTP boundary.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
)

// DefaultBaseURL points at the Amadeus test environment.
const DefaultBaseURL = "https://test.api.amadeus.com"

// tokenSafetyMargin is subtracted from the advertised token lifetime so a
// token is never used right at its expiry edge.
const tokenSafetyMargin = 30 * time.Second

// Config holds the Amadeus connection settings.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// Client is a minimal Amadeus REST client with OAuth2 client-credentials
// token caching. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
	}
}

// tokenResponse is the OAuth2 token endpoint payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a cached access token, fetching a fresh one when the cached
// token is missing or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.apiKey)
	form.Set("client_secret", c.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", domain.NewSourceError(domain.SourceUnavailable, "build token request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewSourceError(domain.SourceUnavailable, "token request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", domain.NewSourceError(domain.SourceAuth, "token rejected (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", domain.NewSourceError(domain.SourceUnavailable, "decode token response: %v", err)
	}
	if tok.AccessToken == "" {
		return "", domain.NewSourceError(domain.SourceAuth, "token response without access token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenSafetyMargin)
	return c.accessToken, nil
}

// get performs an authenticated GET and decodes a 200 response into out.
// Non-200 responses are mapped onto domain.SourceError kinds.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return domain.NewSourceError(domain.SourceUnavailable, "build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewSourceError(domain.SourceUnavailable, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusToSourceError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewSourceError(domain.SourceUnavailable, "decode response: %v", err)
	}
	return nil
}

// errorResponse is the upstream error envelope.
type errorResponse struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func statusToSourceError(resp *http.Response) *domain.SourceError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	detail := strings.TrimSpace(string(body))
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		e := envelope.Errors[0]
		detail = e.Title
		if e.Detail != "" {
			detail = fmt.Sprintf("%s: %s", e.Title, e.Detail)
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.NewSourceError(domain.SourceAuth, "authentication failed (%d): %s", resp.StatusCode, detail)
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.NewSourceError(domain.SourceRateLimited, "rate limited: %s", detail)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return domain.NewSourceError(domain.SourceBadRequest, "rejected request (%d): %s", resp.StatusCode, detail)
	default:
		return domain.NewSourceError(domain.SourceUnavailable, "upstream failure (%d): %s", resp.StatusCode, detail)
	}
}
