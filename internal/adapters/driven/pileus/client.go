package pileus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pileus-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.PileusAPI = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 100 * time.Second

	// MaxRetries is the maximum number of retries for transient GET errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// maxResponseSize caps a response body. Larger successful responses fail.
	maxResponseSize = 16 << 20

	// maxErrorMessage caps the body excerpt kept in an APIError.
	maxErrorMessage = 512
)

// Config configures the client. Zero values use the package defaults.
type Config struct {
	AuthURL           string
	BaseURL           string
	BaseURLV2         string
	Timeout           time.Duration
	RequestsPerSecond float64
	UserAgent         string

	// HTTPClient overrides the underlying client. Its Timeout is left as is.
	HTTPClient *http.Client

	// RetryDelay overrides the initial GET retry delay.
	RetryDelay time.Duration
}

// Client talks to the Pileus tokenizer and REST API.
type Client struct {
	authURL    string
	baseURL    string
	baseURLV2  string
	userAgent  string
	http       *http.Client
	limiter    *RateLimiter
	retryDelay time.Duration
	maxBody    int64
	now        func() time.Time
}

// NewClient creates a new Pileus API client.
func NewClient(cfg Config) *Client {
	c := &Client{
		authURL:    firstNonEmpty(cfg.AuthURL, domain.DefaultAuthURL),
		baseURL:    strings.TrimRight(firstNonEmpty(cfg.BaseURL, domain.DefaultBaseURL), "/"),
		baseURLV2:  strings.TrimRight(firstNonEmpty(cfg.BaseURLV2, domain.DefaultBaseURLV2), "/"),
		userAgent:  cfg.UserAgent,
		http:       cfg.HTTPClient,
		limiter:    NewRateLimiter(cfg.RequestsPerSecond),
		retryDelay: cfg.RetryDelay,
		maxBody:    maxResponseSize,
		now:        time.Now,
	}
	if c.http == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.retryDelay <= 0 {
		c.retryDelay = RetryDelay
	}
	return c
}

// RateLimiter returns the client's rate limiter.
func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

// Authenticate exchanges credentials for a token and a user api key.
func (c *Client) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	payload := map[string]string{
		"username": creds.Username,
		"password": creds.Password,
	}
	resp, err := c.do(ctx, http.MethodPost, c.authURL, nil, payload)
	if err != nil {
		return nil, err
	}

	var body struct {
		Authorization string `json:"Authorization"`
		APIKey        string `json:"apikey"`
	}
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", ErrInvalidResponse)
	}
	if body.Authorization == "" || body.APIKey == "" {
		return nil, fmt.Errorf("auth response without token or api key: %w", domain.ErrAuthInvalid)
	}

	return &domain.Session{
		AuthToken:     body.Authorization,
		APIKey:        body.APIKey,
		AccountAPIKey: body.APIKey,
		ExpiresAt:     tokenExpiry(body.Authorization, c.now()),
	}, nil
}

// ListUsers returns the raw user list.
func (c *Client) ListUsers(ctx context.Context, session *domain.Session) (json.RawMessage, error) {
	return c.getJSON(ctx, session, c.baseURL+"/users")
}

// ListUsersWithRoles returns the raw user list with role assignments.
func (c *Client) ListUsersWithRoles(ctx context.Context, session *domain.Session) (json.RawMessage, error) {
	return c.getJSON(ctx, session, c.baseURL+"/users/with-roles")
}

// OnboardAWS submits an onboarding payload with the account api key.
// A body that is not a JSON object or array is returned as a script.
func (c *Client) OnboardAWS(
	ctx context.Context, session *domain.Session, accountID string, payload map[string]any,
) (*domain.OnboardingResponse, error) {
	if !session.IsValid() {
		return nil, domain.ErrAuthRequired
	}
	apiKey := session.AccountAPIKey
	if apiKey == "" {
		apiKey = session.APIKey
	}

	endpoint := c.baseURLV2 + "/onboarding/aws/" + url.PathEscape(accountID)
	headers := map[string]string{
		"Authorization": session.AuthToken,
		"apikey":        apiKey,
	}
	resp, err := c.do(ctx, http.MethodPost, endpoint, headers, payload)
	if err != nil {
		return nil, err
	}
	return parseOnboardingResponse(resp.body), nil
}

func parseOnboardingResponse(body []byte) *domain.OnboardingResponse {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &domain.OnboardingResponse{JSON: json.RawMessage("null")}
	}
	if !json.Valid(trimmed) {
		return &domain.OnboardingResponse{Script: string(body)}
	}
	// A JSON string is the script, encoded.
	var script string
	if err := json.Unmarshal(trimmed, &script); err == nil {
		return &domain.OnboardingResponse{Script: script}
	}
	return &domain.OnboardingResponse{JSON: json.RawMessage(trimmed)}
}

func (c *Client) getJSON(ctx context.Context, session *domain.Session, endpoint string) (json.RawMessage, error) {
	if !session.IsValid() {
		return nil, domain.ErrAuthRequired
	}
	headers := map[string]string{
		"Authorization": session.AuthToken,
		"apikey":        session.APIKey,
	}

	delay := c.retryDelay
	for attempt := 0; ; attempt++ {
		resp, err := c.do(ctx, http.MethodGet, endpoint, headers, nil)
		if err == nil {
			if !json.Valid(resp.body) {
				return nil, fmt.Errorf("GET %s: %w", endpoint, ErrInvalidResponse)
			}
			return json.RawMessage(resp.body), nil
		}
		if attempt >= MaxRetries || !isRetryable(err) {
			return nil, err
		}

		wait := delay
		var rlErr *RateLimitError
		if errors.As(err, &rlErr) && rlErr.RetryAfter > wait {
			wait = rlErr.RetryAfter
		}
		logger.Warn("GET %s failed (attempt %d/%d), retrying in %s: %v", endpoint, attempt+1, MaxRetries+1, wait, err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

type response struct {
	status int
	body   []byte
}

// do sends one request. Non-2xx responses become *APIError or *RateLimitError.
func (c *Client) do(
	ctx context.Context, method, endpoint string, headers map[string]string, payload any,
) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Error("%s request to %s failed: %v", method, endpoint, err)
		return nil, &networkError{err: fmt.Errorf("%s %s: %w", method, endpoint, err)}
	}
	defer httpResp.Body.Close()

	// One byte past the limit tells a full body from a cut one.
	data, err := io.ReadAll(io.LimitReader(httpResp.Body, c.maxBody+1))
	if err != nil {
		return nil, &networkError{err: fmt.Errorf("read response: %w", err)}
	}
	oversized := int64(len(data)) > c.maxBody
	if oversized {
		data = data[:c.maxBody]
	}

	logger.Info("%s Request to %s - Status Code: %d", method, endpoint, httpResp.StatusCode)
	if endpoint != c.authURL {
		logger.Debug("%s Request to %s - Response Text: %s", method, endpoint, truncate(string(data), maxErrorMessage))
	}

	if err := c.limiter.CheckRateLimit(httpResp); err != nil {
		logger.Error("%s request failed: %v", method, err)
		return nil, err
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		logger.Error("%s request failed: %s", method, truncate(string(data), maxErrorMessage))
		return nil, &APIError{
			StatusCode: httpResp.StatusCode,
			Message:    errorMessage(data, httpResp.Status),
			URL:        endpoint,
		}
	}

	if oversized {
		logger.Error("%s request to %s returned more than %d bytes", method, endpoint, c.maxBody)
		return nil, fmt.Errorf("%s %s: response exceeds %d bytes: %w", method, endpoint, c.maxBody, ErrInvalidResponse)
	}

	return &response{status: httpResp.StatusCode, body: data}, nil
}

// errorMessage extracts a message from a JSON error body, else the raw text.
func errorMessage(body []byte, status string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return truncate(text, maxErrorMessage)
	}
	return status
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
