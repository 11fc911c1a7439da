package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const errorBodyLimit = 4 << 10

// Config controls the shared outbound HTTP behavior.
type Config struct {
	Timeout     time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
	UserAgent   string
}

// StatusError reports a non-success HTTP status from an upstream API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status=%d body=%s", e.StatusCode, e.Body)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Client is the outbound HTTP handle shared by every upstream adapter.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	baseBackoff time.Duration
	userAgent   string
	logger      *slog.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewClient builds a client with a bounded timeout and retry policy.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxAttempts: attempts,
		baseBackoff: cfg.BaseBackoff,
		userAgent:   strings.TrimSpace(cfg.UserAgent),
		logger:      logger.With("component", "upstream.client"),
		sleep:       sleepContext,
	}
}

// GetJSON issues a GET request and decodes the JSON body into dst.
// Network failures, 429 and 5xx responses are retried with exponential backoff.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, dst any) error {
	target := endpoint
	if len(params) > 0 {
		target = endpoint + "?" + params.Encode()
	}

	var body []byte
	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.baseBackoff * time.Duration(1<<(attempt-2))
			if delay > 0 {
				if err := c.sleep(ctx, delay); err != nil {
					return fmt.Errorf("upstream request canceled: %w", err)
				}
			}
		}

		body, err = c.get(ctx, target)
		if err == nil || !retryable(ctx, err) || attempt == c.maxAttempts {
			break
		}
		c.logger.Warn("transient upstream failure, retrying", "endpoint", endpoint, "attempt", attempt, "error", err)
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(payload)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}
	return body, nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
