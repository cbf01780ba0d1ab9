package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pawtrack/backend/internal/domain"
	"github.com/pawtrack/backend/pkg/logger"
)

// Client handles communication with the upstream pet-care API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	authToken   string
	rateLimiter *rate.Limiter
	log         *logger.Logger
}

// NewClient creates a new pet-care API client
func NewClient(baseURL, authToken string, timeout time.Duration, log *logger.Logger) *Client {
	// The upstream allows 600 requests per minute per token
	limiter := rate.NewLimiter(rate.Limit(10), 20)

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		authToken:   authToken,
		rateLimiter: limiter,
		log:         log,
	}
}

// Token returns the bearer token used for upstream requests
func (c *Client) Token() string {
	return c.authToken
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PawTrack/1.0")
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Get executes a GET request and decodes the JSON response into out.
// Transport errors and 5xx responses are retried up to 3 times.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := c.newRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Warnw("upstream request failed", "method", "GET", "path", path, "attempt", attempt, "error", err)
			lastErr = fmt.Errorf("%w: %v", domain.ErrAPIFailure, err)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		case resp.StatusCode >= http.StatusInternalServerError:
			c.log.Warnw("upstream server error", "method", "GET", "path", path, "attempt", attempt, "status", resp.StatusCode)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrAPIFailure, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("%w: status %d, body: %s", domain.ErrAPIFailure, resp.StatusCode, string(body))
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	c.log.Errorw("all retries failed", "method", "GET", "path", path)
	return lastErr
}

// Post executes a POST request with a JSON body and decodes the response
// into out when out is non-nil. POSTs are never retried.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnw("upstream request failed", "method", "POST", "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrAPIFailure, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("%w: status %d, body: %s", domain.ErrAPIFailure, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Delete executes a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnw("upstream request failed", "method", "DELETE", "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrAPIFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d, body: %s", domain.ErrAPIFailure, resp.StatusCode, string(body))
	}
	return nil
}
