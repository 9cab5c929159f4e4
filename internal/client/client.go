// Package client talks to the discovery HTTP API.
package client

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

	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/retry"
)

const (
	DefaultMaxAttempts = 300
	DefaultInterval    = 3 * time.Second
)

// ErrPollTimeout means the session did not finish within the polling budget.
// Callers should treat the session as failed or unknown.
var ErrPollTimeout = errors.New("gave up waiting for discovery session")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discovery api: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) HTTPStatusCode() int { return e.StatusCode }

type StartResponse struct {
	SessionID           string               `json:"sessionId"`
	Config              domain.SessionConfig `json:"config"`
	TotalTerms          int                  `json:"totalTerms"`
	EstimatedDuration   string               `json:"estimatedDuration"`
	EstimatedDurationMs int64                `json:"estimatedDurationMs"`
}

type TermsResponse struct {
	Terms []string `json:"terms"`
	Count int      `json:"count"`
}

type Client struct {
	baseURL     string
	token       string
	http        *http.Client
	MaxAttempts int
	Interval    time.Duration
}

// New returns a client for the API at baseURL (without the /api/v1 suffix).
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		http:        httpClient,
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultInterval,
	}
}

func (c *Client) StartSession(ctx context.Context, cfg domain.SessionConfig) (*StartResponse, error) {
	var out StartResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/discovery/sessions", cfg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var out domain.Session
	if err := c.do(ctx, http.MethodGet, "/api/v1/discovery/sessions/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/discovery/sessions/"+url.PathEscape(sessionID)+"/cancel", nil, nil)
}

func (c *Client) Candidates(ctx context.Context, sessionID string) ([]domain.ReviewItem, error) {
	var out []domain.ReviewItem
	if err := c.do(ctx, http.MethodGet, "/api/v1/discovery/sessions/"+url.PathEscape(sessionID)+"/candidates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PreviewTerms(ctx context.Context, query url.Values) (*TermsResponse, error) {
	path := "/api/v1/discovery/terms"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out TermsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Wait polls the session until it reaches a terminal status. Transient
// failures count as attempts; any other error ends polling at once.
// onProgress, if set, sees every snapshot.
func (c *Client) Wait(ctx context.Context, sessionID string, onProgress func(domain.Session)) (*domain.Session, error) {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		if i > 0 {
			t := time.NewTimer(c.Interval)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			}
		}

		s, err := c.GetSession(ctx, sessionID)
		if err != nil {
			if retry.IsTransient(err) {
				continue
			}
			return nil, err
		}
		if onProgress != nil {
			onProgress(*s)
		}
		if s.Status.IsTerminal() {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w %s after %d attempts", ErrPollTimeout, sessionID, attempts)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
