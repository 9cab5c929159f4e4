package client

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/exercise-discovery/internal/domain"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newFastClient(url string) *Client {
	c := New(url, "tok", nil)
	c.Interval = time.Millisecond
	return c
}

func TestStartSessionSendsConfigAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/discovery/sessions", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var cfg domain.SessionConfig
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cfg))
		assert.True(t, cfg.TestMode)
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"sessionId": "s-1", "totalTerms": 10, "estimatedDuration": "20s", "estimatedDurationMs": 20000,
		})
	}))
	defer srv.Close()

	resp, err := newFastClient(srv.URL).StartSession(context.Background(), domain.SessionConfig{TestMode: true})
	require.NoError(t, err)
	assert.Equal(t, "s-1", resp.SessionID)
	assert.Equal(t, 10, resp.TotalTerms)
}

func TestAPIErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a discovery session is already running"})
	}))
	defer srv.Close()

	_, err := newFastClient(srv.URL).StartSession(context.Background(), domain.SessionConfig{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "a discovery session is already running", apiErr.Message)
}

func TestWaitPollsUntilTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		switch {
		case n == 2:
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "busy"})
		case n < 4:
			writeJSON(w, http.StatusOK, domain.Session{SessionID: "s-1", Status: domain.SessionRunning,
				Progress: domain.SessionProgress{TermsProcessed: int(n), TotalTerms: 4}})
		default:
			writeJSON(w, http.StatusOK, domain.Session{SessionID: "s-1", Status: domain.SessionCompleted})
		}
	}))
	defer srv.Close()

	var seen []domain.SessionStatus
	s, err := newFastClient(srv.URL).Wait(context.Background(), "s-1", func(s domain.Session) {
		seen = append(seen, s.Status)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, s.Status)
	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, []domain.SessionStatus{domain.SessionRunning, domain.SessionRunning, domain.SessionCompleted}, seen)
}

func TestWaitGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, domain.Session{SessionID: "s-1", Status: domain.SessionRunning})
	}))
	defer srv.Close()

	c := newFastClient(srv.URL)
	c.MaxAttempts = 5
	_, err := c.Wait(context.Background(), "s-1", nil)
	assert.ErrorIs(t, err, ErrPollTimeout)
	assert.Equal(t, int32(5), calls.Load())
}

func TestWaitStopsOnNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "discovery session not found"})
	}))
	defer srv.Close()

	_, err := newFastClient(srv.URL).Wait(context.Background(), "gone", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWaitCountsRefusedConnectionsAsAttempts(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := newFastClient("http://" + addr)
	c.MaxAttempts = 3
	_, err = c.Wait(context.Background(), "s-1", nil)
	assert.ErrorIs(t, err, ErrPollTimeout)
}

func TestWaitHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.Session{SessionID: "s-1", Status: domain.SessionRunning})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", nil)
	c.Interval = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Wait(ctx, "s-1", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPreviewTermsEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/discovery/terms", r.URL.Path)
		assert.Equal(t, "tennis", r.URL.Query().Get("sport"))
		writeJSON(w, http.StatusOK, TermsResponse{Terms: []string{"tennis footwork drills"}, Count: 1})
	}))
	defer srv.Close()

	resp, err := newFastClient(srv.URL).PreviewTerms(context.Background(), url.Values{"sport": {"tennis"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"tennis footwork drills"}, resp.Terms)
}
