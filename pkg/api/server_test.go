package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/uwbwire/pkg/capture"
)

const testAPIKey = "test-key"

// setupTestServer serves the full router over a capture store in a temp dir
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := capture.Open(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	// A fresh registry per test avoids duplicate registration
	registry := prometheus.NewRegistry()
	server := NewServer(store, ServerConfig{APIKey: testAPIKey}, NewMetrics(registry), nil)

	ts := httptest.NewServer(server.Routes(registry))
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, body any) (*http.Response, APIResponse) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("X-API-Key", testAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestRoutes_RequireAPIKey(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/v1/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doRequest(t, ts, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
}

func TestRoutes_MetricsUnprotected(t *testing.T) {
	ts := setupTestServer(t)

	// Generate a codec sample first
	doRequest(t, ts, http.MethodPost, "/api/v1/decode/network-id", PayloadRequest{Hex: "3412"})

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `uwbwire_codec_operations_total{kind="network-id",operation="decode",status="success"} 1`)
	assert.Contains(t, string(data), "uwbwire_auth_requests_total")
}

func TestStartServer_ShutsDownOnCancel(t *testing.T) {
	store, err := capture.Open(t.TempDir(), nil)
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServerFactory().CreateServerStarter().StartServer(ctx, store, ServerConfig{
			Bind:   "127.0.0.1",
			Port:   0,
			APIKey: testAPIKey,
		}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
