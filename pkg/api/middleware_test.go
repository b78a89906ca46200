package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/segmentio/ksuid"
)

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		apiKey         string
		requestHeader  string
		expectedStatus int
	}{
		{
			name:           "valid API key",
			apiKey:         "test-key",
			requestHeader:  "test-key",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing API key header",
			apiKey:         "test-key",
			requestHeader:  "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid API key",
			apiKey:         "test-key",
			requestHeader:  "wrong-key",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "key prefix is not enough",
			apiKey:         "test-key",
			requestHeader:  "test",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "longer key sharing the prefix",
			apiKey:         "test-key",
			requestHeader:  "test-key-with-suffix",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "key differs only in case",
			apiKey:         "test-key",
			requestHeader:  "TEST-KEY",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no configured key disables auth",
			apiKey:         "",
			requestHeader:  "",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a test handler that just returns 200
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			// Apply the middleware
			middleware := apiKeyMiddleware(tt.apiKey)
			handler := middleware(testHandler)

			// Create request
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.requestHeader != "" {
				req.Header.Set("X-API-Key", tt.requestHeader)
			}

			// Create response recorder
			w := httptest.NewRecorder()

			// Execute request
			handler.ServeHTTP(w, req)

			// Check status
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestSendSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"message": "test"}

	sendSuccess(w, data)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", contentType)
	}

	// Check that response contains expected data
	body := w.Body.String()
	if len(body) == 0 {
		t.Error("Expected non-empty response body")
	}
}

func TestSendError(t *testing.T) {
	tests := []struct {
		name           string
		message        string
		statusCode     int
		expectedStatus int
	}{
		{
			name:           "bad request error",
			message:        "Invalid request",
			statusCode:     http.StatusBadRequest,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unauthorized error",
			message:        "Not authorized",
			statusCode:     http.StatusUnauthorized,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "internal server error",
			message:        "Server error",
			statusCode:     http.StatusInternalServerError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			sendError(w, tt.message, tt.statusCode)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			contentType := w.Header().Get("Content-Type")
			if contentType != "application/json" {
				t.Errorf("Expected Content-Type application/json, got %s", contentType)
			}

			// Check that response contains error message
			body := w.Body.String()
			if len(body) == 0 {
				t.Error("Expected non-empty response body")
			}
		})
	}
}

func TestSendError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()

	sendError(w, "capture not found", http.StatusNotFound)

	var response APIResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Success {
		t.Error("Expected success to be false")
	}
	if response.Error != "capture not found" {
		t.Errorf("Expected error message, got %q", response.Error)
	}
}

func TestRoutes_ErrorEnvelope(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "decode unknown kind",
			method:         http.MethodPost,
			path:           "/api/v1/decode/gps",
			body:           PayloadRequest{Hex: "3412"},
			expectedStatus: http.StatusNotFound,
			expectedError:  "unknown record kind",
		},
		{
			name:           "encode unencodable gain",
			method:         http.MethodPost,
			path:           "/api/v1/encode/uwb-settings",
			body:           `{"gain_db": 200}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "reconciliation failed",
		},
		{
			name:           "capture payload of the wrong width",
			method:         http.MethodPost,
			path:           "/api/v1/captures/network-id",
			body:           PayloadRequest{Hex: "341200"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "network-id",
		},
		{
			name:           "missing capture",
			method:         http.MethodGet,
			path:           "/api/v1/captures/" + ksuid.New().String(),
			expectedStatus: http.StatusNotFound,
			expectedError:  "capture not found",
		},
		{
			name:           "malformed capture id",
			method:         http.MethodGet,
			path:           "/api/v1/captures/not-a-ksuid",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid capture id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, ts, tt.method, tt.path, tt.body)

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("Expected Content-Type application/json, got %s", got)
			}
			if body.Success {
				t.Error("Expected success to be false")
			}
			if body.Data != nil {
				t.Errorf("Expected no data, got %v", body.Data)
			}
			if !strings.Contains(body.Error, tt.expectedError) {
				t.Errorf("Expected error containing %q, got %q", tt.expectedError, body.Error)
			}
		})
	}
}
