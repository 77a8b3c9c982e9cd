package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		method     string
		checks     map[string]Pinger
		wantStatus int
		wantBody   *HealthResponse
	}{
		{
			name:       "all healthy",
			method:     http.MethodGet,
			checks:     map[string]Pinger{"generator": ok, "store": ok},
			wantStatus: http.StatusOK,
			wantBody: &HealthResponse{
				Status: "healthy",
				Checks: map[string]string{"generator": "ok", "store": "ok"},
			},
		},
		{
			name:       "generator down",
			method:     http.MethodGet,
			checks:     map[string]Pinger{"generator": down, "store": ok},
			wantStatus: http.StatusServiceUnavailable,
			wantBody: &HealthResponse{
				Status: "unhealthy",
				Checks: map[string]string{"generator": "error", "store": "ok"},
				Issues: []string{"generator_unavailable"},
			},
		},
		{
			name:       "method not allowed",
			method:     http.MethodPost,
			checks:     map[string]Pinger{"store": ok},
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.checks)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, "/api/health", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantBody == nil {
				return
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantBody.Status {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantBody.Status)
			}
			for name, want := range tt.wantBody.Checks {
				if resp.Checks[name] != want {
					t.Errorf("checks[%s] = %q, want %q", name, resp.Checks[name], want)
				}
			}
			if len(resp.Issues) != len(tt.wantBody.Issues) {
				t.Errorf("issues = %v, want %v", resp.Issues, tt.wantBody.Issues)
			}
			if resp.Timestamp == "" {
				t.Error("timestamp should be set")
			}
		})
	}
}

func TestHTMLPage(t *testing.T) {
	w := httptest.NewRecorder()
	HTMLPage("<h1>hai</h1>")(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("HTMLPage() status = %v", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.String() != "<h1>hai</h1>" {
		t.Errorf("body = %q", w.Body.String())
	}
}
