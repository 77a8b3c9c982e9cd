package firebase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"

	"rojak/internal/storage"
)

func newTestAuthProvider(url string) *AuthProvider {
	return &AuthProvider{
		apiKey:    "web-key",
		http:      resty.New(),
		signInURL: url,
	}
}

func TestAuthProvider_SignIn(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantID     string
		wantErr    error
		wantAnyErr bool
	}{
		{
			name:   "valid credentials",
			status: http.StatusOK,
			body:   `{"localId":"uid-1","email":"ali@example.com","idToken":"tok"}`,
			wantID: "ali@example.com",
		},
		{
			name:   "valid credentials without echoed email",
			status: http.StatusOK,
			body:   `{"localId":"uid-1","idToken":"tok"}`,
			wantID: "ali@example.com",
		},
		{
			name:    "wrong password",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"INVALID_PASSWORD"}}`,
			wantErr: storage.ErrInvalidCredentials,
		},
		{
			name:    "unified credential error",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`,
			wantErr: storage.ErrInvalidCredentials,
		},
		{
			name:       "rate limited",
			status:     http.StatusBadRequest,
			body:       `{"error":{"code":400,"message":"TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled"}}`,
			wantAnyErr: true,
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `{"error":{"code":500,"message":"INTERNAL"}}`,
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("key") != "web-key" {
					t.Errorf("key query param = %q", r.URL.Query().Get("key"))
				}
				var req signInRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if req.Email != "ali@example.com" || req.Password != "Secret@123" || !req.ReturnSecureToken {
					t.Errorf("unexpected request %+v", req)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := newTestAuthProvider(server.URL)
			id, err := p.SignIn(context.Background(), "ali@example.com", "Secret@123")

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("SignIn() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantAnyErr:
				if err == nil {
					t.Error("SignIn() expected error")
				}
				if errors.Is(err, storage.ErrInvalidCredentials) {
					t.Error("SignIn() should not report bad credentials for service errors")
				}
			default:
				if err != nil {
					t.Fatalf("SignIn() unexpected error: %v", err)
				}
				if id != tt.wantID {
					t.Errorf("SignIn() = %q, want %q", id, tt.wantID)
				}
			}
		})
	}
}

func TestIsCredentialError(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"EMAIL_NOT_FOUND", true},
		{"INVALID_PASSWORD", true},
		{"USER_DISABLED: The user account has been disabled", true},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isCredentialError(tt.message); got != tt.want {
			t.Errorf("isCredentialError(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
