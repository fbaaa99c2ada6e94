package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIKey(t *testing.T) {
	handler := APIKey([]string{"secret-1", "secret-2"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{name: "valid x-api-key", header: "X-API-Key", value: "secret-1", wantStatus: http.StatusOK},
		{name: "second configured key", header: "X-API-Key", value: "secret-2", wantStatus: http.StatusOK},
		{name: "bearer token", header: "Authorization", value: "Bearer secret-1", wantStatus: http.StatusOK},
		{name: "wrong key", header: "X-API-Key", value: "nope", wantStatus: http.StatusUnauthorized},
		{name: "missing key", wantStatus: http.StatusUnauthorized},
		{name: "bearer without scheme", header: "Authorization", value: "secret-1", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/import/tire", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAPIKeyNoKeysConfigured(t *testing.T) {
	handler := APIKey(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/domains", nil)
	req.Header.Set("X-API-Key", "anything")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when no keys are configured", rec.Code)
	}
}
