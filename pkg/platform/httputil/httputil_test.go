package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sunflower/pkg/platform/sentinel"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != CodeInternal {
			t.Fatalf("expected error code %s, got %q", CodeInternal, body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, fmt.Errorf("zone %q: %w", "x", sentinel.ErrInvalidInput))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != CodeBadRequest {
			t.Fatalf("expected error code %s, got %q", CodeBadRequest, body["error"])
		}
		if body["error_description"] == "" {
			t.Fatalf("expected error_description to be returned for bad request")
		}
	})

	t.Run("sentinels map to status", func(t *testing.T) {
		cases := map[error]int{
			sentinel.ErrNotFound:       http.StatusNotFound,
			sentinel.ErrUnavailable:    http.StatusServiceUnavailable,
			sentinel.ErrRefreshTimeout: http.StatusGatewayTimeout,
			sentinel.ErrNetwork:        http.StatusBadGateway,
		}
		for err, want := range cases {
			w := httptest.NewRecorder()
			WriteError(w, fmt.Errorf("wrapped: %w", err))
			if w.Code != want {
				t.Fatalf("%v: expected status %d, got %d", err, want, w.Code)
			}
		}
	})
}
