package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain", errors.New("boom"), http.StatusInternalServerError},
		{"api", NewApiErr(http.StatusTeapot, "teapot"), http.StatusTeapot},
		{"wrapped", fmt.Errorf("handler: %w", NewNotFound("project")), http.StatusNotFound},
		{"remote 404", NewUpstreamError("projects", http.StatusNotFound, ""), http.StatusNotFound},
		{"remote 500", NewUpstreamError("projects", http.StatusInternalServerError, "db down"), http.StatusBadGateway},
		{"unreachable", NewUpstreamUnavailableError("locations", errors.New("dial tcp")), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	if !IsUnauthorized(NewUnauthorizedError("login required")) {
		t.Error("unauthorized error lost its sentinel")
	}
	remote := NewUpstreamUnauthorizedError("users")
	if !IsUpstreamUnauthorized(remote) || !IsUnauthorized(remote) {
		t.Error("remote 401 should match both unauthorized sentinels")
	}
	if IsUpstreamFailure(remote) {
		t.Error("remote 401 is not an upstream failure")
	}
	if !IsMissingRequiredFieldError(NewMissingRequiredFieldError("name")) || !IsValidationError(NewInvalidFieldError("budget", "negative")) {
		t.Error("validation sentinels")
	}
	if !IsMalformedPayloadError(Malformed("project")) {
		t.Error("malformed sentinel")
	}
}

func TestDatabaseErrorClassification(t *testing.T) {
	dup := NewDatabaseError("insert", "project", errors.New(`ERROR: duplicate key value violates unique constraint "projects_pkey"`))
	if !IsAlreadyExists(dup) || dup.StatusCode != http.StatusConflict {
		t.Errorf("duplicate = %+v", dup)
	}

	missing := NewDatabaseError("find", "project", errors.New("record not found"))
	if !IsNotFound(missing) {
		t.Errorf("record not found = %+v", missing)
	}

	classified := NewInvalidFieldError("status", "unknown")
	if got := NewDatabaseError("update", "project", classified); got != classified {
		t.Error("classified errors should pass through unchanged")
	}
}

func TestGetFullError(t *testing.T) {
	err := NewInternalErrorWithCause("export failed", NewDatabaseError("find", "projects", errors.New("timeout")))
	want := "export failed -> database query failed: Failed to find projects -> timeout"
	if got := err.GetFullError(); got != want {
		t.Errorf("GetFullError = %q, want %q", got, want)
	}
}
