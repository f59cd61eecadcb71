package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpupo63/solar-ops-backend/database"
	"github.com/rpupo63/solar-ops-backend/services"
)

var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	router http.Handler
	db     database.Database
}

// newTestEnv builds a router over a memory database. A nil remote leaves the
// remote API unconfigured.
func newTestEnv(t *testing.T, cfg map[string]string, remote http.Handler) testEnv {
	t.Helper()
	db := database.NewMemory()
	deps := Dependencies{
		Database: db,
		Now:      func() time.Time { return fixedNow },
	}
	if remote != nil {
		srv := httptest.NewServer(remote)
		t.Cleanup(srv.Close)
		deps.Remote = services.NewClient(srv.URL, srv.Client())
	}
	return testEnv{router: newRouter(deps, withConfig(cfg)), db: db}
}

func (e testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func projectForm() map[string]any {
	return map[string]any{
		"name":                 "Westlands Rooftop",
		"location":             "Westlands, Nairobi",
		"county":               "Nairobi",
		"capacity":             "50 kW",
		"clientName":           "Acme Ltd",
		"clientContact":        "0700000000",
		"budget":               "KES 4,500,000",
		"projectManager":       "Jane Wanjiku",
		"startDate":            "2024-03-01",
		"targetCompletionDate": "2024-06-30",
	}
}
