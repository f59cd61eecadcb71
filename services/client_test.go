package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", srv.Client())
}

func TestListSitesForwardsTokenAndAcceptsBareArray(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/locations" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[{"_id":"s1","name":"Nairobi Solar Site 1","county":"Nairobi","isActive":true},{"id":"s2","name":"Kisumu"}]`))
	})

	sites, err := client.ListSites(WithToken(context.Background(), "tok123"))
	if err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	ids := []string{sites[0].ID, sites[1].ID}
	if diff := cmp.Diff([]string{"s1", "s2"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestListUsersAcceptsDataEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header without token")
		}
		w.Write([]byte(`{"data":[{"id":"u1","name":"Ann","email":"ann@example.com","role":"Admin","status":"Active"}]}`))
	})

	users, err := client.ListUsers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []models.Account{{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: "Admin", Status: "Active"}}
	if diff := cmp.Diff(want, users); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
}

func TestGetProjectNormalizesRemoteShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"_id":"p1","name":"Array","status":"Planned","users":["u1","u2"],"milestones":[{"title":"Survey","status":"Pending","dueDate":"2024-04-01"}]}}`))
	})

	p, err := client.GetProject(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "p1" || len(p.Users) != 2 || p.Users[1].ID != "u2" {
		t.Errorf("project = %+v", p)
	}
	if p.Milestones[0].ID != "p1-m1" {
		t.Errorf("milestone id = %q, want p1-m1", p.Milestones[0].ID)
	}
}

func TestCreateProjectSendsPayload(t *testing.T) {
	var got models.ProjectPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"remote-1","name":"Array","users":[{"_id":"u1","name":"Ann"}]}`))
	})

	p, err := client.CreateProject(context.Background(), models.ProjectPayload{Name: "Array", Users: []string{"u1"}})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Array" || got.Users[0] != "u1" {
		t.Errorf("sent payload = %+v", got)
	}
	if p.ID != "remote-1" || p.Users[0].Name != "Ann" {
		t.Errorf("returned project = %+v", p)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
		code   int
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, errs.IsUpstreamUnauthorized, http.StatusUnauthorized},
		{"server error", http.StatusInternalServerError, `{"message":"db down"}`, errs.IsUpstreamFailure, http.StatusBadGateway},
		{"not found", http.StatusNotFound, `{"message":"no such location"}`, errs.IsUpstreamFailure, http.StatusNotFound},
		{"garbage body", http.StatusOK, `<html>`, errs.IsUpstreamFailure, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := client.GetSite(context.Background(), "s1")
			if !tt.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
			if got := errs.StatusOf(err); got != tt.code {
				t.Errorf("status = %d, want %d", got, tt.code)
			}
			if calls != 1 {
				t.Errorf("remote called %d times, want 1", calls)
			}
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL, nil).ListProjects(context.Background())
	if !errors.Is(err, errs.ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want upstream unavailable", err)
	}

	if NewClient("", nil).Configured() {
		t.Error("empty base URL reported as configured")
	}
}
