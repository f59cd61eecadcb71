package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rpupo63/solar-ops-backend/models"
)

func createProject(t *testing.T, env testEnv) models.Project {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/projects", projectForm())
	expectStatus(t, rec, http.StatusCreated)
	return decodeResponse[models.Project](t, rec)
}

func TestProjectLifecycle(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	created := createProject(t, env)
	if created.ID == "" || created.Status != models.ProjectPlanned || created.Progress != 0 {
		t.Fatalf("unexpected created project: %+v", created)
	}
	base := "/projects/" + created.ID

	rec := env.do(t, http.MethodPost, base+"/milestones", map[string]any{"title": "Site Survey", "dueDate": "2024-03-20"})
	expectStatus(t, rec, http.StatusOK)
	rec = env.do(t, http.MethodPost, base+"/milestones", map[string]any{"title": "Commissioning", "dueDate": "2024-06-20"})
	expectStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodPut, base+"/milestones/"+created.ID+"-m1/status", map[string]string{"status": "Completed"})
	expectStatus(t, rec, http.StatusOK)
	p := decodeResponse[models.Project](t, rec)
	if p.Progress != 50 || p.Status != models.ProjectPlanned {
		t.Errorf("after one of two: progress=%d status=%q", p.Progress, p.Status)
	}
	if p.Milestones[0].CompletedDate != "2024-03-10" {
		t.Errorf("completedDate = %q", p.Milestones[0].CompletedDate)
	}

	rec = env.do(t, http.MethodPut, base+"/milestones/"+created.ID+"-m2/status", map[string]string{"status": "Completed"})
	expectStatus(t, rec, http.StatusOK)
	p = decodeResponse[models.Project](t, rec)
	if p.Progress != 100 || p.Status != models.ProjectCompleted {
		t.Errorf("after all: progress=%d status=%q", p.Progress, p.Status)
	}
	if p.ActualCompletionDate != "2024-03-10" {
		t.Errorf("actualCompletionDate = %q", p.ActualCompletionDate)
	}

	rec = env.do(t, http.MethodGet, base, nil)
	expectStatus(t, rec, http.StatusOK)
	stored := decodeResponse[models.Project](t, rec)
	if stored.Progress != 100 {
		t.Errorf("stored progress = %d", stored.Progress)
	}

	rec = env.do(t, http.MethodDelete, base, nil)
	expectStatus(t, rec, http.StatusOK)
	rec = env.do(t, http.MethodGet, base, nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestCreateProjectValidation(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	form := projectForm()
	delete(form, "clientName")
	rec := env.do(t, http.MethodPost, "/projects", form)
	expectStatus(t, rec, http.StatusBadRequest)
	resp := decodeResponse[ErrorResponse](t, rec)
	if resp.Field != "clientName" {
		t.Errorf("field = %q, want clientName", resp.Field)
	}

	rec = env.do(t, http.MethodPost, "/projects", "{not json")
	expectStatus(t, rec, http.StatusBadRequest)

	form = projectForm()
	form["inventoryUsage"] = []map[string]any{{"quantity": 3}}
	rec = env.do(t, http.MethodPost, "/projects", form)
	expectStatus(t, rec, http.StatusBadRequest)
	if resp := decodeResponse[ErrorResponse](t, rec); resp.Field != "itemId" {
		t.Errorf("field = %q, want itemId", resp.Field)
	}

	rec = env.do(t, http.MethodGet, "/projects", nil)
	page := decodeResponse[listResponse[models.Project]](t, rec)
	if page.TotalItems != 0 {
		t.Errorf("invalid submissions stored %d projects", page.TotalItems)
	}
}

func TestMilestoneValidationLeavesProjectUntouched(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	created := createProject(t, env)

	rec := env.do(t, http.MethodPost, "/projects/"+created.ID+"/milestones", map[string]any{"title": "No date"})
	expectStatus(t, rec, http.StatusBadRequest)

	rec = env.do(t, http.MethodGet, "/projects/"+created.ID, nil)
	p := decodeResponse[models.Project](t, rec)
	if len(p.Milestones) != 0 {
		t.Errorf("milestones = %d, want 0", len(p.Milestones))
	}
}

func TestListProjectsFiltersAndPages(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	for _, c := range []struct{ name, county string }{
		{"Alpha Farm", "Nairobi"},
		{"Bravo School", "Kisumu"},
		{"Charlie Clinic", "Nairobi"},
	} {
		form := projectForm()
		form["name"] = c.name
		form["county"] = c.county
		expectStatus(t, env.do(t, http.MethodPost, "/projects", form), http.StatusCreated)
	}

	rec := env.do(t, http.MethodGet, "/projects?county=Nairobi&pageSize=1&page=2", nil)
	expectStatus(t, rec, http.StatusOK)
	page := decodeResponse[listResponse[models.Project]](t, rec)
	if page.TotalItems != 2 || page.TotalPages != 2 || len(page.Items) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if page.Items[0].Name != "Charlie Clinic" {
		t.Errorf("item = %q", page.Items[0].Name)
	}

	rec = env.do(t, http.MethodGet, "/projects?search=SCHOOL&county=all", nil)
	page = decodeResponse[listResponse[models.Project]](t, rec)
	if page.TotalItems != 1 || page.Items[0].Name != "Bravo School" {
		t.Errorf("search page = %+v", page)
	}

	rec = env.do(t, http.MethodGet, "/projects?page=9", nil)
	page = decodeResponse[listResponse[models.Project]](t, rec)
	if page.Page != 1 || len(page.Items) != 3 {
		t.Errorf("out of range page was not clamped: %+v", page)
	}
}

func TestProjectPayloadHasNoInternalIDs(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	created := createProject(t, env)
	base := "/projects/" + created.ID

	expectStatus(t, env.do(t, http.MethodPost, base+"/milestones", map[string]any{"title": "Site Survey", "dueDate": "2024-03-20"}), http.StatusOK)
	expectStatus(t, env.do(t, http.MethodPost, base+"/users", map[string]string{"userId": "u7", "name": "Otieno"}), http.StatusOK)

	rec := env.do(t, http.MethodGet, base+"/payload", nil)
	expectStatus(t, rec, http.StatusOK)
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["id"]; ok {
		t.Error("payload carries project id")
	}
	if strings.Contains(string(raw["milestones"]), `"id"`) {
		t.Errorf("milestones carry ids: %s", raw["milestones"])
	}
	if diff := cmp.Diff(`["u7"]`, string(raw["users"])); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateProjectMirrorsToRemote(t *testing.T) {
	var mu sync.Mutex
	var posted []models.ProjectPayload
	remote := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/projects" {
			t.Errorf("unexpected remote call %s %s", r.Method, r.URL.Path)
		}
		var payload models.ProjectPayload
		json.NewDecoder(r.Body).Decode(&payload)
		mu.Lock()
		posted = append(posted, payload)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"_id":"remote-1","name":"Westlands Rooftop"}}`))
	})
	env := newTestEnv(t, nil, remote)

	created := createProject(t, env)
	if created.RemoteID != "remote-1" {
		t.Errorf("remoteId = %q", created.RemoteID)
	}
	if len(posted) != 1 || posted[0].Name != "Westlands Rooftop" || posted[0].Users == nil {
		t.Errorf("posted = %+v", posted)
	}
}

func TestCreateProjectRemoteFailureStoresNothing(t *testing.T) {
	remote := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database down"}`))
	})
	env := newTestEnv(t, nil, remote)

	rec := env.do(t, http.MethodPost, "/projects", projectForm(), "Idempotency-Key", "form-1")
	expectStatus(t, rec, http.StatusBadGateway)
	if !strings.Contains(rec.Body.String(), "database down") {
		t.Errorf("remote message missing: %s", rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/submissions/project/form-1", nil)
	expectStatus(t, rec, http.StatusOK)
	state := decodeResponse[map[string]string](t, rec)
	if state["state"] != "failed" {
		t.Errorf("submission state = %v", state)
	}

	rec = env.do(t, http.MethodGet, "/projects", nil)
	if page := decodeResponse[listResponse[models.Project]](t, rec); page.TotalItems != 0 {
		t.Errorf("stored %d projects after remote failure", page.TotalItems)
	}
}

func TestExportProjects(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	createProject(t, env)

	rec := env.do(t, http.MethodGet, "/projects/export", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="projects-2024-03-10.xlsx"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	// xlsx files are zip archives
	if !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Error("export is not a zip archive")
	}
}
