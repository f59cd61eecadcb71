package tracker

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

const today = models.Date("2024-03-10")

func sampleProject(statuses ...models.MilestoneStatus) *models.Project {
	p := &models.Project{
		ID:                   "p1",
		Name:                 "Nairobi Solar Site 1",
		Location:             "Westlands",
		County:               "Nairobi",
		Capacity:             "50kW",
		Status:               models.ProjectInProgress,
		StartDate:            "2024-01-01",
		TargetCompletionDate: "2024-06-01",
		ClientName:           "Acme",
		ClientContact:        "acme@example.com",
		Budget:               "1000000",
		ProjectManager:       "Jane",
	}
	for i, s := range statuses {
		m := models.Milestone{
			ID:      scopedID("p1", kindMilestone, i+1),
			Title:   "Milestone",
			DueDate: "2024-02-01",
			Status:  s,
		}
		if s == models.MilestoneCompleted {
			m.CompletedDate = "2024-02-01"
		}
		p.Milestones = append(p.Milestones, m)
	}
	return p
}

func TestRecomputeProgress(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []models.MilestoneStatus
		wantProgress int
		wantStatus   models.ProjectStatus
	}{
		{"none", nil, 0, models.ProjectInProgress},
		{"one of three rounds down", []models.MilestoneStatus{models.MilestoneCompleted, models.MilestonePending, models.MilestonePending}, 33, models.ProjectInProgress},
		{"two of three rounds up", []models.MilestoneStatus{models.MilestoneCompleted, models.MilestoneCompleted, models.MilestoneDelayed}, 67, models.ProjectInProgress},
		{"half rounds up", []models.MilestoneStatus{models.MilestoneCompleted, models.MilestonePending, models.MilestonePending, models.MilestonePending, models.MilestonePending, models.MilestonePending, models.MilestonePending, models.MilestonePending}, 13, models.ProjectInProgress},
		{"all", []models.MilestoneStatus{models.MilestoneCompleted, models.MilestoneCompleted}, 100, models.ProjectCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecomputeProgress(sampleProject(tt.statuses...))
			if got.Progress != tt.wantProgress {
				t.Errorf("progress = %d, want %d", got.Progress, tt.wantProgress)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestRecomputeProgressIsIdempotent(t *testing.T) {
	once := RecomputeProgress(sampleProject(models.MilestoneCompleted, models.MilestonePending))
	twice := RecomputeProgress(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second recompute changed project (-once +twice):\n%s", diff)
	}
}

func TestSetMilestoneStatusCompletesProject(t *testing.T) {
	p := sampleProject(models.MilestoneCompleted, models.MilestonePending, models.MilestonePending)

	p, err := SetMilestoneStatus(p, "p1-m2", models.MilestoneCompleted, today)
	if err != nil {
		t.Fatal(err)
	}
	if p.Progress != 67 || p.Status != models.ProjectInProgress {
		t.Fatalf("after second: progress=%d status=%q", p.Progress, p.Status)
	}
	if p.Milestones[1].CompletedDate != today {
		t.Errorf("completedDate = %q, want %q", p.Milestones[1].CompletedDate, today)
	}

	p, err = SetMilestoneStatus(p, "p1-m3", models.MilestoneCompleted, today)
	if err != nil {
		t.Fatal(err)
	}
	if p.Progress != 100 || p.Status != models.ProjectCompleted {
		t.Fatalf("after third: progress=%d status=%q", p.Progress, p.Status)
	}
	if p.ActualCompletionDate != today {
		t.Errorf("actualCompletionDate = %q, want %q", p.ActualCompletionDate, today)
	}
}

func TestSetMilestoneStatusRegressionClearsCompletedDate(t *testing.T) {
	p := sampleProject(models.MilestoneCompleted, models.MilestonePending)
	got, err := SetMilestoneStatus(p, "p1-m1", models.MilestoneDelayed, today)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Milestones[0].CompletedDate.IsZero() {
		t.Errorf("completedDate = %q, want unset", got.Milestones[0].CompletedDate)
	}
	if got.Progress != 0 {
		t.Errorf("progress = %d, want 0", got.Progress)
	}
	if p.Milestones[0].CompletedDate != "2024-02-01" {
		t.Error("input project was modified")
	}
}

func TestSetMilestoneStatusErrors(t *testing.T) {
	p := sampleProject(models.MilestonePending)
	if _, err := SetMilestoneStatus(p, "missing", models.MilestoneCompleted, today); !errs.IsNotFound(err) {
		t.Errorf("unknown milestone: got %v", err)
	}
	if _, err := SetMilestoneStatus(p, "p1-m1", "Done", today); !errs.IsInvalidFieldError(err) {
		t.Errorf("unknown status: got %v", err)
	}
}

func TestSetRiskStatus(t *testing.T) {
	p := sampleProject(models.MilestonePending)
	p, err := AddRisk(p, models.Risk{Title: "Flooding", Description: "Rainy season"}, "2024-03-01")
	if err != nil {
		t.Fatal(err)
	}
	r := p.Risks[0]
	if r.Level != models.RiskMedium || r.Status != models.RiskOpen || r.IdentifiedDate != "2024-03-01" {
		t.Fatalf("defaults not applied: %+v", r)
	}

	closed, err := SetRiskStatus(p, r.ID, models.RiskClosed, today)
	if err != nil {
		t.Fatal(err)
	}
	if closed.Risks[0].ResolvedDate != today {
		t.Errorf("resolvedDate = %q, want %q", closed.Risks[0].ResolvedDate, today)
	}
	if closed.Progress != p.Progress || closed.Status != p.Status {
		t.Error("risk transition changed project progress or status")
	}

	accepted, err := SetRiskStatus(p, r.ID, models.RiskAccepted, today)
	if err != nil {
		t.Fatal(err)
	}
	if !accepted.Risks[0].ResolvedDate.IsZero() {
		t.Errorf("Accepted stamped resolvedDate %q", accepted.Risks[0].ResolvedDate)
	}
}

func TestAdditionsValidate(t *testing.T) {
	p := sampleProject(models.MilestonePending)
	before := p.Clone()

	checks := []struct {
		name  string
		field string
		run   func() error
	}{
		{"milestone without title", "title", func() error {
			_, err := AddMilestone(p, models.Milestone{DueDate: "2024-05-01"}, today)
			return err
		}},
		{"milestone without due date", "dueDate", func() error {
			_, err := AddMilestone(p, models.Milestone{Title: "Survey"}, today)
			return err
		}},
		{"risk without description", "description", func() error {
			_, err := AddRisk(p, models.Risk{Title: "Theft"}, today)
			return err
		}},
		{"usage without item", "itemId", func() error {
			_, err := AddInventoryUsage(p, models.InventoryUsage{Quantity: 1}, models.InventoryItem{}, today)
			return err
		}},
		{"usage with zero quantity", "quantity", func() error {
			_, err := AddInventoryUsage(p, models.InventoryUsage{ItemID: "INV-1001"}, models.DefaultCatalog()[0], today)
			return err
		}},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			err := c.run()
			if !errs.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var apiErr *errs.ApiErr
			if !asApiErr(err, &apiErr) || apiErr.Field != c.field {
				t.Errorf("error field = %v, want %q", apiErr, c.field)
			}
		})
	}

	if diff := cmp.Diff(before, p); diff != "" {
		t.Errorf("failed additions modified the project (-before +after):\n%s", diff)
	}
}

func TestAddMilestoneAssignsIDsAndRecomputes(t *testing.T) {
	p := sampleProject(models.MilestoneCompleted)
	if p.Progress != 0 {
		t.Fatalf("fixture progress = %d", p.Progress)
	}

	p, err := AddMilestone(p, models.Milestone{Title: "Wiring", DueDate: "2024-04-01"}, today)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Milestones[1].ID; got != "p1-m2" {
		t.Errorf("id = %q, want p1-m2", got)
	}
	if p.Milestones[1].Status != models.MilestonePending {
		t.Errorf("status = %q, want Pending", p.Milestones[1].Status)
	}
	if p.Progress != 50 {
		t.Errorf("progress = %d, want 50", p.Progress)
	}

	p, err = DeleteMilestone(p, "p1-m1", today)
	if err != nil {
		t.Fatal(err)
	}
	p, err = AddMilestone(p, models.Milestone{Title: "Testing", DueDate: "2024-04-15"}, today)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Milestones[1].ID; got != "p1-m3" {
		t.Errorf("id after delete = %q, want p1-m3", got)
	}
}

func TestAddInventoryUsageSnapshotsName(t *testing.T) {
	item := models.DefaultCatalog()[0]
	p, err := AddInventoryUsage(sampleProject(), models.InventoryUsage{ItemID: item.ID, Quantity: 4}, item, today)
	if err != nil {
		t.Fatal(err)
	}
	want := []models.InventoryUsage{{
		ID: "p1-inv1", ProjectID: "p1", ItemID: item.ID, ItemName: item.Name, Quantity: 4, DateUsed: today,
	}}
	if diff := cmp.Diff(want, p.InventoryUsage); diff != "" {
		t.Errorf("usage mismatch (-want +got):\n%s", diff)
	}
}

func TestAddTemplateMilestones(t *testing.T) {
	p, err := AddTemplateMilestones(sampleProject(), nil, today)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Milestones) != len(TemplateMilestones) {
		t.Fatalf("got %d milestones, want %d", len(p.Milestones), len(TemplateMilestones))
	}
	if p.Milestones[0].DueDate != "2024-03-24" || p.Milestones[7].DueDate != "2024-06-30" {
		t.Errorf("due dates = %q .. %q", p.Milestones[0].DueDate, p.Milestones[7].DueDate)
	}

	p, err = AddTemplateMilestones(sampleProject(), []string{"commissioning", "Not A Phase"}, today)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Milestones) != 1 || p.Milestones[0].Title != "Commissioning" {
		t.Errorf("selected templates = %+v", p.Milestones)
	}
}

func TestTasks(t *testing.T) {
	p := sampleProject(models.MilestonePending, models.MilestonePending)
	p, err := AddTask(p, models.Task{Title: "Dig trench", DueDate: "2024-04-01", MilestoneID: "p1-m1"})
	if err != nil {
		t.Fatal(err)
	}
	p, err = AddTask(p, models.Task{Title: "Pull cable", DueDate: "2024-04-02", MilestoneID: "p1-m2", Status: models.TaskInProgress})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AddTask(p, models.Task{Title: "Orphan", DueDate: "2024-04-02", MilestoneID: "nope"}); !errs.IsInvalidFieldError(err) {
		t.Errorf("unknown milestone: got %v", err)
	}

	p, err = SetTaskStatus(p, "p1-task1", models.TaskCompleted)
	if err != nil {
		t.Fatal(err)
	}

	if got := FilterTasks(p.Tasks, "all", "all"); len(got) != 2 {
		t.Errorf("all/all returned %d tasks", len(got))
	}
	got := FilterTasks(p.Tasks, "p1-m1", string(models.TaskCompleted))
	if len(got) != 1 || got[0].ID != "p1-task1" {
		t.Errorf("filtered = %+v", got)
	}
}

func TestAssignUser(t *testing.T) {
	u := models.User{ID: "u1", Name: "Ann", Email: "ann@example.com"}
	p, err := AssignUser(sampleProject(), u)
	if err != nil {
		t.Fatal(err)
	}
	p, err = AssignUser(p, u)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Users) != 1 {
		t.Errorf("users = %+v, want one entry", p.Users)
	}

	p, err = UnassignUser(p, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Users) != 0 {
		t.Errorf("users after unassign = %+v", p.Users)
	}
	if _, err := UnassignUser(p, "u1"); !errs.IsNotFound(err) {
		t.Errorf("unassign missing user: got %v", err)
	}
}

func TestNewProject(t *testing.T) {
	draft := *sampleProject()
	draft.Status = ""
	draft.Milestones = []models.Milestone{{ID: "client-side", Title: "Survey", DueDate: "2024-04-01"}}

	draft.InventoryUsage = []models.InventoryUsage{{ItemID: "INV-1001", Quantity: 3}}
	catalog := models.DefaultCatalog()

	p, err := NewProject("p9", draft, catalog, today)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "p9" || p.Status != models.ProjectPlanned {
		t.Errorf("id=%q status=%q", p.ID, p.Status)
	}
	if p.Milestones[0].ID != "p9-m1" {
		t.Errorf("milestone id = %q, want p9-m1", p.Milestones[0].ID)
	}
	want := []models.InventoryUsage{{ID: "p9-inv1", ProjectID: "p9", ItemID: "INV-1001", ItemName: "Solar Panel 250W", Quantity: 3, DateUsed: today}}
	if diff := cmp.Diff(want, p.InventoryUsage); diff != "" {
		t.Errorf("inventory usage mismatch (-want +got):\n%s", diff)
	}

	usageTests := []struct {
		name  string
		usage models.InventoryUsage
		check func(error) bool
	}{
		{"missing item id", models.InventoryUsage{Quantity: 3}, errs.IsMissingRequiredFieldError},
		{"unknown item", models.InventoryUsage{ItemID: "INV-9999", Quantity: 1}, errs.IsInvalidFieldError},
		{"zero quantity", models.InventoryUsage{ItemID: "INV-1001"}, errs.IsInvalidFieldError},
	}
	for _, tt := range usageTests {
		t.Run(tt.name, func(t *testing.T) {
			d := draft
			d.InventoryUsage = []models.InventoryUsage{tt.usage}
			if _, err := NewProject("p9", d, catalog, today); !tt.check(err) {
				t.Errorf("got %v", err)
			}
		})
	}

	draft.Name = "ab"
	if _, err := NewProject("p9", draft, catalog, today); !errs.IsInvalidFieldError(err) {
		t.Errorf("short name: got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(nil); got != (Statistics{}) {
		t.Errorf("empty summary = %+v", got)
	}

	projects := []models.Project{
		{County: "Nairobi", Status: models.ProjectCompleted, Progress: 100},
		{County: "Kisumu", Status: models.ProjectInProgress, Progress: 45},
		{County: "Nairobi", Status: models.ProjectPlanned, Progress: 0},
		{County: "Kisumu", Status: models.ProjectOnHold, Progress: 10},
	}
	want := Statistics{Total: 4, Completed: 1, InProgress: 1, Planned: 1, OnHold: 1, AverageProgress: 39}
	if diff := cmp.Diff(want, Summarize(projects)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	wantCounty := []CountyProgress{{Name: "Nairobi", Value: 50}, {Name: "Kisumu", Value: 28}}
	if diff := cmp.Diff(wantCounty, ProgressByCounty(projects)); diff != "" {
		t.Errorf("county progress mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeSites(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sites := []models.Site{
		{County: "Nairobi", Capacity: "50", IsActive: true, CreatedAt: "2024-03-01T08:00:00Z"},
		{County: "Nairobi", Capacity: "25.5 kW", IsActive: false, CreatedAt: "2023-12-01T08:00:00Z"},
		{County: "Kisumu", Capacity: "n/a", IsActive: true, CreatedAt: "2024-02-20"},
	}
	want := SiteSummary{
		TotalSites:    3,
		ActiveSites:   2,
		TotalCapacity: 75.5,
		RecentSites:   2,
		CountyDistribution: []CountyCount{
			{Name: "Nairobi", Count: 2},
			{Name: "Kisumu", Count: 1},
		},
	}
	if diff := cmp.Diff(want, SummarizeSites(sites, now)); diff != "" {
		t.Errorf("site summary mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPayload(t *testing.T) {
	p := sampleProject(models.MilestoneCompleted)
	p.Users = []models.User{{ID: "u1", Name: "Ann"}}

	got := BuildPayload(p)
	if diff := cmp.Diff([]string{"u1"}, got.Users); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
	want := []models.MilestonePayload{{Title: "Milestone", DueDate: "2024-02-01", CompletedDate: "2024-02-01", Status: models.MilestoneCompleted}}
	if diff := cmp.Diff(want, got.Milestones); diff != "" {
		t.Errorf("milestones mismatch (-want +got):\n%s", diff)
	}
	if got.Risks == nil || got.Tasks == nil || got.InventoryUsage == nil {
		t.Error("empty lists should serialize as []")
	}
}

func TestEnsureIDs(t *testing.T) {
	p := &models.Project{
		ID:         "p7",
		Milestones: []models.Milestone{{Title: "a"}, {ID: "p7-m4", Title: "b"}, {Title: "c"}},
		Risks:      []models.Risk{{Title: "r"}},
	}
	got := EnsureIDs(p)
	ids := []string{got.Milestones[0].ID, got.Milestones[1].ID, got.Milestones[2].ID, got.Risks[0].ID}
	if diff := cmp.Diff([]string{"p7-m5", "p7-m4", "p7-m6", "p7-risk1"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if p.Milestones[0].ID != "" {
		t.Error("input project was modified")
	}
}
