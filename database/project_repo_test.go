package database

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB builds statements against the postgres dialect without
// connecting, recording the SQL of every create and delete.
func dryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=solar dbname=solar sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatal(err)
	}

	var statements []string
	record := func(tx *gorm.DB) {
		statements = append(statements, tx.Dialector.Explain(tx.Statement.SQL.String(), tx.Statement.Vars...))
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("test:record_delete", record); err != nil {
		t.Fatal(err)
	}
	if err := db.Callback().Create().After("gorm:create").Register("test:record_create", record); err != nil {
		t.Fatal(err)
	}
	return db, &statements
}

func TestReplaceChildrenDeletesMissingAndUpsertsKept(t *testing.T) {
	db, statements := dryRunDB(t)

	rows := []models.Milestone{
		{ID: "p1-m1", ProjectID: "p1", Title: "Survey", Status: models.MilestoneCompleted},
		{ID: "p1-m3", ProjectID: "p1", Title: "Install", Status: models.MilestonePending},
	}
	if err := replaceChildren(db, "p1", rows); err != nil {
		t.Fatal(err)
	}

	if len(*statements) != 2 {
		t.Fatalf("statements = %q, want a delete and an upsert", *statements)
	}
	del, upsert := (*statements)[0], (*statements)[1]
	for _, want := range []string{`DELETE FROM "milestones"`, "project_id = 'p1'", "id NOT IN ('p1-m1','p1-m3')"} {
		if !strings.Contains(del, want) {
			t.Errorf("delete %q does not contain %q", del, want)
		}
	}
	for _, want := range []string{`INSERT INTO "milestones"`, "'p1-m1'", "'p1-m3'", `ON CONFLICT ("id") DO UPDATE`} {
		if !strings.Contains(upsert, want) {
			t.Errorf("upsert %q does not contain %q", upsert, want)
		}
	}
}

func TestReplaceChildrenWithEmptyListDeletesAll(t *testing.T) {
	db, statements := dryRunDB(t)

	if err := replaceChildren(db, "p1", []models.Risk(nil)); err != nil {
		t.Fatal(err)
	}

	if len(*statements) != 1 {
		t.Fatalf("statements = %q, want a single delete", *statements)
	}
	if del := (*statements)[0]; !strings.Contains(del, `DELETE FROM "risks"`) || strings.Contains(del, "NOT IN") {
		t.Errorf("delete = %q", del)
	}
}

func TestBindChildren(t *testing.T) {
	p := &models.Project{
		ID:             "p1",
		Milestones:     []models.Milestone{{ID: "p1-m2"}, {ID: "p1-m1"}},
		InventoryUsage: []models.InventoryUsage{{ID: "p1-inv1"}},
		Risks:          []models.Risk{{ID: "p1-risk1"}},
		Tasks:          []models.Task{{ID: "p1-task1"}},
	}
	bindChildren(p)

	want := []models.Milestone{{ID: "p1-m2", ProjectID: "p1", Position: 0}, {ID: "p1-m1", ProjectID: "p1", Position: 1}}
	if diff := cmp.Diff(want, p.Milestones); diff != "" {
		t.Errorf("milestones mismatch (-want +got):\n%s", diff)
	}
	if p.InventoryUsage[0].ProjectID != "p1" || p.Risks[0].ProjectID != "p1" || p.Tasks[0].ProjectID != "p1" {
		t.Errorf("owned records not bound: %+v", p)
	}
}

// TestProjectRepoUpdateReconcilesChildren needs a disposable PostgreSQL
// database in TEST_DATABASE_URL.
func TestProjectRepoUpdateReconcilesChildren(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	gdb, err := Open(Options{DSN: dsn})
	if err != nil {
		t.Fatal(err)
	}
	db := New(gdb)
	if err := db.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	repo := db.ProjectRepo()

	id := "repo-test-" + strings.ReplaceAll(t.Name(), "/", "-")
	_ = repo.Delete(ctx, id)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), id) })

	p := &models.Project{
		ID:        id,
		Name:      "Naivasha Greenhouse",
		Location:  "Naivasha",
		County:    "Nakuru",
		Capacity:  "40kW",
		Status:    models.ProjectInProgress,
		StartDate: "2024-03-01",
		Milestones: []models.Milestone{
			{ID: id + "-m1", Title: "Survey", DueDate: "2024-03-10", Status: models.MilestoneCompleted, CompletedDate: "2024-03-09"},
			{ID: id + "-m2", Title: "Design", DueDate: "2024-03-24", Status: models.MilestonePending},
		},
		Risks: []models.Risk{{ID: id + "-risk1", Title: "Rain", Description: "Wet season", Level: models.RiskLow, Status: models.RiskOpen, IdentifiedDate: "2024-03-01"}},
	}
	if err := repo.Add(ctx, p); err != nil {
		t.Fatal(err)
	}

	p.Milestones = []models.Milestone{
		{ID: id + "-m2", Title: "Design", DueDate: "2024-03-24", Status: models.MilestoneInProgress},
		{ID: id + "-m3", Title: "Install", DueDate: "2024-04-07", Status: models.MilestonePending},
	}
	p.Risks = nil
	if err := repo.Update(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, m := range got.Milestones {
		ids = append(ids, m.ID)
	}
	if diff := cmp.Diff([]string{id + "-m2", id + "-m3"}, ids); diff != "" {
		t.Errorf("milestone ids mismatch (-want +got):\n%s", diff)
	}
	if got.Milestones[0].Status != models.MilestoneInProgress || len(got.Risks) != 0 {
		t.Errorf("stored project = %+v", got)
	}

	if err := repo.Update(ctx, &models.Project{ID: id + "-missing", Name: "Ghost"}); !errs.IsNotFound(err) {
		t.Errorf("update missing project: got %v", err)
	}
}
