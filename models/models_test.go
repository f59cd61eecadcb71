package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDateScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want Date
	}{
		{"nil", nil, ""},
		{"time", time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC), "2024-03-10"},
		{"string", "2024-03-10", "2024-03-10"},
		{"timestamp string", "2024-03-10T00:00:00Z", "2024-03-10"},
		{"bytes", []byte("2024-06-30"), "2024-06-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Date("stale")
			if err := d.Scan(tt.src); err != nil {
				t.Fatal(err)
			}
			if d != tt.want {
				t.Errorf("Scan(%v) = %q, want %q", tt.src, d, tt.want)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("expected an error scanning an int")
	}
}

func TestDateValue(t *testing.T) {
	v, err := Date("").Value()
	if err != nil || v != nil {
		t.Errorf("unset date = %v, %v; want NULL", v, err)
	}

	v, err = Date("2024-03-10").Value()
	if err != nil {
		t.Fatal(err)
	}
	if got := v.(time.Time); !got.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("value = %v", got)
	}

	if _, err := Date("10/03/2024").Value(); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestDateAddDays(t *testing.T) {
	if got := Date("2024-02-28").AddDays(2); got != "2024-03-01" {
		t.Errorf("AddDays = %q", got)
	}
	if got := Date("soon").AddDays(2); got != "soon" {
		t.Errorf("malformed date changed to %q", got)
	}
	if Date("2024-02-30").Valid() {
		t.Error("2024-02-30 reported valid")
	}
}

func TestCloneDoesNotShareLists(t *testing.T) {
	p := &Project{
		ID:         "p1",
		Milestones: []Milestone{{ID: "p1-m1", Status: MilestonePending}},
		Users:      []User{{ID: "u1", Name: "Akinyi"}},
	}
	c := p.Clone()
	if diff := cmp.Diff(p, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c.Milestones[0].Status = MilestoneCompleted
	c.Users = append(c.Users, User{ID: "u2"})
	if p.Milestones[0].Status != MilestonePending || len(p.Users) != 1 {
		t.Errorf("original changed through clone: %+v", p)
	}
	if (*Project)(nil).Clone() != nil {
		t.Error("nil clone should be nil")
	}
}

func TestStatusValid(t *testing.T) {
	if !ProjectOnHold.Valid() || ProjectStatus("Cancelled").Valid() {
		t.Error("project status validation")
	}
	if !MilestoneDelayed.Valid() || MilestoneStatus("done").Valid() {
		t.Error("milestone status validation")
	}
}
