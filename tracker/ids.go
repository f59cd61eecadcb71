package tracker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rpupo63/solar-ops-backend/models"
)

// Entity kinds used in project-scoped ids: {projectId}-{kind}{n}.
const (
	kindMilestone = "m"
	kindRisk      = "risk"
	kindInventory = "inv"
	kindTask      = "task"
)

// nextSequence returns the next free sequence for kind among existing ids.
// It never reuses a number, even after deletions.
func nextSequence(projectID, kind string, existing []string) int {
	prefix := projectID + "-" + kind
	highest := len(existing)
	for _, id := range existing {
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil || !strings.HasPrefix(id, prefix) {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1
}

func scopedID(projectID, kind string, seq int) string {
	return fmt.Sprintf("%s-%s%d", projectID, kind, seq)
}

// EnsureIDs fills in ids missing from owned records, as happens with
// projects read back from systems that do not key sub-records.
func EnsureIDs(p *models.Project) *models.Project {
	next := p.Clone()
	for i := range next.Milestones {
		if next.Milestones[i].ID == "" {
			next.Milestones[i].ID = scopedID(p.ID, kindMilestone, nextSequence(p.ID, kindMilestone, milestoneIDs(next)))
		}
	}
	for i := range next.Risks {
		if next.Risks[i].ID == "" {
			next.Risks[i].ID = scopedID(p.ID, kindRisk, nextSequence(p.ID, kindRisk, collectIDs(next.Risks, func(r models.Risk) string { return r.ID })))
		}
	}
	for i := range next.InventoryUsage {
		if next.InventoryUsage[i].ID == "" {
			next.InventoryUsage[i].ID = scopedID(p.ID, kindInventory, nextSequence(p.ID, kindInventory, collectIDs(next.InventoryUsage, func(u models.InventoryUsage) string { return u.ID })))
		}
	}
	for i := range next.Tasks {
		if next.Tasks[i].ID == "" {
			next.Tasks[i].ID = scopedID(p.ID, kindTask, nextSequence(p.ID, kindTask, collectIDs(next.Tasks, func(t models.Task) string { return t.ID })))
		}
	}
	return next
}

func collectIDs[T any](rows []T, id func(T) string) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if v := id(r); v != "" {
			ids = append(ids, v)
		}
	}
	return ids
}
