package tracker

import (
	"strings"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/listing"
	"github.com/rpupo63/solar-ops-backend/models"
)

// AddTask appends a task. Title and dueDate are required and status defaults
// to To Do. milestoneId, when set, must name a milestone of the project.
func AddTask(p *models.Project, draft models.Task) (*models.Project, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}
	if draft.DueDate.IsZero() {
		return nil, errs.NewMissingRequiredFieldError("dueDate")
	}
	if !draft.DueDate.Valid() {
		return nil, errs.NewInvalidFieldError("dueDate", "must be a YYYY-MM-DD date")
	}
	if draft.Status == "" {
		draft.Status = models.TaskToDo
	}
	if !draft.Status.Valid() {
		return nil, errs.NewInvalidFieldError("status", "unknown task status "+string(draft.Status))
	}
	if draft.MilestoneID != "" && p.MilestoneIndex(draft.MilestoneID) < 0 {
		return nil, errs.NewInvalidFieldError("milestoneId", "no such milestone on this project")
	}

	ids := collectIDs(p.Tasks, func(t models.Task) string { return t.ID })

	next := p.Clone()
	t := draft
	t.ID = scopedID(p.ID, kindTask, nextSequence(p.ID, kindTask, ids))
	t.ProjectID = p.ID
	t.Title = strings.TrimSpace(t.Title)
	next.Tasks = append(next.Tasks, t)
	return next, nil
}

func SetTaskStatus(p *models.Project, taskID string, status models.TaskStatus) (*models.Project, error) {
	if !status.Valid() {
		return nil, errs.NewInvalidFieldError("status", "unknown task status "+string(status))
	}
	i := p.TaskIndex(taskID)
	if i < 0 {
		return nil, errs.NewNotFound("task")
	}

	next := p.Clone()
	next.Tasks[i].Status = status
	return next, nil
}

// FilterTasks narrows tasks by milestone and status; "all" disables a filter.
func FilterTasks(tasks []models.Task, milestoneID, status string) []models.Task {
	return listing.Apply(tasks, "", nil,
		listing.Filter[models.Task]{Want: milestoneID, Field: func(t models.Task) string { return t.MilestoneID }},
		listing.Filter[models.Task]{Want: status, Field: func(t models.Task) string { return string(t.Status) }},
	)
}
