package tracker

import (
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

// Percent returns round(100*done/total) with halves rounded up. total must be positive.
func Percent(done, total int) int {
	return (200*done + total) / (2 * total)
}

// RecomputeProgress derives progress from milestone completion. A project
// reaching 100 becomes Completed; otherwise its status is kept. Projects
// without milestones are returned unchanged.
func RecomputeProgress(p *models.Project) *models.Project {
	next := p.Clone()
	if len(next.Milestones) == 0 {
		return next
	}

	completed := 0
	for _, m := range next.Milestones {
		if m.Status == models.MilestoneCompleted {
			completed++
		}
	}
	next.Progress = Percent(completed, len(next.Milestones))
	if next.Progress == 100 {
		next.Status = models.ProjectCompleted
	}
	return next
}

// SetMilestoneStatus moves a milestone to status. Moving to Completed stamps
// completedDate with today; moving away from Completed clears it.
func SetMilestoneStatus(p *models.Project, milestoneID string, status models.MilestoneStatus, today models.Date) (*models.Project, error) {
	if !status.Valid() {
		return nil, errs.NewInvalidFieldError("status", "unknown milestone status "+string(status))
	}
	i := p.MilestoneIndex(milestoneID)
	if i < 0 {
		return nil, errs.NewNotFound("milestone")
	}

	next := p.Clone()
	applyMilestoneStatus(&next.Milestones[i], status, today)
	return settle(p, next, today), nil
}

func applyMilestoneStatus(m *models.Milestone, status models.MilestoneStatus, today models.Date) {
	m.Status = status
	if status == models.MilestoneCompleted {
		m.CompletedDate = today
	} else {
		m.CompletedDate = ""
	}
}

// settle recomputes progress on next and stamps the actual completion date
// when the project has just become Completed.
func settle(before, next *models.Project, today models.Date) *models.Project {
	next = RecomputeProgress(next)
	if next.Status == models.ProjectCompleted && before.Status != models.ProjectCompleted && next.ActualCompletionDate.IsZero() {
		next.ActualCompletionDate = today
	}
	return next
}
