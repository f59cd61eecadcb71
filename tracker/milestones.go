package tracker

import (
	"strings"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

// TemplateMilestones are the standard phases of a solar installation.
var TemplateMilestones = []struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}{
	{"Site Survey", "Conduct detailed site survey and assessment"},
	{"Design Approval", "Get approval for the solar installation design"},
	{"Equipment Procurement", "Order and receive all necessary equipment"},
	{"Foundation Work", "Prepare the foundation for solar panel mounting"},
	{"Panel Installation", "Install solar panels on mounting structures"},
	{"Electrical Wiring", "Complete all electrical connections and wiring"},
	{"System Testing", "Test the complete solar system for functionality"},
	{"Commissioning", "Final commissioning and handover to client"},
}

// templateSpacingDays separates consecutive template due dates.
const templateSpacingDays = 14

func milestoneIDs(p *models.Project) []string {
	return collectIDs(p.Milestones, func(m models.Milestone) string { return m.ID })
}

func validateMilestone(m models.Milestone) error {
	if strings.TrimSpace(m.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if m.DueDate.IsZero() {
		return errs.NewMissingRequiredFieldError("dueDate")
	}
	if !m.DueDate.Valid() {
		return errs.NewInvalidFieldError("dueDate", "must be a YYYY-MM-DD date")
	}
	if m.Status != "" && !m.Status.Valid() {
		return errs.NewInvalidFieldError("status", "unknown milestone status "+string(m.Status))
	}
	return nil
}

// AddMilestone appends a milestone built from draft. Title and dueDate are
// required; status defaults to Pending.
func AddMilestone(p *models.Project, draft models.Milestone, today models.Date) (*models.Project, error) {
	if err := validateMilestone(draft); err != nil {
		return nil, err
	}

	next := p.Clone()
	m := models.Milestone{
		ID:          scopedID(p.ID, kindMilestone, nextSequence(p.ID, kindMilestone, milestoneIDs(p))),
		ProjectID:   p.ID,
		Position:    len(next.Milestones),
		Title:       strings.TrimSpace(draft.Title),
		Description: draft.Description,
		DueDate:     draft.DueDate,
	}
	status := draft.Status
	if status == "" {
		status = models.MilestonePending
	}
	applyMilestoneStatus(&m, status, today)
	next.Milestones = append(next.Milestones, m)
	return settle(p, next, today), nil
}

// UpdateMilestone replaces the editable fields of a milestone with those of changes.
func UpdateMilestone(p *models.Project, milestoneID string, changes models.Milestone, today models.Date) (*models.Project, error) {
	i := p.MilestoneIndex(milestoneID)
	if i < 0 {
		return nil, errs.NewNotFound("milestone")
	}
	if changes.Status == "" {
		changes.Status = p.Milestones[i].Status
	}
	if err := validateMilestone(changes); err != nil {
		return nil, err
	}

	next := p.Clone()
	m := &next.Milestones[i]
	m.Title = strings.TrimSpace(changes.Title)
	m.Description = changes.Description
	m.DueDate = changes.DueDate
	if changes.Status != m.Status {
		applyMilestoneStatus(m, changes.Status, today)
	}
	return settle(p, next, today), nil
}

// DeleteMilestone removes a milestone. Tasks referencing it keep their
// milestoneId as a dangling weak reference.
func DeleteMilestone(p *models.Project, milestoneID string, today models.Date) (*models.Project, error) {
	i := p.MilestoneIndex(milestoneID)
	if i < 0 {
		return nil, errs.NewNotFound("milestone")
	}

	next := p.Clone()
	next.Milestones = append(next.Milestones[:i], next.Milestones[i+1:]...)
	for j := range next.Milestones {
		next.Milestones[j].Position = j
	}
	return settle(p, next, today), nil
}

// AddTemplateMilestones appends the selected template phases, or all of
// them when titles is empty. Due dates fall every two weeks from today.
// Unknown titles are skipped.
func AddTemplateMilestones(p *models.Project, titles []string, today models.Date) (*models.Project, error) {
	selected := make(map[string]bool, len(titles))
	for _, t := range titles {
		selected[strings.ToLower(strings.TrimSpace(t))] = true
	}

	next := p
	offset := 0
	for _, tpl := range TemplateMilestones {
		if len(titles) > 0 && !selected[strings.ToLower(tpl.Title)] {
			continue
		}
		offset++
		var err error
		next, err = AddMilestone(next, models.Milestone{
			Title:       tpl.Title,
			Description: tpl.Description,
			DueDate:     today.AddDays(offset * templateSpacingDays),
			Status:      models.MilestonePending,
		}, today)
		if err != nil {
			return nil, err
		}
	}
	if next == p {
		return p.Clone(), nil
	}
	return next, nil
}
