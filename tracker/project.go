package tracker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

// ValidateDetails checks the header fields entered on the project form.
func ValidateDetails(p *models.Project) error {
	required := []struct {
		field, value string
	}{
		{"county", p.County},
		{"capacity", p.Capacity},
		{"clientName", p.ClientName},
		{"clientContact", p.ClientContact},
		{"budget", p.Budget},
		{"projectManager", p.ProjectManager},
	}

	if err := minLength("name", p.Name, 3); err != nil {
		return err
	}
	if err := minLength("location", p.Location, 3); err != nil {
		return err
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errs.NewMissingRequiredFieldError(r.field)
		}
	}
	if !p.Status.Valid() {
		return errs.NewInvalidFieldError("status", "unknown project status "+string(p.Status))
	}
	if err := requiredDate("startDate", p.StartDate); err != nil {
		return err
	}
	if err := requiredDate("targetCompletionDate", p.TargetCompletionDate); err != nil {
		return err
	}
	if !p.ActualCompletionDate.IsZero() && !p.ActualCompletionDate.Valid() {
		return errs.NewInvalidFieldError("actualCompletionDate", "must be a YYYY-MM-DD date")
	}
	return nil
}

func minLength(field, value string, n int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewMissingRequiredFieldError(field)
	}
	if utf8.RuneCountInString(value) < n {
		return errs.NewInvalidFieldError(field, fmt.Sprintf("must be at least %d characters", n))
	}
	return nil
}

func requiredDate(field string, d models.Date) error {
	if d.IsZero() {
		return errs.NewMissingRequiredFieldError(field)
	}
	if !d.Valid() {
		return errs.NewInvalidFieldError(field, "must be a YYYY-MM-DD date")
	}
	return nil
}

// NewProject builds a fresh project from the form draft under id. Status
// defaults to Planned. Owned lists submitted with the draft are re-keyed
// under the new id and progress is derived from the milestones. Inventory
// usage is checked against catalog like any other usage record.
func NewProject(id string, draft models.Project, catalog []models.InventoryItem, today models.Date) (*models.Project, error) {
	if draft.Status == "" {
		draft.Status = models.ProjectPlanned
	}
	if err := ValidateDetails(&draft); err != nil {
		return nil, err
	}

	p := draft.Clone()
	p.ID = id
	p.RemoteID = ""
	p.Progress = 0
	p.Milestones, p.Risks, p.Tasks, p.InventoryUsage = nil, nil, nil, nil

	var err error
	for _, m := range draft.Milestones {
		if p, err = AddMilestone(p, m, today); err != nil {
			return nil, err
		}
	}
	for _, r := range draft.Risks {
		if p, err = AddRisk(p, r, today); err != nil {
			return nil, err
		}
	}
	for _, u := range draft.InventoryUsage {
		if p, err = AddInventoryUsage(p, u, catalogEntry(catalog, u.ItemID), today); err != nil {
			return nil, err
		}
	}
	for _, t := range draft.Tasks {
		// Tasks on a new project cannot reference milestone ids yet.
		t.MilestoneID = ""
		if p, err = AddTask(p, t); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// catalogEntry returns the catalog item with id, or the zero item.
func catalogEntry(catalog []models.InventoryItem, id string) models.InventoryItem {
	for _, item := range catalog {
		if id != "" && item.ID == id {
			return item
		}
	}
	return models.InventoryItem{}
}

// ApplyDetails copies the header fields of changes onto p, keeping its owned
// lists and derived progress.
func ApplyDetails(p *models.Project, changes models.Project, today models.Date) (*models.Project, error) {
	if changes.Status == "" {
		changes.Status = p.Status
	}
	if err := ValidateDetails(&changes); err != nil {
		return nil, err
	}

	next := p.Clone()
	next.Name = strings.TrimSpace(changes.Name)
	next.Location = strings.TrimSpace(changes.Location)
	next.County = changes.County
	next.Capacity = changes.Capacity
	next.Status = changes.Status
	next.StartDate = changes.StartDate
	next.TargetCompletionDate = changes.TargetCompletionDate
	next.ActualCompletionDate = changes.ActualCompletionDate
	next.Description = changes.Description
	next.ClientName = changes.ClientName
	next.ClientContact = changes.ClientContact
	next.Budget = changes.Budget
	next.SiteCoordinates = changes.SiteCoordinates
	next.ProjectManager = changes.ProjectManager
	next.TechnicalLead = changes.TechnicalLead
	return settle(p, next, today), nil
}
