package tracker

import (
	"strings"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

// AddRisk appends a risk built from draft. Title and description are
// required. Level defaults to Medium, status to Open and identifiedDate to today.
func AddRisk(p *models.Project, draft models.Risk, today models.Date) (*models.Project, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}
	if strings.TrimSpace(draft.Description) == "" {
		return nil, errs.NewMissingRequiredFieldError("description")
	}
	if draft.Level == "" {
		draft.Level = models.RiskMedium
	}
	if !draft.Level.Valid() {
		return nil, errs.NewInvalidFieldError("level", "unknown risk level "+string(draft.Level))
	}
	if draft.Status == "" {
		draft.Status = models.RiskOpen
	}
	if !draft.Status.Valid() {
		return nil, errs.NewInvalidFieldError("status", "unknown risk status "+string(draft.Status))
	}
	if draft.IdentifiedDate.IsZero() {
		draft.IdentifiedDate = today
	} else if !draft.IdentifiedDate.Valid() {
		return nil, errs.NewInvalidFieldError("identifiedDate", "must be a YYYY-MM-DD date")
	}

	ids := collectIDs(p.Risks, func(r models.Risk) string { return r.ID })

	next := p.Clone()
	r := draft
	r.ID = scopedID(p.ID, kindRisk, nextSequence(p.ID, kindRisk, ids))
	r.ProjectID = p.ID
	r.Title = strings.TrimSpace(r.Title)
	if r.Status.Resolves() && r.ResolvedDate.IsZero() {
		r.ResolvedDate = today
	}
	next.Risks = append(next.Risks, r)
	return next, nil
}

// SetRiskStatus moves a risk to status. Mitigated and Closed stamp
// resolvedDate with today. Progress and project status are not affected.
func SetRiskStatus(p *models.Project, riskID string, status models.RiskStatus, today models.Date) (*models.Project, error) {
	if !status.Valid() {
		return nil, errs.NewInvalidFieldError("status", "unknown risk status "+string(status))
	}
	i := p.RiskIndex(riskID)
	if i < 0 {
		return nil, errs.NewNotFound("risk")
	}

	next := p.Clone()
	next.Risks[i].Status = status
	if status.Resolves() {
		next.Risks[i].ResolvedDate = today
	}
	return next, nil
}
