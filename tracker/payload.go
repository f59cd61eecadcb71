package tracker

import "github.com/rpupo63/solar-ops-backend/models"

// BuildPayload renders p as the remote projects API expects it: no project
// id, no ids on owned records, and users reduced to their ids.
func BuildPayload(p *models.Project) models.ProjectPayload {
	out := models.ProjectPayload{
		Name:                 p.Name,
		Location:             p.Location,
		County:               p.County,
		Capacity:             p.Capacity,
		Status:               p.Status,
		StartDate:            p.StartDate,
		TargetCompletionDate: p.TargetCompletionDate,
		ActualCompletionDate: p.ActualCompletionDate,
		Progress:             p.Progress,
		Description:          p.Description,
		ClientName:           p.ClientName,
		ClientContact:        p.ClientContact,
		Budget:               p.Budget,
		SiteCoordinates:      p.SiteCoordinates,
		ProjectManager:       p.ProjectManager,
		TechnicalLead:        p.TechnicalLead,

		Milestones:     make([]models.MilestonePayload, 0, len(p.Milestones)),
		InventoryUsage: make([]models.InventoryUsagePayload, 0, len(p.InventoryUsage)),
		Risks:          make([]models.RiskPayload, 0, len(p.Risks)),
		Tasks:          make([]models.TaskPayload, 0, len(p.Tasks)),
		Users:          make([]string, 0, len(p.Users)),
	}

	for _, m := range p.Milestones {
		out.Milestones = append(out.Milestones, models.MilestonePayload{
			Title:         m.Title,
			Description:   m.Description,
			DueDate:       m.DueDate,
			CompletedDate: m.CompletedDate,
			Status:        m.Status,
		})
	}
	for _, u := range p.InventoryUsage {
		out.InventoryUsage = append(out.InventoryUsage, models.InventoryUsagePayload{
			ItemID:   u.ItemID,
			ItemName: u.ItemName,
			Quantity: u.Quantity,
			DateUsed: u.DateUsed,
			UsedBy:   u.UsedBy,
		})
	}
	for _, r := range p.Risks {
		out.Risks = append(out.Risks, models.RiskPayload{
			Title:          r.Title,
			Description:    r.Description,
			Level:          r.Level,
			Status:         r.Status,
			IdentifiedDate: r.IdentifiedDate,
			MitigationPlan: r.MitigationPlan,
			ResolvedDate:   r.ResolvedDate,
			Owner:          r.Owner,
		})
	}
	for _, t := range p.Tasks {
		out.Tasks = append(out.Tasks, models.TaskPayload{
			Title:       t.Title,
			Description: t.Description,
			AssignedTo:  t.AssignedTo,
			DueDate:     t.DueDate,
			Status:      t.Status,
			MilestoneID: t.MilestoneID,
		})
	}
	for _, u := range p.Users {
		out.Users = append(out.Users, u.ID)
	}
	return out
}
