package listing

import "github.com/rpupo63/solar-ops-backend/models"

// Search field sets per screen.

func ProjectFields(p models.Project) []string {
	return []string{p.Name, p.ID, p.Location}
}

func SiteFields(s models.Site) []string {
	return []string{s.Name, s.ID, s.Address}
}

func AccountFields(a models.Account) []string {
	return []string{a.Name, a.Email, a.ID, a.Company}
}

func InventoryFields(i models.InventoryItem) []string {
	return []string{i.Name, i.ID, i.Category, i.Specifications}
}

// ServiceOrderFields covers the order list.
func ServiceOrderFields(o models.ServiceOrder) []string {
	return []string{o.Title, o.ID, o.SiteID, o.Type}
}

// ProjectFilters filters by status and county.
func ProjectFilters(status, county string) []Filter[models.Project] {
	return []Filter[models.Project]{
		{Want: status, Field: func(p models.Project) string { return string(p.Status) }},
		{Want: county, Field: func(p models.Project) string { return p.County }},
	}
}

// SiteFilters filters by county and by "active" or "inactive".
func SiteFilters(county, state string) []Filter[models.Site] {
	return []Filter[models.Site]{
		{Want: county, Field: func(s models.Site) string { return s.County }},
		{Want: state, Field: func(s models.Site) string {
			if s.IsActive {
				return "active"
			}
			return "inactive"
		}},
	}
}

func AccountFilters(role, status string) []Filter[models.Account] {
	return []Filter[models.Account]{
		{Want: role, Field: func(a models.Account) string { return a.Role }},
		{Want: status, Field: func(a models.Account) string { return a.Status }},
	}
}

func InventoryFilters(category string) []Filter[models.InventoryItem] {
	return []Filter[models.InventoryItem]{
		{Want: category, Field: func(i models.InventoryItem) string { return i.Category }},
	}
}

func ServiceOrderFilters(siteID, orderType string) []Filter[models.ServiceOrder] {
	return []Filter[models.ServiceOrder]{
		{Want: siteID, Field: func(o models.ServiceOrder) string { return o.SiteID }},
		{Want: orderType, Field: func(o models.ServiceOrder) string { return o.Type }},
	}
}
