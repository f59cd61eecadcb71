package models

// ProjectPayload is the body the remote projects API expects.
// Sub-records carry no internal ids and users are flattened to their ids.
type ProjectPayload struct {
	Name                 string        `json:"name"`
	Location             string        `json:"location"`
	County               string        `json:"county"`
	Capacity             string        `json:"capacity"`
	Status               ProjectStatus `json:"status"`
	StartDate            Date          `json:"startDate"`
	TargetCompletionDate Date          `json:"targetCompletionDate"`
	ActualCompletionDate Date          `json:"actualCompletionDate,omitempty"`
	Progress             int           `json:"progress"`
	Description          string        `json:"description,omitempty"`
	ClientName           string        `json:"clientName,omitempty"`
	ClientContact        string        `json:"clientContact,omitempty"`
	Budget               string        `json:"budget,omitempty"`
	SiteCoordinates      string        `json:"siteCoordinates,omitempty"`
	ProjectManager       string        `json:"projectManager,omitempty"`
	TechnicalLead        string        `json:"technicalLead,omitempty"`

	Milestones     []MilestonePayload      `json:"milestones"`
	InventoryUsage []InventoryUsagePayload `json:"inventoryUsage"`
	Risks          []RiskPayload           `json:"risks"`
	Tasks          []TaskPayload           `json:"tasks"`
	Users          []string                `json:"users"`
}

type MilestonePayload struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	DueDate       Date            `json:"dueDate"`
	CompletedDate Date            `json:"completedDate,omitempty"`
	Status        MilestoneStatus `json:"status"`
}

type InventoryUsagePayload struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
	DateUsed Date   `json:"dateUsed"`
	UsedBy   string `json:"usedBy,omitempty"`
}

type RiskPayload struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Level          RiskLevel  `json:"level"`
	Status         RiskStatus `json:"status"`
	IdentifiedDate Date       `json:"identifiedDate"`
	MitigationPlan string     `json:"mitigationPlan,omitempty"`
	ResolvedDate   Date       `json:"resolvedDate,omitempty"`
	Owner          string     `json:"owner"`
}

type TaskPayload struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assignedTo"`
	DueDate     Date       `json:"dueDate"`
	Status      TaskStatus `json:"status"`
	MilestoneID string     `json:"milestoneId,omitempty"`
}
