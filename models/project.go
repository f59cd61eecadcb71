package models

// Project represents a solar installation project and everything it owns
type Project struct {
	ID                   string        `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Name                 string        `json:"name" db:"name" gorm:"type:text;not null"`
	Location             string        `json:"location" db:"location" gorm:"type:text;not null"`
	County               string        `json:"county" db:"county" gorm:"type:text;not null;index"`
	Capacity             string        `json:"capacity" db:"capacity" gorm:"type:text;not null"`
	Status               ProjectStatus `json:"status" db:"status" gorm:"type:text;not null;index"`
	StartDate            Date          `json:"startDate" db:"start_date" gorm:"type:date"`
	TargetCompletionDate Date          `json:"targetCompletionDate" db:"target_completion_date" gorm:"type:date"`
	ActualCompletionDate Date          `json:"actualCompletionDate,omitempty" db:"actual_completion_date" gorm:"type:date"`
	Progress             int           `json:"progress" db:"progress" gorm:"type:integer;not null;default:0"`

	Description     string `json:"description,omitempty" db:"description" gorm:"type:text"`
	ClientName      string `json:"clientName,omitempty" db:"client_name" gorm:"type:text"`
	ClientContact   string `json:"clientContact,omitempty" db:"client_contact" gorm:"type:text"`
	Budget          string `json:"budget,omitempty" db:"budget" gorm:"type:text"`
	SiteCoordinates string `json:"siteCoordinates,omitempty" db:"site_coordinates" gorm:"type:text"`
	ProjectManager  string `json:"projectManager,omitempty" db:"project_manager" gorm:"type:text"`
	TechnicalLead   string `json:"technicalLead,omitempty" db:"technical_lead" gorm:"type:text"`

	// RemoteID is the id the remote projects API assigned to the mirrored record
	RemoteID string `json:"remoteId,omitempty" db:"remote_id" gorm:"type:text;index"`

	Milestones     []Milestone      `json:"milestones" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	InventoryUsage []InventoryUsage `json:"inventoryUsage" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Risks          []Risk           `json:"risks" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Tasks          []Task           `json:"tasks" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Users          []User           `json:"users,omitempty" gorm:"many2many:project_users;constraint:OnDelete:CASCADE"`
}

// Milestone is a dated checkpoint whose completion drives project progress
type Milestone struct {
	ID            string          `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	ProjectID     string          `json:"-" db:"project_id" gorm:"type:text;not null;index:idx_milestone_project"`
	Position      int             `json:"-" db:"position" gorm:"type:integer;not null;default:0"`
	Title         string          `json:"title" db:"title" gorm:"type:text;not null"`
	Description   string          `json:"description" db:"description" gorm:"type:text"`
	DueDate       Date            `json:"dueDate" db:"due_date" gorm:"type:date"`
	CompletedDate Date            `json:"completedDate,omitempty" db:"completed_date" gorm:"type:date"`
	Status        MilestoneStatus `json:"status" db:"status" gorm:"type:text;not null"`
}

// Risk is a tracked potential issue on a project
type Risk struct {
	ID             string     `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	ProjectID      string     `json:"-" db:"project_id" gorm:"type:text;not null;index:idx_risk_project"`
	Title          string     `json:"title" db:"title" gorm:"type:text;not null"`
	Description    string     `json:"description" db:"description" gorm:"type:text;not null"`
	Level          RiskLevel  `json:"level" db:"level" gorm:"type:text;not null"`
	Status         RiskStatus `json:"status" db:"status" gorm:"type:text;not null"`
	IdentifiedDate Date       `json:"identifiedDate" db:"identified_date" gorm:"type:date"`
	MitigationPlan string     `json:"mitigationPlan,omitempty" db:"mitigation_plan" gorm:"type:text"`
	ResolvedDate   Date       `json:"resolvedDate,omitempty" db:"resolved_date" gorm:"type:date"`
	Owner          string     `json:"owner" db:"owner" gorm:"type:text"`
}

// Task is a unit of work optionally tied to a milestone of the same project
type Task struct {
	ID          string     `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	ProjectID   string     `json:"-" db:"project_id" gorm:"type:text;not null;index:idx_task_project"`
	Title       string     `json:"title" db:"title" gorm:"type:text;not null"`
	Description string     `json:"description" db:"description" gorm:"type:text"`
	AssignedTo  string     `json:"assignedTo" db:"assigned_to" gorm:"type:text"`
	DueDate     Date       `json:"dueDate" db:"due_date" gorm:"type:date"`
	Status      TaskStatus `json:"status" db:"status" gorm:"type:text;not null"`
	MilestoneID string     `json:"milestoneId" db:"milestone_id" gorm:"type:text"`
}

// InventoryUsage records catalog items consumed by a project
type InventoryUsage struct {
	ID        string `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	ProjectID string `json:"-" db:"project_id" gorm:"type:text;not null;index:idx_inventory_usage_project"`
	ItemID    string `json:"itemId" db:"item_id" gorm:"type:text;not null"`
	ItemName  string `json:"itemName" db:"item_name" gorm:"type:text;not null"`
	Quantity  int    `json:"quantity" db:"quantity" gorm:"type:integer;not null"`
	DateUsed  Date   `json:"dateUsed" db:"date_used" gorm:"type:date"`
	UsedBy    string `json:"usedBy,omitempty" db:"used_by" gorm:"type:text"`
}

// User is a person who can be assigned to projects
type User struct {
	ID    string `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Name  string `json:"name" db:"name" gorm:"type:text;not null"`
	Email string `json:"email" db:"email" gorm:"type:text"`
}

// Clone returns a deep copy of p. Owned slices are never shared with the copy.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Milestones = append([]Milestone(nil), p.Milestones...)
	c.InventoryUsage = append([]InventoryUsage(nil), p.InventoryUsage...)
	c.Risks = append([]Risk(nil), p.Risks...)
	c.Tasks = append([]Task(nil), p.Tasks...)
	c.Users = append([]User(nil), p.Users...)
	return &c
}

// MilestoneIndex returns the position of the milestone with the given id, or -1.
func (p *Project) MilestoneIndex(id string) int {
	for i := range p.Milestones {
		if p.Milestones[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Project) RiskIndex(id string) int {
	for i := range p.Risks {
		if p.Risks[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Project) TaskIndex(id string) int {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
