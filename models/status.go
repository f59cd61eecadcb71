package models

// ProjectStatus is the lifecycle state of an installation project.
type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "Planned"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectOnHold     ProjectStatus = "On Hold"
	ProjectCompleted  ProjectStatus = "Completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanned, ProjectInProgress, ProjectOnHold, ProjectCompleted:
		return true
	}
	return false
}

// MilestoneStatus is the state of a single milestone. Any status may follow any other.
type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "Pending"
	MilestoneInProgress MilestoneStatus = "In Progress"
	MilestoneCompleted  MilestoneStatus = "Completed"
	MilestoneDelayed    MilestoneStatus = "Delayed"
)

func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestonePending, MilestoneInProgress, MilestoneCompleted, MilestoneDelayed:
		return true
	}
	return false
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

type RiskStatus string

const (
	RiskOpen      RiskStatus = "Open"
	RiskMitigated RiskStatus = "Mitigated"
	RiskClosed    RiskStatus = "Closed"
	RiskAccepted  RiskStatus = "Accepted"
)

func (s RiskStatus) Valid() bool {
	switch s {
	case RiskOpen, RiskMitigated, RiskClosed, RiskAccepted:
		return true
	}
	return false
}

// Resolves reports whether moving a risk into s marks it resolved.
func (s RiskStatus) Resolves() bool {
	return s == RiskMitigated || s == RiskClosed
}

type TaskStatus string

const (
	TaskToDo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskToDo, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}
