package domain

import "fmt"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "Pendiente"
	StatusInProgress Status = "En Proceso"
	StatusDone       Status = "Terminado"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDone
}

// ParseStatus accepts the stored value or the English alias
// (pending, in-progress, done).
func ParseStatus(s string) (Status, error) {
	switch s {
	case string(StatusPending), "pending":
		return StatusPending, nil
	case string(StatusInProgress), "in-progress", "in_progress", "inprogress":
		return StatusInProgress, nil
	case string(StatusDone), "done":
		return StatusDone, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Priority of a task.
type Priority string

const (
	PriorityHigh   Priority = "Alta"
	PriorityMedium Priority = "Media"
	PriorityLow    Priority = "Baja"
)

// Priorities lists every priority from highest to lowest.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority accepts the stored value or the English alias.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case string(PriorityHigh), "high":
		return PriorityHigh, nil
	case string(PriorityMedium), "medium":
		return PriorityMedium, nil
	case string(PriorityLow), "low":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Country is the regional tag of a task.
type Country string

const (
	CountrySV       Country = "SV"
	CountryGT       Country = "GT"
	CountryCR       Country = "CR"
	CountryRegional Country = "Reg"
)

// Countries lists every regional tag in display order.
var Countries = []Country{CountrySV, CountryGT, CountryCR, CountryRegional}

// IsValid reports whether c is one of the known countries.
func (c Country) IsValid() bool {
	switch c {
	case CountrySV, CountryGT, CountryCR, CountryRegional:
		return true
	}
	return false
}

// ParseCountry parses a regional tag.
func ParseCountry(s string) (Country, error) {
	c := Country(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown country %q", s)
	}
	return c, nil
}

// Task represents a unit of work tracked on the dashboard.
// The JSON encoding is the storage format and must round-trip exactly.
type Task struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Owner         string   `json:"owner"`
	AssignedCount int      `json:"assignedCount"`
	WorkedCount   int      `json:"workedCount"`
	Country       Country  `json:"country"`
	Priority      Priority `json:"priority"`
	StartDate     string   `json:"startDate"`
	DueDate       string   `json:"dueDate"`
	Status        Status   `json:"status"`
}

// HasID reports whether the task already carries an identifier, which
// distinguishes an edit from a create.
func (t Task) HasID() bool {
	return t.ID != ""
}

// WithStatus returns a copy of the task with its status replaced.
func (t Task) WithStatus(s Status) Task {
	t.Status = s
	return t
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}
