package model

import "time"

// Layouts used for the optional schedule fields of a task.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Priority is the optional urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the valid priorities from least to most urgent.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single user-created item. Tasks are never removed from the
// collection; Deleted marks a task as being in the trash.
type Task struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id" yaml:"id"`

	// Title is the display text. Never empty for a stored task.
	Title string `json:"title" yaml:"title"`

	// Date is the scheduled calendar day (YYYY-MM-DD), nil when unscheduled.
	Date *string `json:"date" yaml:"date,omitempty"`

	// Time is the time of day (HH:MM). Only meaningful alongside Date.
	Time *string `json:"time" yaml:"time,omitempty"`

	// Priority is nil when the user did not pick one.
	Priority *Priority `json:"priority" yaml:"priority,omitempty"`

	Label       *string `json:"label" yaml:"label,omitempty"`
	Assignee    *string `json:"assignee" yaml:"assignee,omitempty"`
	Description *string `json:"description" yaml:"description,omitempty"`

	Completed bool `json:"completed" yaml:"completed"`
	Favorite  bool `json:"favorite" yaml:"favorite"`
	Deleted   bool `json:"deleted" yaml:"deleted"`

	// CreatedAt increases strictly with creation order.
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Clone returns a deep copy of t so callers cannot reach the store's
// copy through the optional field pointers.
func (t Task) Clone() Task {
	c := t
	c.Date = cloneString(t.Date)
	c.Time = cloneString(t.Time)
	c.Label = cloneString(t.Label)
	c.Assignee = cloneString(t.Assignee)
	c.Description = cloneString(t.Description)
	if t.Priority != nil {
		p := *t.Priority
		c.Priority = &p
	}
	return c
}

// HasAssignee reports whether the task is assigned to a member.
func (t Task) HasAssignee() bool {
	return t.Assignee != nil && *t.Assignee != ""
}

// Draft is the unvalidated input for creating a task. It is checked and
// normalized by the task store before a Task is built from it.
type Draft struct {
	Title       string
	Date        *string
	Time        *string
	Priority    *Priority
	Label       *string
	Assignee    *string
	Description *string
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value behind s, or "" when s is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
