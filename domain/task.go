package domain

import "time"

// Status classifies where a task sits on the board.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusBlocked    Status = "BLOCKED"
)

// Statuses lists every accepted task status in board order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusBlocked, StatusDone}

// Valid reports whether s is a member of the status enum.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusBlocked:
		return true
	}
	return false
}

// Task is a unit of work within a project. OrgID is a denormalized copy of
// the owning project's org so org-scoped queries never need a join; it must
// always match the project's org.
type Task struct {
	ID          int64      `json:"id"`
	OrgID       int64      `json:"orgId"`
	ProjectID   int64      `json:"projectId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	Position    int64      `json:"position"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask carries the fields required to create a task.
type NewTask struct {
	OrgID       int64
	ProjectID   int64
	Title       string
	Description *string
	Status      Status
	Position    int64
	DueDate     *time.Time
}

// TaskPatch carries a partial task update. Nil pointer fields are left
// untouched. Description and DueDate are clearable, so presence is tracked
// separately from the value: Set=true with a nil value clears the field.
type TaskPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *Status
	Position       *int64
	ProjectID      *int64
	DueDate        *time.Time
	DueDateSet     bool
}

// Empty reports whether the patch would change nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && !p.DescriptionSet && p.Status == nil &&
		p.Position == nil && p.ProjectID == nil && !p.DueDateSet
}

// TaskFilter narrows an org-scoped task listing.
type TaskFilter struct {
	ProjectID *int64
	Status    *Status
}
