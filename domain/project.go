package domain

import "time"

// Project is a named unit of work within an org, owning tasks. The org
// reference is immutable after creation.
type Project struct {
	ID          int64     `json:"id"`
	OrgID       int64     `json:"orgId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProject carries the fields required to create a project.
type NewProject struct {
	OrgID       int64
	Name        string
	Description *string
}

// ProjectPatch carries a partial project update. Description is clearable,
// so presence is tracked separately from the value.
type ProjectPatch struct {
	Name           *string
	Description    *string
	DescriptionSet bool
}

// Empty reports whether the patch would change nothing.
func (p ProjectPatch) Empty() bool { return p.Name == nil && !p.DescriptionSet }
