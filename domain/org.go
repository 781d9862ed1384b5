package domain

import "time"

// Organization is the top-level tenant boundary owning projects.
type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrgPatch carries a partial organization update.
type OrgPatch struct {
	Name *string
}

// Empty reports whether the patch would change nothing.
func (p OrgPatch) Empty() bool { return p.Name == nil }
