package domain

import "time"

// StatusReport summarizes an org's projects and tasks at a point in time.
// StatusCounts only includes statuses that actually occur. OverdueOpenTasks
// counts tasks whose due date is strictly before GeneratedAt and whose
// status is not DONE.
type StatusReport struct {
	TotalProjects    int64            `json:"totalProjects"`
	TotalTasks       int64            `json:"totalTasks"`
	OverdueOpenTasks int64            `json:"overdueOpenTasks"`
	StatusCounts     map[Status]int64 `json:"statusCounts"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}
