package api

import (
	"context"
	"time"

	"taskboard-api/domain"
)

// Store abstracts persistence for handlers.
type Store interface {
	ListOrgs(ctx context.Context) ([]domain.Organization, error)
	GetOrg(ctx context.Context, id int64) (*domain.Organization, error)
	CreateOrg(ctx context.Context, name string) (*domain.Organization, error)
	UpdateOrg(ctx context.Context, id int64, patch domain.OrgPatch) (*domain.Organization, error)
	DeleteOrg(ctx context.Context, id int64) error

	ListProjects(ctx context.Context, orgID int64) ([]domain.Project, error)
	GetProject(ctx context.Context, orgID, id int64) (*domain.Project, error)
	CreateProject(ctx context.Context, np domain.NewProject) (*domain.Project, error)
	UpdateProject(ctx context.Context, orgID, id int64, patch domain.ProjectPatch) (*domain.Project, error)
	DeleteProject(ctx context.Context, orgID, id int64) error

	ListTasks(ctx context.Context, orgID int64, filter domain.TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, orgID, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, nt domain.NewTask) (*domain.Task, error)
	UpdateTask(ctx context.Context, orgID, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, orgID, id int64) error

	StatusReport(ctx context.Context, orgID int64, now time.Time) (*domain.StatusReport, error)
}
