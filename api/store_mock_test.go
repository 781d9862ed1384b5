package api

import (
	"context"
	"time"

	"taskboard-api/domain"
)

// mockStore returns canned results and records the arguments handlers pass
// through, so tests can assert on validation and patch shaping without a
// database.
type mockStore struct {
	orgs     []domain.Organization
	org      *domain.Organization
	projects []domain.Project
	project  *domain.Project
	tasks    []domain.Task
	task     *domain.Task
	report   *domain.StatusReport

	err           error // returned by every method when set
	getOrgErr     error
	getProjectErr error

	lastOrgID     int64
	lastID        int64
	lastFilter    domain.TaskFilter
	lastNewTask   domain.NewTask
	lastTaskPatch domain.TaskPatch
	lastProjPatch domain.ProjectPatch
	lastOrgPatch  domain.OrgPatch
	deleted       []int64
}

func (m *mockStore) ListOrgs(context.Context) ([]domain.Organization, error) {
	return m.orgs, m.err
}

func (m *mockStore) GetOrg(_ context.Context, id int64) (*domain.Organization, error) {
	m.lastID = id
	if m.getOrgErr != nil {
		return nil, m.getOrgErr
	}
	return m.org, m.err
}

func (m *mockStore) CreateOrg(_ context.Context, name string) (*domain.Organization, error) {
	return m.org, m.err
}

func (m *mockStore) UpdateOrg(_ context.Context, id int64, patch domain.OrgPatch) (*domain.Organization, error) {
	m.lastID = id
	m.lastOrgPatch = patch
	return m.org, m.err
}

func (m *mockStore) DeleteOrg(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockStore) ListProjects(_ context.Context, orgID int64) ([]domain.Project, error) {
	m.lastOrgID = orgID
	return m.projects, m.err
}

func (m *mockStore) GetProject(_ context.Context, orgID, id int64) (*domain.Project, error) {
	m.lastOrgID = orgID
	m.lastID = id
	if m.getProjectErr != nil {
		return nil, m.getProjectErr
	}
	return m.project, m.err
}

func (m *mockStore) CreateProject(_ context.Context, np domain.NewProject) (*domain.Project, error) {
	return m.project, m.err
}

func (m *mockStore) UpdateProject(_ context.Context, orgID, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	m.lastOrgID = orgID
	m.lastID = id
	m.lastProjPatch = patch
	return m.project, m.err
}

func (m *mockStore) DeleteProject(_ context.Context, orgID, id int64) error {
	m.lastOrgID = orgID
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockStore) ListTasks(_ context.Context, orgID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	m.lastOrgID = orgID
	m.lastFilter = filter
	return m.tasks, m.err
}

func (m *mockStore) GetTask(_ context.Context, orgID, id int64) (*domain.Task, error) {
	m.lastOrgID = orgID
	m.lastID = id
	return m.task, m.err
}

func (m *mockStore) CreateTask(_ context.Context, nt domain.NewTask) (*domain.Task, error) {
	m.lastNewTask = nt
	return m.task, m.err
}

func (m *mockStore) UpdateTask(_ context.Context, orgID, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	m.lastOrgID = orgID
	m.lastID = id
	m.lastTaskPatch = patch
	return m.task, m.err
}

func (m *mockStore) DeleteTask(_ context.Context, orgID, id int64) error {
	m.lastOrgID = orgID
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockStore) StatusReport(_ context.Context, orgID int64, now time.Time) (*domain.StatusReport, error) {
	m.lastOrgID = orgID
	return m.report, m.err
}
