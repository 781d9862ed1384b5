// Package web serves the two browser views: the project dashboard and the
// per-project task board. Both render server-side and use the JSON API for
// mutations.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard-api/api"
	"taskboard-api/domain"
	"taskboard-api/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// Store is the subset of persistence the views read.
type Store interface {
	ListProjects(ctx context.Context, orgID int64) ([]domain.Project, error)
	GetProject(ctx context.Context, orgID, id int64) (*domain.Project, error)
	ListTasks(ctx context.Context, orgID int64, filter domain.TaskFilter) ([]domain.Task, error)
}

// renderer adapts html/template to echo's Renderer interface.
type renderer struct {
	templates *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Register parses the view templates and mounts the browser routes.
func Register(e *echo.Echo, store Store, auth api.Authenticator) error {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}
	e.Renderer = &renderer{templates: templates}

	e.GET("/", dashboard(store, auth))
	e.GET("/projects/:projectId", board(store, auth))
	return nil
}

type dashboardData struct {
	OrgID    int64
	Projects []domain.Project
}

func dashboard(store Store, auth api.Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := auth.Identify(c.Request().Header)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		projects, err := store.ListProjects(c.Request().Context(), ident.OrgID)
		if err != nil {
			return err
		}
		return c.Render(http.StatusOK, "dashboard.html", dashboardData{
			OrgID:    ident.OrgID,
			Projects: projects,
		})
	}
}

// boardColumn is one status column on the kanban board.
type boardColumn struct {
	Status domain.Status
	Tasks  []domain.Task
}

type boardData struct {
	OrgID    int64
	Project  *domain.Project
	Columns  []boardColumn
	Statuses []domain.Status
}

func board(store Store, auth api.Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := auth.Identify(c.Request().Header)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		projectID := api.PositiveInt(c.Param("projectId"))
		if projectID == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "projectId must be a positive integer")
		}

		ctx := c.Request().Context()
		project, err := store.GetProject(ctx, ident.OrgID, *projectID)
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		if err != nil {
			return err
		}

		tasks, err := store.ListTasks(ctx, ident.OrgID, domain.TaskFilter{ProjectID: projectID})
		if err != nil {
			return err
		}

		// ListTasks orders by position then id, so per-column order holds.
		byStatus := make(map[domain.Status][]domain.Task, len(domain.Statuses))
		for _, t := range tasks {
			byStatus[t.Status] = append(byStatus[t.Status], t)
		}
		columns := make([]boardColumn, 0, len(domain.Statuses))
		for _, status := range domain.Statuses {
			columns = append(columns, boardColumn{Status: status, Tasks: byStatus[status]})
		}

		return c.Render(http.StatusOK, "board.html", boardData{
			OrgID:    ident.OrgID,
			Project:  project,
			Columns:  columns,
			Statuses: domain.Statuses,
		})
	}
}
