// Package api implements the HTTP surface: one handler set mounted twice,
// scoped by identity headers under /api and by the orgId query parameter
// under the non-production /api/dev family.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/storage"
)

// Config carries the dependencies handlers need.
type Config struct {
	Store      Store
	Auth       Authenticator
	Logger     *log.Logger
	Production bool
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, cfg Config) {
	e.GET("/healthz", health())

	mount(e.Group("/api"), cfg, identityOrg(cfg.Auth))

	dev := e.Group("/api/dev", devOnly(cfg.Production))
	dev.GET("/health", health())
	mount(dev, cfg, queryOrg)
}

func mount(g *echo.Group, cfg Config, scope orgResolver) {
	g.GET("/orgs", listOrgs(cfg))
	g.POST("/orgs", createOrg(cfg))
	g.GET("/orgs/:orgId", getOrg(cfg))
	g.PATCH("/orgs/:orgId", updateOrg(cfg))
	g.DELETE("/orgs/:orgId", deleteOrg(cfg))

	g.GET("/projects", listProjects(cfg, scope))
	g.POST("/projects", createProject(cfg, scope))
	g.GET("/projects/:projectId", getProject(cfg, scope))
	g.PATCH("/projects/:projectId", updateProject(cfg, scope))
	g.DELETE("/projects/:projectId", deleteProject(cfg, scope))

	g.GET("/tasks", listTasks(cfg, scope))
	g.POST("/tasks", createTask(cfg, scope))
	g.GET("/tasks/:taskId", getTask(cfg, scope))
	g.PATCH("/tasks/:taskId", updateTask(cfg, scope))
	g.DELETE("/tasks/:taskId", deleteTask(cfg, scope))

	g.GET("/reports/status", statusReport(cfg, scope))
}

func health() echo.HandlerFunc {
	return func(c echo.Context) error {
		return ok(c, map[string]any{"ts": time.Now().UTC().Format(time.RFC3339)})
	}
}

// storeError maps store failures onto the error taxonomy: absent or
// cross-tenant rows become 404, constraint violations 409 with detail,
// everything else 500.
func storeError(c echo.Context, err error, notFoundMsg string) error {
	var conflict *storage.ConflictError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fail(c, http.StatusNotFound, notFoundMsg)
	case errors.As(err, &conflict):
		return failDetail(c, http.StatusConflict, "write conflict", conflict.Detail())
	default:
		c.Logger().Error(err)
		return fail(c, http.StatusInternalServerError, err.Error())
	}
}
