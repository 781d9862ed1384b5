package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard-api/domain"
)

// normalizeDescription trims textual descriptions; null, absent and
// all-whitespace inputs all normalize to cleared.
func normalizeDescription(v any) *string {
	s, isString := v.(string)
	if !isString {
		return nil
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func listProjects(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		m := newRequestMetrics(cfg.Logger, "list_projects")
		defer func() { m.Log(c.Response().Status, err) }()

		orgID, perr := scope(c)
		if perr != nil {
			m.SetErrorStage("scope")
			err = perr.respond(c)
			return err
		}

		fetchStart := time.Now()
		projects, fetchErr := cfg.Store.ListProjects(c.Request().Context(), orgID)
		m.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			m.SetErrorStage("storage")
			err = storeError(c, fetchErr, "")
			return err
		}
		m.SetRowsReturned(len(projects))

		err = ok(c, map[string]any{"orgId": orgID, "projects": projects})
		return err
	}
}

func createProject(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := scope(c)
		if perr != nil {
			return perr.respond(c)
		}
		body, err := decodeBody(c)
		if err != nil {
			return fail(c, http.StatusBadRequest, "Invalid JSON body")
		}

		if !NonEmptyString(body["name"]) {
			return fail(c, http.StatusBadRequest, "name is required")
		}
		if !OptionalString(body["description"]) {
			return fail(c, http.StatusBadRequest, "description must be a string")
		}

		ctx := c.Request().Context()

		// Existence pre-check so a bad org yields a clean 404 instead of a
		// surfaced constraint error.
		if _, err := cfg.Store.GetOrg(ctx, orgID); err != nil {
			return storeError(c, err, "Organization not found")
		}

		project, err := cfg.Store.CreateProject(ctx, domain.NewProject{
			OrgID:       orgID,
			Name:        strings.TrimSpace(body["name"].(string)),
			Description: normalizeDescription(body["description"]),
		})
		if err != nil {
			return storeError(c, err, "Organization not found")
		}
		return ok(c, map[string]any{"projectId": project.ID, "project": project})
	}
}

func getProject(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := scope(c)
		if perr != nil {
			return perr.respond(c)
		}
		projectID, perr := parseIntParam(c.Param("projectId"), "projectId")
		if perr != nil {
			return perr.respond(c)
		}

		ctx := c.Request().Context()
		project, err := cfg.Store.GetProject(ctx, orgID, projectID)
		if err != nil {
			return storeError(c, err, "Project not found")
		}

		// The board view wants the project's tasks alongside it.
		tasks, err := cfg.Store.ListTasks(ctx, orgID, domain.TaskFilter{ProjectID: &projectID})
		if err != nil {
			return storeError(c, err, "Project not found")
		}
		return ok(c, map[string]any{"project": project, "tasks": tasks})
	}
}

func updateProject(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := scope(c)
		if perr != nil {
			return perr.respond(c)
		}
		projectID, perr := parseIntParam(c.Param("projectId"), "projectId")
		if perr != nil {
			return perr.respond(c)
		}
		body, err := decodeBody(c)
		if err != nil {
			return fail(c, http.StatusBadRequest, "Invalid JSON body")
		}

		patch := domain.ProjectPatch{}
		if _, present := body["name"]; present {
			if !NonEmptyString(body["name"]) {
				return fail(c, http.StatusBadRequest, "name must be a non-empty string")
			}
			name := strings.TrimSpace(body["name"].(string))
			patch.Name = &name
		}
		if _, present := body["description"]; present {
			if !OptionalString(body["description"]) {
				return fail(c, http.StatusBadRequest, "description must be a string")
			}
			patch.Description = normalizeDescription(body["description"])
			patch.DescriptionSet = true
		}
		if patch.Empty() {
			return fail(c, http.StatusBadRequest, "no fields to update")
		}

		project, err := cfg.Store.UpdateProject(c.Request().Context(), orgID, projectID, patch)
		if err != nil {
			return storeError(c, err, "Project not found")
		}
		return ok(c, map[string]any{"project": project})
	}
}

func deleteProject(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := scope(c)
		if perr != nil {
			return perr.respond(c)
		}
		projectID, perr := parseIntParam(c.Param("projectId"), "projectId")
		if perr != nil {
			return perr.respond(c)
		}

		if err := cfg.Store.DeleteProject(c.Request().Context(), orgID, projectID); err != nil {
			return storeError(c, err, "Project not found")
		}
		return ok(c, map[string]any{"deleted": true, "projectId": projectID})
	}
}
