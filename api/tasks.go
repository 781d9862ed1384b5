package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard-api/domain"
)

func listTasks(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		m := newRequestMetrics(cfg.Logger, "list_tasks")
		defer func() { m.Log(c.Response().Status, err) }()

		orgID, perr := scope(c)
		if perr != nil {
			m.SetErrorStage("scope")
			err = perr.respond(c)
			return err
		}

		filter := domain.TaskFilter{}
		if raw := c.QueryParam("projectId"); raw != "" {
			projectID, perr := parseIntParam(raw, "projectId")
			if perr != nil {
				m.SetErrorStage("invalid_project_id")
				err = perr.respond(c)
				return err
			}
			filter.ProjectID = &projectID
		}
		if raw := c.QueryParam("status"); raw != "" {
			status, valid := ParseStatus(raw)
			if !valid {
				m.SetErrorStage("invalid_status")
				err = fail(c, http.StatusBadRequest, "status is invalid")
				return err
			}
			filter.Status = &status
		}

		fetchStart := time.Now()
		tasks, fetchErr := cfg.Store.ListTasks(c.Request().Context(), orgID, filter)
		m.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			m.SetErrorStage("storage")
			err = storeError(c, fetchErr, "")
			return err
		}
		m.SetRowsReturned(len(tasks))

		err = ok(c, map[string]any{"orgId": orgID, "tasks": tasks})
		return err
	}
}

func createTask(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := scope(c)
		if perr != nil {
			return perr.respond(c)
		}
		body, err := decodeBody(c)
		if err != nil {
			return fail(c, http.StatusBadRequest, "Invalid JSON body")
		}

		projectID, perr := parseBodyInt(body["projectId"], "projectId")
		if perr != nil {
			return perr.respond(c)
		}
		if !NonEmptyString(body["title"]) {
			return fail(c, http.StatusBadRequest, "title is required")
		}
		if !OptionalString(body["description"]) {
			return fail(c, http.StatusBadRequest, "description must be a string")
		}

		status := domain.StatusTodo
		if raw, present := body["status"]; present && raw != nil {
			parsed, valid := ParseStatus(raw)
			if !valid {
				return fail(c, http.StatusBadRequest, "status is invalid")
			}
			status = parsed
		}

		var position int64
		if raw, present := body["position"]; present && raw != nil {
			n, isInt := Int(raw)
			if !isInt || n < 0 {
				return fail(c, http.StatusBadRequest, "position must be an integer >= 0")
			}
			position = n
		}

		dueDate := ParseISODate(body["dueDate"])
		if raw, present := body["dueDate"]; present && raw != nil && dueDate == nil {
			return fail(c, http.StatusBadRequest, "dueDate must be ISO date string or null")
		}

		ctx := c.Request().Context()

		// Verify the project belongs to the stated org before the insert;
		// the foreign key would catch it too, but as an opaque 409.
		if _, err := cfg.Store.GetProject(ctx, orgID, projectID); err != nil {
			return storeError(c, err, "Project not found for this org")
		}

		task, err := cfg.Store.CreateTask(ctx, domain.NewTask{
			OrgID:       orgID,
			ProjectID:   projectID,
			Title:       strings.TrimSpace(body["title"].(string)),
			Description: normalizeDescription(body["description"]),
			Status:      status,
			Position:    position,
			DueDate:     dueDate,
		})
		if err != nil {
			return storeError(c, err, "Project not found for this org")
		}
		return ok(c, map[string]any{"taskId": task.ID, "task": task})
	}
}

func getTask(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := scope(c)
		if perr != nil {
			return perr.respond(c)
		}
		taskID, perr := parseIntParam(c.Param("taskId"), "taskId")
		if perr != nil {
			return perr.respond(c)
		}

		task, err := cfg.Store.GetTask(c.Request().Context(), orgID, taskID)
		if err != nil {
			return storeError(c, err, "Task not found")
		}
		return ok(c, map[string]any{"task": task})
	}
}

func updateTask(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := scope(c)
		if perr != nil {
			return perr.respond(c)
		}
		taskID, perr := parseIntParam(c.Param("taskId"), "taskId")
		if perr != nil {
			return perr.respond(c)
		}
		body, err := decodeBody(c)
		if err != nil {
			return fail(c, http.StatusBadRequest, "Invalid JSON body")
		}

		ctx := c.Request().Context()
		patch := domain.TaskPatch{}

		if _, present := body["title"]; present {
			if !NonEmptyString(body["title"]) {
				return fail(c, http.StatusBadRequest, "title must be a non-empty string")
			}
			title := strings.TrimSpace(body["title"].(string))
			patch.Title = &title
		}
		if _, present := body["description"]; present {
			if !OptionalString(body["description"]) {
				return fail(c, http.StatusBadRequest, "description must be a string")
			}
			patch.Description = normalizeDescription(body["description"])
			patch.DescriptionSet = true
		}
		if raw, present := body["status"]; present {
			status, valid := ParseStatus(raw)
			if !valid {
				return fail(c, http.StatusBadRequest, "status is invalid")
			}
			patch.Status = &status
		}
		if raw, present := body["position"]; present {
			n, isInt := Int(raw)
			if !isInt || n < 0 {
				return fail(c, http.StatusBadRequest, "position must be an integer >= 0")
			}
			patch.Position = &n
		}
		if raw, present := body["dueDate"]; present {
			parsed := ParseISODate(raw)
			if raw != nil && parsed == nil {
				return fail(c, http.StatusBadRequest, "dueDate must be ISO date string or null")
			}
			patch.DueDate = parsed
			patch.DueDateSet = true
		}
		if raw, present := body["projectId"]; present {
			projectID, perr := parseBodyInt(raw, "projectId")
			if perr != nil {
				return perr.respond(c)
			}
			// Reassignment re-validates the new project's org membership.
			if _, err := cfg.Store.GetProject(ctx, orgID, projectID); err != nil {
				return storeError(c, err, "Project not found for this org")
			}
			patch.ProjectID = &projectID
		}

		if patch.Empty() {
			return fail(c, http.StatusBadRequest, "no fields to update")
		}

		task, err := cfg.Store.UpdateTask(ctx, orgID, taskID, patch)
		if err != nil {
			return storeError(c, err, "Task not found")
		}
		return ok(c, map[string]any{"task": task})
	}
}

func deleteTask(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := scope(c)
		if perr != nil {
			return perr.respond(c)
		}
		taskID, perr := parseIntParam(c.Param("taskId"), "taskId")
		if perr != nil {
			return perr.respond(c)
		}

		if err := cfg.Store.DeleteTask(c.Request().Context(), orgID, taskID); err != nil {
			return storeError(c, err, "Task not found")
		}
		return ok(c, map[string]any{"deleted": true, "taskId": taskID})
	}
}
