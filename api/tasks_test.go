package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard-api/domain"
	"taskboard-api/storage"
)

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func sampleTask() *domain.Task {
	return &domain.Task{ID: 9, OrgID: 5, ProjectID: 2, Title: "t", Status: domain.StatusTodo}
}

func TestListTasksAppliesScopeAndFilters(t *testing.T) {
	store := &mockStore{tasks: []domain.Task{*sampleTask()}}
	c, rec := newContext(t, http.MethodGet, "/api/dev/tasks?orgId=5&projectId=2&status=TODO", "")

	h := listTasks(Config{Store: store}, queryOrg)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.lastOrgID != 5 {
		t.Fatalf("expected org scope 5, got %d", store.lastOrgID)
	}
	if store.lastFilter.ProjectID == nil || *store.lastFilter.ProjectID != 2 {
		t.Fatalf("expected projectId filter 2, got %+v", store.lastFilter)
	}
	if store.lastFilter.Status == nil || *store.lastFilter.Status != domain.StatusTodo {
		t.Fatalf("expected status filter TODO, got %+v", store.lastFilter)
	}

	body := decodeEnvelope(t, rec)
	if body["ok"] != true {
		t.Fatalf("expected ok envelope, got %v", body)
	}
}

func TestListTasksRejectsBadOrgScope(t *testing.T) {
	for _, target := range []string{"/api/dev/tasks", "/api/dev/tasks?orgId=0", "/api/dev/tasks?orgId=-3", "/api/dev/tasks?orgId=abc"} {
		store := &mockStore{}
		c, rec := newContext(t, http.MethodGet, target, "")
		if err := listTasks(Config{Store: store}, queryOrg)(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
		body := decodeEnvelope(t, rec)
		if body["ok"] != false || body["message"] == "" {
			t.Fatalf("%s: bad failure envelope: %v", target, body)
		}
	}
}

func TestListTasksRejectsInvalidStatus(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/api/dev/tasks?orgId=1&status=SHIPPED", "")
	if err := listTasks(Config{Store: &mockStore{}}, queryOrg)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListTasksUnauthorizedWithoutIdentityInProduction(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/api/tasks", "")
	scope := identityOrg(HeaderAuth{Production: true})
	if err := listTasks(Config{Store: &mockStore{}}, scope)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	store := &mockStore{project: &domain.Project{ID: 2, OrgID: 5}, task: sampleTask()}
	c, rec := newContext(t, http.MethodPost, "/api/dev/tasks?orgId=5",
		`{"projectId": 2, "title": "  Ship it  "}`)

	if err := createTask(Config{Store: store}, queryOrg)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	nt := store.lastNewTask
	if nt.Title != "Ship it" {
		t.Fatalf("expected trimmed title, got %q", nt.Title)
	}
	if nt.Status != domain.StatusTodo {
		t.Fatalf("expected default status TODO, got %q", nt.Status)
	}
	if nt.Position != 0 {
		t.Fatalf("expected default position 0, got %d", nt.Position)
	}
	if nt.DueDate != nil || nt.Description != nil {
		t.Fatalf("expected nil optional fields, got %+v", nt)
	}
	if nt.OrgID != 5 || nt.ProjectID != 2 {
		t.Fatalf("unexpected scoping: %+v", nt)
	}
}

func TestCreateTaskProjectOutsideOrgIs404(t *testing.T) {
	store := &mockStore{getProjectErr: storage.ErrNotFound}
	c, rec := newContext(t, http.MethodPost, "/api/dev/tasks?orgId=5",
		`{"projectId": 2, "title": "x"}`)

	if err := createTask(Config{Store: store}, queryOrg)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Project not found for this org" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestCreateTaskValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"projectId": 2}`},
		{"whitespace title", `{"projectId": 2, "title": "   "}`},
		{"missing projectId", `{"title": "x"}`},
		{"bad status", `{"projectId": 2, "title": "x", "status": "LATER"}`},
		{"negative position", `{"projectId": 2, "title": "x", "position": -1}`},
		{"fractional position", `{"projectId": 2, "title": "x", "position": 1.5}`},
		{"bad dueDate", `{"projectId": 2, "title": "x", "dueDate": "soon"}`},
		{"numeric description", `{"projectId": 2, "title": "x", "description": 4}`},
		{"not json", `[1, 2]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockStore{project: &domain.Project{ID: 2, OrgID: 5}, task: sampleTask()}
			c, rec := newContext(t, http.MethodPost, "/api/dev/tasks?orgId=5", tc.body)
			if err := createTask(Config{Store: store}, queryOrg)(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateTaskEmptyBodyRejected(t *testing.T) {
	store := &mockStore{task: sampleTask()}
	c, rec := newContext(t, http.MethodPatch, "/api/dev/tasks/9?orgId=5", `{}`)
	c.SetParamNames("taskId")
	c.SetParamValues("9")

	if err := updateTask(Config{Store: store}, queryOrg)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "no fields to update" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestUpdateTaskDueDateNullClearsAbsentLeaves(t *testing.T) {
	// Explicit null must produce a set-but-nil patch.
	store := &mockStore{task: sampleTask()}
	c, rec := newContext(t, http.MethodPatch, "/api/dev/tasks/9?orgId=5", `{"dueDate": null}`)
	c.SetParamNames("taskId")
	c.SetParamValues("9")
	if err := updateTask(Config{Store: store}, queryOrg)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !store.lastTaskPatch.DueDateSet || store.lastTaskPatch.DueDate != nil {
		t.Fatalf("null dueDate should clear: %+v", store.lastTaskPatch)
	}

	// An absent key must leave the field untouched.
	store = &mockStore{task: sampleTask()}
	c, rec = newContext(t, http.MethodPatch, "/api/dev/tasks/9?orgId=5", `{"title": "renamed"}`)
	c.SetParamNames("taskId")
	c.SetParamValues("9")
	if err := updateTask(Config{Store: store}, queryOrg)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if store.lastTaskPatch.DueDateSet {
		t.Fatalf("absent dueDate should not be set: %+v", store.lastTaskPatch)
	}
	if store.lastTaskPatch.Title == nil || *store.lastTaskPatch.Title != "renamed" {
		t.Fatalf("title patch missing: %+v", store.lastTaskPatch)
	}
}

func TestUpdateTaskParsesDueDate(t *testing.T) {
	store := &mockStore{task: sampleTask()}
	c, rec := newContext(t, http.MethodPatch, "/api/dev/tasks/9?orgId=5",
		`{"dueDate": "2026-09-15T00:00:00Z"}`)
	c.SetParamNames("taskId")
	c.SetParamValues("9")
	if err := updateTask(Config{Store: store}, queryOrg)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if store.lastTaskPatch.DueDate == nil || !store.lastTaskPatch.DueDate.Equal(want) {
		t.Fatalf("dueDate patch = %v, want %v", store.lastTaskPatch.DueDate, want)
	}
}

func TestUpdateTaskProjectReassignValidatesOrg(t *testing.T) {
	store := &mockStore{task: sampleTask(), getProjectErr: storage.ErrNotFound}
	c, rec := newContext(t, http.MethodPatch, "/api/dev/tasks/9?orgId=5", `{"projectId": 3}`)
	c.SetParamNames("taskId")
	c.SetParamValues("9")
	if err := updateTask(Config{Store: store}, queryOrg)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateTaskConflictSurfacesDetail(t *testing.T) {
	store := &mockStore{err: storage.NewConflictError(errors.New("CHECK constraint failed: position"))}
	c, rec := newContext(t, http.MethodPatch, "/api/dev/tasks/9?orgId=5", `{"position": 4}`)
	c.SetParamNames("taskId")
	c.SetParamValues("9")
	if err := updateTask(Config{Store: store}, queryOrg)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	if _, hasDetail := body["detail"]; !hasDetail {
		t.Fatalf("expected detail field: %v", body)
	}
}

func TestDeleteTaskEchoesID(t *testing.T) {
	store := &mockStore{}
	c, rec := newContext(t, http.MethodDelete, "/api/dev/tasks/9?orgId=5", "")
	c.SetParamNames("taskId")
	c.SetParamValues("9")
	if err := deleteTask(Config{Store: store}, queryOrg)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["deleted"] != true || body["taskId"] != float64(9) {
		t.Fatalf("unexpected payload: %v", body)
	}
	if store.lastOrgID != 5 {
		t.Fatalf("delete not org-scoped: %d", store.lastOrgID)
	}
}

func TestGetTaskBadIDParam(t *testing.T) {
	for _, raw := range []string{"0", "-1", "abc", ""} {
		store := &mockStore{task: sampleTask()}
		c, rec := newContext(t, http.MethodGet, "/api/dev/tasks/x?orgId=5", "")
		c.SetParamNames("taskId")
		c.SetParamValues(raw)
		if err := getTask(Config{Store: store}, queryOrg)(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("taskId %q: expected 400, got %d", raw, rec.Code)
		}
	}
}
