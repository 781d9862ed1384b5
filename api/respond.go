package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// ok writes the success envelope: {ok:true, ...payload} at 200.
func ok(c echo.Context, payload map[string]any) error {
	body := make(map[string]any, len(payload)+1)
	body["ok"] = true
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

// fail writes the failure envelope: {ok:false, message} at the given status.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{"ok": false, "message": message})
}

// failDetail is fail plus a detail field carrying the underlying cause,
// used for write conflicts.
func failDetail(c echo.Context, status int, message, detail string) error {
	return c.JSON(status, map[string]any{"ok": false, "message": message, "detail": detail})
}

// paramError is a tagged parse failure so handlers can early-return
// uniformly instead of branching on error kinds.
type paramError struct {
	status  int
	message string
}

func (e *paramError) respond(c echo.Context) error { return fail(c, e.status, e.message) }

// parseIntParam parses a path or query parameter as a positive integer with
// a field-qualified message on failure.
func parseIntParam(raw, field string) (int64, *paramError) {
	if strings.TrimSpace(raw) == "" {
		return 0, &paramError{http.StatusBadRequest, field + " is required"}
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return 0, &paramError{http.StatusBadRequest, field + " must be a positive integer"}
	}
	return n, nil
}

// parseBodyInt is parseIntParam for untyped JSON body values.
func parseBodyInt(v any, field string) (int64, *paramError) {
	n := PositiveInt(v)
	if n == nil {
		return 0, &paramError{http.StatusBadRequest, field + " must be a positive integer"}
	}
	return *n, nil
}
