package api

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"taskboard-api/domain"
)

// Boundary inputs are arbitrary JSON, so every classifier here takes an
// untyped value and rejects by returning false or nil instead of an error.
// Callers branch on the result; nothing in this file panics or throws.

// NonEmptyString reports whether v is a string with non-whitespace content.
func NonEmptyString(v any) bool {
	s, isString := v.(string)
	return isString && strings.TrimSpace(s) != ""
}

// OptionalString reports whether v is absent, null or a string. No trim or
// emptiness requirement applies.
func OptionalString(v any) bool {
	if v == nil {
		return true
	}
	_, isString := v.(string)
	return isString
}

// ParseStatus returns the status value and whether v is a member of the
// status enum.
func ParseStatus(v any) (domain.Status, bool) {
	s, isString := v.(string)
	if !isString {
		return "", false
	}
	status := domain.Status(s)
	return status, status.Valid()
}

// ParseISODate coerces v to a calendar instant. Absent, null and empty
// inputs map to nil without being an error; so does anything unparseable.
// Callers that need to tell "null" from "garbage" check presence themselves.
func ParseISODate(v any) *time.Time {
	if v == nil {
		return nil
	}
	s, isString := v.(string)
	if !isString || s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// Int coerces v to an integer when it is a finite, integral number or a
// numeric string. The second result is false otherwise.
func Int(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0, false
		}
		i, err := strconv.ParseInt(trimmed, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// PositiveInt coerces v to an integer > 0, returning nil for absent, null
// or anything non-integral.
func PositiveInt(v any) *int64 {
	n, isInt := Int(v)
	if !isInt || n <= 0 {
		return nil
	}
	return &n
}
