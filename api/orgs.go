package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"taskboard-api/domain"
)

func listOrgs(cfg Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgs, err := cfg.Store.ListOrgs(c.Request().Context())
		if err != nil {
			return storeError(c, err, "")
		}
		return ok(c, map[string]any{"orgs": orgs})
	}
}

func createOrg(cfg Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := decodeBody(c)
		if err != nil {
			return fail(c, http.StatusBadRequest, "Invalid JSON body")
		}
		if !NonEmptyString(body["name"]) {
			return fail(c, http.StatusBadRequest, "name is required")
		}

		org, err := cfg.Store.CreateOrg(c.Request().Context(), strings.TrimSpace(body["name"].(string)))
		if err != nil {
			return storeError(c, err, "Organization not found")
		}
		return ok(c, map[string]any{"org": org})
	}
}

func getOrg(cfg Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := parseIntParam(c.Param("orgId"), "orgId")
		if perr != nil {
			return perr.respond(c)
		}

		org, err := cfg.Store.GetOrg(c.Request().Context(), orgID)
		if err != nil {
			return storeError(c, err, "Organization not found")
		}
		return ok(c, map[string]any{"org": org})
	}
}

func updateOrg(cfg Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := parseIntParam(c.Param("orgId"), "orgId")
		if perr != nil {
			return perr.respond(c)
		}
		body, err := decodeBody(c)
		if err != nil {
			return fail(c, http.StatusBadRequest, "Invalid JSON body")
		}

		patch := domain.OrgPatch{}
		if _, present := body["name"]; present {
			if !NonEmptyString(body["name"]) {
				return fail(c, http.StatusBadRequest, "name must be a non-empty string")
			}
			name := strings.TrimSpace(body["name"].(string))
			patch.Name = &name
		}
		if patch.Empty() {
			return fail(c, http.StatusBadRequest, "no fields to update")
		}

		org, err := cfg.Store.UpdateOrg(c.Request().Context(), orgID, patch)
		if err != nil {
			return storeError(c, err, "Organization not found")
		}
		return ok(c, map[string]any{"org": org})
	}
}

func deleteOrg(cfg Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID, perr := parseIntParam(c.Param("orgId"), "orgId")
		if perr != nil {
			return perr.respond(c)
		}

		if err := cfg.Store.DeleteOrg(c.Request().Context(), orgID); err != nil {
			return storeError(c, err, "Organization not found")
		}
		return ok(c, map[string]any{"deleted": true, "orgId": orgID})
	}
}
