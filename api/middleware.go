package api

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// bodyMaxSize caps request bodies; boards move small JSON objects around.
const bodyMaxSize = 1 << 20

// decodeBody reads a JSON object body into a map that preserves key
// presence, so handlers can tell an absent field from an explicit null.
func decodeBody(c echo.Context) (map[string]any, error) {
	lr := io.LimitReader(c.Request().Body, bodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if body == nil {
		// JSON "null" decodes without error; treat it like a malformed body.
		return nil, io.ErrUnexpectedEOF
	}
	return body, nil
}

// devOnly rejects the dev route family in production.
func devOnly(production bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if production {
				return fail(c, http.StatusForbidden, "Not allowed")
			}
			return next(c)
		}
	}
}
