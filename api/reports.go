package api

import (
	"time"

	"github.com/labstack/echo/v4"
)

func statusReport(cfg Config, scope orgResolver) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		m := newRequestMetrics(cfg.Logger, "status_report")
		defer func() { m.Log(c.Response().Status, err) }()

		orgID, perr := scope(c)
		if perr != nil {
			m.SetErrorStage("scope")
			err = perr.respond(c)
			return err
		}

		fetchStart := time.Now()
		report, fetchErr := cfg.Store.StatusReport(c.Request().Context(), orgID, time.Now().UTC())
		m.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			m.SetErrorStage("storage")
			err = storeError(c, fetchErr, "")
			return err
		}
		m.SetRowsReturned(int(report.TotalTasks))

		err = ok(c, map[string]any{"report": report})
		return err
	}
}
