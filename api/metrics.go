package api

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// requestMetrics accumulates timings for the read-heavy routes and emits a
// single structured log line per request.
type requestMetrics struct {
	logger        *log.Logger
	route         string
	start         time.Time
	fetchDuration time.Duration
	rowsReturned  int
	errorStage    string
}

func newRequestMetrics(logger *log.Logger, route string) *requestMetrics {
	return &requestMetrics{
		logger: logger,
		route:  route,
		start:  time.Now(),
	}
}

func (m *requestMetrics) ObserveFetch(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.fetchDuration = duration
}

func (m *requestMetrics) SetRowsReturned(count int) {
	if count < 0 {
		count = 0
	}
	m.rowsReturned = count
}

func (m *requestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

func (m *requestMetrics) Log(status int, err error) {
	if m == nil || m.logger == nil {
		return
	}

	fields := log.Fields{
		"route":         m.route,
		"status":        status,
		"total_ms":      durationToMillis(time.Since(m.start)),
		"rows_returned": m.rowsReturned,
	}
	if m.fetchDuration > 0 {
		fields["fetch_ms"] = durationToMillis(m.fetchDuration)
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}

	entry := m.logger.WithFields(fields)
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return
	}
	entry.Debug("request completed")
}

func durationToMillis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
