package storage

import (
	"context"
	"time"

	"taskboard-api/domain"
)

// StatusReport aggregates per-status task counts and overdue open tasks for
// one org. The comparison instant is passed in so handlers control the
// generation timestamp.
func (s *Store) StatusReport(ctx context.Context, orgID int64, now time.Time) (*domain.StatusReport, error) {
	report := &domain.StatusReport{
		StatusCounts: make(map[domain.Status]int64),
		GeneratedAt:  now,
	}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE org_id = ?`, orgID,
	).Scan(&report.TotalProjects)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE org_id = ?`, orgID,
	).Scan(&report.TotalTasks)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM tasks WHERE org_id = ? GROUP BY status`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status domain.Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		report.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE org_id = ? AND due_date IS NOT NULL AND due_date < ? AND status != ?`,
		orgID, now.UTC(), string(domain.StatusDone),
	).Scan(&report.OverdueOpenTasks)
	if err != nil {
		return nil, err
	}

	return report, nil
}
