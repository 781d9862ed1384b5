package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"taskboard-api/domain"
)

const taskColumns = "id, org_id, project_id, title, description, status, position, due_date, created_at, updated_at"

func scanTaskRow(scan func(...any) error) (*domain.Task, error) {
	t := &domain.Task{}
	var description sql.NullString
	var dueDate sql.NullTime
	err := scan(&t.ID, &t.OrgID, &t.ProjectID, &t.Title, &description,
		&t.Status, &t.Position, &dueDate, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if description.Valid {
		t.Description = &description.String
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.Time
	}
	return t, nil
}

// ListTasks returns an org's tasks, optionally narrowed by project and
// status. Ordering is by project id, then position, then id, so duplicate
// positions still list deterministically.
func (s *Store) ListTasks(ctx context.Context, orgID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE org_id = ?`
	args := []any{orgID}
	if filter.ProjectID != nil {
		query += ` AND project_id = ?`
		args = append(args, *filter.ProjectID)
	}
	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY project_id, position, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTaskRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// GetTask returns a task looked up by id and org. Cross-tenant ids come
// back as ErrNotFound.
func (s *Store) GetTask(ctx context.Context, orgID, id int64) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND org_id = ?`, id, orgID)
	return scanTaskRow(row.Scan)
}

// CreateTask inserts a task. Callers verify beforehand that the project
// belongs to the stated org; the foreign keys are only the backstop.
func (s *Store) CreateTask(ctx context.Context, nt domain.NewTask) (*domain.Task, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (org_id, project_id, title, description, status, position, due_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nt.OrgID, nt.ProjectID, nt.Title, nt.Description, string(nt.Status), nt.Position, nt.DueDate)
	if err != nil {
		return nil, wrapWrite(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetTask(ctx, nt.OrgID, id)
}

// UpdateTask applies a partial update within the org scope and returns the
// updated row. Project reassignment is validated by the handler against the
// same org before it reaches here.
func (s *Store) UpdateTask(ctx context.Context, orgID, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Empty() {
		return s.GetTask(ctx, orgID, id)
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 8)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.DescriptionSet {
		sets = append(sets, "description = ?")
		args = append(args, patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Position != nil {
		sets = append(sets, "position = ?")
		args = append(args, *patch.Position)
	}
	if patch.ProjectID != nil {
		sets = append(sets, "project_id = ?")
		args = append(args, *patch.ProjectID)
	}
	if patch.DueDateSet {
		sets = append(sets, "due_date = ?")
		args = append(args, patch.DueDate)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id, orgID)

	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ? AND org_id = ?`,
		args...)
	if err != nil {
		return nil, wrapWrite(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.GetTask(ctx, orgID, id)
}

// DeleteTask removes a task within the org scope.
func (s *Store) DeleteTask(ctx context.Context, orgID, id int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND org_id = ?`, id, orgID)
	if err != nil {
		return wrapWrite(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
