package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"taskboard-api/domain"
)

const projectColumns = "id, org_id, name, description, created_at, updated_at"

func scanProjectRow(scan func(...any) error) (*domain.Project, error) {
	p := &domain.Project{}
	var description sql.NullString
	err := scan(&p.ID, &p.OrgID, &p.Name, &description, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	return p, nil
}

// ListProjects returns an org's projects ordered by id.
func (s *Store) ListProjects(ctx context.Context, orgID int64) ([]domain.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE org_id = ? ORDER BY id`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		p, err := scanProjectRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// GetProject returns a project looked up by id and org. Cross-tenant ids
// come back as ErrNotFound.
func (s *Store) GetProject(ctx context.Context, orgID, id int64) (*domain.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ? AND org_id = ?`, id, orgID)
	return scanProjectRow(row.Scan)
}

// CreateProject inserts a project. Callers verify the org exists first; a
// dangling org reference still fails here with a ConflictError.
func (s *Store) CreateProject(ctx context.Context, np domain.NewProject) (*domain.Project, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (org_id, name, description) VALUES (?, ?, ?)`,
		np.OrgID, np.Name, np.Description)
	if err != nil {
		return nil, wrapWrite(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetProject(ctx, np.OrgID, id)
}

// UpdateProject applies a partial update within the org scope and returns
// the updated row.
func (s *Store) UpdateProject(ctx context.Context, orgID, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	if patch.Empty() {
		return s.GetProject(ctx, orgID, id)
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.DescriptionSet {
		sets = append(sets, "description = ?")
		args = append(args, patch.Description)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id, orgID)

	result, err := s.db.ExecContext(ctx,
		`UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ? AND org_id = ?`,
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
	return s.GetProject(ctx, orgID, id)
}

// DeleteProject removes a project within the org scope. Owned tasks cascade.
func (s *Store) DeleteProject(ctx context.Context, orgID, id int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ? AND org_id = ?`, id, orgID)
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
