package storage

import (
	"context"
	"database/sql"
	"errors"

	"taskboard-api/domain"
)

const orgColumns = "id, name, created_at, updated_at"

func scanOrg(row *sql.Row) (*domain.Organization, error) {
	org := &domain.Organization{}
	err := row.Scan(&org.ID, &org.Name, &org.CreatedAt, &org.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return org, nil
}

// ListOrgs returns all organizations ordered by id.
func (s *Store) ListOrgs(ctx context.Context) ([]domain.Organization, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orgColumns+` FROM organizations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := make([]domain.Organization, 0)
	for rows.Next() {
		var org domain.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

// GetOrg returns a single organization or ErrNotFound.
func (s *Store) GetOrg(ctx context.Context, id int64) (*domain.Organization, error) {
	return scanOrg(s.db.QueryRowContext(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE id = ?`, id))
}

// CreateOrg inserts an organization and returns it with timestamps filled.
func (s *Store) CreateOrg(ctx context.Context, name string) (*domain.Organization, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO organizations (name) VALUES (?)`, name)
	if err != nil {
		return nil, wrapWrite(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetOrg(ctx, id)
}

// UpdateOrg applies a partial update and returns the updated row.
func (s *Store) UpdateOrg(ctx context.Context, id int64, patch domain.OrgPatch) (*domain.Organization, error) {
	if patch.Empty() {
		return s.GetOrg(ctx, id)
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE organizations SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		*patch.Name, id)
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
	return s.GetOrg(ctx, id)
}

// DeleteOrg removes an organization. Owned projects and tasks cascade.
func (s *Store) DeleteOrg(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = ?`, id)
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
