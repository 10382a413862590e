package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kdpii/nerlabel/internal/models"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db DBTX
}

// ProjectFilter narrows ListProjects. Nil fields are not applied.
type ProjectFilter struct {
	IsActive *bool
	OwnerID  *string
}

const projectColumns = `id, name, description, is_active, allow_overlapping_annotations,
	require_all_labels, owner_id, created_at, updated_at`

func scanProject(s scanner) (*models.Project, error) {
	var (
		p     models.Project
		owner sql.NullString
	)
	if err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.IsActive, &p.AllowOverlappingAnnotations,
		&p.RequireAllLabels, &owner, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.OwnerID = nullStringToPtr(owner)
	return &p, nil
}

// CreateProject inserts p and fills in its ID and timestamps
func (r *ProjectRepo) CreateProject(ctx context.Context, p *models.Project) error {
	now := timestamp(time.Now())
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (name, description, is_active, allow_overlapping_annotations,
			require_all_labels, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.IsActive, p.AllowOverlappingAnnotations,
		p.RequireAllLabels, stringPtrArg(p.OwnerID), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project '%s': %w", p.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get project ID after insert: %w", err)
	}
	p.ID = int(id)
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// GetProjectByID returns models.ErrNotFound (wrapped) when no row matches
func (r *ProjectRepo) GetProjectByID(ctx context.Context, id int) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("project", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return p, nil
}

// GetProjectByName returns the oldest project with the given name
func (r *ProjectRepo) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE name = ? ORDER BY id LIMIT 1`, name)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("project", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project '%s': %w", name, err)
	}
	return p, nil
}

// ListProjects returns projects ordered by id
func (r *ProjectRepo) ListProjects(ctx context.Context, filter ProjectFilter) ([]*models.Project, error) {
	var (
		where []string
		args  []any
	)
	if filter.IsActive != nil {
		where = append(where, "is_active = ?")
		args = append(args, *filter.IsActive)
	}
	if filter.OwnerID != nil {
		where = append(where, "owner_id = ?")
		args = append(args, *filter.OwnerID)
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject writes every mutable field of p
func (r *ProjectRepo) UpdateProject(ctx context.Context, p *models.Project) error {
	now := timestamp(time.Now())
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, is_active = ?,
			allow_overlapping_annotations = ?, require_all_labels = ?, owner_id = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.IsActive, p.AllowOverlappingAnnotations,
		p.RequireAllLabels, stringPtrArg(p.OwnerID), now, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", p.ID, err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("project", p.ID)
	}
	p.UpdatedAt = now
	return nil
}

// DeleteProject removes a project. Tasks, annotations, uploads and project
// labels go with it through ON DELETE CASCADE.
func (r *ProjectRepo) DeleteProject(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("project", id)
	}
	return nil
}

func (r *ProjectRepo) CountProjects(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}
