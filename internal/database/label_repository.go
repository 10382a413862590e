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

// LabelRepo handles all label-related database operations.
type LabelRepo struct {
	db DBTX
}

// LabelFilter narrows ListLabels.
//
// ProjectID selects one project's labels, IncludeGlobal adds the global ones
// to that, and GlobalOnly ignores ProjectID and returns only global labels.
type LabelFilter struct {
	ProjectID     *int
	IncludeGlobal bool
	GlobalOnly    bool
	ActiveOnly    bool
}

const labelColumns = `id, value, background, hotkey, category, description, example,
	is_active, sort_order, project_id, created_at, updated_at`

func scanLabel(s scanner) (*models.Label, error) {
	var (
		l         models.Label
		hotkey    sql.NullString
		projectID sql.NullInt64
	)
	if err := s.Scan(
		&l.ID, &l.Value, &l.Background, &hotkey, &l.Category, &l.Description, &l.Example,
		&l.IsActive, &l.SortOrder, &projectID, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	l.Hotkey = nullStringToPtr(hotkey)
	l.ProjectID = nullInt64ToPtr(projectID)
	return &l, nil
}

// ============================================================================
// Label Reads
// ============================================================================

func (r *LabelRepo) GetLabelByID(ctx context.Context, id int) (*models.Label, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+labelColumns+` FROM labels WHERE id = ?`, id)
	l, err := scanLabel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("label", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label %d: %w", id, err)
	}
	return l, nil
}

// GetLabelByValue looks a value up in one scope. A nil projectID is the global scope.
func (r *LabelRepo) GetLabelByValue(ctx context.Context, projectID *int, value string) (*models.Label, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE project_id IS ? AND value = ?`,
		intPtrArg(projectID), value)
	l, err := scanLabel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("label", value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label '%s': %w", value, err)
	}
	return l, nil
}

// GetLabelByHotkey looks a hotkey up in one scope
func (r *LabelRepo) GetLabelByHotkey(ctx context.Context, projectID *int, hotkey string) (*models.Label, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE project_id IS ? AND hotkey = ?`,
		intPtrArg(projectID), hotkey)
	l, err := scanLabel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("hotkey", hotkey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label by hotkey '%s': %w", hotkey, err)
	}
	return l, nil
}

// ListLabels returns labels ordered by sort order then value
func (r *LabelRepo) ListLabels(ctx context.Context, filter LabelFilter) ([]*models.Label, error) {
	var (
		where []string
		args  []any
	)
	switch {
	case filter.GlobalOnly:
		where = append(where, "project_id IS NULL")
	case filter.ProjectID != nil && filter.IncludeGlobal:
		where = append(where, "(project_id = ? OR project_id IS NULL)")
		args = append(args, *filter.ProjectID)
	case filter.ProjectID != nil:
		where = append(where, "project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.ActiveOnly {
		where = append(where, "is_active = 1")
	}

	query := `SELECT ` + labelColumns + ` FROM labels`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY sort_order, value, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	labels := make([]*models.Label, 0)
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// MaxLabelSortOrder returns the highest sort order in a scope, 0 when empty
func (r *LabelRepo) MaxLabelSortOrder(ctx context.Context, projectID *int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sort_order), 0) FROM labels WHERE project_id IS ?`,
		intPtrArg(projectID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to read max label sort order: %w", err)
	}
	return n, nil
}

// ============================================================================
// Label Writes
// ============================================================================

// CreateLabel inserts l and fills in its ID and timestamps
func (r *LabelRepo) CreateLabel(ctx context.Context, l *models.Label) error {
	now := timestamp(time.Now())
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO labels (value, background, hotkey, category, description, example,
			is_active, sort_order, project_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Value, l.Background, stringPtrArg(l.Hotkey), l.Category, l.Description, l.Example,
		l.IsActive, l.SortOrder, intPtrArg(l.ProjectID), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert label '%s': %w", l.Value, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get label ID after insert: %w", err)
	}
	l.ID = int(id)
	l.CreatedAt = now
	l.UpdatedAt = now
	return nil
}

// UpdateLabel writes every mutable field of l. The scope never changes.
func (r *LabelRepo) UpdateLabel(ctx context.Context, l *models.Label) error {
	now := timestamp(time.Now())
	result, err := r.db.ExecContext(ctx,
		`UPDATE labels SET value = ?, background = ?, hotkey = ?, category = ?, description = ?,
			example = ?, is_active = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		l.Value, l.Background, stringPtrArg(l.Hotkey), l.Category, l.Description,
		l.Example, l.IsActive, l.SortOrder, now, l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update label %d: %w", l.ID, err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("label", l.ID)
	}
	l.UpdatedAt = now
	return nil
}

func (r *LabelRepo) DeleteLabel(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete label %d: %w", id, err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("label", id)
	}
	return nil
}

// DeleteLabelsByScope removes every label of one scope
func (r *LabelRepo) DeleteLabelsByScope(ctx context.Context, projectID *int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM labels WHERE project_id IS ?`, intPtrArg(projectID))
	if err != nil {
		return 0, fmt.Errorf("failed to delete labels: %w", err)
	}
	return rowsAffected(result)
}
