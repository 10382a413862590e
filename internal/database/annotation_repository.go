package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kdpii/nerlabel/internal/models"
)

// AnnotationRepo handles all annotation-related database operations.
type AnnotationRepo struct {
	db DBTX
}

const annotationColumns = `a.id, a.uuid, a.task_id, a.start_offset, a.end_offset, a.text, a.labels,
	a.confidence, a.identifier_type, a.overlapping, a.entity_id, a.related_annotations,
	a.relationships, a.notes, a.created_at, a.updated_at`

func scanAnnotation(s scanner) (*models.Annotation, error) {
	var (
		a             models.Annotation
		labels        string
		confidence    string
		identifier    string
		entityID      sql.NullString
		related       string
		relationships string
	)
	if err := s.Scan(
		&a.ID, &a.UUID, &a.TaskID, &a.Start, &a.End, &a.Text, &labels,
		&confidence, &identifier, &a.Overlapping, &entityID, &related,
		&relationships, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Confidence = models.Confidence(confidence)
	a.IdentifierType = models.IdentifierType(identifier)
	a.EntityID = nullStringToPtr(entityID)
	if err := decodeJSON(labels, &a.Labels); err != nil {
		return nil, fmt.Errorf("annotation %d labels: %w", a.ID, err)
	}
	if err := decodeJSON(related, &a.RelatedAnnotations); err != nil {
		return nil, fmt.Errorf("annotation %d related annotations: %w", a.ID, err)
	}
	if err := decodeJSON(relationships, &a.Relationships); err != nil {
		return nil, fmt.Errorf("annotation %d relationships: %w", a.ID, err)
	}
	if a.Labels == nil {
		a.Labels = []string{}
	}
	return &a, nil
}

type annotationJSON struct {
	labels        string
	related       string
	relationships string
}

func encodeAnnotationJSON(a *models.Annotation) (annotationJSON, error) {
	var (
		out annotationJSON
		err error
	)
	if out.labels, err = encodeJSON(a.Labels, "[]"); err != nil {
		return out, err
	}
	if out.related, err = encodeJSON(a.RelatedAnnotations, "[]"); err != nil {
		return out, err
	}
	if out.relationships, err = encodeJSON(a.Relationships, "[]"); err != nil {
		return out, err
	}
	return out, nil
}

// CreateAnnotation inserts a and fills in its ID and timestamps
func (r *AnnotationRepo) CreateAnnotation(ctx context.Context, a *models.Annotation) error {
	js, err := encodeAnnotationJSON(a)
	if err != nil {
		return err
	}

	now := timestamp(time.Now())
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO annotations (uuid, task_id, start_offset, end_offset, text, labels,
			confidence, identifier_type, overlapping, entity_id, related_annotations,
			relationships, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UUID, a.TaskID, a.Start, a.End, a.Text, js.labels,
		string(a.Confidence), string(a.IdentifierType), a.Overlapping, stringPtrArg(a.EntityID),
		js.related, js.relationships, a.Notes, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert annotation for task %d: %w", a.TaskID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get annotation ID after insert: %w", err)
	}
	a.ID = int(id)
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

func (r *AnnotationRepo) GetAnnotationByID(ctx context.Context, id int) (*models.Annotation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+annotationColumns+` FROM annotations a WHERE a.id = ?`, id)
	a, err := scanAnnotation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("annotation", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get annotation %d: %w", id, err)
	}
	return a, nil
}

func (r *AnnotationRepo) GetAnnotationByUUID(ctx context.Context, uuid string) (*models.Annotation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+annotationColumns+` FROM annotations a WHERE a.uuid = ?`, uuid)
	a, err := scanAnnotation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("annotation", uuid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get annotation %s: %w", uuid, err)
	}
	return a, nil
}

func (r *AnnotationRepo) queryAnnotations(ctx context.Context, query string, args ...any) ([]*models.Annotation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	defer rows.Close()

	annotations := make([]*models.Annotation, 0)
	for rows.Next() {
		a, err := scanAnnotation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		annotations = append(annotations, a)
	}
	return annotations, rows.Err()
}

// ListAnnotationsByTask returns a task's annotations ordered by start offset
func (r *AnnotationRepo) ListAnnotationsByTask(ctx context.Context, taskID int) ([]*models.Annotation, error) {
	return r.queryAnnotations(ctx,
		`SELECT `+annotationColumns+` FROM annotations a
		WHERE a.task_id = ? ORDER BY a.start_offset, a.id`, taskID)
}

// ListAnnotationsByProject returns every annotation in a project grouped by
// task id, each group ordered by start offset
func (r *AnnotationRepo) ListAnnotationsByProject(ctx context.Context, projectID int) (map[int][]*models.Annotation, error) {
	annotations, err := r.queryAnnotations(ctx,
		`SELECT `+annotationColumns+` FROM annotations a
		JOIN tasks t ON t.id = a.task_id
		WHERE t.project_id = ? ORDER BY a.task_id, a.start_offset, a.id`, projectID)
	if err != nil {
		return nil, err
	}

	byTask := make(map[int][]*models.Annotation)
	for _, a := range annotations {
		byTask[a.TaskID] = append(byTask[a.TaskID], a)
	}
	return byTask, nil
}

// UpdateAnnotation writes every mutable field of a
func (r *AnnotationRepo) UpdateAnnotation(ctx context.Context, a *models.Annotation) error {
	js, err := encodeAnnotationJSON(a)
	if err != nil {
		return err
	}

	now := timestamp(time.Now())
	result, err := r.db.ExecContext(ctx,
		`UPDATE annotations SET start_offset = ?, end_offset = ?, text = ?, labels = ?,
			confidence = ?, identifier_type = ?, overlapping = ?, entity_id = ?,
			related_annotations = ?, relationships = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		a.Start, a.End, a.Text, js.labels,
		string(a.Confidence), string(a.IdentifierType), a.Overlapping, stringPtrArg(a.EntityID),
		js.related, js.relationships, a.Notes, now, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update annotation %d: %w", a.ID, err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("annotation", a.ID)
	}
	a.UpdatedAt = now
	return nil
}

// SetAnnotationOverlap updates only the cached overlap flag
func (r *AnnotationRepo) SetAnnotationOverlap(ctx context.Context, id int, overlapping bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE annotations SET overlapping = ? WHERE id = ?`, overlapping, id)
	if err != nil {
		return fmt.Errorf("failed to set overlap flag of annotation %d: %w", id, err)
	}
	return nil
}

func (r *AnnotationRepo) DeleteAnnotation(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM annotations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete annotation %d: %w", id, err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("annotation", id)
	}
	return nil
}

// DeleteAnnotationsByProject removes every annotation of every task in a project
func (r *AnnotationRepo) DeleteAnnotationsByProject(ctx context.Context, projectID int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM annotations WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)`,
		projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete annotations of project %d: %w", projectID, err)
	}
	return rowsAffected(result)
}

// CountAnnotations counts rows, across all projects when projectID is nil
func (r *AnnotationRepo) CountAnnotations(ctx context.Context, projectID *int) (int, error) {
	query := `SELECT COUNT(*) FROM annotations a`
	var args []any
	if projectID != nil {
		query += ` JOIN tasks t ON t.id = a.task_id WHERE t.project_id = ?`
		args = append(args, *projectID)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count annotations: %w", err)
	}
	return n, nil
}

// CountEntities counts distinct (task, start, end) spans
func (r *AnnotationRepo) CountEntities(ctx context.Context, projectID *int) (int, error) {
	query := `SELECT COUNT(*) FROM (
		SELECT DISTINCT a.task_id, a.start_offset, a.end_offset FROM annotations a
		JOIN tasks t ON t.id = a.task_id`
	var args []any
	if projectID != nil {
		query += ` WHERE t.project_id = ?`
		args = append(args, *projectID)
	}
	query += `)`
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}
	return n, nil
}

// ListLabelPayloads returns the raw labels column of every annotation, across
// all projects when projectID is nil
func (r *AnnotationRepo) ListLabelPayloads(ctx context.Context, projectID *int) ([]string, error) {
	query := `SELECT a.labels FROM annotations a`
	var args []any
	if projectID != nil {
		query += ` JOIN tasks t ON t.id = a.task_id WHERE t.project_id = ?`
		args = append(args, *projectID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list label payloads: %w", err)
	}
	defer rows.Close()

	payloads := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan label payload: %w", err)
		}
		payloads = append(payloads, p)
	}
	return payloads, rows.Err()
}
