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

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db DBTX
}

// BulkCompletion selects tasks for UpdateTasksCompletion. With TaskIDs empty
// every task in ProjectID is considered.
type BulkCompletion struct {
	ProjectID   *int
	TaskIDs     []int
	Completed   bool
	At          time.Time
	AnnotatorID *string
}

const taskColumns = `id, uuid, project_id, upload_id, text, original_filename, line_number,
	is_completed, completion_time, identifier_type, annotator_id, metadata, created_at, updated_at`

func scanTask(s scanner) (*models.Task, error) {
	var (
		t          models.Task
		uploadID   sql.NullInt64
		completed  sql.NullTime
		identifier string
		annotator  sql.NullString
		metadata   string
	)
	if err := s.Scan(
		&t.ID, &t.UUID, &t.ProjectID, &uploadID, &t.Text, &t.OriginalFilename, &t.LineNumber,
		&t.IsCompleted, &completed, &identifier, &annotator, &metadata, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.UploadID = nullInt64ToPtr(uploadID)
	t.CompletionTime = nullTimeToPtr(completed)
	t.IdentifierType = models.IdentifierType(identifier)
	t.AnnotatorID = nullStringToPtr(annotator)
	if err := decodeJSON(metadata, &t.Metadata); err != nil {
		return nil, fmt.Errorf("task %d metadata: %w", t.ID, err)
	}
	return &t, nil
}

// CreateTask inserts t and fills in its ID and timestamps
func (r *TaskRepo) CreateTask(ctx context.Context, t *models.Task) error {
	metadata, err := encodeJSON(t.Metadata, "{}")
	if err != nil {
		return err
	}
	if t.IdentifierType == "" {
		t.IdentifierType = models.IdentifierDefault
	}

	now := timestamp(time.Now())
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (uuid, project_id, upload_id, text, original_filename, line_number,
			is_completed, completion_time, identifier_type, annotator_id, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UUID, t.ProjectID, intPtrArg(t.UploadID), t.Text, t.OriginalFilename, t.LineNumber,
		t.IsCompleted, nullTime(t.CompletionTime), string(t.IdentifierType),
		stringPtrArg(t.AnnotatorID), metadata, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task for project %d: %w", t.ProjectID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get task ID after insert: %w", err)
	}
	t.ID = int(id)
	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

func (r *TaskRepo) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("task", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return t, nil
}

func (r *TaskRepo) GetTaskByUUID(ctx context.Context, uuid string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE uuid = ?`, uuid)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("task", uuid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", uuid, err)
	}
	return t, nil
}

func taskWhere(filter models.TaskFilter, alias string) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.ProjectID != nil {
		where = append(where, alias+"project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.IsCompleted != nil {
		where = append(where, alias+"is_completed = ?")
		args = append(args, *filter.IsCompleted)
	}
	if filter.OriginalFilename != nil {
		where = append(where, alias+"original_filename = ?")
		args = append(args, *filter.OriginalFilename)
	}
	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func pageClause(limit, offset int) string {
	if limit <= 0 {
		if offset > 0 {
			return fmt.Sprintf(" LIMIT -1 OFFSET %d", offset)
		}
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, max(offset, 0))
}

// ListTasks returns tasks in insertion order
func (r *TaskRepo) ListTasks(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error) {
	where, args := taskWhere(filter, "")
	query := `SELECT ` + taskColumns + ` FROM tasks` + where + ` ORDER BY id` +
		pageClause(filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListTaskSummaries returns tasks with their annotation and entity counts.
// Entities are distinct (start, end) spans.
func (r *TaskRepo) ListTaskSummaries(ctx context.Context, filter models.TaskFilter) ([]*models.TaskSummary, error) {
	where, args := taskWhere(filter, "t.")
	query := `SELECT t.id, t.uuid, t.project_id, t.text, t.line_number, t.is_completed,
			(SELECT COUNT(*) FROM annotations a WHERE a.task_id = t.id),
			(SELECT COUNT(DISTINCT a.start_offset || ':' || a.end_offset)
				FROM annotations a WHERE a.task_id = t.id)
		FROM tasks t` + where + ` ORDER BY t.id` + pageClause(filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list task summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]*models.TaskSummary, 0)
	for rows.Next() {
		var s models.TaskSummary
		if err := rows.Scan(&s.ID, &s.UUID, &s.ProjectID, &s.Text, &s.LineNumber,
			&s.IsCompleted, &s.AnnotationCount, &s.EntityCount); err != nil {
			return nil, fmt.Errorf("failed to scan task summary: %w", err)
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

// CountTasks returns the total and completed task counts, across all
// projects when projectID is nil
func (r *TaskRepo) CountTasks(ctx context.Context, projectID *int) (total, completed int, err error) {
	query := `SELECT COUNT(*), COALESCE(SUM(is_completed), 0) FROM tasks`
	var args []any
	if projectID != nil {
		query += ` WHERE project_id = ?`
		args = append(args, *projectID)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total, &completed); err != nil {
		return 0, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return total, completed, nil
}

// UpdateTaskCompletion persists the completion fields of t
func (r *TaskRepo) UpdateTaskCompletion(ctx context.Context, t *models.Task) error {
	now := timestamp(time.Now())
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET is_completed = ?, completion_time = ?, annotator_id = ?, updated_at = ?
		WHERE id = ?`,
		t.IsCompleted, nullTime(t.CompletionTime), stringPtrArg(t.AnnotatorID), now, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update completion of task %d: %w", t.ID, err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("task", t.ID)
	}
	t.UpdatedAt = now
	return nil
}

// UpdateTasksCompletion flips every selected task whose state differs from
// b.Completed and returns how many rows changed
func (r *TaskRepo) UpdateTasksCompletion(ctx context.Context, b BulkCompletion) (int, error) {
	var (
		query string
		args  []any
	)
	now := timestamp(time.Now())
	if b.Completed {
		query = `UPDATE tasks SET is_completed = 1, completion_time = ?,
			annotator_id = COALESCE(?, annotator_id), updated_at = ? WHERE is_completed = 0`
		args = append(args, timestamp(b.At), stringPtrArg(b.AnnotatorID), now)
	} else {
		query = `UPDATE tasks SET is_completed = 0, completion_time = NULL, updated_at = ?
			WHERE is_completed = 1`
		args = append(args, now)
	}

	if b.ProjectID != nil {
		query += ` AND project_id = ?`
		args = append(args, *b.ProjectID)
	}
	if len(b.TaskIDs) > 0 {
		query += ` AND id IN (` + placeholders(len(b.TaskIDs)) + `)`
		for _, id := range b.TaskIDs {
			args = append(args, id)
		}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update task completion: %w", err)
	}
	return rowsAffected(result)
}

func (r *TaskRepo) SetTaskIdentifierType(ctx context.Context, id int, it models.IdentifierType) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET identifier_type = ?, updated_at = ? WHERE id = ?`,
		string(it), timestamp(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set identifier type of task %d: %w", id, err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("task", id)
	}
	return nil
}

// DeleteTask removes a task and, through ON DELETE CASCADE, its annotations
func (r *TaskRepo) DeleteTask(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("task", id)
	}
	return nil
}
