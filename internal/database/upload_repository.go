package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kdpii/nerlabel/internal/models"
)

// UploadRepo handles uploaded file bookkeeping.
type UploadRepo struct {
	db DBTX
}

const uploadColumns = `id, project_id, filename, size, file_type, checksum, content_preview,
	metadata, status, error_message, task_count, total_lines, uploaded_at, processed_at`

func scanUpload(s scanner) (*models.UploadedFile, error) {
	var (
		u         models.UploadedFile
		metadata  string
		status    string
		processed sql.NullTime
	)
	if err := s.Scan(
		&u.ID, &u.ProjectID, &u.Filename, &u.Size, &u.FileType, &u.Checksum, &u.ContentPreview,
		&metadata, &status, &u.ErrorMessage, &u.TaskCount, &u.TotalLines, &u.UploadedAt, &processed,
	); err != nil {
		return nil, err
	}
	u.Status = models.UploadStatus(status)
	u.ProcessedAt = nullTimeToPtr(processed)
	if err := decodeJSON(metadata, &u.Metadata); err != nil {
		return nil, fmt.Errorf("upload %d metadata: %w", u.ID, err)
	}
	return &u, nil
}

// CreateUpload inserts u and fills in its ID and upload time
func (r *UploadRepo) CreateUpload(ctx context.Context, u *models.UploadedFile) error {
	metadata, err := encodeJSON(u.Metadata, "{}")
	if err != nil {
		return err
	}
	if u.Status == "" {
		u.Status = models.UploadProcessing
	}

	now := timestamp(time.Now())
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO uploaded_files (project_id, filename, size, file_type, checksum, content_preview,
			metadata, status, error_message, task_count, total_lines, uploaded_at, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ProjectID, u.Filename, u.Size, u.FileType, u.Checksum, u.ContentPreview,
		metadata, string(u.Status), u.ErrorMessage, u.TaskCount, u.TotalLines, now,
		nullTime(u.ProcessedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert upload '%s': %w", u.Filename, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get upload ID after insert: %w", err)
	}
	u.ID = int(id)
	u.UploadedAt = now
	return nil
}

func (r *UploadRepo) GetUploadByID(ctx context.Context, id int) (*models.UploadedFile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+uploadColumns+` FROM uploaded_files WHERE id = ?`, id)
	u, err := scanUpload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("upload", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get upload %d: %w", id, err)
	}
	return u, nil
}

// ListUploads returns a project's uploads, newest first
func (r *UploadRepo) ListUploads(ctx context.Context, projectID int) ([]*models.UploadedFile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+uploadColumns+` FROM uploaded_files WHERE project_id = ? ORDER BY id DESC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	uploads := make([]*models.UploadedFile, 0)
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// UpdateUpload persists the processing outcome of u
func (r *UploadRepo) UpdateUpload(ctx context.Context, u *models.UploadedFile) error {
	metadata, err := encodeJSON(u.Metadata, "{}")
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE uploaded_files SET status = ?, error_message = ?, metadata = ?, task_count = ?,
			total_lines = ?, processed_at = ?
		WHERE id = ?`,
		string(u.Status), u.ErrorMessage, metadata, u.TaskCount,
		u.TotalLines, nullTime(u.ProcessedAt), u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update upload %d: %w", u.ID, err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound("upload", u.ID)
	}
	return nil
}
