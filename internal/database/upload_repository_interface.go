package database

import (
	"context"

	"github.com/kdpii/nerlabel/internal/models"
)

// UploadReader defines read operations for uploaded files.
type UploadReader interface {
	GetUploadByID(ctx context.Context, id int) (*models.UploadedFile, error)
	ListUploads(ctx context.Context, projectID int) ([]*models.UploadedFile, error)
}

// UploadWriter defines write operations for uploaded files.
type UploadWriter interface {
	CreateUpload(ctx context.Context, u *models.UploadedFile) error
	UpdateUpload(ctx context.Context, u *models.UploadedFile) error
}

// UploadRepository combines all upload-related operations.
type UploadRepository interface {
	UploadReader
	UploadWriter
}
