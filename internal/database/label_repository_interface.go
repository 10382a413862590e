package database

import (
	"context"

	"github.com/kdpii/nerlabel/internal/models"
)

// LabelReader defines read operations for labels.
type LabelReader interface {
	GetLabelByID(ctx context.Context, id int) (*models.Label, error)
	GetLabelByValue(ctx context.Context, projectID *int, value string) (*models.Label, error)
	GetLabelByHotkey(ctx context.Context, projectID *int, hotkey string) (*models.Label, error)
	ListLabels(ctx context.Context, filter LabelFilter) ([]*models.Label, error)
	MaxLabelSortOrder(ctx context.Context, projectID *int) (int, error)
}

// LabelWriter defines write operations for labels.
type LabelWriter interface {
	CreateLabel(ctx context.Context, l *models.Label) error
	UpdateLabel(ctx context.Context, l *models.Label) error
	DeleteLabel(ctx context.Context, id int) error
	DeleteLabelsByScope(ctx context.Context, projectID *int) (int, error)
}

// LabelRepository combines all label-related operations.
type LabelRepository interface {
	LabelReader
	LabelWriter
}
