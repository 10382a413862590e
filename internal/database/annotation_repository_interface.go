package database

import (
	"context"

	"github.com/kdpii/nerlabel/internal/models"
)

// AnnotationReader defines read operations for annotations.
type AnnotationReader interface {
	GetAnnotationByID(ctx context.Context, id int) (*models.Annotation, error)
	GetAnnotationByUUID(ctx context.Context, uuid string) (*models.Annotation, error)
	ListAnnotationsByTask(ctx context.Context, taskID int) ([]*models.Annotation, error)
	ListAnnotationsByProject(ctx context.Context, projectID int) (map[int][]*models.Annotation, error)
	CountAnnotations(ctx context.Context, projectID *int) (int, error)
	CountEntities(ctx context.Context, projectID *int) (int, error)
	ListLabelPayloads(ctx context.Context, projectID *int) ([]string, error)
}

// AnnotationWriter defines write operations for annotations.
type AnnotationWriter interface {
	CreateAnnotation(ctx context.Context, a *models.Annotation) error
	UpdateAnnotation(ctx context.Context, a *models.Annotation) error
	SetAnnotationOverlap(ctx context.Context, id int, overlapping bool) error
	DeleteAnnotation(ctx context.Context, id int) error
	DeleteAnnotationsByProject(ctx context.Context, projectID int) (int, error)
}

// AnnotationRepository combines all annotation-related operations.
type AnnotationRepository interface {
	AnnotationReader
	AnnotationWriter
}
