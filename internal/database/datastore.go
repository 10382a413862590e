package database

import "context"

// DataStore defines the unified interface for all data operations needed by the services.
// This interface is composed of smaller, domain-specific interfaces following the
// Interface Segregation Principle. Consumers can depend on smaller interfaces
// (e.g., TaskRepository, LabelRepository) for better testability and clearer dependencies.
type DataStore interface {
	ProjectRepository
	TaskRepository
	AnnotationRepository
	LabelRepository
	UploadRepository

	WithTx(ctx context.Context, fn func(DataStore) error) error
}

var _ DataStore = (*Repository)(nil)
