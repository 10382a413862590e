package database

import (
	"context"

	"github.com/kdpii/nerlabel/internal/models"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	GetTaskByUUID(ctx context.Context, uuid string) (*models.Task, error)
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error)
	ListTaskSummaries(ctx context.Context, filter models.TaskFilter) ([]*models.TaskSummary, error)
	CountTasks(ctx context.Context, projectID *int) (total, completed int, err error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	CreateTask(ctx context.Context, t *models.Task) error
	UpdateTaskCompletion(ctx context.Context, t *models.Task) error
	UpdateTasksCompletion(ctx context.Context, b BulkCompletion) (int, error)
	SetTaskIdentifierType(ctx context.Context, id int, it models.IdentifierType) error
	DeleteTask(ctx context.Context, id int) error
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskWriter
}
