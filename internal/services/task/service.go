package task

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/models"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, id int) (*models.Task, error)
	ResolveTask(ctx context.Context, ref string) (*models.Task, error)
	ListTasks(ctx context.Context, req ListTasksRequest) ([]*models.TaskSummary, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id int) error
	SetIdentifierType(ctx context.Context, id int, value string) (*models.Task, error)

	// Completion
	MarkCompleted(ctx context.Context, id int, annotatorID *string) (*models.Task, error)
	MarkIncomplete(ctx context.Context, id int) (*models.Task, error)
	SetCompletion(ctx context.Context, req BulkCompletionRequest) (int, error)
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	ProjectID        int
	Text             string
	OriginalFilename string
	LineNumber       int
	IdentifierType   string // Optional: empty means default
	Metadata         map[string]any
}

// ListTasksRequest filters task listings. Nil pointers are not applied.
type ListTasksRequest struct {
	ProjectID int
	Completed *bool
	Filename  *string
	Limit     int
	Offset    int
}

// BulkCompletionRequest marks a set of tasks complete or incomplete.
// TaskIDs empty means every task in ProjectID.
type BulkCompletionRequest struct {
	ProjectID   int
	TaskIDs     []int
	Completed   bool
	AnnotatorID *string
}

// service implements Service interface
type service struct {
	repo database.DataStore
	now  func() time.Time
}

// NewService creates a new task service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo, now: time.Now}
}

// ============================================================================
// Read operations
// ============================================================================

func (s *service) GetTask(ctx context.Context, id int) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	return s.repo.GetTaskByID(ctx, id)
}

// ResolveTask accepts either a numeric id or a task uuid
func (s *service) ResolveTask(ctx context.Context, ref string) (*models.Task, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		return s.GetTask(ctx, id)
	}
	if ref == "" {
		return nil, ErrInvalidTaskID
	}
	return s.repo.GetTaskByUUID(ctx, ref)
}

// ListTasks returns task summaries with annotation and entity counts
func (s *service) ListTasks(ctx context.Context, req ListTasksRequest) ([]*models.TaskSummary, error) {
	if req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	return s.repo.ListTaskSummaries(ctx, models.TaskFilter{
		ProjectID:        &req.ProjectID,
		IsCompleted:      req.Completed,
		OriginalFilename: req.Filename,
		Limit:            req.Limit,
		Offset:           req.Offset,
	})
}

// ============================================================================
// Write operations
// ============================================================================

// CreateTask handles task creation with validation
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}
	if req.LineNumber < 0 {
		return nil, ErrInvalidLine
	}

	t := models.NewTask(req.ProjectID, req.Text)
	t.OriginalFilename = req.OriginalFilename
	t.LineNumber = req.LineNumber
	t.Metadata = req.Metadata
	if req.IdentifierType != "" {
		it, err := models.ParseIdentifierType(req.IdentifierType)
		if err != nil {
			return nil, err
		}
		t.IdentifierType = it
	}

	if _, err := s.repo.GetProjectByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

func (s *service) DeleteTask(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidTaskID
	}
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *service) SetIdentifierType(ctx context.Context, id int, value string) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	it, err := models.ParseIdentifierType(value)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetTaskIdentifierType(ctx, id, it); err != nil {
		return nil, fmt.Errorf("failed to set identifier type: %w", err)
	}
	return s.repo.GetTaskByID(ctx, id)
}

// ============================================================================
// Completion
// ============================================================================

// MarkCompleted sets the completion time to now and records the annotator when given
func (s *service) MarkCompleted(ctx context.Context, id int, annotatorID *string) (*models.Task, error) {
	return s.toggle(ctx, id, func(t *models.Task) {
		t.MarkCompleted(s.now(), annotatorID)
	})
}

// MarkIncomplete clears the completion state
func (s *service) MarkIncomplete(ctx context.Context, id int) (*models.Task, error) {
	return s.toggle(ctx, id, func(t *models.Task) {
		t.MarkIncomplete()
	})
}

func (s *service) toggle(ctx context.Context, id int, apply func(*models.Task)) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}

	var task *models.Task
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		t, err := tx.GetTaskByID(ctx, id)
		if err != nil {
			return err
		}
		apply(t)
		if err := tx.UpdateTaskCompletion(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return task, nil
}

// SetCompletion flips a batch of tasks and returns how many changed
func (s *service) SetCompletion(ctx context.Context, req BulkCompletionRequest) (int, error) {
	if req.ProjectID <= 0 && len(req.TaskIDs) == 0 {
		return 0, ErrNoTasksSelected
	}
	for _, id := range req.TaskIDs {
		if id <= 0 {
			return 0, ErrInvalidTaskID
		}
	}

	b := database.BulkCompletion{
		TaskIDs:     req.TaskIDs,
		Completed:   req.Completed,
		At:          s.now(),
		AnnotatorID: req.AnnotatorID,
	}
	if req.ProjectID > 0 {
		b.ProjectID = &req.ProjectID
	}

	n, err := s.repo.UpdateTasksCompletion(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("failed to update tasks: %w", err)
	}
	slog.Info("bulk completion", "project_id", req.ProjectID, "completed", req.Completed, "changed", n)
	return n, nil
}
