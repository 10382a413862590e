package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is one unit of annotatable text. Text never changes after creation.
// CompletionTime is non-nil exactly when IsCompleted is true.
type Task struct {
	ID               int
	UUID             string
	ProjectID        int
	UploadID         *int
	Text             string
	OriginalFilename string
	LineNumber       int
	IsCompleted      bool
	CompletionTime   *time.Time
	IdentifierType   IdentifierType
	AnnotatorID      *string
	Metadata         map[string]any
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewTask returns a task with a fresh uuid and default identifier type
func NewTask(projectID int, text string) *Task {
	return &Task{
		UUID:           uuid.New().String(),
		ProjectID:      projectID,
		Text:           text,
		IdentifierType: IdentifierDefault,
	}
}

// MarkCompleted sets the completion time and, when given, the annotator
func (t *Task) MarkCompleted(at time.Time, annotatorID *string) {
	t.IsCompleted = true
	completed := at
	t.CompletionTime = &completed
	if annotatorID != nil {
		t.AnnotatorID = annotatorID
	}
}

// MarkIncomplete clears completion state
func (t *Task) MarkIncomplete() {
	t.IsCompleted = false
	t.CompletionTime = nil
}

// TextLength is the length of Text in characters
func (t *Task) TextLength() int {
	return len([]rune(t.Text))
}

// TaskSummary is a lightweight row for task listings
type TaskSummary struct {
	ID              int
	UUID            string
	ProjectID       int
	Text            string
	LineNumber      int
	IsCompleted     bool
	AnnotationCount int
	EntityCount     int
}

// TaskFilter narrows task queries. Nil fields are not applied.
type TaskFilter struct {
	ProjectID        *int
	IsCompleted      *bool
	OriginalFilename *string
	Limit            int
	Offset           int
}
