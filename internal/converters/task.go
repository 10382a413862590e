package converters

import (
	"time"

	"github.com/kdpii/nerlabel/internal/models"
)

// TaskJSON is the output shape of a task
type TaskJSON struct {
	ID               int            `json:"id"`
	UUID             string         `json:"uuid"`
	ProjectID        int            `json:"project_id"`
	UploadID         *int           `json:"upload_id"`
	Text             string         `json:"text"`
	OriginalFilename string         `json:"original_filename"`
	LineNumber       int            `json:"line_number"`
	IsCompleted      bool           `json:"is_completed"`
	CompletionTime   *time.Time     `json:"completion_time"`
	IdentifierType   string         `json:"identifier_type"`
	AnnotatorID      *string        `json:"annotator_id"`
	Metadata         map[string]any `json:"metadata"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (t TaskJSON) GetID() int { return t.ID }

// TaskToJSON converts a task
func TaskToJSON(t *models.Task) TaskJSON {
	metadata := t.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return TaskJSON{
		ID:               t.ID,
		UUID:             t.UUID,
		ProjectID:        t.ProjectID,
		UploadID:         t.UploadID,
		Text:             t.Text,
		OriginalFilename: t.OriginalFilename,
		LineNumber:       t.LineNumber,
		IsCompleted:      t.IsCompleted,
		CompletionTime:   t.CompletionTime,
		IdentifierType:   string(t.IdentifierType),
		AnnotatorID:      t.AnnotatorID,
		Metadata:         metadata,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// TaskSummaryJSON is the output shape of a task listing row
type TaskSummaryJSON struct {
	ID              int    `json:"id"`
	UUID            string `json:"uuid"`
	ProjectID       int    `json:"project_id"`
	Text            string `json:"text"`
	LineNumber      int    `json:"line_number"`
	IsCompleted     bool   `json:"is_completed"`
	AnnotationCount int    `json:"annotation_count"`
	EntityCount     int    `json:"entity_count"`
}

func (t TaskSummaryJSON) GetID() int { return t.ID }

// TaskSummariesToJSON converts task listing rows
func TaskSummariesToJSON(summaries []*models.TaskSummary) []TaskSummaryJSON {
	out := make([]TaskSummaryJSON, len(summaries))
	for i, s := range summaries {
		out[i] = TaskSummaryJSON{
			ID:              s.ID,
			UUID:            s.UUID,
			ProjectID:       s.ProjectID,
			Text:            s.Text,
			LineNumber:      s.LineNumber,
			IsCompleted:     s.IsCompleted,
			AnnotationCount: s.AnnotationCount,
			EntityCount:     s.EntityCount,
		}
	}
	return out
}
