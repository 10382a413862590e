package converters

import (
	"time"

	"github.com/kdpii/nerlabel/internal/models"
)

// AnnotationJSON is the output shape of an annotation
type AnnotationJSON struct {
	ID                 int                   `json:"id"`
	UUID               string                `json:"uuid"`
	TaskID             int                   `json:"task_id"`
	Start              int                   `json:"start"`
	End                int                   `json:"end"`
	Text               string                `json:"text"`
	Labels             []string              `json:"labels"`
	Confidence         string                `json:"confidence"`
	IdentifierType     string                `json:"identifier_type"`
	Overlapping        bool                  `json:"overlapping"`
	EntityID           *string               `json:"entity_id"`
	RelatedAnnotations []int                 `json:"related_annotations"`
	Relationships      []models.Relationship `json:"relationships"`
	Notes              string                `json:"notes"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

func (a AnnotationJSON) GetID() int { return a.ID }

// AnnotationToJSON converts an annotation
func AnnotationToJSON(a *models.Annotation) AnnotationJSON {
	related := a.RelatedAnnotations
	if related == nil {
		related = []int{}
	}
	relationships := a.Relationships
	if relationships == nil {
		relationships = []models.Relationship{}
	}
	return AnnotationJSON{
		ID:                 a.ID,
		UUID:               a.UUID,
		TaskID:             a.TaskID,
		Start:              a.Start,
		End:                a.End,
		Text:               a.Text,
		Labels:             nonNil(a.Labels),
		Confidence:         string(a.Confidence),
		IdentifierType:     string(a.IdentifierType),
		Overlapping:        a.Overlapping,
		EntityID:           a.EntityID,
		RelatedAnnotations: related,
		Relationships:      relationships,
		Notes:              a.Notes,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// AnnotationsToJSON converts a slice of annotations
func AnnotationsToJSON(annotations []*models.Annotation) []AnnotationJSON {
	out := make([]AnnotationJSON, len(annotations))
	for i, a := range annotations {
		out[i] = AnnotationToJSON(a)
	}
	return out
}
