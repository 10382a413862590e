package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/kdpii/nerlabel/internal/span"
)

// Relationship links an annotation to a real-world entity with a typed edge
type Relationship struct {
	EntityID  string    `json:"entity_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Annotation is a labeled span inside a task's text.
// Overlapping is a cached flag refreshed by the annotation service.
type Annotation struct {
	ID                 int
	UUID               string
	TaskID             int
	Start              int
	End                int
	Text               string
	Labels             []string
	Confidence         Confidence
	IdentifierType     IdentifierType
	Overlapping        bool
	EntityID           *string
	RelatedAnnotations []int
	Relationships      []Relationship
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewAnnotation returns an annotation with a fresh uuid and default enums
func NewAnnotation(taskID, start, end int, text string, labels []string) *Annotation {
	a := &Annotation{
		UUID:           uuid.New().String(),
		TaskID:         taskID,
		Start:          start,
		End:            end,
		Text:           text,
		Confidence:     ConfidenceHigh,
		IdentifierType: IdentifierDefault,
	}
	a.SetLabels(labels)
	return a
}

// Span returns the annotation's interval
func (a *Annotation) Span() span.Span {
	return span.Span{Start: a.Start, End: a.End}
}

// SpanLength is End - Start
func (a *Annotation) SpanLength() int {
	return a.End - a.Start
}

// ValidateAgainst checks the span and that Text equals taskText[Start:End]
func (a *Annotation) ValidateAgainst(taskText string) error {
	return a.Span().ValidateText(taskText, &a.Text)
}

func (a *Annotation) Overlaps(o *Annotation) bool {
	return a.Span().Overlaps(o.Span())
}

// Contains reports whether o lies inside a
func (a *Annotation) Contains(o *Annotation) bool {
	return a.Span().Contains(o.Span())
}

// IsContainedBy reports whether a lies inside o
func (a *Annotation) IsContainedBy(o *Annotation) bool {
	return o.Span().Contains(a.Span())
}

// FirstLabel returns the first label or "" when there are none
func (a *Annotation) FirstLabel() string {
	if len(a.Labels) == 0 {
		return ""
	}
	return a.Labels[0]
}

// HasLabel reports whether value is among the labels
func (a *Annotation) HasLabel(value string) bool {
	return slices.Contains(a.Labels, value)
}

// ============================================================================
// MUTATORS
// ============================================================================

// AddLabel appends value unless it is already present
func (a *Annotation) AddLabel(value string) bool {
	if value == "" || a.HasLabel(value) {
		return false
	}
	a.Labels = append(a.Labels, value)
	return true
}

// RemoveLabel drops value, reporting whether it was present
func (a *Annotation) RemoveLabel(value string) bool {
	i := slices.Index(a.Labels, value)
	if i < 0 {
		return false
	}
	a.Labels = slices.Delete(a.Labels, i, i+1)
	return true
}

// SetLabels replaces the labels, dropping blanks and duplicates but keeping order
func (a *Annotation) SetLabels(values []string) {
	a.Labels = make([]string, 0, len(values))
	for _, v := range values {
		a.AddLabel(v)
	}
}

func (a *Annotation) SetConfidence(value string) error {
	c, err := ParseConfidence(value)
	if err != nil {
		return err
	}
	a.Confidence = c
	return nil
}

func (a *Annotation) SetIdentifierType(value string) error {
	it, err := ParseIdentifierType(value)
	if err != nil {
		return err
	}
	a.IdentifierType = it
	return nil
}

// SetEntityID groups the annotation with others naming the same entity.
// An empty id clears the grouping.
func (a *Annotation) SetEntityID(id string) {
	if id == "" {
		a.EntityID = nil
		return
	}
	a.EntityID = &id
}

func (a *Annotation) SetOverlapping(overlapping bool) {
	a.Overlapping = overlapping
}

// LinkRelated records another annotation id, ignoring self and duplicates
func (a *Annotation) LinkRelated(id int) bool {
	if id == a.ID || slices.Contains(a.RelatedAnnotations, id) {
		return false
	}
	a.RelatedAnnotations = append(a.RelatedAnnotations, id)
	return true
}

func (a *Annotation) UnlinkRelated(id int) bool {
	i := slices.Index(a.RelatedAnnotations, id)
	if i < 0 {
		return false
	}
	a.RelatedAnnotations = slices.Delete(a.RelatedAnnotations, i, i+1)
	return true
}

// AddRelationship appends a relationship unless one with the same entity and type exists
func (a *Annotation) AddRelationship(entityID, relType string, at time.Time) bool {
	for _, r := range a.Relationships {
		if r.EntityID == entityID && r.Type == relType {
			return false
		}
	}
	a.Relationships = append(a.Relationships, Relationship{
		EntityID:  entityID,
		Type:      relType,
		CreatedAt: at,
	})
	return true
}
