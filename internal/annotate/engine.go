// Package annotate holds the span algorithms applied to a task's annotations:
// overlap detection, entity counting and entity grouping.
package annotate

import (
	"fmt"

	"github.com/kdpii/nerlabel/internal/models"
	"github.com/kdpii/nerlabel/internal/span"
)

// FindOverlapping returns every annotation that overlaps at least one other
// annotation, in input order and without duplicates.
// Per-task annotation counts are small, so the scan is pairwise.
func FindOverlapping(annotations []*models.Annotation) []*models.Annotation {
	flagged := OverlapFlags(annotations)

	result := make([]*models.Annotation, 0, len(annotations))
	for i, a := range annotations {
		if flagged[i] {
			result = append(result, a)
		}
	}
	return result
}

// OverlapFlags reports, per index, whether that annotation overlaps any other
func OverlapFlags(annotations []*models.Annotation) []bool {
	flags := make([]bool, len(annotations))
	for i := 0; i < len(annotations); i++ {
		for j := i + 1; j < len(annotations); j++ {
			if annotations[i].Overlaps(annotations[j]) {
				flags[i] = true
				flags[j] = true
			}
		}
	}
	return flags
}

// ConflictsWith returns the existing annotations that overlap candidate,
// skipping the candidate itself when it is already stored.
func ConflictsWith(existing []*models.Annotation, candidate *models.Annotation) []*models.Annotation {
	var conflicts []*models.Annotation
	for _, a := range existing {
		if candidate.ID != 0 && a.ID == candidate.ID {
			continue
		}
		if a.Overlaps(candidate) {
			conflicts = append(conflicts, a)
		}
	}
	return conflicts
}

// EntityCount is the number of distinct (start, end) positions.
// Annotations sharing a span count once regardless of their labels.
func EntityCount(annotations []*models.Annotation) int {
	seen := make(map[span.Span]struct{}, len(annotations))
	for _, a := range annotations {
		seen[a.Span()] = struct{}{}
	}
	return len(seen)
}

// EntityGroup is a set of annotations referring to the same real-world entity
type EntityGroup struct {
	EntityID    string
	Annotations []*models.Annotation
}

// GroupByEntity groups annotations by entity id in first-seen order.
// Annotations without an entity id form singleton groups keyed by their uuid.
func GroupByEntity(annotations []*models.Annotation) []EntityGroup {
	index := make(map[string]int)
	var groups []EntityGroup

	for _, a := range annotations {
		key := a.UUID
		if a.EntityID != nil && *a.EntityID != "" {
			key = *a.EntityID
		}
		if i, ok := index[key]; ok {
			groups[i].Annotations = append(groups[i].Annotations, a)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, EntityGroup{EntityID: key, Annotations: []*models.Annotation{a}})
	}
	return groups
}

// Validate checks an annotation against its task: the span must be valid and
// inside the text, the text must match, and the enums must be known values.
func Validate(task *models.Task, a *models.Annotation) error {
	if err := a.ValidateAgainst(task.Text); err != nil {
		return err
	}
	if !a.Confidence.Valid() {
		return fmt.Errorf("confidence %q: %w", a.Confidence, models.ErrInvalidEnumValue)
	}
	if !a.IdentifierType.Valid() {
		return fmt.Errorf("identifier type %q: %w", a.IdentifierType, models.ErrInvalidEnumValue)
	}
	return nil
}

// FillText sets a.Text from the task text when the caller left it empty
func FillText(task *models.Task, a *models.Annotation) error {
	if a.Text != "" {
		return nil
	}
	s := a.Span()
	if err := s.ValidateText(task.Text, nil); err != nil {
		return err
	}
	a.Text = s.Slice([]rune(task.Text))
	return nil
}
