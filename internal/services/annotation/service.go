package annotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/kdpii/nerlabel/internal/annotate"
	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/models"
)

// Service defines all annotation-related business operations
type Service interface {
	// Read operations
	GetAnnotation(ctx context.Context, id int) (*models.Annotation, error)
	ResolveAnnotation(ctx context.Context, ref string) (*models.Annotation, error)
	ListAnnotations(ctx context.Context, taskID int) ([]*models.Annotation, error)
	FindOverlaps(ctx context.Context, taskID int) ([]*models.Annotation, error)
	GroupEntities(ctx context.Context, taskID int) ([]annotate.EntityGroup, error)

	// Write operations
	CreateAnnotation(ctx context.Context, req CreateAnnotationRequest) (*models.Annotation, error)
	UpdateAnnotation(ctx context.Context, req UpdateAnnotationRequest) (*models.Annotation, error)
	DeleteAnnotation(ctx context.Context, id int) error
	RefreshOverlapFlags(ctx context.Context, taskID int) error

	// Entity links
	Link(ctx context.Context, id, otherID int) error
	Unlink(ctx context.Context, id, otherID int) error
	AddRelationship(ctx context.Context, req RelationshipRequest) (*models.Annotation, error)
}

// CreateAnnotationRequest encapsulates all data needed to create an annotation.
// An empty Text is filled from the task text; a non-empty one must match it.
type CreateAnnotationRequest struct {
	TaskID         int
	Start          int
	End            int
	Text           string
	Labels         []string
	Confidence     string // Optional: empty means high
	IdentifierType string // Optional: empty means default
	EntityID       string
	Notes          string
}

// UpdateAnnotationRequest encapsulates all data needed to update an annotation
// Fields with pointers are optional - nil means don't update
type UpdateAnnotationRequest struct {
	ID             int
	Start          *int
	End            *int
	Labels         *[]string
	AddLabels      []string
	RemoveLabels   []string
	Confidence     *string
	IdentifierType *string
	EntityID       *string // Empty string clears the entity
	Notes          *string
}

// RelationshipRequest adds a typed edge from an annotation to an entity
type RelationshipRequest struct {
	AnnotationID int
	EntityID     string
	Type         string
}

// service implements Service interface
type service struct {
	repo database.DataStore
	now  func() time.Time
}

// NewService creates a new annotation service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo, now: time.Now}
}

// ============================================================================
// Read operations
// ============================================================================

func (s *service) GetAnnotation(ctx context.Context, id int) (*models.Annotation, error) {
	if id <= 0 {
		return nil, ErrInvalidAnnotationID
	}
	return s.repo.GetAnnotationByID(ctx, id)
}

// ResolveAnnotation accepts either a numeric id or an annotation uuid
func (s *service) ResolveAnnotation(ctx context.Context, ref string) (*models.Annotation, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		return s.GetAnnotation(ctx, id)
	}
	if ref == "" {
		return nil, ErrInvalidAnnotationID
	}
	return s.repo.GetAnnotationByUUID(ctx, ref)
}

// ListAnnotations returns a task's annotations ordered by start offset
func (s *service) ListAnnotations(ctx context.Context, taskID int) ([]*models.Annotation, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if _, err := s.repo.GetTaskByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.repo.ListAnnotationsByTask(ctx, taskID)
}

// FindOverlaps returns every annotation of a task that overlaps another one
func (s *service) FindOverlaps(ctx context.Context, taskID int) ([]*models.Annotation, error) {
	annotations, err := s.ListAnnotations(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return annotate.FindOverlapping(annotations), nil
}

// GroupEntities groups a task's annotations by entity id
func (s *service) GroupEntities(ctx context.Context, taskID int) ([]annotate.EntityGroup, error) {
	annotations, err := s.ListAnnotations(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return annotate.GroupByEntity(annotations), nil
}

// ============================================================================
// Write operations
// ============================================================================

// CreateAnnotation validates the span against the task text and the project
// rules, stores the annotation and refreshes the task's overlap flags, all in
// one transaction
func (s *service) CreateAnnotation(ctx context.Context, req CreateAnnotationRequest) (*models.Annotation, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	a := models.NewAnnotation(req.TaskID, req.Start, req.End, req.Text, req.Labels)
	a.Notes = req.Notes
	a.SetEntityID(strings.TrimSpace(req.EntityID))
	if req.Confidence != "" {
		if err := a.SetConfidence(req.Confidence); err != nil {
			return nil, err
		}
	}
	if req.IdentifierType != "" {
		if err := a.SetIdentifierType(req.IdentifierType); err != nil {
			return nil, err
		}
	}

	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		task, project, err := loadTask(ctx, tx, req.TaskID)
		if err != nil {
			return err
		}
		if err := annotate.FillText(task, a); err != nil {
			return err
		}
		if err := s.check(ctx, tx, task, project, a); err != nil {
			return err
		}
		if err := tx.CreateAnnotation(ctx, a); err != nil {
			return err
		}
		return refreshFlags(ctx, tx, task.ID, a)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create annotation: %w", err)
	}

	slog.Debug("created annotation", "annotation_id", a.ID, "task_id", a.TaskID,
		"start", a.Start, "end", a.End, "labels", a.Labels)
	return a, nil
}

// UpdateAnnotation applies the non-nil fields of req. A moved span gets its
// text re-read from the task.
func (s *service) UpdateAnnotation(ctx context.Context, req UpdateAnnotationRequest) (*models.Annotation, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidAnnotationID
	}

	var result *models.Annotation
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		a, err := tx.GetAnnotationByID(ctx, req.ID)
		if err != nil {
			return err
		}
		task, project, err := loadTask(ctx, tx, a.TaskID)
		if err != nil {
			return err
		}

		if req.Start != nil || req.End != nil {
			if req.Start != nil {
				a.Start = *req.Start
			}
			if req.End != nil {
				a.End = *req.End
			}
			a.Text = ""
			if err := annotate.FillText(task, a); err != nil {
				return err
			}
		}
		if req.Labels != nil {
			a.SetLabels(*req.Labels)
		}
		for _, l := range req.AddLabels {
			a.AddLabel(l)
		}
		for _, l := range req.RemoveLabels {
			a.RemoveLabel(l)
		}
		if req.Confidence != nil {
			if err := a.SetConfidence(*req.Confidence); err != nil {
				return err
			}
		}
		if req.IdentifierType != nil {
			if err := a.SetIdentifierType(*req.IdentifierType); err != nil {
				return err
			}
		}
		if req.EntityID != nil {
			a.SetEntityID(strings.TrimSpace(*req.EntityID))
		}
		if req.Notes != nil {
			a.Notes = *req.Notes
		}

		if err := s.check(ctx, tx, task, project, a); err != nil {
			return err
		}
		if err := tx.UpdateAnnotation(ctx, a); err != nil {
			return err
		}
		if err := refreshFlags(ctx, tx, task.ID, a); err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update annotation %d: %w", req.ID, err)
	}
	return result, nil
}

// DeleteAnnotation removes an annotation, drops it from the related lists of
// its peers and refreshes the task's overlap flags
func (s *service) DeleteAnnotation(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidAnnotationID
	}

	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		a, err := tx.GetAnnotationByID(ctx, id)
		if err != nil {
			return err
		}
		for _, peerID := range a.RelatedAnnotations {
			peer, err := tx.GetAnnotationByID(ctx, peerID)
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to load related annotation %d: %w", peerID, err)
			}
			if peer.UnlinkRelated(id) {
				if err := tx.UpdateAnnotation(ctx, peer); err != nil {
					return err
				}
			}
		}
		if err := tx.DeleteAnnotation(ctx, id); err != nil {
			return err
		}
		return refreshFlags(ctx, tx, a.TaskID, nil)
	})
	if err != nil {
		return fmt.Errorf("failed to delete annotation %d: %w", id, err)
	}
	return nil
}

// RefreshOverlapFlags recomputes the cached overlap flag of every annotation in a task
func (s *service) RefreshOverlapFlags(ctx context.Context, taskID int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}
	return s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetTaskByID(ctx, taskID); err != nil {
			return err
		}
		return refreshFlags(ctx, tx, taskID, nil)
	})
}

// ============================================================================
// Entity links
// ============================================================================

// Link records a symmetric relation between two annotations
func (s *service) Link(ctx context.Context, id, otherID int) error {
	return s.relink(ctx, id, otherID, func(a *models.Annotation, peer int) bool {
		return a.LinkRelated(peer)
	})
}

// Unlink removes the relation from both sides
func (s *service) Unlink(ctx context.Context, id, otherID int) error {
	return s.relink(ctx, id, otherID, func(a *models.Annotation, peer int) bool {
		return a.UnlinkRelated(peer)
	})
}

func (s *service) relink(ctx context.Context, id, otherID int, apply func(*models.Annotation, int) bool) error {
	if id <= 0 || otherID <= 0 {
		return ErrInvalidAnnotationID
	}
	if id == otherID {
		return ErrSelfLink
	}

	return s.repo.WithTx(ctx, func(tx database.DataStore) error {
		a, err := tx.GetAnnotationByID(ctx, id)
		if err != nil {
			return err
		}
		b, err := tx.GetAnnotationByID(ctx, otherID)
		if err != nil {
			return err
		}
		if apply(a, b.ID) {
			if err := tx.UpdateAnnotation(ctx, a); err != nil {
				return err
			}
		}
		if apply(b, a.ID) {
			if err := tx.UpdateAnnotation(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddRelationship adds a typed edge to an entity; repeats of the same
// entity and type are ignored
func (s *service) AddRelationship(ctx context.Context, req RelationshipRequest) (*models.Annotation, error) {
	if req.AnnotationID <= 0 {
		return nil, ErrInvalidAnnotationID
	}
	entityID := strings.TrimSpace(req.EntityID)
	if entityID == "" {
		return nil, ErrEmptyEntityID
	}
	relType := strings.TrimSpace(req.Type)
	if relType == "" {
		return nil, ErrEmptyRelationType
	}

	var result *models.Annotation
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		a, err := tx.GetAnnotationByID(ctx, req.AnnotationID)
		if err != nil {
			return err
		}
		if a.AddRelationship(entityID, relType, s.now()) {
			if err := tx.UpdateAnnotation(ctx, a); err != nil {
				return err
			}
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add relationship: %w", err)
	}
	return result, nil
}

// ============================================================================
// Helpers
// ============================================================================

func loadTask(ctx context.Context, tx database.DataStore, taskID int) (*models.Task, *models.Project, error) {
	task, err := tx.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	project, err := tx.GetProjectByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

// check enforces span validity and the project's overlap and label rules
func (s *service) check(ctx context.Context, tx database.DataStore, task *models.Task, project *models.Project, a *models.Annotation) error {
	if err := annotate.Validate(task, a); err != nil {
		return err
	}

	if !project.AllowOverlappingAnnotations {
		existing, err := tx.ListAnnotationsByTask(ctx, task.ID)
		if err != nil {
			return err
		}
		if conflicts := annotate.ConflictsWith(existing, a); len(conflicts) > 0 {
			return fmt.Errorf("%s overlaps annotation %d %s: %w",
				a.Span(), conflicts[0].ID, conflicts[0].Span(), models.ErrOverlapNotAllowed)
		}
	}

	if project.RequireAllLabels {
		if len(a.Labels) == 0 {
			return ErrNoLabels
		}
		labels, err := tx.ListLabels(ctx, database.LabelFilter{
			ProjectID:     &project.ID,
			IncludeGlobal: true,
			ActiveOnly:    true,
		})
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(labels))
		for _, l := range labels {
			known[l.Value] = true
		}
		for _, v := range a.Labels {
			if !known[v] {
				return fmt.Errorf("%q: %w", v, ErrUnknownLabel)
			}
		}
	}
	return nil
}

// refreshFlags recomputes overlap flags for a task, writing only the rows
// that changed. When current is non-nil its in-memory flag is updated too.
func refreshFlags(ctx context.Context, tx database.DataStore, taskID int, current *models.Annotation) error {
	annotations, err := tx.ListAnnotationsByTask(ctx, taskID)
	if err != nil {
		return err
	}
	flags := annotate.OverlapFlags(annotations)
	for i, a := range annotations {
		if current != nil && a.ID == current.ID {
			current.SetOverlapping(flags[i])
		}
		if a.Overlapping == flags[i] {
			continue
		}
		if err := tx.SetAnnotationOverlap(ctx, a.ID, flags[i]); err != nil {
			return err
		}
	}
	return nil
}
