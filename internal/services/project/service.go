package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/models"
	"github.com/kdpii/nerlabel/internal/stats"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	GetProject(ctx context.Context, id int) (*models.Project, error)
	ResolveProject(ctx context.Context, ref string) (*models.Project, error)
	ListProjects(ctx context.Context, req ListProjectsRequest) ([]*models.Project, error)
	GetProjectStats(ctx context.Context, id int) (*models.ProjectStats, error)
	GetGlobalStats(ctx context.Context) (*models.GlobalStats, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id int) error
	EnsureDefaultProject(ctx context.Context) (*models.Project, bool, error)
	ResetProject(ctx context.Context, id int) (*ResetResult, error)
	DuplicateProject(ctx context.Context, id int) (*models.Project, error)
}

// CreateProjectRequest encapsulates data for creating a project.
// AllowOverlapping defaults to true when nil.
type CreateProjectRequest struct {
	Name             string
	Description      string
	AllowOverlapping *bool
	RequireAllLabels bool
	OwnerID          *string
}

// UpdateProjectRequest encapsulates data for updating a project
// Fields with pointers are optional - nil means don't update
type UpdateProjectRequest struct {
	ID               int
	Name             *string
	Description      *string
	IsActive         *bool
	AllowOverlapping *bool
	RequireAllLabels *bool
	OwnerID          *string
}

// ListProjectsRequest filters ListProjects
type ListProjectsRequest struct {
	ActiveOnly bool
	OwnerID    *string
}

// ResetResult reports what ResetProject changed
type ResetResult struct {
	AnnotationsDeleted int
	TasksReopened      int
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new project service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// ============================================================================
// Read operations
// ============================================================================

func (s *service) GetProject(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}
	return s.repo.GetProjectByID(ctx, id)
}

// ResolveProject accepts a numeric id or a project name. Names are not
// unique; the oldest project with the name wins.
func (s *service) ResolveProject(ctx context.Context, ref string) (*models.Project, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		return s.GetProject(ctx, id)
	}
	if ref == "" {
		return nil, ErrEmptyName
	}
	return s.repo.GetProjectByName(ctx, ref)
}

func (s *service) ListProjects(ctx context.Context, req ListProjectsRequest) ([]*models.Project, error) {
	filter := database.ProjectFilter{OwnerID: req.OwnerID}
	if req.ActiveOnly {
		active := true
		filter.IsActive = &active
	}
	return s.repo.ListProjects(ctx, filter)
}

// GetProjectStats computes a project snapshot inside one transaction so the
// counts and the distribution agree
func (s *service) GetProjectStats(ctx context.Context, id int) (*models.ProjectStats, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}

	var result *models.ProjectStats
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetProjectByID(ctx, id); err != nil {
			return err
		}

		var (
			c   stats.Counts
			err error
		)
		if c.TaskCount, c.CompletedTaskCount, err = tx.CountTasks(ctx, &id); err != nil {
			return err
		}
		if c.AnnotationCount, err = tx.CountAnnotations(ctx, &id); err != nil {
			return err
		}
		if c.EntityCount, err = tx.CountEntities(ctx, &id); err != nil {
			return err
		}
		payloads, err := tx.ListLabelPayloads(ctx, &id)
		if err != nil {
			return err
		}

		result = stats.ProjectStatistics(id, c, stats.DistributionFromPayloads(payloads))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics for project %d: %w", id, err)
	}
	return result, nil
}

// GetGlobalStats computes store-wide figures inside one transaction
func (s *service) GetGlobalStats(ctx context.Context) (*models.GlobalStats, error) {
	var result *models.GlobalStats
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		projects, err := tx.CountProjects(ctx)
		if err != nil {
			return err
		}
		tasks, completed, err := tx.CountTasks(ctx, nil)
		if err != nil {
			return err
		}
		annotations, err := tx.CountAnnotations(ctx, nil)
		if err != nil {
			return err
		}
		payloads, err := tx.ListLabelPayloads(ctx, nil)
		if err != nil {
			return err
		}

		result = stats.GlobalStatistics(projects, tasks, completed, annotations,
			stats.DistributionFromPayloads(payloads))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute global statistics: %w", err)
	}
	return result, nil
}

// ============================================================================
// Write operations
// ============================================================================

// CreateProject creates a new project with validation
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	p := &models.Project{
		Name:                        name,
		Description:                 req.Description,
		IsActive:                    true,
		AllowOverlappingAnnotations: true,
		RequireAllLabels:            req.RequireAllLabels,
		OwnerID:                     req.OwnerID,
	}
	if req.AllowOverlapping != nil {
		p.AllowOverlappingAnnotations = *req.AllowOverlapping
	}

	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	slog.Info("created project", "project_id", p.ID, "name", p.Name)
	return p, nil
}

// UpdateProject applies the non-nil fields of req
func (s *service) UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidProjectID
	}

	p, err := s.repo.GetProjectByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		p.Name = name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.AllowOverlapping != nil {
		p.AllowOverlappingAnnotations = *req.AllowOverlapping
	}
	if req.RequireAllLabels != nil {
		p.RequireAllLabels = *req.RequireAllLabels
	}
	if req.OwnerID != nil {
		if *req.OwnerID == "" {
			p.OwnerID = nil
		} else {
			p.OwnerID = req.OwnerID
		}
	}

	if err := s.repo.UpdateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p, nil
}

// DeleteProject deletes a project with its tasks, annotations, labels and uploads
func (s *service) DeleteProject(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidProjectID
	}
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	slog.Info("deleted project", "project_id", id)
	return nil
}

// EnsureDefaultProject returns the default project, creating it on first call.
// The bool reports whether it was created.
func (s *service) EnsureDefaultProject(ctx context.Context) (*models.Project, bool, error) {
	var (
		project *models.Project
		created bool
	)
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		p, err := tx.GetProjectByName(ctx, models.DefaultProjectName)
		if err == nil {
			project = p
			return nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return err
		}

		p = &models.Project{
			Name:                        models.DefaultProjectName,
			Description:                 models.DefaultProjectDescription,
			IsActive:                    true,
			AllowOverlappingAnnotations: true,
		}
		if err := tx.CreateProject(ctx, p); err != nil {
			return err
		}
		project, created = p, true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to ensure default project: %w", err)
	}
	if created {
		slog.Info("created default project", "project_id", project.ID)
	}
	return project, created, nil
}

// ResetProject deletes every annotation in a project and reopens its tasks
func (s *service) ResetProject(ctx context.Context, id int) (*ResetResult, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}

	result := &ResetResult{}
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetProjectByID(ctx, id); err != nil {
			return err
		}
		var err error
		if result.AnnotationsDeleted, err = tx.DeleteAnnotationsByProject(ctx, id); err != nil {
			return err
		}
		result.TasksReopened, err = tx.UpdateTasksCompletion(ctx, database.BulkCompletion{
			ProjectID: &id,
			Completed: false,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset project %d: %w", id, err)
	}

	slog.Info("reset project", "project_id", id,
		"annotations_deleted", result.AnnotationsDeleted, "tasks_reopened", result.TasksReopened)
	return result, nil
}

// DuplicateProject copies a project's settings, labels and task texts.
// Annotations are not copied, so every copied task starts incomplete.
func (s *service) DuplicateProject(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}

	var dup *models.Project
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		src, err := tx.GetProjectByID(ctx, id)
		if err != nil {
			return err
		}

		dup = &models.Project{
			Name:                        copyName(src.Name),
			Description:                 src.Description,
			IsActive:                    src.IsActive,
			AllowOverlappingAnnotations: src.AllowOverlappingAnnotations,
			RequireAllLabels:            src.RequireAllLabels,
			OwnerID:                     src.OwnerID,
		}
		if err := tx.CreateProject(ctx, dup); err != nil {
			return err
		}

		labels, err := tx.ListLabels(ctx, database.LabelFilter{ProjectID: &id})
		if err != nil {
			return err
		}
		for _, l := range labels {
			cp := *l
			cp.ID = 0
			cp.ProjectID = &dup.ID
			if err := tx.CreateLabel(ctx, &cp); err != nil {
				return err
			}
		}

		tasks, err := tx.ListTasks(ctx, models.TaskFilter{ProjectID: &id})
		if err != nil {
			return err
		}
		for _, t := range tasks {
			cp := models.NewTask(dup.ID, t.Text)
			cp.OriginalFilename = t.OriginalFilename
			cp.LineNumber = t.LineNumber
			cp.IdentifierType = t.IdentifierType
			cp.Metadata = t.Metadata
			if err := tx.CreateTask(ctx, cp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate project %d: %w", id, err)
	}

	slog.Info("duplicated project", "source_id", id, "project_id", dup.ID)
	return dup, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

// copyName appends " (Copy)", trimming the source so the result still fits
func copyName(name string) string {
	const suffix = " (Copy)"
	runes := []rune(name)
	if keep := MaxNameLength - utf8.RuneCountInString(suffix); len(runes) > keep {
		runes = runes[:keep]
	}
	return string(runes) + suffix
}
