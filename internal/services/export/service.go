package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/export"
	"github.com/kdpii/nerlabel/internal/models"
)

// Service renders a project's tasks and labels into export formats
type Service interface {
	Records(ctx context.Context, req ExportRequest) ([]export.Record, error)
	Write(ctx context.Context, w io.Writer, req ExportRequest) (int, error)
	LabelConfig(ctx context.Context, projectID int) (string, error)
}

// Options holds the CoNLL rendering defaults
type Options struct {
	CoNLL export.CoNLLOptions
}

// ExportRequest selects what to export
type ExportRequest struct {
	ProjectID     int
	Format        export.Format
	CompletedOnly bool
	// TieBreak overrides the configured CoNLL tie-break when non-empty
	TieBreak export.TieBreak
}

type service struct {
	repo database.DataStore
	opts Options
}

// NewService creates a new export service
func NewService(repo database.DataStore, opts Options) Service {
	return &service{repo: repo, opts: opts}
}

// Records loads the project's tasks in insertion order with their annotations
// ordered by start offset. Tasks and annotations are read in one transaction.
func (s *service) Records(ctx context.Context, req ExportRequest) ([]export.Record, error) {
	if req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}

	var records []export.Record
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetProjectByID(ctx, req.ProjectID); err != nil {
			return err
		}

		filter := models.TaskFilter{ProjectID: &req.ProjectID}
		if req.CompletedOnly {
			completed := true
			filter.IsCompleted = &completed
		}
		tasks, err := tx.ListTasks(ctx, filter)
		if err != nil {
			return err
		}
		byTask, err := tx.ListAnnotationsByProject(ctx, req.ProjectID)
		if err != nil {
			return err
		}

		records = make([]export.Record, 0, len(tasks))
		for _, t := range tasks {
			records = append(records, export.Record{Task: t, Annotations: byTask[t.ID]})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load project %d for export: %w", req.ProjectID, err)
	}
	return records, nil
}

// Write renders req.Format to w and returns the number of tasks written.
// The config format writes the label configuration and reports zero tasks.
func (s *service) Write(ctx context.Context, w io.Writer, req ExportRequest) (int, error) {
	if req.Format == export.FormatConfig {
		config, err := s.LabelConfig(ctx, req.ProjectID)
		if err != nil {
			return 0, err
		}
		_, err = io.WriteString(w, config)
		return 0, err
	}

	records, err := s.Records(ctx, req)
	if err != nil {
		return 0, err
	}

	switch req.Format {
	case export.FormatLabelStudio:
		err = export.WriteLabelStudio(w, records)
	case export.FormatCoNLL:
		opts := s.opts.CoNLL
		if req.TieBreak != "" {
			opts.TieBreak = req.TieBreak
		}
		err = export.WriteCoNLL(w, records, opts)
	case export.FormatCSV:
		err = export.WriteCSV(w, records)
	case export.FormatJSONL:
		err = export.WriteJSONL(w, records)
	default:
		_, err = export.ParseFormat(string(req.Format))
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write %s export: %w", req.Format, err)
	}

	slog.Info("exported project", "project_id", req.ProjectID, "format", string(req.Format), "tasks", len(records))
	return len(records), nil
}

// LabelConfig renders the tag configuration from the project's active labels
// and the active global labels
func (s *service) LabelConfig(ctx context.Context, projectID int) (string, error) {
	if projectID <= 0 {
		return "", ErrInvalidProjectID
	}
	if _, err := s.repo.GetProjectByID(ctx, projectID); err != nil {
		return "", err
	}
	labels, err := s.repo.ListLabels(ctx, database.LabelFilter{
		ProjectID:     &projectID,
		IncludeGlobal: true,
		ActiveOnly:    true,
	})
	if err != nil {
		return "", err
	}
	return export.LabelConfig(labels), nil
}
