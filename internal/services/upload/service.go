package upload

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/kdpii/nerlabel/internal/annotate"
	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/ingest"
	"github.com/kdpii/nerlabel/internal/models"
	"github.com/kdpii/nerlabel/internal/services/label"
)

// Service defines all upload-related business operations
type Service interface {
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)
	GetUpload(ctx context.Context, id int) (*models.UploadedFile, error)
	ListUploads(ctx context.Context, projectID int) ([]*models.UploadedFile, error)
}

// Options tunes ingestion. Zero values use the package defaults of ingest.
type Options struct {
	MaxFileSize    int64
	SkipDuplicates bool
	CreateLabels   bool
	PreviewLength  int
	MinTextLength  int
	MaxTextLength  int
}

// IngestRequest is one file to load into a project
type IngestRequest struct {
	ProjectID int
	Filename  string
	Data      []byte
}

// IngestResult summarizes a completed ingestion
type IngestResult struct {
	Upload        *models.UploadedFile
	Annotations   int
	CreatedLabels []*models.Label
}

type service struct {
	repo database.DataStore
	opts Options
	now  func() time.Time
}

// NewService creates a new upload service
func NewService(repo database.DataStore, opts Options) Service {
	return &service{repo: repo, opts: opts, now: time.Now}
}

func (s *service) GetUpload(ctx context.Context, id int) (*models.UploadedFile, error) {
	if id <= 0 {
		return nil, ErrInvalidUploadID
	}
	return s.repo.GetUploadByID(ctx, id)
}

func (s *service) ListUploads(ctx context.Context, projectID int) ([]*models.UploadedFile, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	return s.repo.ListUploads(ctx, projectID)
}

// Ingest records the file, then creates its tasks and pre-annotations in a
// single transaction. Unsupported or oversized files are rejected without a
// record. Any later failure leaves the record in the failed state with the
// error message and no tasks.
func (s *service) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	if req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	filename := filepath.Base(req.Filename)
	if req.Filename == "" {
		return nil, ErrEmptyFilename
	}

	fileType, err := ingest.FileType(filename)
	if err != nil {
		return nil, err
	}
	if err := ingest.CheckSize(int64(len(req.Data)), s.opts.MaxFileSize); err != nil {
		return nil, err
	}
	project, err := s.repo.GetProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	parsed, parseErr := ingest.Parse(filename, req.Data, ingest.Options{
		MaxSize:        s.opts.MaxFileSize,
		SkipDuplicates: s.opts.SkipDuplicates,
		PreviewLength:  s.opts.PreviewLength,
		MinTextLength:  s.opts.MinTextLength,
		MaxTextLength:  s.opts.MaxTextLength,
	})

	u := &models.UploadedFile{
		ProjectID: project.ID,
		Filename:  filename,
		Size:      int64(len(req.Data)),
		FileType:  fileType,
		Checksum:  ingest.Checksum(req.Data),
		Status:    models.UploadProcessing,
	}
	if parsed != nil {
		u.ContentPreview = parsed.Preview
		u.Metadata = parsed.Metadata
		u.TotalLines = parsed.TotalLines
	}
	if err := s.repo.CreateUpload(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	if parseErr != nil {
		return nil, s.fail(ctx, u, parseErr)
	}

	result := &IngestResult{Upload: u}
	err = s.repo.WithTx(ctx, func(tx database.DataStore) error {
		result.Annotations = 0
		for _, rec := range parsed.Records {
			n, err := s.storeRecord(ctx, tx, u, rec)
			if err != nil {
				return fmt.Errorf("line %d: %w", rec.LineNumber, err)
			}
			result.Annotations += n
		}

		if s.opts.CreateLabels {
			created, err := label.EnsureLabels(ctx, tx, project.ID, parsed.Metadata.ExtractedLabels)
			if err != nil {
				return err
			}
			result.CreatedLabels = created
		}

		// the completed status commits with the tasks or not at all
		processed := s.now().UTC()
		u.Status = models.UploadCompleted
		u.TaskCount = len(parsed.Records)
		u.ProcessedAt = &processed
		if err := tx.UpdateUpload(ctx, u); err != nil {
			return fmt.Errorf("failed to finish upload %d: %w", u.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, u, err)
	}

	slog.Info("ingested file",
		"upload_id", u.ID,
		"project_id", project.ID,
		"filename", filename,
		"encoding", parsed.Encoding,
		"tasks", u.TaskCount,
		"annotations", result.Annotations,
		"labels_created", len(result.CreatedLabels),
	)
	return result, nil
}

// storeRecord inserts one task and its pre-annotations, returning the number
// of annotations stored
func (s *service) storeRecord(ctx context.Context, tx database.DataStore, u *models.UploadedFile, rec ingest.Record) (int, error) {
	task := models.NewTask(u.ProjectID, rec.Text)
	task.UploadID = &u.ID
	task.OriginalFilename = u.Filename
	task.LineNumber = rec.LineNumber
	task.Metadata = rec.Metadata
	if err := tx.CreateTask(ctx, task); err != nil {
		return 0, err
	}

	anns := make([]*models.Annotation, 0, len(rec.Entities))
	for _, e := range rec.Entities {
		var labels []string
		if e.EntityType != "" {
			labels = []string{e.EntityType}
		}
		text := ""
		if e.SpanText != nil {
			text = *e.SpanText
		}
		a := models.NewAnnotation(task.ID, e.Start, e.End, text, labels)
		if err := annotate.FillText(task, a); err != nil {
			return 0, err
		}
		if err := annotate.Validate(task, a); err != nil {
			return 0, err
		}
		anns = append(anns, a)
	}

	for i, overlapping := range annotate.OverlapFlags(anns) {
		anns[i].Overlapping = overlapping
	}
	for _, a := range anns {
		if err := tx.CreateAnnotation(ctx, a); err != nil {
			return 0, err
		}
	}
	return len(anns), nil
}

// fail marks u failed and returns cause
func (s *service) fail(ctx context.Context, u *models.UploadedFile, cause error) error {
	processed := s.now().UTC()
	u.Status = models.UploadFailed
	u.ErrorMessage = cause.Error()
	u.TaskCount = 0
	u.ProcessedAt = &processed
	if err := s.repo.UpdateUpload(ctx, u); err != nil {
		slog.Error("failed to mark upload failed", "upload_id", u.ID, "error", err)
	}
	slog.Warn("ingestion failed", "upload_id", u.ID, "filename", u.Filename, "error", cause)
	return fmt.Errorf("failed to ingest %s: %w", u.Filename, cause)
}
