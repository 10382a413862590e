package app

import (
	"log/slog"

	"github.com/kdpii/nerlabel/internal/config"
	"github.com/kdpii/nerlabel/internal/database"
	"github.com/kdpii/nerlabel/internal/export"
	annotationservice "github.com/kdpii/nerlabel/internal/services/annotation"
	exportservice "github.com/kdpii/nerlabel/internal/services/export"
	labelservice "github.com/kdpii/nerlabel/internal/services/label"
	projectservice "github.com/kdpii/nerlabel/internal/services/project"
	taskservice "github.com/kdpii/nerlabel/internal/services/task"
	uploadservice "github.com/kdpii/nerlabel/internal/services/upload"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	Config *config.Config
	Logger *slog.Logger

	// Service layer (business logic)
	ProjectService    projectservice.Service
	TaskService       taskservice.Service
	AnnotationService annotationservice.Service
	LabelService      labelservice.Service
	UploadService     uploadservice.Service
	ExportService     exportservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		cfg.config = config.Default()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	ingest := cfg.config.Ingest
	tieBreak, err := export.ParseTieBreak(cfg.config.Export.CoNLLTieBreak)
	if err != nil {
		cfg.logger.Warn("ignoring configured tie-break", "error", err)
		tieBreak = export.TieBreakFirst
	}

	return &App{
		repo:              repo,
		Config:            cfg.config,
		Logger:            cfg.logger,
		ProjectService:    projectservice.NewService(repo),
		TaskService:       taskservice.NewService(repo),
		AnnotationService: annotationservice.NewService(repo),
		LabelService:      labelservice.NewService(repo),
		UploadService: uploadservice.NewService(repo, uploadservice.Options{
			MaxFileSize:    ingest.MaxFileSize,
			SkipDuplicates: ingest.SkipDuplicates,
			CreateLabels:   ingest.CreateLabels,
			PreviewLength:  ingest.PreviewLength,
			MinTextLength:  ingest.MinTextLength,
			MaxTextLength:  ingest.MaxTextLength,
		}),
		ExportService: exportservice.NewService(repo, exportservice.Options{
			CoNLL: export.CoNLLOptions{
				TieBreak:    tieBreak,
				TaskHeaders: cfg.config.Export.CoNLLTaskHeaders,
			},
		}),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Close performs cleanup of application resources.
// The database handle is owned by the caller.
func (a *App) Close() error {
	return nil
}
