// Package converters turns domain models into the JSON shapes printed by
// the CLI's --json mode.
//
// Field names are snake_case. Optional values stay pointers so absent
// values encode as null rather than zero values. Slices are never nil, so
// empty collections encode as [].
//
// Example usage:
//
//	out := converters.TaskToJSON(task)
//	list := converters.AnnotationsToJSON(annotations)
package converters

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kdpii/nerlabel/internal/models"
)

// ProjectJSON is the output shape of a project
type ProjectJSON struct {
	ID                          int       `json:"id"`
	Name                        string    `json:"name"`
	Description                 string    `json:"description"`
	IsActive                    bool      `json:"is_active"`
	AllowOverlappingAnnotations bool      `json:"allow_overlapping_annotations"`
	RequireAllLabels            bool      `json:"require_all_labels"`
	OwnerID                     *string   `json:"owner_id"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

func (p ProjectJSON) GetID() int { return p.ID }

// ProjectToJSON converts a project
func ProjectToJSON(p *models.Project) ProjectJSON {
	return ProjectJSON{
		ID:                          p.ID,
		Name:                        p.Name,
		Description:                 p.Description,
		IsActive:                    p.IsActive,
		AllowOverlappingAnnotations: p.AllowOverlappingAnnotations,
		RequireAllLabels:            p.RequireAllLabels,
		OwnerID:                     p.OwnerID,
		CreatedAt:                   p.CreatedAt,
		UpdatedAt:                   p.UpdatedAt,
	}
}

// ProjectsToJSON converts a slice of projects
func ProjectsToJSON(projects []*models.Project) []ProjectJSON {
	out := make([]ProjectJSON, len(projects))
	for i, p := range projects {
		out[i] = ProjectToJSON(p)
	}
	return out
}

// ProjectStatsJSON is the output shape of project statistics
type ProjectStatsJSON struct {
	ProjectID            int            `json:"project_id"`
	TaskCount            int            `json:"task_count"`
	CompletedTaskCount   int            `json:"completed_task_count"`
	CompletionPercentage float64        `json:"completion_percentage"`
	AnnotationCount      int            `json:"annotation_count"`
	EntityCount          int            `json:"entity_count"`
	LabelDistribution    map[string]int `json:"label_distribution"`
}

func (s ProjectStatsJSON) GetID() int { return s.ProjectID }

// ProjectStatsToJSON converts project statistics
func ProjectStatsToJSON(s *models.ProjectStats) ProjectStatsJSON {
	return ProjectStatsJSON{
		ProjectID:            s.ProjectID,
		TaskCount:            s.TaskCount,
		CompletedTaskCount:   s.CompletedTaskCount,
		CompletionPercentage: s.CompletionPercentage,
		AnnotationCount:      s.AnnotationCount,
		EntityCount:          s.EntityCount,
		LabelDistribution:    distribution(s.LabelDistribution),
	}
}

// GlobalStatsJSON is the output shape of the store-wide statistics
type GlobalStatsJSON struct {
	TotalProjects     int            `json:"total_projects"`
	TotalTasks        int            `json:"total_tasks"`
	CompletedTasks    int            `json:"completed_tasks"`
	TotalAnnotations  int            `json:"total_annotations"`
	CompletionRate    float64        `json:"completion_rate"`
	LabelDistribution map[string]int `json:"label_distribution"`
}

// GlobalStatsToJSON converts global statistics
func GlobalStatsToJSON(s *models.GlobalStats) GlobalStatsJSON {
	return GlobalStatsJSON{
		TotalProjects:     s.TotalProjects,
		TotalTasks:        s.TotalTasks,
		CompletedTasks:    s.CompletedTasks,
		TotalAnnotations:  s.TotalAnnotations,
		CompletionRate:    s.CompletionRate,
		LabelDistribution: distribution(s.LabelDistribution),
	}
}

func distribution(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

// UploadJSON is the output shape of an uploaded file record
type UploadJSON struct {
	ID              int        `json:"id"`
	ProjectID       int        `json:"project_id"`
	Filename        string     `json:"filename"`
	Size            int64      `json:"size"`
	SizeHuman       string     `json:"size_human"`
	FileType        string     `json:"file_type"`
	Checksum        string     `json:"checksum"`
	ContentPreview  string     `json:"content_preview"`
	ExtractedLabels []string   `json:"extracted_labels"`
	DataIDs         []string   `json:"data_ids"`
	DialogTypes     []string   `json:"dialog_types"`
	SkippedRecords  int        `json:"skipped_records"`
	ShortRecords    int        `json:"short_records"`
	TruncatedTexts  int        `json:"truncated_texts"`
	Status          string     `json:"status"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	TaskCount       int        `json:"task_count"`
	TotalLines      int        `json:"total_lines"`
	UploadedAt      time.Time  `json:"uploaded_at"`
	ProcessedAt     *time.Time `json:"processed_at"`
}

func (u UploadJSON) GetID() int { return u.ID }

// UploadToJSON converts an uploaded file record
func UploadToJSON(u *models.UploadedFile) UploadJSON {
	return UploadJSON{
		ID:              u.ID,
		ProjectID:       u.ProjectID,
		Filename:        u.Filename,
		Size:            u.Size,
		SizeHuman:       humanize.IBytes(uint64(u.Size)),
		FileType:        u.FileType,
		Checksum:        u.Checksum,
		ContentPreview:  u.ContentPreview,
		ExtractedLabels: nonNil(u.Metadata.ExtractedLabels),
		DataIDs:         nonNil(u.Metadata.DataIDs),
		DialogTypes:     nonNil(u.Metadata.DialogTypes),
		SkippedRecords:  u.Metadata.SkippedRecords,
		ShortRecords:    u.Metadata.ShortRecords,
		TruncatedTexts:  u.Metadata.TruncatedTexts,
		Status:          string(u.Status),
		ErrorMessage:    u.ErrorMessage,
		TaskCount:       u.TaskCount,
		TotalLines:      u.TotalLines,
		UploadedAt:      u.UploadedAt,
		ProcessedAt:     u.ProcessedAt,
	}
}

// UploadsToJSON converts a slice of uploaded file records
func UploadsToJSON(uploads []*models.UploadedFile) []UploadJSON {
	out := make([]UploadJSON, len(uploads))
	for i, u := range uploads {
		out[i] = UploadToJSON(u)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
