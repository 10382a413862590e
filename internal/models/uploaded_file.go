package models

import "time"

// UploadMetadata is the corpus-level information extracted during ingestion
type UploadMetadata struct {
	ExtractedLabels []string `json:"extracted_labels"`
	DataIDs         []string `json:"data_ids"`
	DialogTypes     []string `json:"dialog_types"`
	SkippedRecords  int      `json:"skipped_records,omitempty"`
	ShortRecords    int      `json:"short_records,omitempty"`
	TruncatedTexts  int      `json:"truncated_texts,omitempty"`
}

// UploadedFile is the provenance record for one bulk-ingested file
type UploadedFile struct {
	ID             int
	ProjectID      int
	Filename       string
	Size           int64
	FileType       string
	Checksum       string
	ContentPreview string
	Metadata       UploadMetadata
	Status         UploadStatus
	ErrorMessage   string
	TaskCount      int
	TotalLines     int
	UploadedAt     time.Time
	ProcessedAt    *time.Time
}
