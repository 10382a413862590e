// Package export renders tasks and their annotations into interchange formats:
// Label Studio JSON, CoNLL-2003, CSV, JSONL and the Label Studio tag config.
package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kdpii/nerlabel/internal/models"
)

// Record is a task together with its annotations in display order
type Record struct {
	Task        *models.Task
	Annotations []*models.Annotation
}

// Format names an export format
type Format string

const (
	FormatLabelStudio Format = "labelstudio"
	FormatCoNLL       Format = "conll"
	FormatCSV         Format = "csv"
	FormatJSONL       Format = "jsonl"
	FormatConfig      Format = "config"
)

// Extension is the file extension used for a format's artifacts
func (f Format) Extension() string {
	switch f {
	case FormatLabelStudio:
		return ".json"
	case FormatCoNLL:
		return ".conll"
	case FormatCSV:
		return ".csv"
	case FormatJSONL:
		return ".jsonl"
	case FormatConfig:
		return ".xml"
	}
	return ".txt"
}

// Formats lists every supported export format
var Formats = []Format{FormatLabelStudio, FormatCoNLL, FormatCSV, FormatJSONL, FormatConfig}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", fmt.Errorf("export format %q (must be: labelstudio, conll, csv, jsonl, config): %w", s, models.ErrInvalidEnumValue)
}
