package models

import (
	"fmt"
	"strings"
)

// ============================================================================
// CONFIDENCE
// ============================================================================

// Confidence is the annotator's certainty about an annotation
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Confidences lists the allowed confidence values in descending order
var Confidences = []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}

// ParseConfidence validates and normalizes a confidence value
func ParseConfidence(s string) (Confidence, error) {
	c := Confidence(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("confidence %q (must be: high, medium, low): %w", s, ErrInvalidEnumValue)
	}
	return c, nil
}

// Valid reports whether c is one of the known values
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// Rank orders confidences, higher is more certain. Unknown values rank 0.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	}
	return 0
}

// ============================================================================
// IDENTIFIER TYPE
// ============================================================================

// IdentifierType classifies how strongly a span identifies a person
type IdentifierType string

const (
	IdentifierDirect  IdentifierType = "direct"
	IdentifierQuasi   IdentifierType = "quasi"
	IdentifierDefault IdentifierType = "default"
)

// ParseIdentifierType validates and normalizes an identifier type
func ParseIdentifierType(s string) (IdentifierType, error) {
	it := IdentifierType(strings.ToLower(strings.TrimSpace(s)))
	if !it.Valid() {
		return "", fmt.Errorf("identifier type %q (must be: direct, quasi, default): %w", s, ErrInvalidEnumValue)
	}
	return it, nil
}

func (it IdentifierType) Valid() bool {
	switch it {
	case IdentifierDirect, IdentifierQuasi, IdentifierDefault:
		return true
	}
	return false
}

// ============================================================================
// UPLOAD STATUS
// ============================================================================

// UploadStatus is the processing state of an uploaded file
type UploadStatus string

const (
	UploadProcessing UploadStatus = "processing"
	UploadCompleted  UploadStatus = "completed"
	UploadFailed     UploadStatus = "failed"
)

func ParseUploadStatus(s string) (UploadStatus, error) {
	st := UploadStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case UploadProcessing, UploadCompleted, UploadFailed:
		return st, nil
	}
	return "", fmt.Errorf("upload status %q (must be: processing, completed, failed): %w", s, ErrInvalidEnumValue)
}
