package models

// ============================================================================
// INGESTION LIMITS
// ============================================================================

// MaxUploadSize is the largest file accepted for ingestion (16 MiB)
const MaxUploadSize = 16 * 1024 * 1024

// PreviewLength is the number of characters kept as an upload content preview
const PreviewLength = 500

// ============================================================================
// PROJECT DEFAULTS
// ============================================================================

// DefaultProjectName is the project created by the bootstrap step
const DefaultProjectName = "Default Project"

// DefaultProjectDescription describes the bootstrap project
const DefaultProjectDescription = "Default project for NER annotations"

// ============================================================================
// LABEL DEFAULTS
// ============================================================================

// DefaultLabelColor is used when a label is created without a background
const DefaultLabelColor = "#7D56F4"

// HotkeySymbols are the non-alphanumeric characters accepted as hotkeys
const HotkeySymbols = "!@#$%^&*()"

// SeedHotkeys are assigned in order to the first entries of a seeded vocabulary
const SeedHotkeys = "123456789"

// SeedLabelColor is used for seeded vocabulary entries without a background
const SeedLabelColor = "#007BFF"

// LabelPalette colors labels created automatically from an upload's vocabulary,
// assigned round-robin
var LabelPalette = []string{
	"#E6194B", "#3CB44B", "#FFE119", "#4363D8", "#F58231",
	"#911EB4", "#46F0F0", "#F032E6", "#BCF60C", "#FABEBE",
}

// MaxLabelValueLength is the longest accepted label value, in characters
const MaxLabelValueLength = 50
