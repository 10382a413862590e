package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Label is a tag annotators apply to spans.
// A nil ProjectID makes the label global.
type Label struct {
	ID          int
	Value       string
	Background  string
	Hotkey      *string
	Category    string
	Description string
	Example     string
	IsActive    bool
	SortOrder   int
	ProjectID   *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsGlobal reports whether the label is visible to every project
func (l *Label) IsGlobal() bool {
	return l.ProjectID == nil
}

// HotkeyValue returns the hotkey or ""
func (l *Label) HotkeyValue() string {
	if l.Hotkey == nil {
		return ""
	}
	return *l.Hotkey
}

// Validate checks background and hotkey formats
func (l *Label) Validate() error {
	if err := ValidateColor(l.Background); err != nil {
		return err
	}
	if l.Hotkey != nil {
		if err := ValidateHotkey(*l.Hotkey); err != nil {
			return err
		}
	}
	return nil
}

// ValidateColor accepts # followed by exactly six hex digits
func ValidateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("%q: %w", color, ErrInvalidColor)
	}
	return nil
}

// ValidateHotkey accepts one letter, digit or symbol from HotkeySymbols
func ValidateHotkey(hotkey string) error {
	r := []rune(hotkey)
	if len(r) != 1 {
		return fmt.Errorf("%q: %w", hotkey, ErrInvalidHotkey)
	}
	if unicode.IsLetter(r[0]) || unicode.IsDigit(r[0]) || strings.ContainsRune(HotkeySymbols, r[0]) {
		return nil
	}
	return fmt.Errorf("%q: %w", hotkey, ErrInvalidHotkey)
}

// NormalizeColor adds a missing # prefix and upper-cases the digits
func NormalizeColor(color string) string {
	color = strings.TrimSpace(color)
	if color != "" && !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	return strings.ToUpper(color)
}

// LabelUsage pairs a label with the number of annotations referencing it
type LabelUsage struct {
	Label        *Label
	UsageCount   int
	CanBeDeleted bool
}
