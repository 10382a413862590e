// Package span implements half-open character intervals over task text.
// Offsets count Unicode code points, not bytes.
package span

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned for empty, reversed or out-of-range spans and for
// span text that does not match the underlying text
var ErrInvalid = errors.New("invalid span")

// Span is the half-open interval [Start, End)
type Span struct {
	Start int
	End   int
}

// New builds a span and validates it
func New(start, end int) (Span, error) {
	s := Span{Start: start, End: end}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return s, nil
}

// Validate fails with ErrInvalid when Start >= End or Start is negative
func (s Span) Validate() error {
	if s.Start < 0 {
		return fmt.Errorf("start %d is negative: %w", s.Start, ErrInvalid)
	}
	if s.Start >= s.End {
		return fmt.Errorf("start %d must be less than end %d: %w", s.Start, s.End, ErrInvalid)
	}
	return nil
}

// Len is the number of characters covered
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps is strict: spans that only touch at a boundary do not overlap
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Contains reports whether o lies entirely inside s
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && s.End >= o.End
}

// Within reports whether s fits inside a text of textLen characters
func (s Span) Within(textLen int) bool {
	return s.Start >= 0 && s.End <= textLen
}

// Slice returns the characters of text covered by s.
// Callers must check Within first.
func (s Span) Slice(text []rune) string {
	return string(text[s.Start:s.End])
}

// ValidateText checks s against the task text and, when expected is non-nil,
// that the covered characters equal *expected.
func (s Span) ValidateText(text string, expected *string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	runes := []rune(text)
	if !s.Within(len(runes)) {
		return fmt.Errorf("span [%d, %d) exceeds text length %d: %w", s.Start, s.End, len(runes), ErrInvalid)
	}
	if expected != nil {
		if got := s.Slice(runes); got != *expected {
			return fmt.Errorf("span text %q does not match task text %q at [%d, %d): %w",
				*expected, got, s.Start, s.End, ErrInvalid)
		}
	}
	return nil
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}
