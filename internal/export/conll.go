package export

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/kdpii/nerlabel/internal/models"
)

// TieBreak picks the annotation that tags a token when several intersect it
type TieBreak string

const (
	// TieBreakFirst keeps the first intersecting annotation in iteration order
	TieBreakFirst TieBreak = "first"
	// TieBreakLongest prefers the longest span, then iteration order
	TieBreakLongest TieBreak = "longest"
	// TieBreakConfidence prefers the highest confidence, then iteration order
	TieBreakConfidence TieBreak = "confidence"
)

// ParseTieBreak validates a tie-break name; "" means first
func ParseTieBreak(s string) (TieBreak, error) {
	switch tb := TieBreak(strings.ToLower(strings.TrimSpace(s))); tb {
	case "":
		return TieBreakFirst, nil
	case TieBreakFirst, TieBreakLongest, TieBreakConfidence:
		return tb, nil
	}
	return "", fmt.Errorf("tie-break %q (must be: first, longest, confidence): %w", s, models.ErrInvalidEnumValue)
}

// CoNLLOptions controls CoNLL rendering
type CoNLLOptions struct {
	TieBreak TieBreak
	// TaskHeaders writes a "# Task: <uuid>" line before each task
	TaskHeaders bool
}

// Token is a whitespace-delimited token with its character offsets and tag
type Token struct {
	Text  string
	Start int
	End   int
	Tag   string
}

// Tokenize splits text on whitespace and locates each token by searching
// forward from the end of the previous one.
func Tokenize(text string) []Token {
	runes := []rune(text)
	fields := strings.FieldsFunc(text, unicode.IsSpace)
	tokens := make([]Token, 0, len(fields))

	pos := 0
	for _, f := range fields {
		fr := []rune(f)
		start := indexRunes(runes, fr, pos)
		if start < 0 {
			// unreachable for whitespace splitting; keep offsets monotonic anyway
			start = pos
		}
		end := start + len(fr)
		tokens = append(tokens, Token{Text: f, Start: start, End: end, Tag: "O"})
		pos = end
	}
	return tokens
}

func indexRunes(haystack, needle []rune, from int) int {
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// TagTokens assigns BIO tags to the tokens of a record
func TagTokens(r Record, tieBreak TieBreak) []Token {
	tokens := Tokenize(r.Task.Text)
	for i := range tokens {
		ann := pick(intersecting(r.Annotations, tokens[i]), tieBreak)
		if ann == nil {
			continue
		}
		label := ann.FirstLabel()
		if label == "" {
			label = "MISC"
		}
		if tokens[i].Start == ann.Start {
			tokens[i].Tag = "B-" + label
		} else {
			tokens[i].Tag = "I-" + label
		}
	}
	return tokens
}

func intersecting(annotations []*models.Annotation, tok Token) []*models.Annotation {
	var hits []*models.Annotation
	for _, a := range annotations {
		if (a.Start <= tok.Start && tok.Start < a.End) || (a.Start < tok.End && tok.End <= a.End) {
			hits = append(hits, a)
		}
	}
	return hits
}

func pick(candidates []*models.Annotation, tieBreak TieBreak) *models.Annotation {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		switch tieBreak {
		case TieBreakLongest:
			if c.SpanLength() > best.SpanLength() {
				best = c
			}
		case TieBreakConfidence:
			if c.Confidence.Rank() > best.Confidence.Rank() {
				best = c
			}
		}
	}
	return best
}

// CoNLL renders one record as token<TAB>tag lines without a trailing newline
func CoNLL(r Record, tieBreak TieBreak) string {
	tokens := TagTokens(r, tieBreak)
	lines := make([]string, 0, len(tokens))
	for _, t := range tokens {
		lines = append(lines, t.Text+"\t"+t.Tag)
	}
	return strings.Join(lines, "\n")
}

// WriteCoNLL writes records separated by a blank line
func WriteCoNLL(w io.Writer, records []Record, opts CoNLLOptions) error {
	for i, r := range records {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if opts.TaskHeaders {
			if _, err := fmt.Fprintf(w, "# Task: %s\n", r.Task.UUID); err != nil {
				return err
			}
		}
		body := CoNLL(r, opts.TieBreak)
		if body != "" {
			body += "\n"
		}
		if _, err := io.WriteString(w, body); err != nil {
			return err
		}
	}
	return nil
}
