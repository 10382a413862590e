// Package ingest parses uploaded corpus files into task records and
// pre-annotations. It does not touch the store.
package ingest

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/kdpii/nerlabel/internal/models"
	"github.com/zeebo/blake3"
)

// Supported file types
const (
	TypeTXT   = "txt"
	TypeCSV   = "csv"
	TypeTSV   = "tsv"
	TypeJSON  = "json"
	TypeJSONL = "jsonl"
)

var supportedTypes = []string{TypeTXT, TypeCSV, TypeTSV, TypeJSON, TypeJSONL}

// PreAnnotation is an entity carried by an input record, to be stored as an annotation
type PreAnnotation struct {
	EntityType string
	Start      int
	End        int
	SpanText   *string
}

// Record is one task-to-be
type Record struct {
	Text       string
	LineNumber int
	Metadata   map[string]any
	Entities   []PreAnnotation
}

// Result is everything extracted from one file
type Result struct {
	FileType   string
	Encoding   string
	Checksum   string
	Preview    string
	TotalLines int
	Records    []Record
	Metadata   models.UploadMetadata
}

// Options tunes parsing
type Options struct {
	// MaxSize overrides models.MaxUploadSize when positive
	MaxSize int64
	// SkipDuplicates drops records whose text already appeared in the file
	SkipDuplicates bool
	// PreviewLength overrides models.PreviewLength when positive
	PreviewLength int
	// MinTextLength drops records with fewer runes; 0 keeps every non-blank record
	MinTextLength int
	// MaxTextLength cuts longer texts to this many runes; 0 never truncates.
	// Pre-annotations that end past the cut are dropped with it.
	MaxTextLength int
}

// FileType returns the lower-cased extension of filename when it is supported
func FileType(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !slices.Contains(supportedTypes, ext) {
		return "", fmt.Errorf("%q (allowed: %s): %w", filename, strings.Join(supportedTypes, ", "), models.ErrUnsupportedFileType)
	}
	return ext, nil
}

// CheckSize rejects files larger than max bytes; max <= 0 uses models.MaxUploadSize
func CheckSize(size, max int64) error {
	if max <= 0 {
		max = models.MaxUploadSize
	}
	if size > max {
		return fmt.Errorf("%s exceeds the %s limit: %w",
			humanize.IBytes(uint64(size)), humanize.IBytes(uint64(max)), models.ErrFileTooLarge)
	}
	return nil
}

// Checksum is the hex BLAKE3 digest of data
func Checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Parse validates and parses a file. Errors are validation failures
// (type, size, invalid pre-annotation spans); malformed JSON lines degrade
// to plain text instead.
func Parse(filename string, data []byte, opts Options) (*Result, error) {
	fileType, err := FileType(filename)
	if err != nil {
		return nil, err
	}
	if err := CheckSize(int64(len(data)), opts.MaxSize); err != nil {
		return nil, err
	}

	content, encoding := Decode(data)

	res := &Result{
		FileType: fileType,
		Encoding: encoding,
		Checksum: Checksum(data),
		Preview:  preview(content, opts.PreviewLength),
	}

	c := newCollector()
	switch fileType {
	case TypeTXT:
		res.TotalLines = parseLines(content, c)
	case TypeCSV:
		res.TotalLines, err = parseDelimited(content, ',', c)
	case TypeTSV:
		res.TotalLines, err = parseDelimited(content, '\t', c)
	case TypeJSON:
		res.TotalLines, err = parseJSONDocument(content, c)
	case TypeJSONL:
		res.TotalLines, err = parseJSONLines(content, c)
	}
	if err != nil {
		return nil, err
	}

	res.Records = c.records
	if opts.MinTextLength > 0 {
		res.Records, res.Metadata.ShortRecords = dropShort(res.Records, opts.MinTextLength)
	}
	if opts.MaxTextLength > 0 {
		res.Metadata.TruncatedTexts = truncate(res.Records, opts.MaxTextLength)
	}
	if opts.SkipDuplicates {
		res.Records, res.Metadata.SkippedRecords = dedupe(res.Records)
	}
	res.Metadata.ExtractedLabels = vocabulary(res.Records)
	res.Metadata.DataIDs = c.dataIDs.sorted()
	res.Metadata.DialogTypes = c.dialogTypes.sorted()
	return res, nil
}

func preview(content string, n int) string {
	if n <= 0 {
		n = models.PreviewLength
	}
	r := []rune(content)
	if len(r) <= n {
		return content
	}
	return string(r[:n])
}

// dropShort removes records whose text has fewer than min runes
func dropShort(records []Record, min int) ([]Record, int) {
	kept := records[:0:0]
	for _, r := range records {
		if utf8.RuneCountInString(r.Text) >= min {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}

// truncate cuts texts longer than max runes in place and returns how many were cut
func truncate(records []Record, max int) int {
	n := 0
	for i := range records {
		r := &records[i]
		runes := []rune(r.Text)
		if len(runes) <= max {
			continue
		}
		r.Text = string(runes[:max])
		kept := r.Entities[:0:0]
		for _, e := range r.Entities {
			if e.End <= max {
				kept = append(kept, e)
			}
		}
		r.Entities = kept
		n++
	}
	return n
}

// vocabulary lists the entity types of records in first-seen order
func vocabulary(records []Record) []string {
	out := []string{}
	seen := stringSet{}
	for _, r := range records {
		for _, e := range r.Entities {
			if _, ok := seen[e.EntityType]; ok || e.EntityType == "" {
				continue
			}
			seen.add(e.EntityType)
			out = append(out, e.EntityType)
		}
	}
	return out
}

// dedupe keeps the first record for each distinct trimmed text
func dedupe(records []Record) ([]Record, int) {
	seen := make(map[[32]byte]struct{}, len(records))
	kept := records[:0:0]
	skipped := 0
	for _, r := range records {
		key := blake3.Sum256([]byte(strings.TrimSpace(r.Text)))
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, r)
	}
	return kept, skipped
}

// splitLines splits on \n and drops a trailing \r from each line.
// A final newline does not start another line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func parseLines(content string, c *collector) int {
	lines := splitLines(content)
	for i, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		c.add(Record{Text: text, LineNumber: i + 1})
	}
	return len(lines)
}
