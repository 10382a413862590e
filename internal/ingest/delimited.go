package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseDelimited reads csv/tsv content. A first row whose non-empty cells are
// all non-numeric is treated as a header and skipped. The returned count is
// the number of rows read.
func parseDelimited(content string, delim rune, c *collector) (int, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	total := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read row %d: %w", total+1, err)
		}
		total++

		if total == 1 && isHeader(row) {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		line, _ := r.FieldPos(0)
		c.add(Record{
			Text:       strings.Join(row, string(delim)),
			LineNumber: line,
		})
	}
	return total, nil
}

func isHeader(row []string) bool {
	nonEmpty := 0
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			return false
		}
	}
	return nonEmpty > 0
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
