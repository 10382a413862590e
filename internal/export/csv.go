package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// CSVHeader is the column set of the annotation dump
var CSVHeader = []string{
	"Task UUID", "Text", "Start", "End", "Labels",
	"Confidence", "Identifier Type", "Overlapping", "Created",
}

// CSVTimeLayout formats the Created column
const CSVTimeLayout = "2006-01-02 15:04:05"

// WriteCSV writes one row per annotation across all records
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, r := range records {
		for _, a := range r.Annotations {
			row := []string{
				r.Task.UUID,
				a.Text,
				strconv.Itoa(a.Start),
				strconv.Itoa(a.End),
				strings.Join(a.Labels, ", "),
				string(a.Confidence),
				string(a.IdentifierType),
				strconv.FormatBool(a.Overlapping),
				a.CreatedAt.Format(CSVTimeLayout),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
