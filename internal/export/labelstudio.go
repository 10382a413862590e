package export

import (
	"encoding/json"
	"io"
	"time"
)

// LabelStudioTask is one task in Label Studio's import schema
type LabelStudioTask struct {
	ID          int                     `json:"id"`
	Data        LabelStudioData         `json:"data"`
	Annotations []LabelStudioAnnotation `json:"annotations"`
	Predictions []any                   `json:"predictions"`
}

type LabelStudioData struct {
	Text string `json:"text"`
}

type LabelStudioAnnotation struct {
	ID        int                 `json:"id"`
	CreatedAt string              `json:"created_at"`
	Result    []LabelStudioResult `json:"result"`
}

type LabelStudioResult struct {
	FromName string           `json:"from_name"`
	ToName   string           `json:"to_name"`
	Type     string           `json:"type"`
	Value    LabelStudioValue `json:"value"`
}

type LabelStudioValue struct {
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Text   string   `json:"text"`
	Labels []string `json:"labels"`
}

// LabelStudio converts a record. Each annotation becomes one annotation entry
// holding a single labels result; predictions are always empty.
func LabelStudio(r Record) LabelStudioTask {
	out := LabelStudioTask{
		ID:          r.Task.ID,
		Data:        LabelStudioData{Text: r.Task.Text},
		Annotations: make([]LabelStudioAnnotation, 0, len(r.Annotations)),
		Predictions: []any{},
	}

	for _, a := range r.Annotations {
		labels := a.Labels
		if labels == nil {
			labels = []string{}
		}
		out.Annotations = append(out.Annotations, LabelStudioAnnotation{
			ID:        a.ID,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
			Result: []LabelStudioResult{{
				FromName: "label",
				ToName:   "text",
				Type:     "labels",
				Value: LabelStudioValue{
					Start:  a.Start,
					End:    a.End,
					Text:   a.Text,
					Labels: labels,
				},
			}},
		})
	}
	return out
}

// WriteLabelStudio writes records as an indented JSON array
func WriteLabelStudio(w io.Writer, records []Record) error {
	tasks := make([]LabelStudioTask, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, LabelStudio(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}
