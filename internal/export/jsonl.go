package export

import (
	"encoding/json"
	"io"
)

// JSONLEntity is one annotation in the JSONL corpus format
type JSONLEntity struct {
	Start          int    `json:"start"`
	End            int    `json:"end"`
	EntityType     string `json:"entity_type"`
	SpanID         string `json:"span_id"`
	EntityID       string `json:"entity_id"`
	IdentifierType string `json:"identifier_type"`
	SpanText       string `json:"span_text"`
}

// JSONLLine is one task in the JSONL corpus format
type JSONLLine struct {
	Text     string         `json:"text"`
	Entities []JSONLEntity  `json:"entities"`
	Metadata map[string]any `json:"metadata"`
}

// JSONL converts a record into a corpus line. Only the first label of each
// annotation is kept as its entity type.
func JSONL(r Record) JSONLLine {
	line := JSONLLine{
		Text:     r.Task.Text,
		Entities: make([]JSONLEntity, 0, len(r.Annotations)),
		Metadata: r.Task.Metadata,
	}
	if line.Metadata == nil {
		line.Metadata = map[string]any{}
	}

	for _, a := range r.Annotations {
		entityID := ""
		if a.EntityID != nil {
			entityID = *a.EntityID
		}
		line.Entities = append(line.Entities, JSONLEntity{
			Start:          a.Start,
			End:            a.End,
			EntityType:     a.FirstLabel(),
			SpanID:         a.UUID,
			EntityID:       entityID,
			IdentifierType: string(a.IdentifierType),
			SpanText:       a.Text,
		})
	}
	return line
}

// WriteJSONL writes one compact JSON object per line
func WriteJSONL(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(JSONL(r)); err != nil {
			return err
		}
	}
	return nil
}
