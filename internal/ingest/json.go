package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kdpii/nerlabel/internal/models"
	"github.com/kdpii/nerlabel/internal/span"
)

// parseJSONDocument handles .json files: a single value or an array of values.
// Content that is not one JSON document is read line by line instead.
func parseJSONDocument(content string, c *collector) (int, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 0, nil
	}

	v, err := decodeValue(trimmed)
	if err != nil {
		return parseJSONLines(content, c)
	}

	values, isArray := v.([]any)
	if !isArray {
		values = []any{v}
	}
	for i, el := range values {
		if err := addValue(c, el, i+1); err != nil {
			return 0, err
		}
	}
	return len(values), nil
}

// parseJSONLines handles .jsonl files. A line that is not valid JSON becomes
// a plain-text record.
func parseJSONLines(content string, c *collector) (int, error) {
	lines := splitLines(content)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		v, err := decodeValue(trimmed)
		if err != nil {
			c.add(Record{Text: trimmed, LineNumber: i + 1})
			continue
		}
		if err := addValue(c, v, i+1); err != nil {
			return 0, err
		}
	}
	return len(lines), nil
}

func decodeValue(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func addValue(c *collector, v any, line int) error {
	rec, err := recordFromValue(v, line)
	if err != nil {
		return err
	}
	if strings.TrimSpace(rec.Text) == "" {
		return nil
	}
	obj, _ := v.(map[string]any)
	collectMetadata(c, obj)
	c.add(rec)
	return nil
}

func recordFromValue(v any, line int) (Record, error) {
	rec := Record{Text: recordText(v), LineNumber: line}

	obj, ok := v.(map[string]any)
	if !ok {
		return rec, nil
	}
	if md, ok := obj["metadata"].(map[string]any); ok {
		rec.Metadata = md
	}

	entities, _ := obj["entities"].([]any)
	for i, raw := range entities {
		e, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		pre, err := preAnnotation(e)
		if err != nil {
			return Record{}, fmt.Errorf("line %d, entity %d: %w", line, i+1, err)
		}
		if err := (span.Span{Start: pre.Start, End: pre.End}).ValidateText(rec.Text, pre.SpanText); err != nil {
			return Record{}, fmt.Errorf("line %d, entity %d: %w", line, i+1, err)
		}
		rec.Entities = append(rec.Entities, pre)
	}
	return rec, nil
}

// recordText prefers a string "text" field, then "content", then the value itself
func recordText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		for _, key := range []string{"text", "content"} {
			if s, ok := val[key].(string); ok {
				return s
			}
		}
	}
	return compact(v)
}

func compact(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func preAnnotation(e map[string]any) (PreAnnotation, error) {
	start, ok := intField(e, "start_offset", "start")
	if !ok {
		return PreAnnotation{}, fmt.Errorf("missing start offset: %w", models.ErrInvalidSpan)
	}
	end, ok := intField(e, "end_offset", "end")
	if !ok {
		return PreAnnotation{}, fmt.Errorf("missing end offset: %w", models.ErrInvalidSpan)
	}

	pre := PreAnnotation{Start: start, End: end}
	pre.EntityType, _ = e["entity_type"].(string)
	if s, ok := e["span_text"].(string); ok {
		pre.SpanText = &s
	}
	return pre, nil
}

func intField(m map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		n, ok := m[k].(json.Number)
		if !ok {
			continue
		}
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

func collectMetadata(c *collector, obj map[string]any) {
	md, ok := obj["metadata"].(map[string]any)
	if !ok {
		return
	}
	switch id := md["data_id"].(type) {
	case string:
		c.dataIDs.add(id)
	case json.Number:
		c.dataIDs.add(id.String())
	}
	if prov, ok := md["provenance"].(map[string]any); ok {
		if dt, ok := prov["dialog_type"].(string); ok {
			c.dialogTypes.add(dt)
		}
	}
}
