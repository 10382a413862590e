package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/kdpii/nerlabel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newRecord(text string, annotations ...*models.Annotation) Record {
	task := models.NewTask(1, text)
	task.ID = 1
	for i, a := range annotations {
		a.ID = i + 1
		a.TaskID = task.ID
		a.CreatedAt = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	}
	return Record{Task: task, Annotations: annotations}
}

func annotation(start, end int, text string, labels ...string) *models.Annotation {
	return models.NewAnnotation(1, start, end, text, labels)
}

func tags(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Text+"/"+t.Tag)
	}
	return out
}

// ============================================================================
// TEST CASES - CoNLL
// ============================================================================

func TestCoNLL_BasicSentence(t *testing.T) {
	t.Parallel()

	r := newRecord("John lives in Seoul",
		annotation(0, 4, "John", "PERSON"),
		annotation(14, 19, "Seoul", "LOC"),
	)

	tokens := TagTokens(r, TieBreakFirst)
	assert.Equal(t, []string{"John/B-PERSON", "lives/O", "in/O", "Seoul/B-LOC"}, tags(tokens))
	assert.Equal(t, "John\tB-PERSON\nlives\tO\nin\tO\nSeoul\tB-LOC", CoNLL(r, TieBreakFirst))
}

func TestCoNLL_MultiTokenEntity(t *testing.T) {
	t.Parallel()

	r := newRecord("Kim Chul Soo went home",
		annotation(0, 12, "Kim Chul Soo", "PERSON"),
	)

	assert.Equal(t,
		[]string{"Kim/B-PERSON", "Chul/I-PERSON", "Soo/I-PERSON", "went/O", "home/O"},
		tags(TagTokens(r, TieBreakFirst)))
}

func TestCoNLL_NoLabelsUsesMisc(t *testing.T) {
	t.Parallel()

	r := newRecord("call 010 now", annotation(5, 8, "010"))
	assert.Equal(t, []string{"call/O", "010/B-MISC", "now/O"}, tags(TagTokens(r, TieBreakFirst)))
}

func TestCoNLL_PartialTokenIsInside(t *testing.T) {
	t.Parallel()

	// annotation starts inside the token "Seoul-si"
	r := newRecord("in Seoul-si", annotation(3, 8, "Seoul", "LOC"))
	assert.Equal(t, []string{"in/O", "Seoul-si/B-LOC"}, tags(TagTokens(r, TieBreakFirst)))

	r = newRecord("in Seoul-si", annotation(9, 11, "si", "LOC"))
	assert.Equal(t, []string{"in/O", "Seoul-si/I-LOC"}, tags(TagTokens(r, TieBreakFirst)))
}

func TestCoNLL_TieBreaks(t *testing.T) {
	t.Parallel()

	short := annotation(0, 4, "John", "FIRST_NAME")
	long := annotation(0, 10, "John Smith", "PERSON")
	long.Confidence = models.ConfidenceLow
	short.Confidence = models.ConfidenceMedium

	r := newRecord("John Smith", short, long)

	assert.Equal(t, []string{"John/B-FIRST_NAME", "Smith/I-PERSON"}, tags(TagTokens(r, TieBreakFirst)))
	assert.Equal(t, []string{"John/B-PERSON", "Smith/I-PERSON"}, tags(TagTokens(r, TieBreakLongest)))
	assert.Equal(t, []string{"John/B-FIRST_NAME", "Smith/I-PERSON"}, tags(TagTokens(r, TieBreakConfidence)))

	long.Confidence = models.ConfidenceHigh
	assert.Equal(t, []string{"John/B-PERSON", "Smith/I-PERSON"}, tags(TagTokens(r, TieBreakConfidence)))
}

func TestTokenize_Offsets(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("  서울 은\t서울  ")
	require.Len(t, tokens, 3)
	assert.Equal(t, Token{Text: "서울", Start: 2, End: 4, Tag: "O"}, tokens[0])
	assert.Equal(t, Token{Text: "은", Start: 5, End: 6, Tag: "O"}, tokens[1])
	assert.Equal(t, Token{Text: "서울", Start: 7, End: 9, Tag: "O"}, tokens[2])

	assert.Empty(t, Tokenize("   "))
}

func TestWriteCoNLL_Batch(t *testing.T) {
	t.Parallel()

	r1 := newRecord("John lives", annotation(0, 4, "John", "PERSON"))
	r2 := newRecord("in Seoul", annotation(3, 8, "Seoul", "LOC"))

	var buf bytes.Buffer
	require.NoError(t, WriteCoNLL(&buf, []Record{r1, r2}, CoNLLOptions{}))
	assert.Equal(t, "John\tB-PERSON\nlives\tO\n\nin\tO\nSeoul\tB-LOC\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCoNLL(&buf, []Record{r1}, CoNLLOptions{TaskHeaders: true}))
	assert.Equal(t, "# Task: "+r1.Task.UUID+"\nJohn\tB-PERSON\nlives\tO\n", buf.String())
}

func TestParseTieBreak(t *testing.T) {
	t.Parallel()

	tb, err := ParseTieBreak("")
	require.NoError(t, err)
	assert.Equal(t, TieBreakFirst, tb)

	tb, err = ParseTieBreak("Longest")
	require.NoError(t, err)
	assert.Equal(t, TieBreakLongest, tb)

	_, err = ParseTieBreak("random")
	assert.ErrorIs(t, err, models.ErrInvalidEnumValue)
}

// ============================================================================
// TEST CASES - Label Studio
// ============================================================================

func TestLabelStudio_EmptyTask(t *testing.T) {
	t.Parallel()

	r := newRecord("nothing here")

	var buf bytes.Buffer
	require.NoError(t, WriteLabelStudio(&buf, []Record{r}))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, []any{}, decoded[0]["annotations"])
	assert.Equal(t, []any{}, decoded[0]["predictions"])
	assert.Equal(t, map[string]any{"text": "nothing here"}, decoded[0]["data"])
}

func TestLabelStudio_Result(t *testing.T) {
	t.Parallel()

	r := newRecord("John lives in Seoul", annotation(0, 4, "John", "PERSON"))
	out := LabelStudio(r)

	require.Len(t, out.Annotations, 1)
	ann := out.Annotations[0]
	assert.Equal(t, 1, ann.ID)
	assert.Equal(t, "2024-03-09T14:30:00Z", ann.CreatedAt)
	require.Len(t, ann.Result, 1)
	assert.Equal(t, LabelStudioResult{
		FromName: "label",
		ToName:   "text",
		Type:     "labels",
		Value:    LabelStudioValue{Start: 0, End: 4, Text: "John", Labels: []string{"PERSON"}},
	}, ann.Result[0])
}

// ============================================================================
// TEST CASES - CSV
// ============================================================================

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	a := annotation(0, 4, "John", "PERSON", "NAME")
	a.Overlapping = true
	r := newRecord("John lives", a)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Record{r}))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{
		r.Task.UUID, "John", "0", "4", "PERSON, NAME", "high", "default", "true", "2024-03-09 14:30:00",
	}, rows[1])
}

// ============================================================================
// TEST CASES - Label config
// ============================================================================

func TestLabelConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	hotkey := "1"
	labels := []*models.Label{
		{Value: "LOC", Background: "#00FF00", IsActive: true, SortOrder: 2},
		{Value: "PERSON", Background: "#FF0000", Hotkey: &hotkey, IsActive: true, SortOrder: 1},
		{Value: "OLD", Background: "#000000", IsActive: false, SortOrder: 0},
		{Value: `Q&A "x"`, Background: "#0000FF", IsActive: true, SortOrder: 2},
	}

	cfg := LabelConfig(labels)
	assert.True(t, strings.HasPrefix(cfg, "<View>\n  <Text name=\"text\" value=\"$text\"/>\n"))
	assert.Contains(t, cfg, `<Label value="PERSON" background="#FF0000" hotkey="1"/>`)
	assert.NotContains(t, cfg, "OLD")

	parsed, err := ParseLabelConfig(strings.NewReader(cfg))
	require.NoError(t, err)
	assert.Equal(t, []ConfigLabel{
		{Value: "PERSON", Background: "#FF0000", Hotkey: "1"},
		{Value: "LOC", Background: "#00FF00"},
		{Value: `Q&A "x"`, Background: "#0000FF"},
	}, parsed)
}

func TestParseLabelConfig_SkipsLabelsWithoutValue(t *testing.T) {
	t.Parallel()

	cfg := `<View><Labels name="label" toName="text"><Label background="#FFFFFF"/><Label value="DATE"/></Labels></View>`
	parsed, err := ParseLabelConfig(strings.NewReader(cfg))
	require.NoError(t, err)
	assert.Equal(t, []ConfigLabel{{Value: "DATE"}}, parsed)
}

// ============================================================================
// TEST CASES - JSONL
// ============================================================================

func TestWriteJSONL(t *testing.T) {
	t.Parallel()

	a := annotation(0, 4, "John", "PERSON")
	a.SetEntityID("E1")
	r := newRecord("John lives", a)
	r.Task.Metadata = map[string]any{"data_id": "d-1"}

	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, []Record{r, newRecord("empty")}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first JSONLLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "John lives", first.Text)
	assert.Equal(t, "d-1", first.Metadata["data_id"])
	require.Len(t, first.Entities, 1)
	assert.Equal(t, JSONLEntity{
		Start: 0, End: 4, EntityType: "PERSON", SpanID: a.UUID,
		EntityID: "E1", IdentifierType: "default", SpanText: "John",
	}, first.Entities[0])

	assert.JSONEq(t, `{"text":"empty","entities":[],"metadata":{}}`, lines[1])
}

func TestFormatExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".json", FormatLabelStudio.Extension())
	assert.Equal(t, ".xml", FormatConfig.Extension())
	assert.Equal(t, ".txt", Format("other").Extension())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat(" CoNLL ")
	require.NoError(t, err)
	assert.Equal(t, FormatCoNLL, f)

	_, err = ParseFormat("xlsx")
	assert.ErrorIs(t, err, models.ErrInvalidEnumValue)
}
