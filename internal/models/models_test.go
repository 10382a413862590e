package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors_Unique(t *testing.T) {
	t.Parallel()

	errs := []error{
		ErrInvalidSpan,
		ErrInvalidEnumValue,
		ErrInvalidColor,
		ErrInvalidHotkey,
		ErrUnsupportedFileType,
		ErrFileTooLarge,
		ErrLabelInUse,
		ErrNotFound,
		ErrOverlapNotAllowed,
	}

	for i := range errs {
		for j := range errs {
			if i != j && errors.Is(errs[i], errs[j]) {
				t.Errorf("errors %d and %d should be distinct", i, j)
			}
		}
	}
}

func TestLabelInUseError_MatchesSentinel(t *testing.T) {
	t.Parallel()

	var err error = &LabelInUseError{Value: "PERSON", Count: 2}
	assert.ErrorIs(t, err, ErrLabelInUse)
	assert.Equal(t, `label "PERSON" is used by 2 annotation(s)`, err.Error())

	var inUse *LabelInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, 2, inUse.Count)
}

func TestNotFound_Wraps(t *testing.T) {
	t.Parallel()

	err := NotFound("task", 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "task 42")
}

// ============================================================================
// Enum Tests
// ============================================================================

func TestParseConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Confidence
		wantErr bool
	}{
		{"high", ConfidenceHigh, false},
		{"Medium", ConfidenceMedium, false},
		{" low ", ConfidenceLow, false},
		{"certain", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseConfidence(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidEnumValue, "input %q", tt.input)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestConfidenceRank(t *testing.T) {
	t.Parallel()

	assert.Greater(t, ConfidenceHigh.Rank(), ConfidenceMedium.Rank())
	assert.Greater(t, ConfidenceMedium.Rank(), ConfidenceLow.Rank())
	assert.Equal(t, 0, Confidence("bogus").Rank())
}

func TestParseIdentifierType(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"direct", "quasi", "default"} {
		got, err := ParseIdentifierType(v)
		require.NoError(t, err)
		assert.Equal(t, IdentifierType(v), got)
	}

	_, err := ParseIdentifierType("indirect")
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
}

func TestParseUploadStatus(t *testing.T) {
	t.Parallel()

	st, err := ParseUploadStatus("FAILED")
	require.NoError(t, err)
	assert.Equal(t, UploadFailed, st)

	_, err = ParseUploadStatus("queued")
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
}

// ============================================================================
// Task Tests
// ============================================================================

func TestTask_CompletionToggle(t *testing.T) {
	t.Parallel()

	task := NewTask(1, "John lives in Seoul")
	assert.NotEmpty(t, task.UUID)
	assert.Equal(t, IdentifierDefault, task.IdentifierType)
	assert.False(t, task.IsCompleted)
	assert.Nil(t, task.CompletionTime)

	annotator := "kim"
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task.MarkCompleted(now, &annotator)
	assert.True(t, task.IsCompleted)
	require.NotNil(t, task.CompletionTime)
	assert.Equal(t, now, *task.CompletionTime)
	require.NotNil(t, task.AnnotatorID)
	assert.Equal(t, "kim", *task.AnnotatorID)

	task.MarkIncomplete()
	assert.False(t, task.IsCompleted)
	assert.Nil(t, task.CompletionTime)
}

func TestTask_TextLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	task := NewTask(1, "서울에 산다")
	assert.Equal(t, 6, task.TextLength())
}

// ============================================================================
// Annotation Tests
// ============================================================================

func TestAnnotation_Labels(t *testing.T) {
	t.Parallel()

	a := NewAnnotation(1, 0, 4, "John", []string{"PERSON", "", "PERSON", "NAME"})
	assert.Equal(t, []string{"PERSON", "NAME"}, a.Labels)
	assert.Equal(t, "PERSON", a.FirstLabel())

	assert.False(t, a.AddLabel("NAME"))
	assert.True(t, a.AddLabel("ALIAS"))
	assert.True(t, a.RemoveLabel("PERSON"))
	assert.False(t, a.RemoveLabel("PERSON"))
	assert.Equal(t, []string{"NAME", "ALIAS"}, a.Labels)

	empty := NewAnnotation(1, 0, 4, "John", nil)
	assert.Equal(t, "", empty.FirstLabel())
	assert.NotNil(t, empty.Labels)
}

func TestAnnotation_EnumSetters(t *testing.T) {
	t.Parallel()

	a := NewAnnotation(1, 0, 4, "John", nil)
	assert.Equal(t, ConfidenceHigh, a.Confidence)

	require.NoError(t, a.SetConfidence("low"))
	assert.Equal(t, ConfidenceLow, a.Confidence)
	assert.ErrorIs(t, a.SetConfidence("sure"), ErrInvalidEnumValue)
	assert.Equal(t, ConfidenceLow, a.Confidence, "failed setter must not change the value")

	require.NoError(t, a.SetIdentifierType("quasi"))
	assert.Equal(t, IdentifierQuasi, a.IdentifierType)
	assert.ErrorIs(t, a.SetIdentifierType("x"), ErrInvalidEnumValue)
}

func TestAnnotation_ValidateAgainst(t *testing.T) {
	t.Parallel()

	text := "John lives in Seoul"

	tests := []struct {
		name    string
		ann     *Annotation
		wantErr bool
	}{
		{"matching text", NewAnnotation(1, 0, 4, "John", nil), false},
		{"end of text", NewAnnotation(1, 14, 19, "Seoul", nil), false},
		{"mismatched text", NewAnnotation(1, 0, 4, "Jane", nil), true},
		{"empty span", NewAnnotation(1, 4, 4, "", nil), true},
		{"reversed span", NewAnnotation(1, 5, 2, "", nil), true},
		{"past end", NewAnnotation(1, 14, 25, "Seoul", nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ann.ValidateAgainst(text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSpan)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnnotation_RelatedAndRelationships(t *testing.T) {
	t.Parallel()

	a := NewAnnotation(1, 0, 4, "John", nil)
	a.ID = 10

	assert.False(t, a.LinkRelated(10), "self link is ignored")
	assert.True(t, a.LinkRelated(11))
	assert.False(t, a.LinkRelated(11))
	assert.True(t, a.UnlinkRelated(11))
	assert.Empty(t, a.RelatedAnnotations)

	now := time.Now()
	assert.True(t, a.AddRelationship("E1", "same_as", now))
	assert.False(t, a.AddRelationship("E1", "same_as", now.Add(time.Second)))
	assert.True(t, a.AddRelationship("E1", "spouse_of", now))
	assert.Len(t, a.Relationships, 2)

	a.SetEntityID("E1")
	require.NotNil(t, a.EntityID)
	a.SetEntityID("")
	assert.Nil(t, a.EntityID)
}

func TestAnnotation_Containment(t *testing.T) {
	t.Parallel()

	outer := NewAnnotation(1, 0, 10, "", nil)
	inner := NewAnnotation(1, 2, 5, "", nil)
	assert.True(t, outer.Contains(inner))
	assert.True(t, inner.IsContainedBy(outer))
	assert.False(t, inner.Contains(outer))
	assert.True(t, outer.Overlaps(inner))
	assert.Equal(t, 3, inner.SpanLength())
}

// ============================================================================
// Label Tests
// ============================================================================

func TestValidateColor(t *testing.T) {
	t.Parallel()

	valid := []string{"#FF5733", "#abcdef", "#000000"}
	invalid := []string{"FF5733", "#FFF", "#GGGGGG", "#FF57331", ""}

	for _, c := range valid {
		assert.NoError(t, ValidateColor(c), c)
	}
	for _, c := range invalid {
		assert.ErrorIs(t, ValidateColor(c), ErrInvalidColor, c)
	}
}

func TestValidateHotkey(t *testing.T) {
	t.Parallel()

	valid := []string{"1", "a", "Z", "!", "(", "가"}
	invalid := []string{"", "12", "-", " ", "?"}

	for _, h := range valid {
		assert.NoError(t, ValidateHotkey(h), h)
	}
	for _, h := range invalid {
		assert.ErrorIs(t, ValidateHotkey(h), ErrInvalidHotkey, h)
	}
}

func TestNormalizeColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#FF5733", NormalizeColor("ff5733"))
	assert.Equal(t, "#00AA00", NormalizeColor(" #00aa00 "))
	assert.Equal(t, "", NormalizeColor(""))
}

func TestLabel_Validate(t *testing.T) {
	t.Parallel()

	hotkey := "1"
	l := &Label{Value: "PERSON", Background: "#FF0000", Hotkey: &hotkey}
	assert.NoError(t, l.Validate())
	assert.True(t, l.IsGlobal())
	assert.Equal(t, "1", l.HotkeyValue())

	bad := "ab"
	l.Hotkey = &bad
	assert.ErrorIs(t, l.Validate(), ErrInvalidHotkey)

	l.Hotkey = nil
	l.Background = "red"
	assert.ErrorIs(t, l.Validate(), ErrInvalidColor)
}
