package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST CASES - Overlaps
// ============================================================================

func TestOverlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"touching spans do not overlap", Span{0, 5}, Span{5, 10}, false},
		{"shared character overlaps", Span{0, 5}, Span{4, 10}, true},
		{"identical spans overlap", Span{3, 7}, Span{3, 7}, true},
		{"nested spans overlap", Span{0, 10}, Span{2, 3}, true},
		{"disjoint spans", Span{0, 2}, Span{8, 9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestOverlaps_Reflexive(t *testing.T) {
	t.Parallel()

	for start := 0; start < 5; start++ {
		for end := start + 1; end < 8; end++ {
			s := Span{start, end}
			assert.True(t, s.Overlaps(s), "span %s should overlap itself", s)
		}
	}
}

// ============================================================================
// TEST CASES - Contains / Validate
// ============================================================================

func TestContains(t *testing.T) {
	t.Parallel()

	outer := Span{0, 10}
	assert.True(t, outer.Contains(Span{0, 10}))
	assert.True(t, outer.Contains(Span{2, 5}))
	assert.False(t, outer.Contains(Span{5, 11}))
	assert.False(t, Span{2, 5}.Contains(outer))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Span{0, 1}.Validate())
	assert.ErrorIs(t, Span{3, 3}.Validate(), ErrInvalid)
	assert.ErrorIs(t, Span{4, 2}.Validate(), ErrInvalid)
	assert.ErrorIs(t, Span{-1, 2}.Validate(), ErrInvalid)

	s, err := New(2, 6)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, "[2, 6)", s.String())

	_, err = New(6, 2)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateText(t *testing.T) {
	t.Parallel()

	text := "김철수는 서울에 산다"
	name := "김철수"
	city := "서울"
	wrong := "부산"

	assert.NoError(t, Span{0, 3}.ValidateText(text, &name))
	assert.NoError(t, Span{5, 7}.ValidateText(text, &city))
	assert.NoError(t, Span{5, 7}.ValidateText(text, nil))
	assert.ErrorIs(t, Span{5, 7}.ValidateText(text, &wrong), ErrInvalid)
	assert.ErrorIs(t, Span{5, 40}.ValidateText(text, nil), ErrInvalid)
}
