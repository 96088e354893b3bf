package textpos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRanges(t *testing.T, pairs ...[2]int) PositionSet {
	t.Helper()
	set, err := FromRanges(pairs...)
	require.NoError(t, err)
	return set
}

func TestFromRanges_Merges(t *testing.T) {
	set := mustRanges(t, [2]int{0, 10}, [2]int{5, 15}, [2]int{20, 25})
	assert.Equal(t, [][2]int{{0, 15}, {20, 25}}, set.Ranges())
}

func TestFromRanges_MergesAdjacent(t *testing.T) {
	set := mustRanges(t, [2]int{5, 10}, [2]int{0, 5})
	assert.Equal(t, [][2]int{{0, 10}}, set.Ranges())
}

func TestFromRanges_SortsAndCollapsesNested(t *testing.T) {
	set := mustRanges(t, [2]int{30, 40}, [2]int{0, 20}, [2]int{2, 3}, [2]int{25, 26})
	assert.Equal(t, [][2]int{{0, 20}, {25, 26}, {30, 40}}, set.Ranges())
}

func TestFromRanges_Invalid(t *testing.T) {
	_, err := FromRanges([2]int{0, 10}, [2]int{8, 3})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = FromRanges([2]int{-2, 3})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFromRanges_Empty(t *testing.T) {
	set, err := FromRanges()
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
	assert.Equal(t, "TextPositionSet{}", set.String())
}

func TestNewPositionSet(t *testing.T) {
	set, err := NewPositionSet(Selector{Start: 4, End: 6}, Selector{Start: 1, End: 2}, Selector{Start: 5, End: 8})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}, {4, 8}}, set.Ranges())
}

func TestNewPositionSet_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		selectors []Selector
	}{
		{"inverted", []Selector{{Start: 3, End: 1}, {Start: 1, End: 2}}},
		{"negative start", []Selector{{Start: -4, End: 2}}},
		{"empty range", []Selector{{Start: 2, End: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewPositionSet(tt.selectors...)
			assert.ErrorIs(t, err, ErrValidation)
			assert.True(t, set.IsEmpty())
		})
	}
}

func TestUnion(t *testing.T) {
	a := mustRanges(t, [2]int{0, 5}, [2]int{20, 25})
	b := mustRanges(t, [2]int{4, 10}, [2]int{30, 31})

	assert.Equal(t, [][2]int{{0, 10}, {20, 25}, {30, 31}}, a.Union(b).Ranges())
	assert.True(t, a.Union(b).Equal(b.Union(a)), "union is commutative")
}

func TestUnion_Associative(t *testing.T) {
	a := mustRanges(t, [2]int{0, 5})
	b := mustRanges(t, [2]int{5, 8}, [2]int{40, 50})
	c := mustRanges(t, [2]int{7, 12}, [2]int{45, 60})

	assert.True(t, a.Union(b).Union(c).Equal(a.Union(b.Union(c))))
}

func TestUnion_Idempotent(t *testing.T) {
	inputs := [][][2]int{
		{{0, 10}, {5, 15}, {20, 25}},
		{{3, 4}},
		{{100, 200}, {0, 1}, {1, 2}},
	}
	for _, ranges := range inputs {
		set := mustRanges(t, ranges...)
		assert.True(t, set.Union(set).Equal(set))
	}
}

func TestUnion_DoesNotModifyOperands(t *testing.T) {
	a := mustRanges(t, [2]int{10, 20})
	b := mustRanges(t, [2]int{0, 5})
	_ = a.Union(b)

	assert.Equal(t, [][2]int{{10, 20}}, a.Ranges())
	assert.Equal(t, [][2]int{{0, 5}}, b.Ranges())
}

func TestAdd(t *testing.T) {
	set, err := mustRanges(t, [2]int{0, 5}).Add(Selector{Start: 5, End: 9})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 9}}, set.Ranges())
}

func TestAdd_Invalid(t *testing.T) {
	base := mustRanges(t, [2]int{0, 3})

	set, err := base.Add(Selector{Start: 9, End: 2})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 9, verr.Start)
	assert.Equal(t, 2, verr.End)
	assert.True(t, set.Equal(base), "receiver is returned unchanged")
}

func TestContains(t *testing.T) {
	outer := mustRanges(t, [2]int{10, 20})

	assert.True(t, outer.Contains(mustRanges(t, [2]int{12, 15})))
	assert.False(t, outer.Contains(mustRanges(t, [2]int{5, 12})))
	assert.True(t, outer.Contains(PositionSet{}), "empty set is always contained")
	assert.False(t, PositionSet{}.Contains(outer))
}

func TestContains_MultipleSelectors(t *testing.T) {
	set := mustRanges(t, [2]int{0, 10}, [2]int{20, 30}, [2]int{40, 50})

	assert.True(t, set.Contains(mustRanges(t, [2]int{1, 2}, [2]int{41, 50})))
	assert.False(t, set.Contains(mustRanges(t, [2]int{1, 2}, [2]int{25, 35})))
	assert.False(t, set.Contains(mustRanges(t, [2]int{9, 21})), "gap between selectors is not covered")
	assert.True(t, set.ContainsSelector(Selector{Start: 20, End: 30}))
	assert.False(t, set.ContainsSelector(Selector{Start: 60, End: 61}))
	assert.False(t, set.ContainsSelector(Selector{Start: 25, End: 21}), "inverted selector")
}

func TestSelectors_ReturnsCopy(t *testing.T) {
	set := mustRanges(t, [2]int{0, 5})
	sels := set.Selectors()
	sels[0].End = 100

	assert.Equal(t, [][2]int{{0, 5}}, set.Ranges())
}

func TestRender(t *testing.T) {
	text := "The quick brown fox"

	set := mustRanges(t, [2]int{4, 15})
	got, err := set.Render(text)
	require.NoError(t, err)
	assert.Equal(t, "quick brown", got)
}

func TestRender_JoinsEverySelectorWithGapMarker(t *testing.T) {
	text := "The quick brown fox"

	// Selectors one character apart are still separate passages.
	set := mustRanges(t, [2]int{0, 3}, [2]int{4, 9})
	got, err := set.Render(text)
	require.NoError(t, err)
	assert.Equal(t, "The…quick", got)

	// Adjacent selectors were merged at construction, so no marker appears.
	set = mustRanges(t, [2]int{0, 4}, [2]int{4, 9})
	got, err = set.Render(text)
	require.NoError(t, err)
	assert.Equal(t, "The quick", got)
}

func TestRender_ContextMarkers(t *testing.T) {
	text := "The quick brown fox"

	tests := []struct {
		name   string
		ranges [][2]int
		want   string
	}{
		{"middle", [][2]int{{4, 9}}, "…quick…"},
		{"touches end", [][2]int{{4, 9}, {16, 19}}, "…quick…fox"},
		{"touches start", [][2]int{{0, 3}}, "The…"},
		{"whole text", [][2]int{{0, 19}}, "The quick brown fox"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mustRanges(t, tt.ranges...).Render(text, WithContextMarkers())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_CustomGapMarker(t *testing.T) {
	set := mustRanges(t, [2]int{4, 9}, [2]int{16, 19})
	got, err := set.Render("The quick brown fox", WithGapMarker(" [...] "))
	require.NoError(t, err)
	assert.Equal(t, "quick [...] fox", got)
}

func TestRender_OutOfRange(t *testing.T) {
	text := "The quick brown fox."
	require.Len(t, text, 20)

	set := mustRanges(t, [2]int{0, 1000})
	_, err := set.Render(text)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRange)

	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 20, rerr.TextLen)
}

func TestRender_EndAtTextLength(t *testing.T) {
	set := mustRanges(t, [2]int{16, 19})
	got, err := set.Render("The quick brown fox")
	require.NoError(t, err)
	assert.Equal(t, "fox", got)
}

func TestRender_EmptySet(t *testing.T) {
	got, err := PositionSet{}.Render("anything", WithContextMarkers())
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestRender_CountsCodePoints(t *testing.T) {
	text := "§ 102(b) protects “methods of operation”"

	set := mustRanges(t, [2]int{19, 39})
	got, err := set.Render(text)
	require.NoError(t, err)
	assert.Equal(t, "methods of operation", got)
}

func TestTexts(t *testing.T) {
	set := mustRanges(t, [2]int{4, 9}, [2]int{16, 19})
	passages, err := set.Texts("The quick brown fox")
	require.NoError(t, err)
	assert.Equal(t, []string{"quick", "fox"}, passages)
}

func TestPositionSet_String(t *testing.T) {
	set := mustRanges(t, [2]int{20, 25}, [2]int{0, 15})
	assert.Equal(t,
		"TextPositionSet{TextPositionSelector[0, 15), TextPositionSelector[20, 25)}",
		set.String())
}

func TestPositionSet_JSON(t *testing.T) {
	set := mustRanges(t, [2]int{0, 15}, [2]int{20, 25})

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"start": 0, "end": 15}, {"start": 20, "end": 25}]`, string(data))

	// Decoding merges overlapping input.
	var decoded PositionSet
	require.NoError(t, json.Unmarshal([]byte(`[{"start": 5, "end": 9}, {"start": 0, "end": 6}]`), &decoded))
	assert.Equal(t, [][2]int{{0, 9}}, decoded.Ranges())

	empty, err := json.Marshal(PositionSet{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}
