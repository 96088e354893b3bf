package textpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteSelector_Locate(t *testing.T) {
	text := "the fox and the fox"

	sel, err := QuoteSelector{Prefix: "and the ", Exact: "fox"}.Locate(text)
	require.NoError(t, err)
	assert.Equal(t, Selector{Start: 16, End: 19}, sel)

	sel, err = QuoteSelector{Exact: "fox", Suffix: " and"}.Locate(text)
	require.NoError(t, err)
	assert.Equal(t, Selector{Start: 4, End: 7}, sel)
}

func TestQuoteSelector_Errors(t *testing.T) {
	_, err := QuoteSelector{Prefix: "cat "}.Locate("cat fox")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = QuoteSelector{Prefix: "cat ", Exact: "fox"}.Locate("the fox")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuote(t *testing.T) {
	text := "the fox and the fox"

	// "the " also precedes the first fox, so the prefix grows by one.
	q, err := Quote(text, Selector{Start: 16, End: 19}, 4)
	require.NoError(t, err)
	assert.Equal(t, QuoteSelector{Prefix: " the ", Exact: "fox", Suffix: ""}, q)

	// A quote built from a selector locates the same selector.
	sel, err := q.Locate(text)
	require.NoError(t, err)
	assert.Equal(t, Selector{Start: 16, End: 19}, sel)

	_, err = Quote(text, Selector{Start: 16, End: 40}, 4)
	assert.ErrorIs(t, err, ErrRange)
}

func TestQuote_LocatesSameSelector(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		sel        Selector
		contextLen int
	}{
		{"unique without context", "the fox and the dog", Selector{Start: 16, End: 19}, 0},
		{"second of two", "the fox and the fox", Selector{Start: 16, End: 19}, 0},
		{"first of two", "the fox and the fox", Selector{Start: 4, End: 7}, 0},
		{"repeated text", "aaaa", Selector{Start: 2, End: 3}, 0},
		{"repeated text to the end", "abab", Selector{Start: 2, End: 4}, 1},
		{"negative context", "fox fox", Selector{Start: 4, End: 7}, -3},
		{"multibyte", "§ 102 … § 102", Selector{Start: 8, End: 13}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Quote(tt.text, tt.sel, tt.contextLen)
			require.NoError(t, err)

			got, err := q.Locate(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.sel, got, "quote %s", q)
		})
	}
}

func TestQuote_RepeatedTextNeedsWholeText(t *testing.T) {
	q, err := Quote("aaaa", Selector{Start: 2, End: 3}, 0)
	require.NoError(t, err)
	assert.Equal(t, QuoteSelector{Prefix: "aa", Exact: "a", Suffix: "a"}, q)
}

func TestQuote_InvalidSelector(t *testing.T) {
	_, err := Quote("the fox", Selector{Start: 5, End: 2}, 4)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestQuote_InvalidUTF8(t *testing.T) {
	text := "abc\xffdef c\xffd"

	q, err := Quote(text, Selector{Start: 8, End: 11}, 0)
	require.NoError(t, err)
	assert.Equal(t, "c\xffd", q.Exact)

	got, err := q.Locate(text)
	require.NoError(t, err)
	assert.Equal(t, Selector{Start: 8, End: 11}, got)
}
