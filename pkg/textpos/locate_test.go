package textpos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fox = "The quick brown fox"

func TestLocate_SinglePhrase(t *testing.T) {
	set, err := Locate(fox, "quick brown")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{4, 15}}, set.Ranges())

	got, err := set.Render(fox)
	require.NoError(t, err)
	assert.Equal(t, "quick brown", got)
}

func TestLocate_FirstOccurrence(t *testing.T) {
	set, err := Locate("the fox and the fox", "fox")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{4, 7}}, set.Ranges())
}

func TestLocate_CaseSensitive(t *testing.T) {
	_, err := Locate(fox, "QUICK")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocate_NoTrimming(t *testing.T) {
	set, err := Locate(fox, " brown ")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{9, 16}}, set.Ranges())
}

func TestLocate_GapMarker(t *testing.T) {
	set, err := Locate(fox, "quick…fox")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{4, 9}, {16, 19}}, set.Ranges())

	got, err := set.Render(fox)
	require.NoError(t, err)
	assert.Equal(t, "quick…fox", got)
}

func TestLocate_GapMarkerMergesAdjacentPassages(t *testing.T) {
	set, err := Locate(fox, "quick… brown")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{4, 15}}, set.Ranges())
}

func TestLocate_GapMarkerFollowsQuoteOrder(t *testing.T) {
	text := "the court held that the court erred"
	set, err := Locate(text, "held…court")
	require.NoError(t, err)
	// "court" is matched after "held", not at its first occurrence.
	assert.Equal(t, [][2]int{{10, 14}, {24, 29}}, set.Ranges())
}

func TestLocate_NotFound(t *testing.T) {
	_, err := Locate(fox, "lazy dog")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var nerr *NotFoundError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, "lazy dog", nerr.Phrase)
}

func TestLocate_OutOfOrderPassageNotFound(t *testing.T) {
	text := "fox jumps over the quick dog"
	_, err := Locate(text, "quick…fox")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "fox", nerr.Phrase)
	assert.Equal(t, 24, nerr.From)
}

func TestLocate_EmptyPhrase(t *testing.T) {
	_, err := Locate(fox, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Locate(fox, "quick……fox")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Locate(fox, "…fox")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLocate_CountsCodePoints(t *testing.T) {
	text := "§ 102(b) protects “methods of operation” from copyright"

	set, err := Locate(text, "methods of operation…copyright")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{19, 39}, {46, 55}}, set.Ranges())

	got, err := set.Render(text)
	require.NoError(t, err)
	assert.Equal(t, "methods of operation…copyright", got)
}

func TestLocator_CustomGapMarker(t *testing.T) {
	loc := Locator{GapMarker: "..."}

	set, err := loc.Locate(fox, "quick...fox")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{4, 9}, {16, 19}}, set.Ranges())

	// The default marker is ordinary text for this locator.
	_, err = loc.Locate(fox, "quick…fox")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocator_LocateAll(t *testing.T) {
	set, err := Locator{}.LocateAll(fox, "fox", "The", "quick")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 3}, {4, 9}, {16, 19}}, set.Ranges())

	_, err = Locator{}.LocateAll(fox, "fox", "cat")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocate_InvalidUTF8RoundTrip(t *testing.T) {
	text := "abc\xffdef quick"

	set, err := Locate(text, "c\xffd")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{2, 5}}, set.Ranges())

	rendered, err := set.Render(text)
	require.NoError(t, err)
	assert.Equal(t, "c\xffd", rendered)

	rendered, err = set.Render(text, WithContextMarkers())
	require.NoError(t, err)
	assert.Equal(t, "…c\xffd…", rendered)

	// The invalid byte counts as one character: the text is 13 long.
	passages, err := mustRanges(t, [2]int{0, 4}, [2]int{8, 13}).Texts(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc\xff", "quick"}, passages)

	_, err = mustRanges(t, [2]int{8, 14}).Render(text)
	assert.ErrorIs(t, err, ErrRange)
}
