package research

import (
	"context"
	"errors"
	"testing"

	"github.com/justopinion/justopinion/pkg/citation"
	"github.com/justopinion/justopinion/pkg/store"
	"github.com/justopinion/justopinion/pkg/textpos"
	"github.com/justopinion/justopinion/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const section102b = "In no case does copyright protection extend to any idea, procedure, process, system, method of operation, concept, principle, or discovery."

func newTestCore(t *testing.T, cfg Config) *Core {
	t.Helper()
	c, err := NewCore(cfg)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestCore_Locate(t *testing.T) {
	c := newTestCore(t, Config{})

	r, err := c.Locate(LocateItem{Source: "17 U.S.C. § 102(b)", Text: section102b, Phrase: "method of operation…or discovery"})
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{85, 104}, {126, 138}}, r.Selection.Ranges())
	assert.Equal(t, "method of operation…or discovery", r.Passage)
	assert.Equal(t, "17 U.S.C. § 102(b)", r.Source)
}

func TestCore_Locate_Also(t *testing.T) {
	c := newTestCore(t, Config{})

	r, err := c.Locate(LocateItem{Text: section102b, Phrase: "or discovery", Also: []string{"procedure", "method of operation"}})
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{57, 66}, {85, 104}, {126, 138}}, r.Selection.Ranges())
	assert.Equal(t, "procedure…method of operation…or discovery", r.Passage)

	_, err = c.Locate(LocateItem{Text: section102b, Phrase: "procedure", Also: []string{"expression"}})
	assert.ErrorIs(t, err, textpos.ErrNotFound)
}

func TestCore_Locate_ContextMarkers(t *testing.T) {
	c := newTestCore(t, Config{Render: textpos.RenderOptions{ContextMarkers: true}})

	r, err := c.Locate(LocateItem{Text: section102b, Phrase: "method of operation…or discovery"})
	require.NoError(t, err)
	assert.Equal(t, "…method of operation…or discovery…", r.Passage)
}

func TestCore_Locate_CustomGapMarker(t *testing.T) {
	c := newTestCore(t, Config{Render: textpos.RenderOptions{GapMarker: " ... "}})

	r, err := c.Locate(LocateItem{Text: section102b, Phrase: "procedure ... method of operation"})
	require.NoError(t, err)
	assert.Equal(t, "procedure ... method of operation", r.Passage)
}

func TestCore_Locate_NotFound(t *testing.T) {
	c := newTestCore(t, Config{})

	_, err := c.Locate(LocateItem{Text: section102b, Phrase: "fair use"})
	assert.ErrorIs(t, err, textpos.ErrNotFound)
}

func TestCore_LocateBatch(t *testing.T) {
	c := newTestCore(t, Config{})

	r, err := c.LocateBatch([]LocateItem{
		{Source: "a", Text: section102b, Phrase: "procedure"},
		{Source: "b", Text: section102b, Phrase: "fair use"},
		{Source: "c", Text: section102b, Phrase: ""},
	})
	require.NoError(t, err)

	require.Len(t, r.Results, 3)
	assert.Equal(t, 1, r.Found)
	assert.Equal(t, "procedure", r.Results[0].Passage)
	assert.NotEmpty(t, r.Results[1].Error)
	assert.NotEmpty(t, r.Results[2].Error)
}

func TestCore_Render(t *testing.T) {
	c := newTestCore(t, Config{})

	r, err := c.Render(RenderItem{Text: section102b, Ranges: [][2]int{{126, 138}, {85, 104}}, ContextMarkers: true})
	require.NoError(t, err)

	assert.Equal(t, "…method of operation…or discovery…", r.Passage)
	assert.Equal(t, []string{"method of operation", "or discovery"}, r.Texts)
}

func TestCore_Render_Errors(t *testing.T) {
	c := newTestCore(t, Config{})

	_, err := c.Render(RenderItem{Text: section102b, Ranges: [][2]int{{10, 5}}})
	assert.ErrorIs(t, err, textpos.ErrValidation)

	_, err = c.Render(RenderItem{Text: "short", Ranges: [][2]int{{0, 50}}})
	assert.ErrorIs(t, err, textpos.ErrRange)
}

func TestCore_Cite(t *testing.T) {
	c := newTestCore(t, Config{})

	r, err := c.Cite("See Baker v. Selden, 101 US 99, 104 (1880); id. at 105.")
	require.NoError(t, err)

	require.Len(t, r.Citations, 1)
	assert.Equal(t, "101 U.S. 99", r.Citations[0].Cite)
	assert.Equal(t, "101 US 99", r.Citations[0].Matched)
	assert.Equal(t, "104", r.Citations[0].Pin)
	assert.Equal(t, 21, r.Citations[0].Span.Start)

	require.Len(t, r.ShortForms, 1)
	assert.Equal(t, "IdCitation", r.ShortForms[0].Type)
}

func TestCore_Cite_None(t *testing.T) {
	c := newTestCore(t, Config{})

	r, err := c.Cite("No citations here.")
	require.NoError(t, err)
	assert.Empty(t, r.Citations)
	assert.Empty(t, r.ShortForms)
}

func TestCore_Normalize(t *testing.T) {
	c := newTestCore(t, Config{})

	r, err := c.Normalize("3 US 100")
	require.NoError(t, err)
	assert.Equal(t, "3 U.S. 100", r.Cite)

	_, err = c.Normalize("Id. at 105.")
	assert.ErrorIs(t, err, citation.ErrNoCaseCitation)
}

func TestCore_Quote(t *testing.T) {
	// Arrange
	s := store.NewMemory()
	c := newTestCore(t, Config{Store: s})
	decision := &types.Decision{
		ID:               4237774,
		NameAbbreviation: "Oracle America, Inc. v. Google Inc.",
		DecisionDate:     types.NewDate(2014, 5, 9),
		Citations:        []types.CAPCitation{{Cite: "750 F.3d 1339"}},
		CaseBody: &types.CaseBody{Data: types.CaseData{Opinions: []types.Opinion{
			types.NewOpinion("majority", "O'Malley", section102b),
		}}},
	}

	// Act
	q, err := c.Quote(context.Background(), decision, "", "", "method of operation…or discovery", "merger")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "…method of operation…or discovery…", q.Passage)
	assert.Equal(t, "merger", q.Note)
	assert.Equal(t, int64(4237774), q.DecisionID)

	saved, err := s.GetQuotation(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Key, saved.Key)
}

func TestCore_Quote_NoOpinion(t *testing.T) {
	c := newTestCore(t, Config{})

	_, err := c.Quote(context.Background(), &types.Decision{ID: 1}, "dissent", "", "idea", "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, textpos.ErrNotFound))
}
