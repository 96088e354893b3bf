package research

import (
	"github.com/justopinion/justopinion/pkg/citation"
	"github.com/justopinion/justopinion/pkg/textpos"
)

// LocateItem is a phrase to find in a text.
type LocateItem struct {
	Source string `json:"source,omitempty"` // e.g., "oracle-v-google:majority"
	Text   string `json:"text"`             // the text to search
	Phrase string `json:"phrase"`           // the quotation, passages split by the gap marker

	// Also holds further phrases located independently of Phrase. The
	// result selects all of them.
	Also []string `json:"also,omitempty"`
}

// LocateResult is the position and rendering of one located phrase.
type LocateResult struct {
	Source    string              `json:"source,omitempty"`
	Selection textpos.PositionSet `json:"selection"`
	Passage   string              `json:"passage"`
	Error     string              `json:"error,omitempty"`
}

// BatchLocateResult holds the results for a batch of LocateItems.
type BatchLocateResult struct {
	Results []LocateResult `json:"results"`
	Found   int            `json:"found"`
}

// RenderItem is a set of ranges to render from a text.
type RenderItem struct {
	Text           string   `json:"text"`
	Ranges         [][2]int `json:"ranges"`
	ContextMarkers bool     `json:"context_markers,omitempty"`
}

// RenderResult is a rendered quotation and the passages it joins.
type RenderResult struct {
	Selection textpos.PositionSet `json:"selection"`
	Passage   string              `json:"passage"`
	Texts     []string            `json:"texts"`
}

// Citation is a case citation found in a text.
type Citation struct {
	Cite     string           `json:"cite"`    // corrected, e.g. "3 U.S. 100"
	Matched  string           `json:"matched"` // as written, e.g. "3 US 100"
	Volume   int              `json:"volume"`
	Reporter string           `json:"reporter"`
	Page     string           `json:"page"`
	Pin      string           `json:"pin,omitempty"`
	Span     textpos.Selector `json:"span"`
}

// ShortForm is an "Id." or "supra" citation found in a text.
type ShortForm struct {
	Type    string           `json:"type"`
	Matched string           `json:"matched"`
	Span    textpos.Selector `json:"span"`
}

// CiteResult lists the citations found in a text.
type CiteResult struct {
	Citations  []Citation  `json:"citations"`
	ShortForms []ShortForm `json:"short_forms"`
}

func newCitation(c citation.CaseCitation) Citation {
	return Citation{
		Cite:     c.Corrected(),
		Matched:  c.Matched,
		Volume:   c.Volume,
		Reporter: c.Reporter.Name,
		Page:     c.Page,
		Pin:      c.Pin,
		Span:     c.Span,
	}
}
