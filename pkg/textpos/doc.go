// Package textpos describes passages of opinion text by character position.
//
// A Selector is one half-open range [Start, End). A PositionSet is an ordered
// collection of disjoint Selectors that can be combined with Union, tested
// with Contains, and rendered back to a quotation with Render. Locate maps a
// quoted phrase to the PositionSet where it occurs:
//
//	set, err := textpos.Locate(opinion.Text, "method of operation…or procedure")
//	if err != nil {
//	    return err
//	}
//	quote, err := set.Render(opinion.Text, textpos.WithContextMarkers())
//	// quote == "…method of operation…or procedure…"
//
// Offsets count Unicode code points, so they agree with the character
// offsets used by the case-law APIs.
package textpos
