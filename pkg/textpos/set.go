package textpos

import (
	"encoding/json"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultGapMarker separates non-contiguous passages in a quotation.
// It is also the delimiter Locate splits phrases on.
const DefaultGapMarker = "…"

// PositionSet is an ordered set of disjoint Selectors.
//
// Selectors are sorted by Start and never touch: any two ranges where one
// ends at or after the start of the next are merged into a single range.
// The zero value is an empty set. A PositionSet does not keep a reference
// to the text it describes; pass the text to Render.
type PositionSet struct {
	selectors []Selector
}

// FromRanges builds a PositionSet from [start, end) pairs, merging any
// ranges that overlap or are adjacent. It fails with a *ValidationError if
// any pair is invalid.
func FromRanges(pairs ...[2]int) (PositionSet, error) {
	selectors := make([]Selector, 0, len(pairs))
	for _, p := range pairs {
		sel, err := NewSelector(p[0], p[1])
		if err != nil {
			return PositionSet{}, err
		}
		selectors = append(selectors, sel)
	}
	return PositionSet{selectors: merge(selectors)}, nil
}

// NewPositionSet builds a PositionSet from selectors, merging any that
// overlap or touch. It fails with a *ValidationError if any selector is
// invalid.
func NewPositionSet(selectors ...Selector) (PositionSet, error) {
	valid := make([]Selector, 0, len(selectors))
	for _, s := range selectors {
		if err := s.Validate(); err != nil {
			return PositionSet{}, err
		}
		valid = append(valid, s)
	}
	return PositionSet{selectors: merge(valid)}, nil
}

// merge sorts selectors in place and sweeps once, extending the running
// range whenever the next one starts at or before its end.
func merge(selectors []Selector) []Selector {
	if len(selectors) == 0 {
		return nil
	}
	slices.SortFunc(selectors, Selector.Compare)

	result := make([]Selector, 0, len(selectors))
	current := selectors[0]
	for _, next := range selectors[1:] {
		if next.Start <= current.End {
			current.End = max(current.End, next.End)
			continue
		}
		result = append(result, current)
		current = next
	}
	return append(result, current)
}

// Union returns a new set covering every offset in either set.
func (p PositionSet) Union(other PositionSet) PositionSet {
	combined := make([]Selector, 0, len(p.selectors)+len(other.selectors))
	combined = append(combined, p.selectors...)
	combined = append(combined, other.selectors...)
	return PositionSet{selectors: merge(combined)}
}

// Add returns a new set that also covers s. It fails with a
// *ValidationError if s is invalid.
func (p PositionSet) Add(s Selector) (PositionSet, error) {
	single, err := NewPositionSet(s)
	if err != nil {
		return p, err
	}
	return p.Union(single), nil
}

// Selectors returns a copy of the selectors in order.
func (p PositionSet) Selectors() []Selector {
	return slices.Clone(p.selectors)
}

// Ranges returns the selectors as [start, end) pairs.
func (p PositionSet) Ranges() [][2]int {
	ranges := make([][2]int, len(p.selectors))
	for i, s := range p.selectors {
		ranges[i] = [2]int{s.Start, s.End}
	}
	return ranges
}

// Len returns the number of selectors.
func (p PositionSet) Len() int {
	return len(p.selectors)
}

// IsEmpty reports whether the set selects nothing.
func (p PositionSet) IsEmpty() bool {
	return len(p.selectors) == 0
}

// Equal reports whether both sets cover the same offsets.
func (p PositionSet) Equal(other PositionSet) bool {
	return slices.Equal(p.selectors, other.selectors)
}

// ContainsSelector reports whether s lies entirely inside one selector of p.
// Since selectors are disjoint and never adjacent, containment by a single
// selector is the same as containment by the union. An invalid s is never
// contained.
func (p PositionSet) ContainsSelector(s Selector) bool {
	if s.Validate() != nil {
		return false
	}
	// First selector starting after s.Start; the candidate is the one before it.
	i := sort.Search(len(p.selectors), func(i int) bool {
		return p.selectors[i].Start > s.Start
	})
	if i == 0 {
		return false
	}
	return p.selectors[i-1].Contains(s)
}

// Contains reports whether every offset covered by other is covered by p.
// An empty set is contained in any set.
func (p PositionSet) Contains(other PositionSet) bool {
	for _, s := range other.selectors {
		if !p.ContainsSelector(s) {
			return false
		}
	}
	return true
}

// RenderOptions control how a PositionSet is rendered as a quotation.
type RenderOptions struct {
	// GapMarker joins consecutive passages. Defaults to DefaultGapMarker.
	GapMarker string

	// ContextMarkers adds a leading marker when the first passage doesn't
	// start the text and a trailing marker when the last doesn't end it.
	ContextMarkers bool
}

// RenderOption configures Render.
type RenderOption func(*RenderOptions)

// WithGapMarker overrides the marker placed between passages.
func WithGapMarker(marker string) RenderOption {
	return func(o *RenderOptions) {
		o.GapMarker = marker
	}
}

// WithContextMarkers marks text omitted before the first and after the last passage.
func WithContextMarkers() RenderOption {
	return func(o *RenderOptions) {
		o.ContextMarkers = true
	}
}

// WithRenderOptions applies a complete RenderOptions value.
func WithRenderOptions(opts RenderOptions) RenderOption {
	return func(o *RenderOptions) {
		*o = opts
	}
}

// Texts returns the passage selected by each selector, in order.
// It fails with a *RangeError if a selector ends past the end of text.
// Passages are sliced from text as is, so bytes that are not valid UTF-8
// survive.
func (p PositionSet) Texts(text string) ([]string, error) {
	offsets := runeOffsets(text)
	textLen := len(offsets) - 1
	passages := make([]string, 0, len(p.selectors))
	for _, s := range p.selectors {
		if s.End > textLen {
			return nil, &RangeError{Selector: s, TextLen: textLen}
		}
		passages = append(passages, text[offsets[s.Start]:offsets[s.End]])
	}
	return passages, nil
}

// Render reconstructs the quotation p selects from text.
//
// Every pair of consecutive passages is joined with the gap marker; since
// adjacent ranges were merged at construction, consecutive selectors are
// always separated by omitted text. No marker is added before the first or
// after the last passage unless WithContextMarkers is given.
func (p PositionSet) Render(text string, opts ...RenderOption) (string, error) {
	o := RenderOptions{GapMarker: DefaultGapMarker}
	for _, opt := range opts {
		opt(&o)
	}
	if o.GapMarker == "" {
		o.GapMarker = DefaultGapMarker
	}

	passages, err := p.Texts(text)
	if err != nil {
		return "", err
	}
	if len(passages) == 0 {
		return "", nil
	}

	var b strings.Builder
	if o.ContextMarkers && p.selectors[0].Start > 0 {
		b.WriteString(o.GapMarker)
	}
	b.WriteString(strings.Join(passages, o.GapMarker))
	if o.ContextMarkers && p.selectors[len(p.selectors)-1].End < utf8.RuneCountInString(text) {
		b.WriteString(o.GapMarker)
	}
	return b.String(), nil
}

// String implements Stringer.
func (p PositionSet) String() string {
	parts := make([]string, len(p.selectors))
	for i, s := range p.selectors {
		parts[i] = s.String()
	}
	return "TextPositionSet{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON encodes the set as an array of selectors.
func (p PositionSet) MarshalJSON() ([]byte, error) {
	if p.selectors == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.selectors)
}

// UnmarshalJSON decodes an array of selectors, validating and merging them.
func (p *PositionSet) UnmarshalJSON(data []byte) error {
	var selectors []Selector
	if err := json.Unmarshal(data, &selectors); err != nil {
		return err
	}
	p.selectors = merge(selectors)
	return nil
}
