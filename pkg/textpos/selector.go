package textpos

import (
	"encoding/json"
	"fmt"
)

// Selector is a character range [Start, End) - half-open interval.
// Offsets count Unicode code points, not bytes.
//
// Build selectors with NewSelector, or call Validate on a literal.
// Functions that take a Selector reject or ignore invalid bounds.
type Selector struct {
	Start int
	End   int
}

// NewSelector returns a Selector for [start, end).
// It fails with a *ValidationError unless 0 <= start < end.
func NewSelector(start, end int) (Selector, error) {
	if start < 0 {
		return Selector{}, &ValidationError{Start: start, End: end, Reason: "start must not be negative"}
	}
	if start >= end {
		return Selector{}, &ValidationError{Start: start, End: end, Reason: "end must be greater than start"}
	}
	return Selector{Start: start, End: end}, nil
}

// Validate checks the Selector's bounds. A zero Selector is invalid.
func (s Selector) Validate() error {
	_, err := NewSelector(s.Start, s.End)
	return err
}

// AsRange returns the selector bounds.
func (s Selector) AsRange() (start, end int) {
	return s.Start, s.End
}

// Len is End - Start.
func (s Selector) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether the ranges share an offset or touch end to start.
// Two overlapping selectors can be merged into one.
func (s Selector) Overlaps(other Selector) bool {
	return s.Start <= other.End && other.Start <= s.End
}

// Contains reports whether other lies entirely within s.
func (s Selector) Contains(other Selector) bool {
	return s.Start <= other.Start && s.End >= other.End
}

// Compare orders selectors by Start, then End.
func (s Selector) Compare(other Selector) int {
	switch {
	case s.Start < other.Start:
		return -1
	case s.Start > other.Start:
		return 1
	case s.End < other.End:
		return -1
	case s.End > other.End:
		return 1
	}
	return 0
}

// String implements Stringer.
func (s Selector) String() string {
	return fmt.Sprintf("TextPositionSelector[%d, %d)", s.Start, s.End)
}

type selectorJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MarshalJSON implements json.Marshaler.
func (s Selector) MarshalJSON() ([]byte, error) {
	return json.Marshal(selectorJSON{Start: s.Start, End: s.End})
}

// UnmarshalJSON implements json.Unmarshaler. Decoded bounds are validated.
func (s *Selector) UnmarshalJSON(data []byte) error {
	var raw selectorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	sel, err := NewSelector(raw.Start, raw.End)
	if err != nil {
		return err
	}
	*s = sel
	return nil
}
