package textpos

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// QuoteSelector selects a passage by its exact text, optionally pinned down
// by the text immediately before and after it.
type QuoteSelector struct {
	Prefix string `json:"prefix,omitempty"`
	Exact  string `json:"exact"`
	Suffix string `json:"suffix,omitempty"`
}

// Locate returns the first occurrence of Prefix+Exact+Suffix in text,
// selecting only the Exact part.
func (q QuoteSelector) Locate(text string) (Selector, error) {
	if q.Exact == "" {
		return Selector{}, &ValidationError{Reason: "quote selector has no exact text"}
	}
	needle := q.Prefix + q.Exact + q.Suffix
	idx := strings.Index(text, needle)
	if idx < 0 {
		return Selector{}, &NotFoundError{Phrase: needle}
	}
	start := utf8.RuneCountInString(text[:idx]) + utf8.RuneCountInString(q.Prefix)
	return Selector{Start: start, End: start + utf8.RuneCountInString(q.Exact)}, nil
}

// String implements Stringer.
func (q QuoteSelector) String() string {
	return fmt.Sprintf("TextQuoteSelector(prefix=%q, exact=%q, suffix=%q)", q.Prefix, q.Exact, q.Suffix)
}

// Quote builds a QuoteSelector for s, taking at least contextLen
// characters of surrounding text as prefix and suffix where the text has
// them. The context is widened until the quote's first occurrence in text
// is the one at s, so the result locates s again.
func Quote(text string, s Selector, contextLen int) (QuoteSelector, error) {
	if err := s.Validate(); err != nil {
		return QuoteSelector{}, err
	}
	offsets := runeOffsets(text)
	textLen := len(offsets) - 1
	if s.End > textLen {
		return QuoteSelector{}, &RangeError{Selector: s, TextLen: textLen}
	}

	contextLen = max(contextLen, 0)
	for {
		prefixStart := max(0, s.Start-contextLen)
		suffixEnd := min(textLen, s.End+contextLen)
		q := QuoteSelector{
			Prefix: text[offsets[prefixStart]:offsets[s.Start]],
			Exact:  text[offsets[s.Start]:offsets[s.End]],
			Suffix: text[offsets[s.End]:offsets[suffixEnd]],
		}
		// Once the prefix reaches the start of text this always holds.
		if strings.Index(text, q.Prefix+q.Exact+q.Suffix) == offsets[prefixStart] {
			return q, nil
		}
		contextLen++
	}
}
