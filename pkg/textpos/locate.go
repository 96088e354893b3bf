package textpos

import (
	"strings"
	"unicode/utf8"
)

// Locator finds quoted phrases in text.
type Locator struct {
	// GapMarker splits a phrase into passages that must appear in order,
	// possibly with other text between them. Defaults to DefaultGapMarker.
	GapMarker string
}

// Locate finds phrase in fullText using DefaultGapMarker.
func Locate(fullText, phrase string) (PositionSet, error) {
	return Locator{}.Locate(fullText, phrase)
}

func (l Locator) marker() string {
	if l.GapMarker == "" {
		return DefaultGapMarker
	}
	return l.GapMarker
}

// Locate returns the positions of phrase within fullText.
//
// Without a gap marker the result is the first exact, case-sensitive
// occurrence of phrase. With gap markers each passage between markers is
// searched for starting at the end of the previous passage's match, so the
// passages are matched in the order they're quoted. Passages that turn out
// adjacent or overlapping are merged.
//
// It fails with a *NotFoundError if any passage is missing, and with a
// *ValidationError if phrase or any passage is empty.
func (l Locator) Locate(fullText, phrase string) (PositionSet, error) {
	if phrase == "" {
		return PositionSet{}, &ValidationError{Reason: "phrase is empty"}
	}

	passages := strings.Split(phrase, l.marker())
	selectors := make([]Selector, 0, len(passages))

	// Cursors advance together: byteAt indexes fullText, runeAt is the
	// same position counted in code points.
	byteAt, runeAt := 0, 0
	for _, passage := range passages {
		if passage == "" {
			return PositionSet{}, &ValidationError{Phrase: phrase, Reason: "empty passage between gap markers"}
		}
		idx := strings.Index(fullText[byteAt:], passage)
		if idx < 0 {
			return PositionSet{}, &NotFoundError{Phrase: passage, From: runeAt}
		}
		start := runeAt + utf8.RuneCountInString(fullText[byteAt:byteAt+idx])
		end := start + utf8.RuneCountInString(passage)
		selectors = append(selectors, Selector{Start: start, End: end})

		byteAt += idx + len(passage)
		runeAt = end
	}
	return PositionSet{selectors: merge(selectors)}, nil
}

// LocateAll locates each phrase independently and returns the union.
func (l Locator) LocateAll(fullText string, phrases ...string) (PositionSet, error) {
	var result PositionSet
	for _, phrase := range phrases {
		found, err := l.Locate(fullText, phrase)
		if err != nil {
			return PositionSet{}, err
		}
		result = result.Union(found)
	}
	return result, nil
}
