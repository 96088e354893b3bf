package textpos

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Rebase maps a set describing oldText onto newText, for example after a
// court publishes a corrected opinion.
//
// Each selector keeps the characters that survive the revision; text inserted
// inside a selected range becomes part of the range. Selectors whose text was
// deleted entirely are dropped. It fails with a *RangeError if p does not fit
// oldText.
func Rebase(p PositionSet, oldText, newText string) (PositionSet, error) {
	oldLen := utf8.RuneCountInString(oldText)
	for _, s := range p.selectors {
		if s.End > oldLen {
			return PositionSet{}, &RangeError{Selector: s, TextLen: oldLen}
		}
	}
	if oldText == newText {
		return p, nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	mapped := mapOffsets(oldLen, diffs)

	selectors := make([]Selector, 0, len(p.selectors))
	for _, s := range p.selectors {
		start, end := -1, -1
		for i := s.Start; i < s.End; i++ {
			if mapped[i] < 0 {
				continue
			}
			if start < 0 {
				start = mapped[i]
			}
			end = mapped[i] + 1
		}
		if start >= 0 {
			selectors = append(selectors, Selector{Start: start, End: end})
		}
	}
	return PositionSet{selectors: merge(selectors)}, nil
}

// mapOffsets returns, for each code point of the old text, its offset in the
// new text, or -1 if the diff deletes it.
func mapOffsets(oldLen int, diffs []diffmatchpatch.Diff) []int {
	mapped := make([]int, oldLen)
	oldPos, newPos := 0, 0
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for i := 0; i < n; i++ {
				mapped[oldPos+i] = -1
			}
			oldPos += n
		case diffmatchpatch.DiffInsert:
			newPos += n
		case diffmatchpatch.DiffEqual:
			for i := 0; i < n; i++ {
				mapped[oldPos+i] = newPos + i
			}
			oldPos += n
			newPos += n
		}
	}
	return mapped
}
