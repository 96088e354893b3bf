package textpos

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	ErrValidation = errors.New("invalid text position")
	ErrNotFound   = errors.New("text not found")
	ErrRange      = errors.New("text position out of range")
)

// ValidationError reports malformed or inverted range bounds, or a search
// phrase that cannot produce a non-empty range.
//
// Phrases are covered too: Locate rejects an empty phrase, and an empty
// passage left by a leading, trailing or doubled gap marker.
type ValidationError struct {
	Start  int
	End    int
	Phrase string // set when the phrase, not a range, was rejected
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Phrase != "" {
		return fmt.Sprintf("invalid phrase %q: %s", e.Phrase, e.Reason)
	}
	return fmt.Sprintf("invalid range [%d, %d): %s", e.Start, e.End, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a phrase that could not be located at or after From.
type NotFoundError struct {
	Phrase string
	From   int
}

func (e *NotFoundError) Error() string {
	if e.From > 0 {
		return fmt.Sprintf("passage %q not found after offset %d", e.Phrase, e.From)
	}
	return fmt.Sprintf("passage %q not found in text", e.Phrase)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RangeError reports a selector that extends past the end of the rendered text.
type RangeError struct {
	Selector Selector
	TextLen  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s exceeds text length %d", e.Selector, e.TextLen)
}

// Is reports whether target is ErrRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}
