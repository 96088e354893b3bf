// Package citation finds and normalizes citations to published cases, in
// the form "[volume] [reporter] [page]", e.g. "750 F.3d 1339".
package citation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/justopinion/justopinion/pkg/textpos"
	"github.com/justopinion/justopinion/pkg/types"
)

// ErrNoCaseCitation is returned when text holds no citation to a case.
var ErrNoCaseCitation = errors.New("no case citation found")

// CaseCitation is a citation to a case in a reporter, found in some text.
type CaseCitation struct {
	Volume   int
	Reporter Reporter
	Page     string
	Pin      string           // pinpoint page(s) after the first page, if any
	Matched  string           // citation as written, e.g. "3 US 100"
	Span     textpos.Selector // position of Matched in the searched text
}

// Corrected returns the citation with the reporter's canonical
// abbreviation, e.g. "3 U.S. 100".
func (c CaseCitation) Corrected() string {
	return fmt.Sprintf("%d %s %s", c.Volume, c.Reporter.Name, c.Page)
}

// String implements Stringer.
func (c CaseCitation) String() string {
	return c.Corrected()
}

// ReporterCitation converts the citation to the CourtListener form.
func (c CaseCitation) ReporterCitation() types.ReporterCitation {
	return types.ReporterCitation{Volume: c.Volume, Reporter: c.Reporter.Name, Page: c.Page}
}

// ShortForm is a citation that refers back to an earlier citation instead
// of naming a case, such as "Id." or "supra".
type ShortForm struct {
	Type    string // "IdCitation" or "SupraCitation"
	Matched string
	Span    textpos.Selector
}

// ParseError reports text in which no case citation could be found.
type ParseError struct {
	Text       string
	ShortForms []ShortForm
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "could not locate a case citation in the text %q", e.Text)
	for _, sf := range e.ShortForms {
		fmt.Fprintf(&b, "; %q was type %s, not CaseCitation", sf.Matched, sf.Type)
	}
	return b.String()
}

// Is reports whether target is ErrNoCaseCitation.
func (e *ParseError) Is(target error) bool {
	return target == ErrNoCaseCitation
}

// Parse returns the first case citation in text.
func Parse(text string) (CaseCitation, error) {
	ex, err := defaultExtractor()
	if err != nil {
		return CaseCitation{}, err
	}
	return ex.Parse(text)
}

// Normalize returns the first case citation in text in its corrected form,
// so "3 US 100" becomes "3 U.S. 100".
func Normalize(text string) (string, error) {
	c, err := Parse(text)
	if err != nil {
		return "", err
	}
	return c.Corrected(), nil
}

// Extract returns every case citation in text, ordered by position.
func Extract(text string) ([]CaseCitation, error) {
	ex, err := defaultExtractor()
	if err != nil {
		return nil, err
	}
	return ex.Extract(text)
}

// SplitCorrected splits a corrected citation into volume, reporter, and
// page, the form required by CourtListener's citation lookup.
func SplitCorrected(cite string) (volume int, reporter, page string, err error) {
	first := strings.IndexByte(cite, ' ')
	last := strings.LastIndexByte(cite, ' ')
	if first < 0 || first == last {
		return 0, "", "", fmt.Errorf("splitting citation %q: expected volume, reporter, and page", cite)
	}
	volume, err = strconv.Atoi(cite[:first])
	if err != nil {
		return 0, "", "", fmt.Errorf("splitting citation %q: %w", cite, err)
	}
	return volume, cite[first+1 : last], cite[last+1:], nil
}
