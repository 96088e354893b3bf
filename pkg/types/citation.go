package types

import "fmt"

// CAPCitation is a case citation generated by the Caselaw Access Project.
type CAPCitation struct {
	Cite     string  `json:"cite"`               // e.g., "15 Ill. 284"
	Reporter string  `json:"reporter,omitempty"` // e.g., "Ill."
	Category string  `json:"category,omitempty"` // e.g., "reporters:state"
	CaseIDs  []int64 `json:"case_ids,omitempty"` // CAP IDs of the cited case
	Type     string  `json:"type,omitempty"`     // e.g., "official"
}

// String implements Stringer.
func (c CAPCitation) String() string {
	return "Citation to " + c.Cite
}

// CAPID returns the first CAP case ID the citation refers to.
func (c CAPCitation) CAPID() (int64, bool) {
	if len(c.CaseIDs) == 0 {
		return 0, false
	}
	return c.CaseIDs[0], true
}

// ReporterCitation is the volume, reporter, and first page of a case in a
// reporter, as returned by CourtListener's cluster endpoint.
type ReporterCitation struct {
	Volume   int    `json:"volume"`
	Reporter string `json:"reporter"`
	Page     string `json:"page"`
}

// String implements Stringer.
func (c ReporterCitation) String() string {
	return fmt.Sprintf("%d %s %s", c.Volume, c.Reporter, c.Page)
}
