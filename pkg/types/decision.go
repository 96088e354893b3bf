package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrDuplicateOpinion is returned when a Decision already has a matching Opinion.
var ErrDuplicateOpinion = errors.New("decision already has a matching opinion")

// DecisionError reports a failed attempt to assign an Opinion to a Decision.
type DecisionError struct {
	Decision string
	Existing Opinion
}

func (e *DecisionError) Error() string {
	return fmt.Sprintf("decision %s already has an opinion with type %q and author %q",
		e.Decision, e.Existing.Type, e.Existing.Author)
}

// Is reports whether target is ErrDuplicateOpinion.
func (e *DecisionError) Is(target error) bool {
	return target == ErrDuplicateOpinion
}

// ReporterVolume is a group of decisions corresponding to a bound print volume.
type ReporterVolume struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	FullName string `json:"full_name"`
}

// Court is a court that issues legal decisions.
type Court struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	URL              string `json:"url"`
	Slug             string `json:"slug"`
	NameAbbreviation string `json:"name_abbreviation,omitempty"`
}

// Jurisdiction is a government or other entity responsible for a legal system.
type Jurisdiction struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	URL              string `json:"url"`
	Slug             string `json:"slug"`
	Whitelisted      bool   `json:"whitelisted"` // cases readable without restriction
	NameAbbreviation string `json:"name_abbreviation,omitempty"`
}

// CaseData is the content of a Decision, including its Opinions.
type CaseData struct {
	HeadMatter  string    `json:"head_matter,omitempty"`
	Corrections string    `json:"corrections,omitempty"`
	Parties     []string  `json:"parties,omitempty"`
	Attorneys   []string  `json:"attorneys,omitempty"`
	Opinions    []Opinion `json:"opinions,omitempty"`
	Judges      []string  `json:"judges,omitempty"`
}

// CaseBody wraps CaseData in the form used by the CAP API.
type CaseBody struct {
	Data   CaseData `json:"data"`
	Status string   `json:"status,omitempty"`
}

// PageRank is the rank of a Decision in the collection.
type PageRank struct {
	Percentile float64 `json:"percentile"`
	Raw        float64 `json:"raw"`
}

// DecisionAnalysis is data generated by CAP about a Decision.
type DecisionAnalysis struct {
	WordCount     int       `json:"word_count"`
	SHA256        string    `json:"sha256"`
	OCRConfidence *float64  `json:"ocr_confidence,omitempty"`
	CharCount     int       `json:"char_count"`
	PageRank      *PageRank `json:"pagerank,omitempty"`
	Cardinality   int       `json:"cardinality"`
	Simhash       string    `json:"simhash"`
}

// PageNumber is a reporter page number. The CAP API sends page numbers as
// strings, so both "1339" and 1339 decode.
type PageNumber int

// UnmarshalJSON implements json.Unmarshaler.
func (p *PageNumber) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*p = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("parsing page number %q: %w", data, err)
	}
	*p = PageNumber(n)
	return nil
}

// Decision is a court decision resolving a step in litigation, modeled on
// the CAP API's case record.
//
// One record may contain several Opinions. Usually it holds every Opinion
// from one appeal, but a lawsuit with several published appeals is split
// into a record per appeal.
type Decision struct {
	ID               int64             `json:"id,omitempty"`
	DecisionDate     Date              `json:"decision_date"`
	Name             string            `json:"name,omitempty"`              // e.g., "ORACLE AMERICA, INC., Plaintiff-Appellant, v. GOOGLE INC., ..."
	NameAbbreviation string            `json:"name_abbreviation,omitempty"` // e.g., "Oracle America, Inc. v. Google Inc."
	DocketNum        string            `json:"docket_number,omitempty"`
	Citations        []CAPCitation     `json:"citations,omitempty"`
	Parties          []string          `json:"parties,omitempty"`
	Attorneys        []string          `json:"attorneys,omitempty"`
	FirstPage        PageNumber        `json:"first_page,omitempty"`
	LastPage         PageNumber        `json:"last_page,omitempty"`
	Court            *Court            `json:"court,omitempty"`
	CaseBody         *CaseBody         `json:"casebody,omitempty"`
	Jurisdiction     *Jurisdiction     `json:"jurisdiction,omitempty"`
	Volume           *ReporterVolume   `json:"volume,omitempty"`
	CitesTo          []CAPCitation     `json:"cites_to,omitempty"`
	LastUpdated      *time.Time        `json:"last_updated,omitempty"`
	FrontendURL      string            `json:"frontend_url,omitempty"`
	Analysis         *DecisionAnalysis `json:"analysis,omitempty"`
}

// String implements Stringer, e.g. "Oracle America, Inc. v. Google Inc., 750 F.3d 1339 (2014-05-09)".
func (d *Decision) String() string {
	citation := ""
	if len(d.Citations) > 0 {
		citation = d.Citations[0].Cite
	}
	name := d.NameAbbreviation
	if name == "" {
		name = d.Name
	}
	return fmt.Sprintf("%s, %s (%s)", name, citation, d.DecisionDate)
}

// Opinions returns every Opinion published with the Decision.
func (d *Decision) Opinions() []Opinion {
	if d.CaseBody == nil {
		return nil
	}
	return d.CaseBody.Data.Opinions
}

// Majority returns the first majority Opinion, or nil if there is none.
func (d *Decision) Majority() *Opinion {
	return d.FindMatchingOpinion(DefaultOpinionType, "")
}

// FindMatchingOpinion returns the first Opinion with the given type and
// author; an empty argument matches anything. With both arguments empty
// it returns the first Opinion. It returns nil if nothing matches.
func (d *Decision) FindMatchingOpinion(opinionType, author string) *Opinion {
	opinions := d.Opinions()
	for i := range opinions {
		op := &opinions[i]
		if (opinionType == "" || op.Type == opinionType) && (author == "" || op.Author == author) {
			return op
		}
	}
	return nil
}

// AddOpinion appends opinion unless an existing Opinion matches its type
// and author, in which case it returns a *DecisionError.
func (d *Decision) AddOpinion(opinion Opinion) error {
	if existing := d.FindMatchingOpinion(opinion.Type, opinion.Author); existing != nil {
		return &DecisionError{Decision: d.String(), Existing: *existing}
	}
	if d.CaseBody == nil {
		d.CaseBody = &CaseBody{}
	}
	d.CaseBody.Data.Opinions = append(d.CaseBody.Data.Opinions, opinion)
	return nil
}

// DecodeDecision decodes one CAP case record. A list response's first
// result is used if the body is a page of results.
func DecodeDecision(body []byte) (*Decision, error) {
	var page struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding decision: %w", err)
	}
	if page.Results != nil {
		decisions, err := decodeDecisionList(page.Results)
		if err != nil {
			return nil, err
		}
		if len(decisions) == 0 {
			return nil, fmt.Errorf("decoding decision: no results")
		}
		return &decisions[0], nil
	}

	var d Decision
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("decoding decision: %w", err)
	}
	return &d, nil
}

func decodeDecisionList(data []byte) ([]Decision, error) {
	var decisions []Decision
	if err := json.Unmarshal(data, &decisions); err != nil {
		return nil, fmt.Errorf("decoding decisions: %w", err)
	}
	return decisions, nil
}

// DecisionPage is one page of a CAP list response.
type DecisionPage struct {
	Count    int        `json:"count"`
	Next     string     `json:"next"`
	Previous string     `json:"previous"`
	Results  []Decision `json:"results"`
}

// DecodeDecisionPage decodes a CAP list response.
func DecodeDecisionPage(body []byte) (*DecisionPage, error) {
	var page DecisionPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding decision page: %w", err)
	}
	return &page, nil
}
