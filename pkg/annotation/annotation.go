// Package annotation exports quotations as W3C Web Annotations
// (https://www.w3.org/TR/annotation-model/), so that they can be loaded by
// annotation tools that understand text position and quote selectors.
package annotation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/justopinion/justopinion/pkg/textpos"
	"github.com/justopinion/justopinion/pkg/types"
)

// Web Annotation JSON-LD constants
const (
	Context       = "http://www.w3.org/ns/anno.jsonld"
	GeneratorName = "justopinion"

	// QuoteContext is how many characters of surrounding text a
	// TextQuoteSelector carries as prefix and suffix.
	QuoteContext = 32
)

// Collection is the top-level AnnotationCollection
type Collection struct {
	Context string `json:"@context"`
	Type    string `json:"type"`
	Label   string `json:"label,omitempty"`
	Total   int    `json:"total"`
	First   Page   `json:"first"`
}

// Page holds the annotations of a collection
type Page struct {
	Type  string       `json:"type"`
	Items []Annotation `json:"items"`
}

// Annotation represents one saved quotation
type Annotation struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Motivation string   `json:"motivation"`
	Created    string   `json:"created,omitempty"`
	Generator  *Agent   `json:"generator,omitempty"`
	Body       []Body   `json:"body,omitempty"`
	Target     []Target `json:"target"`
}

// Agent identifies the software that produced an annotation
type Agent struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Body is a textual body attached to an annotation
type Body struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	Purpose string `json:"purpose,omitempty"`
	Format  string `json:"format,omitempty"`
}

// Target is one selected passage of the source text
type Target struct {
	Type     string     `json:"type"`
	Source   string     `json:"source"`
	Selector []Selector `json:"selector"`
}

// Selector is a TextPositionSelector or a TextQuoteSelector
type Selector struct {
	Type   string `json:"type"`
	Start  *int   `json:"start,omitempty"`
	End    *int   `json:"end,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Exact  string `json:"exact,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

// NewCollection creates an empty AnnotationCollection
func NewCollection(label string) *Collection {
	return &Collection{
		Context: Context,
		Type:    "AnnotationCollection",
		Label:   label,
		First: Page{
			Type:  "AnnotationPage",
			Items: []Annotation{},
		},
	}
}

// AddQuotation adds q to the collection. The source identifies the opinion
// text; an empty source falls back to a URN naming the text by its ID. If
// text is the opinion text the quotation was taken from, each passage also
// gets a TextQuoteSelector.
func (c *Collection) AddQuotation(q *types.Quotation, source, text string) error {
	a, err := NewAnnotation(q, source, text)
	if err != nil {
		return err
	}
	c.First.Items = append(c.First.Items, *a)
	c.Total = len(c.First.Items)
	return nil
}

// NewAnnotation converts a quotation to an Annotation.
func NewAnnotation(q *types.Quotation, source, text string) (*Annotation, error) {
	if source == "" {
		source = "urn:sha1:" + q.TextID.Hex()
	}
	if text != "" {
		if id := types.ComputeTextID(text); id != q.TextID {
			return nil, fmt.Errorf("quotation %s was taken from text %s, not %s", q.ID, q.TextID, id)
		}
	}

	a := &Annotation{
		ID:         formatID(q.ID),
		Type:       "Annotation",
		Motivation: "highlighting",
		Generator:  &Agent{Type: "Software", Name: GeneratorName},
		Body: []Body{{
			Type:    "TextualBody",
			Value:   q.Passage,
			Purpose: "describing",
			Format:  "text/plain",
		}},
	}
	if !q.CreatedAt.IsZero() {
		a.Created = q.CreatedAt.UTC().Format(time.RFC3339)
	}
	if q.Note != "" {
		a.Motivation = "commenting"
		a.Body = append(a.Body, Body{Type: "TextualBody", Value: q.Note, Purpose: "commenting", Format: "text/plain"})
	}
	if q.Decision != "" {
		a.Body = append(a.Body, Body{Type: "TextualBody", Value: q.Decision, Purpose: "identifying"})
	}

	for _, s := range q.Selection.Selectors() {
		target := Target{
			Type:     "SpecificResource",
			Source:   source,
			Selector: []Selector{positionSelector(s)},
		}
		if text != "" {
			quote, err := textpos.Quote(text, s, QuoteContext)
			if err != nil {
				return nil, fmt.Errorf("quoting %s: %w", s, err)
			}
			target.Selector = append(target.Selector, Selector{
				Type:   "TextQuoteSelector",
				Prefix: quote.Prefix,
				Exact:  quote.Exact,
				Suffix: quote.Suffix,
			})
		}
		a.Target = append(a.Target, target)
	}
	return a, nil
}

// Selection converts the TextPositionSelectors of the annotation back into
// a PositionSet. Targets without one are skipped.
func (a *Annotation) Selection() (textpos.PositionSet, error) {
	var pairs [][2]int
	for _, t := range a.Target {
		for _, s := range t.Selector {
			if s.Type != "TextPositionSelector" || s.Start == nil || s.End == nil {
				continue
			}
			pairs = append(pairs, [2]int{*s.Start, *s.End})
		}
	}
	return textpos.FromRanges(pairs...)
}

// ToJSON serializes the collection to JSON-LD bytes
func (c *Collection) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

func positionSelector(s textpos.Selector) Selector {
	start, end := s.AsRange()
	return Selector{Type: "TextPositionSelector", Start: &start, End: &end}
}

// formatID converts a quotation ID to an IRI
// UUIDs get a urn:uuid: prefix, IRIs stay as-is
func formatID(id string) string {
	if strings.Contains(id, ":") {
		return id
	}
	return "urn:uuid:" + id
}
