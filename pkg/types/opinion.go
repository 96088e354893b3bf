package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/justopinion/justopinion/pkg/textpos"
)

// DefaultOpinionType is the type assumed for opinions that don't state one.
const DefaultOpinionType = "majority"

// Opinion is a document that resolves legal issues in a case.
//
// Usually only an opinion with Type "majority" creates holdings that bind
// other courts.
type Opinion struct {
	Type   string `json:"type"`   // e.g., "majority", "dissenting", "concurring"
	Author string `json:"author"` // judge who wrote the opinion, if identified
	Text   string `json:"text"`
}

// NewOpinion returns an Opinion with a normalized author name.
func NewOpinion(opinionType, author, text string) Opinion {
	return Opinion{Type: opinionType, Author: NormalizeAuthor(author), Text: text}
}

// NormalizeAuthor removes stray punctuation from a judge's name as printed
// in a reporter, e.g. "STAHL, Circuit Judge." becomes "STAHL, Circuit Judge".
func NormalizeAuthor(author string) string {
	author = strings.ReplaceAll(author, "Judge.", "Judge")
	author = strings.ReplaceAll(author, "Justice.", "Justice")
	return strings.Trim(author, ", -:;")
}

// UnmarshalJSON implements json.Unmarshaler, filling in the default type
// and normalizing the author name.
func (o *Opinion) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   *string `json:"type"`
		Author *string `json:"author"`
		Text   string  `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Type = DefaultOpinionType
	if raw.Type != nil {
		o.Type = *raw.Type
	}
	o.Author = ""
	if raw.Author != nil {
		o.Author = NormalizeAuthor(*raw.Author)
	}
	o.Text = raw.Text
	return nil
}

// String implements Stringer, e.g. "majority opinion by STAHL, Circuit Judge".
func (o Opinion) String() string {
	result := "opinion"
	if o.Type != "" {
		result = o.Type + " opinion"
	}
	if o.Author != "" {
		result += " by " + o.Author
	}
	return result
}

// GoString implements fmt.GoStringer.
func (o Opinion) GoString() string {
	return fmt.Sprintf("Opinion(type=%q, author=%q)", o.Type, o.Author)
}

// LocateText returns the positions of phrase in the opinion text.
// Passages separated by textpos.DefaultGapMarker are found in order.
func (o Opinion) LocateText(phrase string) (textpos.PositionSet, error) {
	return textpos.Locate(o.Text, phrase)
}

// LocateQuotes returns the union of the positions of each quote selector.
func (o Opinion) LocateQuotes(quotes ...textpos.QuoteSelector) (textpos.PositionSet, error) {
	var result textpos.PositionSet
	for _, q := range quotes {
		sel, err := q.Locate(o.Text)
		if err != nil {
			return textpos.PositionSet{}, err
		}
		if result, err = result.Add(sel); err != nil {
			return textpos.PositionSet{}, err
		}
	}
	return result, nil
}

// SelectText renders the passages of the opinion selected by set. Omitted
// text before, between, and after the passages is marked with the gap
// marker unless opts say otherwise.
func (o Opinion) SelectText(set textpos.PositionSet, opts ...textpos.RenderOption) (string, error) {
	opts = append([]textpos.RenderOption{textpos.WithContextMarkers()}, opts...)
	return set.Render(o.Text, opts...)
}
