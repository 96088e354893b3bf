package types

import (
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/justopinion/justopinion/pkg/textpos"
)

// Quotation is a selection of passages from one opinion, saved for later
// citation or export.
type Quotation struct {
	ID          string              `json:"id"`           // random UUID assigned by the store
	Key         string              `json:"key"`          // SHA-1(text_id + '\0' + selection) for deduplication
	DecisionID  int64               `json:"decision_id"`  // CAP or CourtListener ID of the decision
	Decision    string              `json:"decision"`     // e.g., "Oracle America, Inc. v. Google Inc., 750 F.3d 1339 (2014-05-09)"
	OpinionType string              `json:"opinion_type"` // e.g., "majority"
	Author      string              `json:"author,omitempty"`
	TextID      TextID              `json:"text_id"`
	Phrase      string              `json:"phrase,omitempty"` // the phrase the selection was located from, if any
	Selection   textpos.PositionSet `json:"selection"`
	Passage     string              `json:"passage"` // rendered selection
	Note        string              `json:"note,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewQuotation builds a Quotation of the passages of opinion selected by
// set. The passage is rendered with context markers.
func NewQuotation(decision *Decision, opinion Opinion, set textpos.PositionSet, opts ...textpos.RenderOption) (*Quotation, error) {
	passage, err := opinion.SelectText(set, opts...)
	if err != nil {
		return nil, err
	}
	q := &Quotation{
		OpinionType: opinion.Type,
		Author:      opinion.Author,
		TextID:      ComputeTextID(opinion.Text),
		Selection:   set,
		Passage:     passage,
	}
	if decision != nil {
		q.DecisionID = decision.ID
		q.Decision = decision.String()
	}
	q.Key = ComputeQuotationKey(q.TextID, set)
	return q, nil
}

// ComputeQuotationKey computes a content-based quotation key.
// Format: SHA-1(text_id + '\0' + selection)
func ComputeQuotationKey(textID TextID, set textpos.PositionSet) string {
	h := sha1.New()

	h.Write(textID[:])
	h.Write([]byte{0})

	h.Write([]byte(set.String()))

	return hex.EncodeToString(h.Sum(nil))
}
