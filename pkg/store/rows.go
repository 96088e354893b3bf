package store

import (
	"encoding/json"
	"fmt"

	"github.com/justopinion/justopinion/pkg/types"
)

const quotationColumns = "id, key, decision_id, decision, opinion_type, author, text_id, phrase, selection_json, passage, note, created_at"

// scanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func decodeQuotation(q *types.Quotation, textID, selectionJSON string) error {
	id, err := types.ParseTextID(textID)
	if err != nil {
		return fmt.Errorf("parsing text ID: %w", err)
	}
	q.TextID = id

	if err := json.Unmarshal([]byte(selectionJSON), &q.Selection); err != nil {
		return fmt.Errorf("unmarshaling selection: %w", err)
	}
	return nil
}

func decodeDecision(data string) (*types.Decision, error) {
	var d types.Decision
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("unmarshaling decision: %w", err)
	}
	return &d, nil
}

func decisionName(d *types.Decision) string {
	if d.NameAbbreviation != "" {
		return d.NameAbbreviation
	}
	return d.Name
}

func decisionCite(d *types.Decision) string {
	if len(d.Citations) == 0 {
		return ""
	}
	return d.Citations[0].Cite
}
