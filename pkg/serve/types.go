package serve

import (
	"encoding/json"

	"github.com/justopinion/justopinion/pkg/research"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "locate" | "locate_batch" | "render" | "cite" | "close"
	Payload json.RawMessage `json:"payload"`
}

// LocatePayload is the payload for "locate" requests
type LocatePayload = research.LocateItem

// LocateBatchPayload is the payload for "locate_batch" requests
type LocateBatchPayload struct {
	Items []research.LocateItem `json:"items"`
}

// RenderPayload is the payload for "render" requests
type RenderPayload = research.RenderItem

// CitePayload is the payload for "cite" requests
type CitePayload struct {
	Text string `json:"text"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "locate" | "locate_batch" | "render" | "cite" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}
