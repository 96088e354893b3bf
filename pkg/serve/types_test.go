package serve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_LocateUnmarshal(t *testing.T) {
	input := `{"type":"locate","payload":{"text":"In no case…","phrase":"no case","source":"test"}}`

	var req Request
	err := json.Unmarshal([]byte(input), &req)
	require.NoError(t, err)

	assert.Equal(t, "locate", req.Type)

	var payload LocatePayload
	err = json.Unmarshal(req.Payload, &payload)
	require.NoError(t, err)

	assert.Equal(t, "no case", payload.Phrase)
	assert.Equal(t, "test", payload.Source)
}

func TestRequest_RenderUnmarshal(t *testing.T) {
	input := `{"type":"render","payload":{"text":"abc","ranges":[[0,1],[2,3]]}}`

	var req Request
	require.NoError(t, json.Unmarshal([]byte(input), &req))

	var payload RenderPayload
	require.NoError(t, json.Unmarshal(req.Payload, &payload))
	assert.Equal(t, [][2]int{{0, 1}, {2, 3}}, payload.Ranges)
	assert.False(t, payload.ContextMarkers)
}

func TestResponse_Marshal(t *testing.T) {
	resp := Response{
		Success: true,
		Type:    "ready",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"success":true`)
	assert.Contains(t, string(data), `"type":"ready"`)
	assert.NotContains(t, string(data), `"error"`)
}
