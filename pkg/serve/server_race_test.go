package serve

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServer_LocateBatch_RaceCondition tests that locate_batch responses are
// sent even when EOF arrives before the main loop processes the pending request.
func TestServer_LocateBatch_RaceCondition(t *testing.T) {
	core := newTestCore(t)

	// Run the test multiple times to trigger the race condition
	for i := range 10 {
		request := `{"type":"locate_batch","payload":{"items":[{"source":"s1","text":"abc def","phrase":"def"},{"source":"s2","text":"abc","phrase":"a"}]}}` + "\n"
		in := strings.NewReader(request)
		out := &strings.Builder{}

		srv := NewServer(core, in, out)
		err := srv.Run(context.Background())
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2, "iteration %d: expected 2 lines (ready + locate_batch response), got %d", i, len(lines))

		var resp Response
		err = json.Unmarshal([]byte(lines[1]), &resp)
		require.NoError(t, err, "iteration %d: failed to unmarshal response", i)

		assert.True(t, resp.Success, "iteration %d: expected success", i)
		assert.Equal(t, "locate_batch", resp.Type, "iteration %d: expected locate_batch type", i)
	}
}
