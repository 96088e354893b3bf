package justopinion

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const section102b = "In no case does copyright protection extend to any idea, procedure, process, system, method of operation, concept, principle, or discovery."

func TestLocate(t *testing.T) {
	set, err := Locate(section102b, "procedure…method of operation")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{57, 66}, {85, 104}}, set.Ranges())

	passage, err := set.Render(section102b)
	require.NoError(t, err)
	assert.Equal(t, "procedure…method of operation", passage)

	_, err = Locate(section102b, "fair use")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewSelector(t *testing.T) {
	_, err := NewSelector(10, 5)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.ErrorIs(t, err, ErrValidation)

	set, err := FromRanges([2]int{126, 138})
	require.NoError(t, err)
	_, err = set.Render("short")
	assert.ErrorIs(t, err, ErrRange)
}

func TestResearcher_Locate(t *testing.T) {
	r, err := New(WithGapMarker(" ... "), WithContextMarkers())
	require.NoError(t, err)
	defer r.Close()

	set, passage, err := r.Locate(section102b, "idea ... concept")
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, " ... idea ... concept ... ", passage)
}

func TestResearcher_ReadDecisionAndQuote(t *testing.T) {
	// Arrange
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprintf(w, `{
			"id": 4237774,
			"name_abbreviation": "Oracle America, Inc. v. Google Inc.",
			"decision_date": "2014-05-09",
			"citations": [{"cite": "750 F.3d 1339"}],
			"casebody": {"data": {"opinions": [{"type": "majority", "author": "O'Malley", "text": %q}]}}
		}`, section102b)
	}))
	defer server.Close()

	r, err := New(
		WithToken("abc123"),
		WithEndpoint(server.URL+"/v1/cases/"),
		WithStore(filepath.Join(t.TempDir(), "research.db")),
	)
	require.NoError(t, err)
	defer r.Close()
	ctx := context.Background()

	// Act
	d, err := r.ReadDecision(ctx, "4237774", true)
	require.NoError(t, err)
	q, err := r.Quote(ctx, d, "method of operation…or discovery", "merger")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "Token abc123", gotAuth)
	assert.Equal(t, "…method of operation…or discovery…", q.Passage)
	saved, err := r.Quotations(ctx, 4237774)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, q.ID, saved[0].ID)
	assert.Equal(t, "merger", saved[0].Note)
}
