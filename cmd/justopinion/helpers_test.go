package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justopinion/justopinion/pkg/config"
	"github.com/justopinion/justopinion/pkg/store"
	"github.com/justopinion/justopinion/pkg/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const section102b = "In no case does copyright protection extend to any idea, procedure, process, system, method of operation, concept, principle, or discovery."

// useTestSettings replaces the resolved settings with defaults and a
// SQLite store in a temp dir, restoring them when the test ends.
func useTestSettings(t *testing.T) {
	t.Helper()
	old := settings
	settings = config.Defaults()
	settings.Store.Path = filepath.Join(t.TempDir(), "research.db")
	t.Cleanup(func() { settings = old })
}

// setFlag sets a command flag variable for one test.
func setFlag[T any](t *testing.T, target *T, value T) {
	t.Helper()
	old := *target
	*target = value
	t.Cleanup(func() { *target = old })
}

// runCommand calls run the way cobra would, capturing stdout and stderr.
func runCommand(t *testing.T, run func(*cobra.Command, []string) error, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = run(cmd, args)
	return out.String(), errOut.String(), err
}

func testDecision() *types.Decision {
	return &types.Decision{
		ID:               4237774,
		NameAbbreviation: "Oracle America, Inc. v. Google Inc.",
		DecisionDate:     types.NewDate(2014, 5, 9),
		Citations:        []types.CAPCitation{{Cite: "750 F.3d 1339"}},
		FrontendURL:      "https://cite.case.law/f3d/750/1339/",
		CaseBody: &types.CaseBody{Data: types.CaseData{Opinions: []types.Opinion{
			types.NewOpinion("majority", "O'Malley", section102b),
		}}},
	}
}

// saveDecision writes d to the test store.
func saveDecision(t *testing.T, d *types.Decision) {
	t.Helper()
	ctx := context.Background()
	s, err := store.New(ctx, store.Config{Path: settings.Store.Path})
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.AddDecision(ctx, d))
}
