package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 100

// styles holds color formatters for human output
type styles struct {
	heading  *color.Color
	id       *color.Color
	name     *color.Color
	passage  *color.Color
	metadata *color.Color
	missing  *color.Color
}

// newStyles creates color formatters
// enabled=false respects --color=never and NO_COLOR
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:  color.New(color.Bold),
		id:       color.New(color.FgHiGreen),
		name:     color.New(color.Bold, color.FgHiBlue),
		passage:  color.New(color.FgYellow),
		metadata: color.New(color.FgHiBlue),
		missing:  color.New(color.FgRed),
	}

	if !enabled {
		for _, c := range []*color.Color{s.heading, s.id, s.name, s.passage, s.metadata, s.missing} {
			c.DisableColor()
		}
	}
	return s
}

// useColor decides whether to color output for the --color mode.
func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
	}
}

// terminalWidth returns the width of stdout, or defaultWidth.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// truncate shortens s to at most width display cells, ending with the
// gap marker if anything was cut. Newlines are folded to spaces.
func truncate(s string, width int, marker string) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, marker)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
