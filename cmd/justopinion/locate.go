package main

import (
	"fmt"
	"strings"

	"github.com/justopinion/justopinion/pkg/research"
	"github.com/justopinion/justopinion/pkg/textpos"
	"github.com/spf13/cobra"
)

var (
	locateSource  textSource
	locateContext bool
	locateAlso    []string
	locateFormat  string
	locateColor   string
)

var locateCmd = &cobra.Command{
	Use:   "locate <phrase>",
	Short: "Find a quoted phrase in opinion text",
	Long: `Find the position of a quoted phrase in opinion text and print the
selection with the passage it renders to.

Passages of a quotation are separated by the gap marker ("…" unless
configured otherwise) and must occur in order. The text is read from
--file, from an opinion saved with "fetch --save" (--decision), or from
stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLocate,
}

func init() {
	addTextSourceFlags(locateCmd, &locateSource)
	locateCmd.Flags().StringArrayVar(&locateAlso, "also", nil, "Another phrase to select, found anywhere in the text (repeatable)")
	locateCmd.Flags().BoolVar(&locateContext, "context", false, "Mark omitted text before and after the passage")
	locateCmd.Flags().StringVar(&locateFormat, "format", "human", "Output format: human, json")
	locateCmd.Flags().StringVar(&locateColor, "color", "auto", "Color output: auto, always, never")
}

func addTextSourceFlags(cmd *cobra.Command, src *textSource) {
	cmd.Flags().StringVarP(&src.file, "file", "f", "", "Read opinion text from a file (- for stdin)")
	cmd.Flags().Int64Var(&src.decisionID, "decision", 0, "Read opinion text from a stored decision")
	cmd.Flags().StringVar(&src.opinionType, "opinion", "", "Opinion type within the decision, e.g. majority, dissent")
	cmd.Flags().StringVar(&src.author, "author", "", "Opinion author within the decision")
}

func runLocate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	text, label, err := locateSource.read(ctx, cmd.InOrStdin())
	if err != nil {
		return err
	}

	core, err := newCore(nil)
	if err != nil {
		return err
	}
	defer core.Close()

	result, err := core.Locate(research.LocateItem{Source: label, Text: text, Phrase: strings.Join(args, " "), Also: locateAlso})
	if err != nil {
		return err
	}
	if locateContext {
		rendered, err := core.Render(research.RenderItem{Text: text, Ranges: result.Selection.Ranges(), ContextMarkers: true})
		if err != nil {
			return err
		}
		result.Passage = rendered.Passage
	}

	switch locateFormat {
	case "json":
		return writeJSON(cmd.OutOrStdout(), result)
	case "human":
		s := newStyles(useColor(locateColor))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Source:"), result.Source)
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Selection:"), s.metadata.Sprint(result.Selection.String()))
		for _, sel := range result.Selection.Selectors() {
			line, col := textpos.LineColumn(text, sel.Start)
			fmt.Fprintf(out, "%s line %d, column %d\n", s.heading.Sprintf("[%d, %d):", sel.Start, sel.End), line, col)
		}
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Passage:"), s.passage.Sprint(result.Passage))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", locateFormat)
	}
}
