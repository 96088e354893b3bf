package main

import (
	"fmt"

	"github.com/justopinion/justopinion/pkg/research"
	"github.com/spf13/cobra"
)

var (
	renderSource  textSource
	renderContext bool
	renderFormat  string
)

var renderCmd = &cobra.Command{
	Use:   "render <start:end> [start:end...]",
	Short: "Render character ranges of opinion text as a quotation",
	Long: `Render one or more half-open character ranges of opinion text as a
single quotation, joining passages with the gap marker. Overlapping and
touching ranges are merged first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	addTextSourceFlags(renderCmd, &renderSource)
	renderCmd.Flags().BoolVar(&renderContext, "context", false, "Mark omitted text before and after the passage")
	renderCmd.Flags().StringVar(&renderFormat, "format", "text", "Output format: text, json")
}

func runRender(cmd *cobra.Command, args []string) error {
	ranges := make([][2]int, 0, len(args))
	for _, arg := range args {
		r, err := parseRange(arg)
		if err != nil {
			return err
		}
		ranges = append(ranges, r)
	}

	text, _, err := renderSource.read(commandContext(cmd), cmd.InOrStdin())
	if err != nil {
		return err
	}

	core, err := newCore(nil)
	if err != nil {
		return err
	}
	defer core.Close()

	result, err := core.Render(research.RenderItem{Text: text, Ranges: ranges, ContextMarkers: renderContext})
	if err != nil {
		return err
	}

	switch renderFormat {
	case "json":
		return writeJSON(cmd.OutOrStdout(), result)
	case "text":
		fmt.Fprintln(cmd.OutOrStdout(), result.Passage)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", renderFormat)
	}
}
