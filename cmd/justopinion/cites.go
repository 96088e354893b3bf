package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	citesFormat string
	citesColor  string
)

var citesCmd = &cobra.Command{
	Use:   "cites [file]",
	Short: "List the case citations in a text",
	Long: `List the case citations and short-form citations ("Id.", "supra") in a
text, with their character offsets. Reads stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCites,
}

func init() {
	citesCmd.Flags().StringVar(&citesFormat, "format", "human", "Output format: human, json")
	citesCmd.Flags().StringVar(&citesColor, "color", "auto", "Color output: auto, always, never")
}

func runCites(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	text, err := readText(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	core, err := newCore(nil)
	if err != nil {
		return err
	}
	defer core.Close()

	result, err := core.Cite(text)
	if err != nil {
		return err
	}

	if citesFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	if citesFormat != "human" {
		return fmt.Errorf("unknown format: %s", citesFormat)
	}

	s := newStyles(useColor(citesColor))
	out := cmd.OutOrStdout()
	for _, c := range result.Citations {
		fmt.Fprintf(out, "%s %s", s.name.Sprint(c.Cite), s.metadata.Sprintf("[%d, %d)", c.Span.Start, c.Span.End))
		if c.Pin != "" {
			fmt.Fprintf(out, " %s %s", s.heading.Sprint("at"), c.Pin)
		}
		if c.Matched != c.Cite {
			fmt.Fprintf(out, " (written %q)", c.Matched)
		}
		fmt.Fprintln(out)
	}
	for _, sf := range result.ShortForms {
		fmt.Fprintf(out, "%s %s %s\n", s.heading.Sprint(sf.Type), sf.Matched, s.metadata.Sprintf("[%d, %d)", sf.Span.Start, sf.Span.End))
	}
	fmt.Fprintf(out, "%d citations, %d short forms\n", len(result.Citations), len(result.ShortForms))
	return nil
}
