package main

import (
	"fmt"

	"github.com/justopinion/justopinion/pkg/textpos"
	"github.com/spf13/cobra"
)

var (
	rebaseOld    string
	rebaseNew    string
	rebaseFormat string
)

var rebaseCmd = &cobra.Command{
	Use:   "rebase --old <file> --new <file> <start:end> [start:end...]",
	Short: "Map character ranges onto a revised opinion text",
	Long: `Map character ranges of one revision of an opinion onto another, for
example after a court publishes a corrected opinion. Text inserted inside
a range becomes part of it; ranges whose text was deleted are dropped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRebase,
}

func init() {
	rebaseCmd.Flags().StringVar(&rebaseOld, "old", "", "Text the ranges were taken from")
	rebaseCmd.Flags().StringVar(&rebaseNew, "new", "", "Revised text")
	rebaseCmd.Flags().StringVar(&rebaseFormat, "format", "text", "Output format: text, json")
	rootCmd.AddCommand(rebaseCmd)
}

func runRebase(cmd *cobra.Command, args []string) error {
	if rebaseOld == "" || rebaseNew == "" {
		return fmt.Errorf("--old and --new are required")
	}
	pairs := make([][2]int, 0, len(args))
	for _, arg := range args {
		r, err := parseRange(arg)
		if err != nil {
			return err
		}
		pairs = append(pairs, r)
	}
	set, err := textpos.FromRanges(pairs...)
	if err != nil {
		return err
	}

	oldText, err := readText(rebaseOld, cmd.InOrStdin())
	if err != nil {
		return err
	}
	newText, err := readText(rebaseNew, cmd.InOrStdin())
	if err != nil {
		return err
	}

	rebased, err := textpos.Rebase(set, oldText, newText)
	if err != nil {
		return err
	}
	if dropped := set.Len() - rebased.Len(); dropped > 0 {
		logger.Warn("ranges deleted in revised text", "count", dropped)
	}

	if rebaseFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), rebased)
	}
	if rebaseFormat != "text" {
		return fmt.Errorf("unknown format: %s", rebaseFormat)
	}
	out := cmd.OutOrStdout()
	for _, s := range rebased.Selectors() {
		fmt.Fprintf(out, "%d:%d\n", s.Start, s.End)
	}
	return nil
}
