package main

import (
	"fmt"

	"github.com/justopinion/justopinion/pkg/client"
	"github.com/spf13/cobra"
)

var (
	crawlDepth    int
	crawlWorkers  int
	crawlFullCase bool
	crawlSave     bool
	crawlFormat   string
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <id|cite>",
	Short: "Download a decision and the decisions it cites",
	Long: `Download a decision from the Caselaw Access Project, then follow its
citations to other cases, breadth first, to the given depth. Each case is
downloaded once; citations the API has no case for are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().IntVar(&crawlDepth, "depth", 0, "Citation levels to follow (default from config, 1)")
	crawlCmd.Flags().IntVar(&crawlWorkers, "workers", 0, "Concurrent downloads (default from config, 4)")
	crawlCmd.Flags().BoolVar(&crawlFullCase, "full-case", false, "Include the full text of opinions")
	crawlCmd.Flags().BoolVar(&crawlSave, "save", false, "Save every downloaded decision to the store")
	crawlCmd.Flags().StringVar(&crawlFormat, "format", "human", "Output format: human, json")
}

type crawlOutput struct {
	Depth    int    `json:"depth"`
	ID       int64  `json:"id"`
	Decision string `json:"decision"`
	Via      string `json:"via,omitempty"`
}

func runCrawl(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	depth := settings.Crawl.Depth
	if cmd.Flags().Changed("depth") {
		depth = crawlDepth
	}
	workers := settings.Crawl.Workers
	if cmd.Flags().Changed("workers") {
		workers = crawlWorkers
	}
	if depth < 0 {
		return fmt.Errorf("--depth must not be negative")
	}

	cache := client.NewResponseCache()
	capClient := newCAPClient(cache)
	root, err := capClient.Read(ctx, args[0], crawlFullCase)
	if err != nil {
		return fmt.Errorf("fetching case: %w", err)
	}

	results, err := client.NewCrawler(capClient, workers, logger).Crawl(ctx, root, depth, crawlFullCase)
	if err != nil {
		return fmt.Errorf("crawling %s: %w", root, err)
	}

	if crawlSave {
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.AddDecision(ctx, root); err != nil {
			return fmt.Errorf("saving decision: %w", err)
		}
		for _, r := range results {
			if err := s.AddDecision(ctx, r.Decision); err != nil {
				return fmt.Errorf("saving decision: %w", err)
			}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d decisions to %s\n", len(results)+1, settings.Store.Path)
	}

	out := make([]crawlOutput, 0, len(results)+1)
	out = append(out, crawlOutput{ID: root.ID, Decision: root.String()})
	for _, r := range results {
		out = append(out, crawlOutput{Depth: r.Depth, ID: r.Decision.ID, Decision: r.Decision.String(), Via: r.Via.Cite})
	}

	switch crawlFormat {
	case "json":
		return writeJSON(cmd.OutOrStdout(), out)
	case "human":
		w := cmd.OutOrStdout()
		for _, o := range out {
			fmt.Fprintf(w, "%d\t%d\t%s\n", o.Depth, o.ID, o.Decision)
		}
		fmt.Fprintf(w, "%d decisions cited within depth %d\n", len(results), depth)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", crawlFormat)
	}
}
