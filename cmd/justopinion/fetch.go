package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/justopinion/justopinion/pkg/client"
	"github.com/justopinion/justopinion/pkg/types"
	"github.com/spf13/cobra"
)

const (
	sourceCAP           = "cap"
	sourceCourtListener = "courtlistener"
)

var (
	fetchSource   string
	fetchFullCase bool
	fetchSave     bool
	fetchFormat   string
	fetchColor    string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <id|cite>",
	Short: "Download a decision",
	Long: `Download a decision by ID or citation from the Caselaw Access Project
or CourtListener.

Full opinion text needs --full-case and a CAP API token. CourtListener
always returns opinion text and always needs a token.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchSource, "source", sourceCAP, "API to download from: cap, courtlistener")
	fetchCmd.Flags().BoolVar(&fetchFullCase, "full-case", false, "Include the full text of opinions (CAP only)")
	fetchCmd.Flags().BoolVar(&fetchSave, "save", false, "Save the decision to the store")
	fetchCmd.Flags().StringVar(&fetchFormat, "format", "human", "Output format: human, json")
	fetchCmd.Flags().StringVar(&fetchColor, "color", "auto", "Color output: auto, always, never")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	d, err := fetchDecision(ctx, fetchSource, args[0], fetchFullCase, nil)
	if err != nil {
		return err
	}

	if fetchSave {
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.AddDecision(ctx, d); err != nil {
			return fmt.Errorf("saving decision: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved decision %d to %s\n", d.ID, settings.Store.Path)
	}

	switch fetchFormat {
	case "json":
		return writeJSON(cmd.OutOrStdout(), d)
	case "human":
		printDecision(cmd.OutOrStdout(), newStyles(useColor(fetchColor)), d, terminalWidth())
		return nil
	default:
		return fmt.Errorf("unknown format: %s", fetchFormat)
	}
}

// fetchDecision downloads a decision from source. query is an ID or a
// citation.
func fetchDecision(ctx context.Context, source, query string, fullCase bool, cache *client.ResponseCache) (*types.Decision, error) {
	switch source {
	case sourceCAP:
		d, err := newCAPClient(cache).Read(ctx, query, fullCase)
		if err != nil {
			return nil, fmt.Errorf("fetching case: %w", err)
		}
		return d, nil
	case sourceCourtListener:
		d, err := fetchCourtListener(ctx, newCourtListenerClient(cache), query)
		if err != nil {
			return nil, fmt.Errorf("fetching case: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown source %q (want %s or %s)", source, sourceCAP, sourceCourtListener)
	}
}

// fetchCourtListener resolves a docket ID or a citation to an opinion
// cluster and downloads the cluster's opinions.
func fetchCourtListener(ctx context.Context, c *client.CourtListenerClient, query string) (*types.Decision, error) {
	var cluster *types.OpinionCluster
	if id, err := strconv.ParseInt(strings.TrimSpace(query), 10, 64); err == nil {
		docket, err := c.ReadID(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(docket.OpinionClusters) == 0 {
			return nil, fmt.Errorf("docket %d: %w", id, client.ErrNoResults)
		}
		cluster = &docket.OpinionClusters[0]
	} else {
		resp, err := c.ReadCite(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(resp.Clusters) == 0 {
			return nil, fmt.Errorf("cite %q: %w", query, client.ErrNoResults)
		}
		cluster = &resp.Clusters[0]
	}

	opinions, err := c.ReadClusterOpinions(ctx, cluster)
	if err != nil {
		return nil, err
	}
	return cluster.Decision(opinions), nil
}

func printDecision(out io.Writer, s *styles, d *types.Decision, width int) {
	fmt.Fprintf(out, "%s (%s %s)\n", s.name.Sprint(d.String()), s.heading.Sprint("id"), s.id.Sprint(d.ID))
	if d.Court != nil {
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Court:"), d.Court.Name)
	}
	if d.DocketNum != "" {
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Docket:"), d.DocketNum)
	}
	if len(d.Citations) > 0 {
		cites := make([]string, 0, len(d.Citations))
		for _, c := range d.Citations {
			cites = append(cites, c.Cite)
		}
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Citations:"), strings.Join(cites, "; "))
	}
	if len(d.CitesTo) > 0 {
		fmt.Fprintf(out, "%s %d\n", s.heading.Sprint("Cites to:"), len(d.CitesTo))
	}
	if d.FrontendURL != "" {
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("URL:"), s.metadata.Sprint(d.FrontendURL))
	}

	opinions := d.Opinions()
	if len(opinions) == 0 {
		fmt.Fprintf(out, "%s\n", s.missing.Sprint("No opinion text (try --full-case)"))
		return
	}
	for i, op := range opinions {
		label := op.Type
		if op.Author != "" {
			label += " by " + op.Author
		}
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprintf("Opinion %d/%d:", i+1, len(opinions)), label)
		fmt.Fprintf(out, "  %s\n", truncate(op.Text, width-2, settings.Render.GapMarker))
	}
}
