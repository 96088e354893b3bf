package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	quoteOpinion string
	quoteAuthor  string
	quoteNote    string
	quoteList    bool
	quoteDelete  string
)

var quoteCmd = &cobra.Command{
	Use:   "quote <decision-id> [phrase]",
	Short: "Save a quotation from a stored decision",
	Long: `Locate a phrase in an opinion of a decision saved with "fetch --save"
and save the selection as a quotation. Saving the same selection twice
keeps the first quotation.

With --list, print the quotations saved from the decision instead. With
--delete, remove one of them by quotation ID.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteOpinion, "opinion", "", "Opinion type, e.g. majority, dissent (default: first opinion)")
	quoteCmd.Flags().StringVar(&quoteAuthor, "author", "", "Opinion author")
	quoteCmd.Flags().StringVar(&quoteNote, "note", "", "Note saved with the quotation")
	quoteCmd.Flags().BoolVar(&quoteList, "list", false, "List saved quotations")
	quoteCmd.Flags().StringVar(&quoteDelete, "delete", "", "Delete the quotation with this ID")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid decision ID %q: %w", args[0], err)
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	out := cmd.OutOrStdout()

	if quoteList {
		quotations, err := s.GetQuotations(ctx, id)
		if err != nil {
			return fmt.Errorf("listing quotations: %w", err)
		}
		for _, q := range quotations {
			fmt.Fprintf(out, "%s\t%s\t%s\n", q.ID, q.Selection.String(), q.Passage)
		}
		return nil
	}

	if quoteDelete != "" {
		q, err := s.GetQuotation(ctx, quoteDelete)
		if err != nil {
			return err
		}
		if q.DecisionID != id {
			return fmt.Errorf("quotation %s is from decision %d, not %d", q.ID, q.DecisionID, id)
		}
		if err := s.DeleteQuotation(ctx, q.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted quotation %s\n", q.ID)
		return nil
	}

	if len(args) < 2 {
		return fmt.Errorf("a phrase is required unless --list is given")
	}
	d, err := s.GetDecision(ctx, id)
	if err != nil {
		return err
	}

	core, err := newCore(s)
	if err != nil {
		return err
	}
	defer core.Close()

	q, err := core.Quote(ctx, d, quoteOpinion, quoteAuthor, strings.Join(args[1:], " "), quoteNote)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved quotation %s\n", q.ID)
	fmt.Fprintf(out, "  %s\n", q.Passage)
	fmt.Fprintf(out, "  %s\n", q.Decision)
	return nil
}
