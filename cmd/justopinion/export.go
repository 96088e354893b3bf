package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/justopinion/justopinion/pkg/annotation"
	"github.com/justopinion/justopinion/pkg/store"
	"github.com/justopinion/justopinion/pkg/types"
	"github.com/spf13/cobra"
)

var (
	exportDecision int64
	exportOutput   string
	exportLabel    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved quotations as Web Annotations",
	Long: `Export saved quotations as a W3C Web Annotation collection in JSON-LD.

Each quotation becomes an annotation with a TextPositionSelector per
passage. When the decision is in the store with the opinion text the
quotation was taken from, each passage also gets a TextQuoteSelector.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().Int64Var(&exportDecision, "decision", 0, "Only export quotations from this decision")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "Output file (- for stdout)")
	exportCmd.Flags().StringVar(&exportLabel, "label", "", "Label for the annotation collection")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	var quotations []*types.Quotation
	if exportDecision != 0 {
		quotations, err = s.GetQuotations(ctx, exportDecision)
	} else {
		quotations, err = s.GetAllQuotations(ctx)
	}
	if err != nil {
		return fmt.Errorf("retrieving quotations: %w", err)
	}

	collection, err := buildCollection(ctx, s, quotations, exportLabel)
	if err != nil {
		return err
	}
	data, err := collection.ToJSON()
	if err != nil {
		return fmt.Errorf("encoding annotations: %w", err)
	}
	data = append(data, '\n')

	if exportOutput == "-" || exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d quotations to %s\n", collection.Total, exportOutput)
	return nil
}

// buildCollection converts quotations to annotations, looking up each
// decision once for its URL and opinion text.
func buildCollection(ctx context.Context, s store.Store, quotations []*types.Quotation, label string) (*annotation.Collection, error) {
	collection := annotation.NewCollection(label)
	decisions := make(map[int64]*types.Decision)

	for _, q := range quotations {
		d, ok := decisions[q.DecisionID]
		if !ok {
			var err error
			d, err = s.GetDecision(ctx, q.DecisionID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			decisions[q.DecisionID] = d
		}

		source, text := "", ""
		if d != nil {
			source = d.FrontendURL
			if op := d.FindMatchingOpinion(q.OpinionType, q.Author); op != nil && types.ComputeTextID(op.Text) == q.TextID {
				text = op.Text
			} else {
				logger.Warn("opinion text changed since quotation was saved", "quotation", q.ID, "decision", q.DecisionID)
			}
		}
		if err := collection.AddQuotation(q, source, text); err != nil {
			return nil, fmt.Errorf("exporting quotation %s: %w", q.ID, err)
		}
	}
	return collection, nil
}
