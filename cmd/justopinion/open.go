package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/justopinion/justopinion/pkg/store"
	"github.com/justopinion/justopinion/pkg/types"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	openSource    string
	openPrintOnly bool
)

var openCmd = &cobra.Command{
	Use:   "open <id|cite>",
	Short: "Open a decision's web page in a browser",
	Long: `Open the web page of a decision. A numeric ID saved in the store is
opened without contacting the API; anything else is downloaded first.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

// openURL is replaced in tests.
var openURL = browser.OpenURL

func init() {
	openCmd.Flags().StringVar(&openSource, "source", sourceCAP, "API to download from: cap, courtlistener")
	openCmd.Flags().BoolVar(&openPrintOnly, "print", false, "Print the URL instead of opening it")
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	var d *types.Decision
	if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		d, err = s.GetDecision(ctx, id)
		s.Close()
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	if d == nil {
		var err error
		d, err = fetchDecision(ctx, openSource, args[0], false, nil)
		if err != nil {
			return err
		}
	}

	if d.FrontendURL == "" {
		return fmt.Errorf("%s has no web page", d)
	}
	if openPrintOnly {
		fmt.Fprintln(cmd.OutOrStdout(), d.FrontendURL)
		return nil
	}
	logger.Debug("opening browser", "url", d.FrontendURL)
	return openURL(d.FrontendURL)
}
