package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/justopinion/justopinion/pkg/client"
	"github.com/justopinion/justopinion/pkg/config"
	"github.com/justopinion/justopinion/pkg/research"
	"github.com/justopinion/justopinion/pkg/store"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string
	envFile    string
	storePath  string
	gapMarker  string
)

// settings and logger are filled in before any command runs.
var (
	settings = config.Defaults()
	logger   = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "justopinion",
	Short: "Download judicial opinions and quote from them",
	Long: `justopinion downloads judicial decisions from the Caselaw Access Project
and CourtListener, locates quoted passages in opinion text, and saves
quotations to a research database for later export.`,
	SilenceUsage:      true,
	PersistentPreRunE: initSettings,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file read for unset variables")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Research database: file path, :memory: or postgres:// URL")
	rootCmd.PersistentFlags().StringVar(&gapMarker, "gap-marker", "", "Marker separating passages of a quotation")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(citesCmd)
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(mergeCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func initSettings(cmd *cobra.Command, args []string) error {
	logger = newLogger(cmd.ErrOrStderr(), verbose, quiet)

	var flags config.Config
	if cmd.Flags().Changed("store") {
		flags.Store.Path = &storePath
	}
	if cmd.Flags().Changed("gap-marker") {
		flags.Render.GapMarker = &gapMarker
	}

	s, path, err := config.Resolve(config.Sources{
		ConfigPath: configPath,
		DotEnvPath: envFile,
		Flags:      flags,
	})
	if err != nil {
		return err
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	settings = s
	return nil
}

// newLogger writes text logs to w. Verbose wins over quiet.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func openStore(ctx context.Context) (store.Store, error) {
	s, err := store.New(ctx, store.Config{Path: settings.Store.Path})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return s, nil
}

func newCore(s store.Store) (*research.Core, error) {
	return research.NewCore(research.Config{
		Render: settings.Render,
		Store:  s,
		Logger: logger,
	})
}

func newCAPClient(cache *client.ResponseCache) *client.CAPClient {
	return client.NewCAPClient(settings.CAP.Token,
		client.WithEndpoint(settings.CAP.Endpoint),
		client.WithLogger(logger),
		client.WithCache(cache),
	)
}

func newCourtListenerClient(cache *client.ResponseCache) *client.CourtListenerClient {
	return client.NewCourtListenerClient(settings.CourtListener.Token,
		client.WithEndpoint(settings.CourtListener.Endpoint),
		client.WithLogger(logger),
		client.WithCache(cache),
	)
}

// commandContext returns the command's context, which is nil when RunE is
// called without Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
