package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justopinion/justopinion/pkg/research"
	"github.com/justopinion/justopinion/pkg/serve"
	"github.com/spf13/cobra"
)

var serveHTTP string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming or HTTP server",
	Long: `Run justopinion as a long-lived server for editor and browser
integrations.

By default requests are read from stdin and responses written to stdout,
one JSON object per line, until stdin closes or SIGTERM is received.
With --http the same operations are served as a JSON API, along with the
quotations saved in the store.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTP, "http", "", "Serve HTTP on this address, e.g. :8080")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	if serveHTTP == "" {
		core, err := newCore(nil)
		if err != nil {
			return err
		}
		defer core.Close()

		srv := serve.NewServer(core, cmd.InOrStdin(), cmd.OutOrStdout())
		return srv.Run(ctx)
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	core, err := newCore(s)
	if err != nil {
		return err
	}
	defer core.Close()
	return serveAPI(ctx, core, serveHTTP)
}

// serveAPI serves the HTTP API on addr until ctx is canceled.
func serveAPI(ctx context.Context, core *research.Core, addr string) error {
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           serve.NewHandler(core, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("serving HTTP", "addr", addr)
		errChan <- server.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
