package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solatis/mwsfba/internal/core/api"
	"github.com/solatis/mwsfba/internal/core/config"
	"github.com/solatis/mwsfba/internal/core/dispatch"
	"github.com/solatis/mwsfba/internal/core/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP preview server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "127.0.0.1", "HTTP server host")
	serveCmd.Flags().Int("port", 8080, "HTTP server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		rt.cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		rt.cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if err := config.Validate(rt.cfg); err != nil {
		return err
	}

	opts := []api.Option{api.WithLogger(rt.logger)}
	if rt.cfg.LedgerURL != "" {
		store, closeLedger, err := rt.openLedger(ctx)
		if err != nil {
			return err
		}
		defer closeLedger()
		opts = append(opts, api.WithLedger(store), api.WithInvoker(dispatch.NewDryRun(store, rt.logger)))
	}

	service, err := api.NewParamsService(rt.cfg, rt.catalog, opts...)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	httpServer, err := server.NewHTTPServer(rt.cfg, service, rt.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	rt.logger.Info("starting mwsfba preview server",
		"version", Version,
		"addr", rt.cfg.Addr(),
		"api_version", rt.catalog.Version(),
		"ledger", rt.cfg.LedgerURL != "",
	)
	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		rt.logger.Info("shutting down gracefully")
		return httpServer.Shutdown(ctx)
	}
}
