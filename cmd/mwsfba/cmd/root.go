package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/solatis/mwsfba/internal/core/config"
	"github.com/solatis/mwsfba/internal/core/db"
	"github.com/solatis/mwsfba/internal/fba"
	"github.com/solatis/mwsfba/internal/ledger"
	"github.com/solatis/mwsfba/internal/logging"
)

// Version of the mwsfba binary.
const Version = "0.1.0"

var (
	configFile string
	envFile    string
	dbURL      string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:          "mwsfba",
	Short:        "Build Amazon MWS Fulfillment query parameters",
	Long:         `mwsfba turns call documents into the flat, indexed query parameters the MWS Fulfillment API expects.`,
	Version:      Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file loaded before configuration")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "ledger database URL (sqlite://path or postgres://...)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// runtime is the configuration and logger shared by every subcommand.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *fba.Catalog
}

// loadRuntime applies flags > environment > config file > defaults.
func loadRuntime(cmd *cobra.Command) (*runtime, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if dbURL != "" {
		cfg.LedgerURL = dbURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	catalog := fba.Default()
	if cfg.Version != catalog.Version() {
		if catalog, err = fba.NewCatalog(cfg.Version); err != nil {
			return nil, err
		}
	}
	return &runtime{cfg: cfg, logger: logger, catalog: catalog}, nil
}

// openLedger connects to the configured ledger and loads its queries.
// Migrations are not applied here; see the migrate command.
func (rt *runtime) openLedger(ctx context.Context) (*ledger.Store, func(), error) {
	if rt.cfg.LedgerURL == "" {
		return nil, nil, fmt.Errorf("no ledger database configured (set --db-url or MWS_LEDGER_DB_URL)")
	}
	conn, err := db.Open(ctx, rt.cfg.LedgerURL)
	if err != nil {
		return nil, nil, err
	}
	queries, err := db.LoadQueries(conn)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to load queries: %w", err)
	}
	return ledger.NewStore(queries, rt.logger), func() { conn.Close() }, nil
}
