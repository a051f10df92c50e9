package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/solatis/mwsfba/internal/core/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending ledger migrations",
	RunE:  runMigrate,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ledger migration status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	if rt.cfg.LedgerURL == "" {
		return fmt.Errorf("no ledger database configured (set --db-url or MWS_LEDGER_DB_URL)")
	}
	conn, err := db.Open(ctx, rt.cfg.LedgerURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.MigrateUp(ctx, conn); err != nil {
		return err
	}
	rt.logger.Info("ledger migrations applied", "driver", conn.DriverName())
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	if rt.cfg.LedgerURL == "" {
		return fmt.Errorf("no ledger database configured (set --db-url or MWS_LEDGER_DB_URL)")
	}
	conn, err := db.Open(ctx, rt.cfg.LedgerURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	statuses, err := db.MigrateStatus(ctx, conn)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MIGRATION\tAPPLIED\tAPPLIED AT")
	for _, s := range statuses {
		at := "-"
		if s.AppliedAt != nil {
			at = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\n", s.ID, s.Applied, at)
	}
	return tw.Flush()
}
