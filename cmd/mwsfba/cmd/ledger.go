package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/solatis/mwsfba/internal/types"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect recorded calls",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded calls, newest first",
	Args:  cobra.NoArgs,
	RunE:  runLedgerList,
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show <request-id>",
	Short: "Print one recorded call as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerShow,
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerListCmd, ledgerShowCmd)
	ledgerListCmd.Flags().String("group", "", "filter by group")
	ledgerListCmd.Flags().String("action", "", "filter by action")
	ledgerListCmd.Flags().Int("limit", 50, "maximum entries (capped at 500)")
}

func runLedgerList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	group, _ := cmd.Flags().GetString("group")
	action, _ := cmd.Flags().GetString("action")
	limit, _ := cmd.Flags().GetInt("limit")

	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	store, closeLedger, err := rt.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeLedger()

	entries, err := store.List(ctx, group, action, limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REQUEST ID\tCREATED\tGROUP\tACTION\tPARAMS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", e.RequestID, e.CreatedAt.Format(time.RFC3339), e.Group, e.Action, len(e.Params))
	}
	return tw.Flush()
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := types.ParseRequestID(args[0])
	if err != nil {
		return fmt.Errorf("invalid request id %q: %w", args[0], err)
	}

	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	store, closeLedger, err := rt.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeLedger()

	e, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
