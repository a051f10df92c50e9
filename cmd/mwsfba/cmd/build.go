package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/solatis/mwsfba/internal/calldoc"
	"github.com/solatis/mwsfba/internal/core/api"
	"github.com/solatis/mwsfba/internal/core/dispatch"
)

var buildCmd = &cobra.Command{
	Use:   "build <call-document>",
	Short: "Finalize a call document and print its parameters",
	Long: `Reads a YAML or JSON call document, finalizes it against the catalog and
prints the parameters. With --record the call is written to the ledger.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("output", "o", "text", "output format (text, json, query)")
	buildCmd.Flags().Bool("record", false, "record the call in the ledger")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")
	record, _ := cmd.Flags().GetBool("record")

	switch output {
	case "text", "json", "query":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	doc, err := calldoc.Load(args[0])
	if err != nil {
		return err
	}

	opts := []api.Option{api.WithLogger(rt.logger)}
	if record {
		store, closeLedger, err := rt.openLedger(ctx)
		if err != nil {
			return err
		}
		defer closeLedger()
		opts = append(opts, api.WithInvoker(dispatch.NewDryRun(store, rt.logger)))
	}

	svc, err := api.NewParamsService(rt.cfg, rt.catalog, opts...)
	if err != nil {
		return err
	}

	var res *api.BuildResult
	if record {
		res, err = svc.Submit(ctx, doc)
	} else {
		res, err = svc.Build(ctx, doc)
	}
	if err != nil {
		return err
	}
	return printBuild(cmd.OutOrStdout(), output, res)
}

func printBuild(w io.Writer, output string, res *api.BuildResult) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "query":
		_, err := fmt.Fprintln(w, res.Query)
		return err
	default:
		fmt.Fprintf(w, "# %s %s\n", res.Method, res.URL)
		if res.Recorded {
			fmt.Fprintf(w, "# recorded %s\n", res.RequestID)
		}
		for _, k := range res.Params.Keys() {
			fmt.Fprintf(w, "%s=%s\n", k, res.Params[k])
		}
		return nil
	}
}
