package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/solatis/mwsfba/internal/core/api"
)

var actionsCmd = &cobra.Command{
	Use:   "actions [group]",
	Short: "List catalog actions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runActions,
}

var describeCmd = &cobra.Command{
	Use:   "describe <group> <action>",
	Short: "Show the fields of one action",
	Args:  cobra.ExactArgs(2),
	RunE:  runDescribe,
}

func init() {
	rootCmd.AddCommand(actionsCmd)
	rootCmd.AddCommand(describeCmd)
}

func newService(cmd *cobra.Command) (*api.ParamsService, error) {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return nil, err
	}
	return api.NewParamsService(rt.cfg, rt.catalog, api.WithLogger(rt.logger))
}

func runActions(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	group := ""
	if len(args) == 1 {
		group = args[0]
	}
	actions, err := svc.Actions(group)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tACTION\tPATH")
	for _, a := range actions {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Group, a.Action, a.Path)
	}
	return tw.Flush()
}

func runDescribe(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	d, err := svc.Describe(args[0], args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n%s\n\n", d.Action, d.GroupTitle, d.Path)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tWIRE PATH\tKIND\tLIST\tREQUIRED\tALLOWED")
	for _, f := range d.Fields {
		allowed := "-"
		if len(f.Allowed) > 0 {
			allowed = fmt.Sprint(f.Allowed)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\t%s\n", f.Name, f.WirePath, f.Kind, f.List, f.Required, allowed)
	}
	return tw.Flush()
}
