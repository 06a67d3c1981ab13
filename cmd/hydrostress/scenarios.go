package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/hydrostress/internal/scenario"
)

func newScenariosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := scenario.BuiltInCatalogue()
			if err != nil {
				return err
			}
			all := cat.All()
			if jsonOutput(cmd) {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(all)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDAYS\tDESCRIPTION")
			for _, s := range all {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Name, s.Days(), s.Description)
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(newScenariosShowCmd())
	return cmd
}

func newScenariosShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <scenario>",
		Short: "Print a built-in scenario as YAML",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeScenarioIDs(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := scenario.BuiltInCatalogue()
			if err != nil {
				return err
			}
			s, err := cat.Lookup(args[0])
			if err != nil {
				return err
			}
			data, err := scenario.Marshal([]scenario.Scenario{s})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// completeScenarioIDs offers built-in ids with the given prefix that are not
// already on the command line.
func completeScenarioIDs(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cat, err := scenario.BuiltInCatalogue()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, id := range cat.IDs() {
		name := string(id)
		if strings.HasPrefix(name, toComplete) && !slices.Contains(args, name) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
