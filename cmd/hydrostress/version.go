package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput(cmd) {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(a.info)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hydrostress %s (%s) %s\n", a.info.Version, a.info.Commit, a.info.Date)
			return err
		},
	}
}
