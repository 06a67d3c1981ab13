package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/hydrostress/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect hydrostress configuration",
		Long: `Print or check stress engine configuration.

Examples:
  hydrostress config defaults > hydrostress.yaml   # Start a config file
  hydrostress config show --config hydrostress.yaml
  hydrostress config validate hydrostress.yaml`,
	}
	cmd.AddCommand(
		newConfigDefaultsCmd(),
		newConfigShowCmd(a),
		newConfigValidateCmd(),
	)
	return cmd
}

func newConfigDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeConfig(cmd, config.Default())
		},
	}
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after files and environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			return writeConfig(cmd, cfg)
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadFile(args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return err
		},
	}
}

func writeConfig(cmd *cobra.Command, cfg config.Config) error {
	data, err := config.MarshalYAML(cfg)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
