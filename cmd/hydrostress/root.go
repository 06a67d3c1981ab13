package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/logging"
)

type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// app carries state shared by every subcommand.
type app struct {
	info    buildInfo
	v       *viper.Viper
	cfgFile string
}

func newRootCmd(info buildInfo) *cobra.Command {
	a := &app{info: info, v: viper.New()}

	root := &cobra.Command{
		Use:   "hydrostress",
		Short: "Environmental stress engine for hydroponic crops",
		Long: `hydrostress simulates how temperature, water, nutrient, light, salinity,
oxygen and pH stress combine to limit a hydroponic crop, one day at a time.

Configuration is layered: defaults, then a YAML file (--config or
./.hydrostress.yaml), then HYDROSTRESS_* environment variables, e.g.
HYDROSTRESS_TEMPERATURE_STRESS_OPTIMAL_TEMP_MAX=26.

Example:
  hydrostress run heat_acclimation cold_snap --daily`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	root.Version = info.Version
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./.hydrostress.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level: info, debug or trace")
	root.PersistentFlags().Bool("json", false, "output as JSON")
	_ = a.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newRunCmd(a),
		newScenariosCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) initConfig() error {
	v := a.v
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".hydrostress")
	}
	v.SetEnvPrefix("HYDROSTRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func (a *app) config() (config.Config, error) {
	cfg, err := config.Build(config.NewViperSource(a.v))
	if err != nil {
		return config.Config{}, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

func (a *app) logger(cmd *cobra.Command) *slog.Logger {
	return logging.NewLogger(a.v.GetString("log_level"), cmd.ErrOrStderr())
}

func jsonOutput(cmd *cobra.Command) bool {
	on, _ := cmd.Flags().GetBool("json")
	return on
}
