package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "globemeasure",
		Short:         "Measure distances and areas on a terrain-covered globe",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configDir, "config-dir", ".", "directory containing globemeasure.cfg.json")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("units", "kilometers", "display units (kilometers, meters, miles)")
	flags.String("terrain", "flat", "terrain model (flat, hills)")
	flags.Bool("log-file", false, "also write logs to a rotated file under logsDir")
	flags.Bool("influx", false, "record recomputation metrics to InfluxDB")

	_ = viper.BindPFlag("logLevel", flags.Lookup("log-level"))
	_ = viper.BindPFlag("units", flags.Lookup("units"))
	_ = viper.BindPFlag("terrain.kind", flags.Lookup("terrain"))
	_ = viper.BindPFlag("logToFile", flags.Lookup("log-file"))
	_ = viper.BindPFlag("influx.enabled", flags.Lookup("influx"))

	root.AddCommand(
		newDistanceCmd(a),
		newAreaCmd(a),
		newReplayCmd(a),
	)
	return root
}
