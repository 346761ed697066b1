// Package cmd wires the cobra command tree this binary exposes, in the
// shape of cmd/root.go's rootCmd/runCmd split: global persistent flags on
// the root, one subcommand per mode of operation.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
	v        = viper.New()
	log      = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "blisfleet",
	Short: "Discrete-tick fleet dispatch simulator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a config file (yaml/json/toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}
