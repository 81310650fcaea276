package main

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hvac/config"
	"hvac/process"
)

const defaultConfigPath = "conf/config.ini"

var rootCmd = &cobra.Command{
	Use:           "hvac",
	Short:         "hvac computes humid-air process chains",
	Long:          `hvac runs mixing, heating and cooling stages described in YAML scenario files and reports the state after every stage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", defaultConfigPath, "ini file with solver and limit settings")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every block and solver step")
}

// loadConfig reads the configured ini file, applies it to the process package and sets
// the log level. A missing default file falls back to built-in settings.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg := config.Default()
	_, statErr := os.Stat(path)
	switch {
	case errors.Is(statErr, os.ErrNotExist) && !cmd.Flags().Changed("config"):
		log.WithField("path", path).Debug("no config file, using defaults")
	default:
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, fmt.Errorf("config: log.level: %w", err)
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	process.Configure(cfg)
	return cfg, nil
}
