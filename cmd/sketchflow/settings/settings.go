// Package settings resolves the configuration shared by every sketchflow
// command from the config file, the environment and persistent flags.
package settings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/sketchflow/pkg/config"
)

// Persistent flag names.
const (
	FlagConfig   = "config"
	FlagEndpoint = "endpoint"
	FlagDebug    = "debug"
	FlagLogFile  = "log-file"
)

// AddPersistentFlags registers the shared flags on the root command.
func AddPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP(FlagConfig, "c", "", "Path to config file (default: ./"+config.DefaultPath+" if present)")
	flags.String(FlagEndpoint, "", "Conversion service URL")
	flags.Bool(FlagDebug, false, "Enable debug logging")
	flags.String(FlagLogFile, "", "Write logs to this file")
}

// Load builds the effective config. Flags set on the command line win over
// the environment, which wins over the file.
func Load(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString(FlagConfig)
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed(FlagEndpoint) {
		cfg.Endpoint, _ = flags.GetString(FlagEndpoint)
	}
	if flags.Changed(FlagDebug) {
		cfg.Debug, _ = flags.GetBool(FlagDebug)
	}
	if flags.Changed(FlagLogFile) {
		cfg.LogFile, _ = flags.GetString(FlagLogFile)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}
