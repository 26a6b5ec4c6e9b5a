package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bakerbass/guitarchops/pkg/config"
	"github.com/bakerbass/guitarchops/pkg/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "guitarchops",
	Short: "Audio analysis service for practice loops",
	Long: `GuitarChops - an audio analysis API for building practice loops.

Upload a recording and the service transcodes it to WAV, generates
multi-resolution waveform peaks and segments it by silence, onsets,
key changes and tempo changes. Segments can be exported as standalone
WAV files for looping practice.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (json, console)")
}

// loadConfig initializes configuration and logging. Called by commands
// that need them, not by version or help.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	logCfg := &logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		logCfg.Level = lvl
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		logCfg.Format = format
	}
	logger.Initialize(logCfg)

	return cfg, nil
}
