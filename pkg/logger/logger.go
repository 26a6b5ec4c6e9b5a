package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config represents logger configuration
type Config struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr
}

// DefaultConfig returns default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

// Initialize sets up the global zerolog logger with the provided configuration.
func Initialize(config *Config) {
	if config == nil {
		config = DefaultConfig()
	}

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer
	switch strings.ToLower(config.Output) {
	case "stdout":
		output = os.Stdout
	default:
		output = os.Stderr
	}

	if strings.ToLower(config.Format) == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// With returns a logger with the given component field attached.
func With(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Debug starts a debug-level event on the global logger.
func Debug() *zerolog.Event { return log.Debug() }

// Info starts an info-level event on the global logger.
func Info() *zerolog.Event { return log.Info() }

// Warn starts a warn-level event on the global logger.
func Warn() *zerolog.Event { return log.Warn() }

// Error starts an error-level event on the global logger.
func Error() *zerolog.Event { return log.Error() }
