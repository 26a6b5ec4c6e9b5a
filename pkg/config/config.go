package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		// Environment variable overrides, e.g. CHOPS_SERVER_PORT
		viper.SetEnvPrefix("CHOPS")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// Missing config file is fine, defaults and env vars apply
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1<<20)
	viper.SetDefault("server.max_upload_bytes", int64(512)<<20)

	// Database
	viper.SetDefault("database.path", "./data/guitarchops.db")
	viper.SetDefault("database.log_queries", false)

	// Storage
	viper.SetDefault("storage.upload_dir", "./uploads")
	viper.SetDefault("storage.export_dir", "./uploads/exports")
	viper.SetDefault("storage.temp_dir", os.TempDir())

	// Processing
	viper.SetDefault("processing.workers", 2)
	viper.SetDefault("processing.max_queue_size", 100)
	viper.SetDefault("processing.task_timeout", 30*time.Minute)
	viper.SetDefault("processing.ffmpeg_path", "ffmpeg")

	// Analysis
	viper.SetDefault("analysis.peak_resolutions", []int{10, 100, 1000})
	viper.SetDefault("analysis.chunk_duration", 30.0)
	viper.SetDefault("analysis.chunk_overlap", 0.1)
	viper.SetDefault("analysis.min_segment_duration", 5.0)
	viper.SetDefault("analysis.tempo_tolerance", 5.0)
	viper.SetDefault("analysis.min_onset_gap", 0.1)
	viper.SetDefault("analysis.silence_min_len_ms", 500)
	viper.SetDefault("analysis.silence_threshold_db", -40.0)
	viper.SetDefault("analysis.silence_seek_step_ms", 10)
	viper.SetDefault("analysis.onset_backend", "auto")
	viper.SetDefault("analysis.aubio_path", "aubio")

	// Exports
	viper.SetDefault("exports.backend", "filesystem")
	viper.SetDefault("exports.s3.bucket", "")
	viper.SetDefault("exports.s3.region", "us-east-1")
	viper.SetDefault("exports.s3.endpoint", "")
	viper.SetDefault("exports.s3.access_key_id", "")
	viper.SetDefault("exports.s3.secret_access_key", "")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.output", "stderr")
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	overlap := viper.GetFloat64("analysis.chunk_overlap")
	if overlap < 0 || overlap >= 1 {
		return fmt.Errorf("invalid chunk overlap %v: must be in [0, 1)", overlap)
	}

	if viper.GetFloat64("analysis.chunk_duration") <= 0 {
		return fmt.Errorf("invalid chunk duration: must be positive")
	}

	backend := viper.GetString("exports.backend")
	if backend != "filesystem" && backend != "s3" {
		return fmt.Errorf("invalid exports backend: %s", backend)
	}
	if backend == "s3" && viper.GetString("exports.s3.bucket") == "" {
		return fmt.Errorf("exports backend s3 requires exports.s3.bucket")
	}

	// Auto-correct invalid worker count
	if viper.GetInt("processing.workers") <= 0 {
		viper.Set("processing.workers", 2)
	}

	// Auto-correct invalid queue size
	if viper.GetInt("processing.max_queue_size") <= 0 {
		viper.Set("processing.max_queue_size", 100)
	}

	return nil
}
