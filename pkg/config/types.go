package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Processing ProcessingConfig `mapstructure:"processing"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Exports    ExportsConfig    `mapstructure:"exports"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
	ExportDir string `mapstructure:"export_dir"`
	TempDir   string `mapstructure:"temp_dir"`
}

// ProcessingConfig contains background processing settings
type ProcessingConfig struct {
	Workers      int           `mapstructure:"workers"`
	MaxQueueSize int           `mapstructure:"max_queue_size"`
	TaskTimeout  time.Duration `mapstructure:"task_timeout"`
	FFmpegPath   string        `mapstructure:"ffmpeg_path"`
}

// AnalysisConfig contains analysis pipeline settings
type AnalysisConfig struct {
	PeakResolutions    []int   `mapstructure:"peak_resolutions"`
	ChunkDuration      float64 `mapstructure:"chunk_duration"`       // seconds
	ChunkOverlap       float64 `mapstructure:"chunk_overlap"`        // ratio in [0,1)
	MinSegmentDuration float64 `mapstructure:"min_segment_duration"` // seconds
	TempoTolerance     float64 `mapstructure:"tempo_tolerance"`      // BPM
	MinOnsetGap        float64 `mapstructure:"min_onset_gap"`        // seconds
	SilenceMinLenMS    int     `mapstructure:"silence_min_len_ms"`
	SilenceThresholdDB float64 `mapstructure:"silence_threshold_db"` // dBFS
	SilenceSeekStepMS  int     `mapstructure:"silence_seek_step_ms"`
	OnsetBackend       string  `mapstructure:"onset_backend"` // auto, spectral, aubio
	AubioPath          string  `mapstructure:"aubio_path"`
}

// ExportsConfig contains segment export settings
type ExportsConfig struct {
	Backend string   `mapstructure:"backend"` // filesystem, s3
	S3      S3Config `mapstructure:"s3"`
}

// S3Config contains S3 storage backend settings
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
