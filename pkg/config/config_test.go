package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	setDefaults()

	assert.Equal(t, 8000, viper.GetInt("server.port"))
	assert.Equal(t, []int{10, 100, 1000}, viper.GetIntSlice("analysis.peak_resolutions"))
	assert.Equal(t, 30.0, viper.GetFloat64("analysis.chunk_duration"))
	assert.Equal(t, 0.1, viper.GetFloat64("analysis.chunk_overlap"))
	assert.Equal(t, 5.0, viper.GetFloat64("analysis.min_segment_duration"))
	assert.Equal(t, -40.0, viper.GetFloat64("analysis.silence_threshold_db"))
	assert.Equal(t, "filesystem", viper.GetString("exports.backend"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func()
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func() {},
		},
		{
			name:    "port out of range",
			mutate:  func() { viper.Set("server.port", 70000) },
			wantErr: "invalid server port",
		},
		{
			name:    "overlap of one rejected",
			mutate:  func() { viper.Set("analysis.chunk_overlap", 1.0) },
			wantErr: "invalid chunk overlap",
		},
		{
			name:    "negative overlap rejected",
			mutate:  func() { viper.Set("analysis.chunk_overlap", -0.1) },
			wantErr: "invalid chunk overlap",
		},
		{
			name:    "unknown export backend",
			mutate:  func() { viper.Set("exports.backend", "ftp") },
			wantErr: "invalid exports backend",
		},
		{
			name:    "s3 backend requires bucket",
			mutate:  func() { viper.Set("exports.backend", "s3") },
			wantErr: "requires exports.s3.bucket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			setDefaults()
			tt.mutate()

			err := validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateAutoCorrects(t *testing.T) {
	viper.Reset()
	setDefaults()
	viper.Set("processing.workers", 0)
	viper.Set("processing.max_queue_size", -1)

	require.NoError(t, validate())
	assert.Equal(t, 2, viper.GetInt("processing.workers"))
	assert.Equal(t, 100, viper.GetInt("processing.max_queue_size"))
}

func TestGetConfigUnmarshal(t *testing.T) {
	viper.Reset()
	setDefaults()
	viper.Set("server.port", 9090)
	viper.Set("analysis.tempo_tolerance", 3.5)

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3.5, cfg.Analysis.TempoTolerance)
	assert.Equal(t, 2, cfg.Processing.Workers)
}
