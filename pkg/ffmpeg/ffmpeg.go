// Package ffmpeg wraps the ffmpeg command line for transcoding uploads
// to analyzable WAV and for cutting segment ranges out of a recording.
package ffmpeg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/bakerbass/guitarchops/pkg/logger"
)

// binPath is the ffmpeg binary used for all invocations. Empty means
// the ffmpeg found on PATH.
var binPath string

// SetBinary overrides the ffmpeg binary path. Called once at startup
// before any conversion runs.
func SetBinary(path string) {
	binPath = path
}

func run(stream *ffmpeg.Stream) error {
	if binPath != "" {
		return stream.SetFfmpegPath(binPath).Run()
	}
	return stream.Run()
}

// ProbeInfo is the subset of ffprobe output the service needs.
type ProbeInfo struct {
	Duration   float64
	SampleRate int
	Channels   int
	Format     string
}

// Probe extracts stream metadata from an audio file.
func Probe(path string) (*ProbeInfo, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("failed to probe file: %w", err)
	}
	return parseProbe(raw)
}

func parseProbe(raw string) (*ProbeInfo, error) {
	var probe struct {
		Streams []struct {
			CodecType  string `json:"codec_type"`
			SampleRate string `json:"sample_rate"`
			Channels   int    `json:"channels"`
		} `json:"streams"`
		Format struct {
			Duration   string `json:"duration"`
			FormatName string `json:"format_name"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse probe output: %w", err)
	}

	info := &ProbeInfo{Format: probe.Format.FormatName}
	if probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}
	for _, s := range probe.Streams {
		if s.CodecType != "audio" {
			continue
		}
		info.Channels = s.Channels
		if sr, err := strconv.Atoi(s.SampleRate); err == nil {
			info.SampleRate = sr
		}
		break
	}
	if info.SampleRate == 0 {
		return nil, fmt.Errorf("no audio stream found")
	}
	return info, nil
}

// ConvertToWAV transcodes any ffmpeg-readable input to 16-bit PCM WAV,
// preserving the source sample rate and channel layout.
func ConvertToWAV(inputPath, outputPath string) error {
	log := logger.With("ffmpeg")

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	log.Debug().Str("input", inputPath).Str("output", outputPath).Msg("converting to WAV")
	err := run(ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"acodec": "pcm_s16le",
		}).
		OverWriteOutput())
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w", err)
	}
	return nil
}

// ExportRange cuts [start, end) seconds out of the input into a new WAV
// file.
func ExportRange(inputPath, outputPath string, start, end float64) error {
	if end <= start {
		return fmt.Errorf("invalid range: end %.3f <= start %.3f", end, start)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	err := run(ffmpeg.Input(inputPath, ffmpeg.KwArgs{
		"ss": fmt.Sprintf("%.3f", start),
	}).
		Output(outputPath, ffmpeg.KwArgs{
			"t":      fmt.Sprintf("%.3f", end-start),
			"acodec": "pcm_s16le",
		}).
		OverWriteOutput())
	if err != nil {
		return fmt.Errorf("ffmpeg range export failed: %w", err)
	}
	return nil
}
