package segments

import (
	"fmt"
	"sort"

	"github.com/bakerbass/guitarchops/internal/analysis/chunker"
	"github.com/bakerbass/guitarchops/internal/analysis/estimators"
	"github.com/bakerbass/guitarchops/internal/audio"
	"github.com/bakerbass/guitarchops/internal/models"
)

// RunKey drives the key estimator over every window of the stream and
// returns one estimate per window, tagged with the window's start time.
func RunKey(stream audio.Stream, est estimators.KeyEstimator, cfg chunker.Config) ([]models.RawEstimate, error) {
	estimates := []models.RawEstimate{}
	err := eachChunk(stream, cfg, func(c chunker.Chunk) error {
		result, err := est.Key(c.Samples, stream.SampleRate())
		if err != nil {
			return fmt.Errorf("key estimate at %.2fs: %w", c.Start, err)
		}
		estimates = append(estimates, models.RawEstimate{
			Time:       c.Start,
			Label:      result.Label(),
			Confidence: result.Confidence,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return estimates, nil
}

// RunTempo drives the tempo estimator over every window of the stream.
func RunTempo(stream audio.Stream, est estimators.TempoEstimator, cfg chunker.Config) ([]models.RawEstimate, error) {
	estimates := []models.RawEstimate{}
	err := eachChunk(stream, cfg, func(c chunker.Chunk) error {
		result, err := est.Tempo(c.Samples, stream.SampleRate())
		if err != nil {
			return fmt.Errorf("tempo estimate at %.2fs: %w", c.Start, err)
		}
		estimates = append(estimates, models.RawEstimate{
			Time:       c.Start,
			BPM:        result.BPM,
			Confidence: result.Confidence,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return estimates, nil
}

// RunOnsets drives the onset estimator over every window, offsets each
// reported time by the window's start, deduplicates exact collisions
// from overlapping windows and returns the times sorted ascending.
func RunOnsets(stream audio.Stream, est estimators.OnsetEstimator, cfg chunker.Config) ([]float64, error) {
	seen := map[float64]struct{}{}
	onsets := []float64{}
	err := eachChunk(stream, cfg, func(c chunker.Chunk) error {
		times, err := est.Onsets(c.Samples, stream.SampleRate())
		if err != nil {
			return fmt.Errorf("onset estimate at %.2fs: %w", c.Start, err)
		}
		for _, t := range times {
			abs := c.Start + t
			if _, dup := seen[abs]; dup {
				continue
			}
			seen[abs] = struct{}{}
			onsets = append(onsets, abs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Float64s(onsets)
	return onsets, nil
}

func eachChunk(stream audio.Stream, cfg chunker.Config, fn func(chunker.Chunk) error) error {
	src, err := chunker.Open(stream, cfg)
	if err != nil {
		return err
	}
	for {
		c, _, ok, err := src.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(c); err != nil {
			return err
		}
	}
}
