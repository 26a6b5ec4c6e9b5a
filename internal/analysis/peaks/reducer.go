// Package peaks reduces a decoded signal into multi-resolution
// min/max/RMS envelopes for instant waveform rendering.
package peaks

import (
	"fmt"
	"math"

	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/internal/progress"
)

// DefaultResolutions is the standard resolution ladder, in samples per bin.
var DefaultResolutions = []int{10, 100, 1000}

// Reduce partitions the mono signal into consecutive non-overlapping bins
// of r samples for each resolution r and computes each bin's min, max and
// root-mean-square. Trailing samples that do not fill a whole bin are
// dropped. Resolutions are processed in the caller-supplied order, one
// progress report per completed resolution. The reduction is
// single-threaded, so identical input always produces identical output.
func Reduce(signal []float64, sampleRate int, resolutions []int, sink progress.Sink) (*models.PeakSet, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if len(resolutions) == 0 {
		return nil, fmt.Errorf("no resolutions given")
	}
	for _, r := range resolutions {
		if r <= 0 {
			return nil, fmt.Errorf("invalid resolution %d: must be positive", r)
		}
	}
	if sink == nil {
		sink = progress.Nop
	}

	set := &models.PeakSet{
		SampleRate:  sampleRate,
		Duration:    float64(len(signal)) / float64(sampleRate),
		Channels:    1,
		Resolutions: make(map[int]models.PeakEnvelope, len(resolutions)),
	}

	for i, r := range resolutions {
		set.Resolutions[r] = reduceOne(signal, r)
		sink.Report((i+1)*100/len(resolutions), fmt.Sprintf("Processing resolution %d/%d...", i+1, len(resolutions)))
	}

	return set, nil
}

func reduceOne(signal []float64, resolution int) models.PeakEnvelope {
	bins := len(signal) / resolution
	env := models.PeakEnvelope{
		Min: make([]float64, bins),
		Max: make([]float64, bins),
		RMS: make([]float64, bins),
	}

	for b := 0; b < bins; b++ {
		bin := signal[b*resolution : (b+1)*resolution]
		lo, hi := bin[0], bin[0]
		var sumSq float64
		for _, s := range bin {
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
			sumSq += s * s
		}
		env.Min[b] = lo
		env.Max[b] = hi
		env.RMS[b] = math.Sqrt(sumSq / float64(resolution))
	}
	return env
}
