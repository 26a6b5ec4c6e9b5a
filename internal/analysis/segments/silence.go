package segments

import (
	"math"

	"github.com/bakerbass/guitarchops/internal/models"
)

// Silence segments the full decoded signal by amplitude threshold: a
// run is silent when its peak level stays below thresholdDBFS for at
// least minSilenceMS. The returned segments are the complement, one per
// maximal non-silent run, with confidence fixed at 1.0. Boundary
// precision is seekStepMS.
func Silence(signal []float64, sampleRate, minSilenceMS int, thresholdDBFS float64, seekStepMS int) []models.Segment {
	segs := []models.Segment{}
	if len(signal) == 0 || sampleRate <= 0 {
		return segs
	}
	if seekStepMS <= 0 {
		seekStepMS = 10
	}

	step := sampleRate * seekStepMS / 1000
	if step < 1 {
		step = 1
	}
	numWindows := (len(signal) + step - 1) / step

	silent := make([]bool, numWindows)
	for w := 0; w < numWindows; w++ {
		lo := w * step
		hi := lo + step
		if hi > len(signal) {
			hi = len(signal)
		}
		var peak float64
		for _, s := range signal[lo:hi] {
			if a := math.Abs(s); a > peak {
				peak = a
			}
		}
		// Zero peak is digital silence, below any threshold.
		silent[w] = peak == 0 || 20*math.Log10(peak) < thresholdDBFS
	}

	// Silent runs shorter than the minimum length do not count as
	// silence, so fold them back into the surrounding sound.
	minWindows := minSilenceMS / seekStepMS
	if minWindows < 1 {
		minWindows = 1
	}
	for w := 0; w < numWindows; {
		if !silent[w] {
			w++
			continue
		}
		runEnd := w
		for runEnd < numWindows && silent[runEnd] {
			runEnd++
		}
		if runEnd-w < minWindows {
			for i := w; i < runEnd; i++ {
				silent[i] = false
			}
		}
		w = runEnd
	}

	totalDuration := float64(len(signal)) / float64(sampleRate)
	stepSec := float64(step) / float64(sampleRate)
	for w := 0; w < numWindows; {
		if silent[w] {
			w++
			continue
		}
		runEnd := w
		for runEnd < numWindows && !silent[runEnd] {
			runEnd++
		}
		start := float64(w) * stepSec
		end := float64(runEnd) * stepSec
		if end > totalDuration {
			end = totalDuration
		}
		segs = append(segs, models.Segment{
			ID:         models.SegmentID(models.SegmentTypeSilence, len(segs)),
			Start:      start,
			End:        end,
			Duration:   end - start,
			Type:       models.SegmentTypeSilence,
			Confidence: 1.0,
		})
		w = runEnd
	}
	return segs
}
