package estimators

import (
	"fmt"
	"math"
)

var keyNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Krumhansl-Schmuckler key profiles.
var (
	majorProfile = []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// Pitch range folded into the chroma vector.
const (
	chromaMinHz = 65.0   // C2
	chromaMaxHz = 2100.0 // ~C7
)

// ChromaKey estimates the key by folding FFT magnitudes into a 12-bin
// chroma vector and correlating it against rotated Krumhansl-Schmuckler
// major and minor profiles.
type ChromaKey struct{}

// NewChromaKey returns the built-in key estimator.
func NewChromaKey() *ChromaKey {
	return &ChromaKey{}
}

// Key estimates the key signature of the window.
func (e *ChromaKey) Key(samples []float64, sampleRate int) (KeyResult, error) {
	frames := magnitudeFrames(samples)
	if len(frames) == 0 {
		return KeyResult{}, fmt.Errorf("%w: window too short for key estimation", ErrEstimator)
	}

	chroma := make([]float64, 12)
	binHz := float64(sampleRate) / frameSize
	for _, mags := range frames {
		for k, m := range mags {
			f := float64(k) * binHz
			if f < chromaMinHz || f > chromaMaxHz {
				continue
			}
			midi := 69 + 12*math.Log2(f/440.0)
			pc := ((int(math.Round(midi)) % 12) + 12) % 12
			chroma[pc] += m
		}
	}

	bestCorr := math.Inf(-1)
	bestKey := 0
	bestMode := "major"
	for tonic := 0; tonic < 12; tonic++ {
		if c := pearson(chroma, rotate(majorProfile, tonic)); c > bestCorr {
			bestCorr, bestKey, bestMode = c, tonic, "major"
		}
		if c := pearson(chroma, rotate(minorProfile, tonic)); c > bestCorr {
			bestCorr, bestKey, bestMode = c, tonic, "minor"
		}
	}

	return KeyResult{
		Key:        keyNames[bestKey],
		Mode:       bestMode,
		Confidence: clamp01(bestCorr),
	}, nil
}

// rotate shifts a profile so index 0 lines up with the given tonic.
func rotate(profile []float64, tonic int) []float64 {
	out := make([]float64, 12)
	for i := 0; i < 12; i++ {
		out[(i+tonic)%12] = profile[i]
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
