// Package estimators holds the pluggable per-window feature estimators.
// Every estimator is pure and stateless per call: same samples and sample
// rate always produce the same result.
package estimators

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/bakerbass/guitarchops/pkg/logger"
)

// ErrEstimator wraps failures inside a single estimator call.
var ErrEstimator = errors.New("estimator failed")

// OnsetEstimator reports note/percussive onset times in seconds relative
// to the start of the given window.
type OnsetEstimator interface {
	Onsets(samples []float64, sampleRate int) ([]float64, error)
}

// KeyResult is one key-signature estimate.
type KeyResult struct {
	Key        string  // tonic, e.g. "C", "F#"
	Mode       string  // "major" or "minor"
	Confidence float64 // in [0, 1]
}

// Label returns the canonical "<key> <mode>" form used for comparisons.
func (r KeyResult) Label() string {
	return fmt.Sprintf("%s %s", r.Key, r.Mode)
}

// KeyEstimator estimates the musical key of a window.
type KeyEstimator interface {
	Key(samples []float64, sampleRate int) (KeyResult, error)
}

// TempoResult is one tempo estimate.
type TempoResult struct {
	BPM        float64
	Confidence float64 // in [0, 1]
}

// TempoEstimator estimates the tempo of a window.
type TempoEstimator interface {
	Tempo(samples []float64, sampleRate int) (TempoResult, error)
}

// Registry is the set of estimators an analysis run uses. Backends are
// selected once at startup, not per call.
type Registry struct {
	Onset OnsetEstimator
	Key   KeyEstimator
	Tempo TempoEstimator
}

// Options controls backend selection.
type Options struct {
	OnsetBackend string // "auto", "spectral" or "aubio"
	AubioPath    string
	TempDir      string
}

// NewRegistry builds a registry, picking the best available backend for
// each estimator. The aubio CLI is used for onsets when requested or,
// under "auto", when the binary is on PATH; everything else uses the
// built-in pure-Go estimators.
func NewRegistry(opts Options) Registry {
	log := logger.With("estimators")

	onset := OnsetEstimator(NewSpectralFluxOnset())
	switch opts.OnsetBackend {
	case "aubio":
		onset = NewAubioOnset(opts.AubioPath, opts.TempDir)
		log.Info().Str("backend", "aubio").Msg("onset estimator selected")
	case "auto":
		if aubioAvailable(opts.AubioPath) {
			onset = NewAubioOnset(opts.AubioPath, opts.TempDir)
			log.Info().Str("backend", "aubio").Msg("onset estimator selected")
		} else {
			log.Info().Str("backend", "spectral").Msg("onset estimator selected")
		}
	default:
		log.Info().Str("backend", "spectral").Msg("onset estimator selected")
	}

	return Registry{
		Onset: onset,
		Key:   NewChromaKey(),
		Tempo: NewAutocorrTempo(),
	}
}

func aubioAvailable(path string) bool {
	if path == "" {
		path = "aubio"
	}
	_, err := exec.LookPath(path)
	return err == nil
}
