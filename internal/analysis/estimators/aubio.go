package estimators

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/bakerbass/guitarchops/internal/audio"
	"github.com/bakerbass/guitarchops/pkg/logger"
)

// AubioOnset shells out to the aubio CLI for onset detection. The window
// is written to a temporary WAV file because aubio only reads files.
type AubioOnset struct {
	binPath string
	tempDir string
}

// NewAubioOnset returns an aubio-backed onset estimator.
func NewAubioOnset(binPath, tempDir string) *AubioOnset {
	if binPath == "" {
		binPath = "aubio"
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &AubioOnset{binPath: binPath, tempDir: tempDir}
}

// Onsets runs `aubio onset` over the window and parses one onset time
// per output line.
func (e *AubioOnset) Onsets(samples []float64, sampleRate int) ([]float64, error) {
	tmp := filepath.Join(e.tempDir, fmt.Sprintf("chops_onset_%s.wav", uuid.NewString()))
	if err := audio.WriteFile(tmp, samples, sampleRate); err != nil {
		return nil, fmt.Errorf("%w: writing temp window: %v", ErrEstimator, err)
	}
	defer func() {
		if err := os.Remove(tmp); err != nil {
			logger.Warn().Err(err).Str("path", tmp).Msg("failed to remove temp onset window")
		}
	}()

	out, err := exec.Command(e.binPath, "onset", "-i", tmp).Output()
	if err != nil {
		return nil, fmt.Errorf("%w: aubio onset: %v", ErrEstimator, err)
	}

	onsets := []float64{}
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.Fields(line)[0], 64)
		if err != nil {
			continue
		}
		onsets = append(onsets, v)
	}
	return onsets, nil
}
