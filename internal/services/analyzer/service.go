// Package analyzer composes the analysis pipeline into the two
// user-facing operations: peak generation and full segmentation. Both
// are content-cached and report progress through an injected sink.
package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/bakerbass/guitarchops/internal/analysis/chunker"
	"github.com/bakerbass/guitarchops/internal/analysis/estimators"
	"github.com/bakerbass/guitarchops/internal/analysis/peaks"
	"github.com/bakerbass/guitarchops/internal/analysis/segments"
	"github.com/bakerbass/guitarchops/internal/audio"
	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/internal/progress"
	"github.com/bakerbass/guitarchops/internal/services/contentcache"
	"github.com/bakerbass/guitarchops/pkg/logger"
)

// Config carries the tunable analysis parameters.
type Config struct {
	Resolutions        []int
	Chunk              chunker.Config
	MinSegmentDuration float64
	TempoTolerance     float64
	MinOnsetGap        float64
	SilenceMinLenMS    int
	SilenceThresholdDB float64
	SilenceSeekStepMS  int
}

// DefaultConfig returns the standard analysis parameters.
func DefaultConfig() Config {
	return Config{
		Resolutions:        peaks.DefaultResolutions,
		Chunk:              chunker.DefaultConfig(),
		MinSegmentDuration: 5.0,
		TempoTolerance:     5.0,
		MinOnsetGap:        0.1,
		SilenceMinLenMS:    500,
		SilenceThresholdDB: -40.0,
		SilenceSeekStepMS:  10,
	}
}

// Service is the analysis orchestrator.
type Service struct {
	cache    contentcache.CacheService
	registry estimators.Registry
	cfg      Config
}

// NewService creates a new analyzer.
func NewService(cache contentcache.CacheService, registry estimators.Registry, cfg Config) *Service {
	return &Service{cache: cache, registry: registry, cfg: cfg}
}

// ComputePeaks returns the multi-resolution peak envelopes for a track,
// reading through the content cache.
func (s *Service) ComputePeaks(ctx context.Context, track *models.Track, sink progress.Sink) (*models.PeakSet, error) {
	if sink == nil {
		sink = progress.Nop
	}
	log := logger.With("analyzer")

	if cached, err := s.cache.GetPeaks(ctx, track.Digest); err == nil {
		sink.Report(90, "Loading cached peaks...")
		return cached, nil
	} else if !errors.Is(err, contentcache.ErrCacheMiss) {
		// Cache read failures degrade to recomputation.
		log.Warn().Err(err).Str("digest", track.Digest).Msg("peaks cache read failed, recomputing")
	}

	sink.Report(20, "Decoding audio...")
	f, err := audio.Open(track.Path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", track.Path, err)
	}
	defer f.Close()

	signal, err := f.ReadAllMono()
	if err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}

	set, err := peaks.Reduce(signal, f.SampleRate(), s.cfg.Resolutions, progress.Scaled(sink, 20, 90))
	if err != nil {
		return nil, err
	}

	if err := s.cache.PutPeaks(ctx, track.Digest, set); err != nil {
		log.Warn().Err(err).Str("digest", track.Digest).Msg("peaks cache write failed, serving uncached result")
	}
	return set, nil
}

// ComputeSegments runs the enabled segmenter families over a track. Each
// family runs independently: one family's failure shows up as an empty
// sequence plus an error note without touching the others. Results for a
// full run (all four families, all successful) are cached; partial runs
// are always recomputed.
func (s *Service) ComputeSegments(ctx context.Context, track *models.Track, enabled []models.SegmentType, sink progress.Sink) (*models.AnalysisResult, error) {
	if sink == nil {
		sink = progress.Nop
	}
	if len(enabled) == 0 {
		enabled = models.AllSegmentTypes
	}
	enabled = dedupeTypes(enabled)
	log := logger.With("analyzer")

	// Only a run covering every family may serve as, or populate, the
	// canonical cached result for a digest.
	fullRun := coversAllTypes(enabled)
	if fullRun {
		if cached, err := s.cache.GetSegments(ctx, track.Digest); err == nil {
			sink.Report(90, "Loading cached analysis...")
			return cached, nil
		} else if !errors.Is(err, contentcache.ErrCacheMiss) {
			log.Warn().Err(err).Str("digest", track.Digest).Msg("segments cache read failed, recomputing")
		}
	}

	sink.Report(5, "Decoding audio...")
	f, err := audio.Open(track.Path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", track.Path, err)
	}
	defer f.Close()

	result := models.NewAnalysisResult(track.Path)

	// Progress splits the 10-95 band evenly across the enabled families.
	span := 85
	lo := 10
	step := span / len(enabled)

	for i, typ := range enabled {
		phaseLo := lo + i*step
		sink.Report(phaseLo, phaseMessage(typ))

		segs, err := s.runFamily(f, typ)
		if err != nil {
			log.Error().Err(err).Str("type", string(typ)).Str("digest", track.Digest).Msg("segmenter failed")
			result.AddError(typ, err.Error())
			continue
		}
		result.Segments.SetByType(typ, segs)
	}
	sink.Report(95, "Finalizing analysis...")

	if fullRun && len(result.Errors) == 0 {
		if err := s.cache.PutSegments(ctx, track.Digest, result); err != nil {
			log.Warn().Err(err).Str("digest", track.Digest).Msg("segments cache write failed, serving uncached result")
		}
	}
	return result, nil
}

func (s *Service) runFamily(f *audio.File, typ models.SegmentType) ([]models.Segment, error) {
	switch typ {
	case models.SegmentTypeSilence:
		signal, err := f.ReadAllMono()
		if err != nil {
			return nil, err
		}
		return segments.Silence(signal, f.SampleRate(), s.cfg.SilenceMinLenMS, s.cfg.SilenceThresholdDB, s.cfg.SilenceSeekStepMS), nil

	case models.SegmentTypeOnset:
		onsets, err := segments.RunOnsets(f, s.registry.Onset, s.cfg.Chunk)
		if err != nil {
			return nil, err
		}
		return segments.FromOnsets(onsets, s.cfg.MinOnsetGap), nil

	case models.SegmentTypeKey:
		estimates, err := segments.RunKey(f, s.registry.Key, s.cfg.Chunk)
		if err != nil {
			return nil, err
		}
		return segments.NewKeyMerger(s.cfg.MinSegmentDuration).Merge(estimates, f.Duration()), nil

	case models.SegmentTypeTempo:
		estimates, err := segments.RunTempo(f, s.registry.Tempo, s.cfg.Chunk)
		if err != nil {
			return nil, err
		}
		return segments.NewTempoMerger(s.cfg.MinSegmentDuration, s.cfg.TempoTolerance).Merge(estimates, f.Duration()), nil
	}
	return nil, fmt.Errorf("unknown segment type %q", typ)
}

// dedupeTypes drops repeated types while preserving first-seen order.
func dedupeTypes(types []models.SegmentType) []models.SegmentType {
	seen := make(map[models.SegmentType]struct{}, len(types))
	out := make([]models.SegmentType, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func coversAllTypes(types []models.SegmentType) bool {
	if len(types) != len(models.AllSegmentTypes) {
		return false
	}
	seen := make(map[models.SegmentType]struct{}, len(types))
	for _, t := range types {
		seen[t] = struct{}{}
	}
	for _, t := range models.AllSegmentTypes {
		if _, ok := seen[t]; !ok {
			return false
		}
	}
	return true
}

func phaseMessage(t models.SegmentType) string {
	switch t {
	case models.SegmentTypeSilence:
		return "Detecting silence..."
	case models.SegmentTypeOnset:
		return "Detecting onsets..."
	case models.SegmentTypeKey:
		return "Detecting key changes..."
	case models.SegmentTypeTempo:
		return "Detecting tempo changes..."
	}
	return "Analyzing..."
}
