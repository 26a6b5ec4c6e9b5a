package workers

import (
	"context"

	"github.com/bakerbass/guitarchops/internal/progress"
	"github.com/bakerbass/guitarchops/internal/services/analyzer"
	"github.com/bakerbass/guitarchops/internal/services/library"
	"github.com/bakerbass/guitarchops/internal/services/tasks"
)

// AnalysisProcessor runs full segmentation for a registered track.
type AnalysisProcessor struct {
	tracks   library.TrackService
	analyzer *analyzer.Service
	store    *tasks.Store
}

// NewAnalysisProcessor creates a new analysis processor.
func NewAnalysisProcessor(tracks library.TrackService, analyzerSvc *analyzer.Service, store *tasks.Store) *AnalysisProcessor {
	return &AnalysisProcessor{tracks: tracks, analyzer: analyzerSvc, store: store}
}

// CanProcess returns true for analysis jobs.
func (p *AnalysisProcessor) CanProcess(jobType JobType) bool {
	return jobType == JobTypeAnalysis
}

// Process segments the track and attaches the result to the task.
func (p *AnalysisProcessor) Process(ctx context.Context, job Job) error {
	track, err := p.tracks.GetByDigest(ctx, job.Digest)
	if err != nil {
		p.store.Fail(job.TaskID, err.Error())
		return err
	}

	sink := progress.Scaled(p.store.Sink(job.TaskID), 0, 99)
	result, err := p.analyzer.ComputeSegments(ctx, track, job.Types, sink)
	if err != nil {
		p.store.Fail(job.TaskID, err.Error())
		return err
	}

	p.store.Complete(job.TaskID, result)
	return nil
}
