package workers

import (
	"context"

	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/internal/progress"
	"github.com/bakerbass/guitarchops/internal/services/analyzer"
	"github.com/bakerbass/guitarchops/internal/services/library"
	"github.com/bakerbass/guitarchops/internal/services/tasks"
)

// UploadResult is the payload attached to a completed upload task.
type UploadResult struct {
	FileID   string          `json:"file_id"`
	Filename string          `json:"filename"`
	Info     *models.Track   `json:"info"`
	Peaks    *models.PeakSet `json:"peaks"`
}

// UploadProcessor ingests an uploaded file and generates its peaks.
type UploadProcessor struct {
	tracks   library.TrackService
	analyzer *analyzer.Service
	store    *tasks.Store
}

// NewUploadProcessor creates a new upload processor.
func NewUploadProcessor(tracks library.TrackService, analyzerSvc *analyzer.Service, store *tasks.Store) *UploadProcessor {
	return &UploadProcessor{tracks: tracks, analyzer: analyzerSvc, store: store}
}

// CanProcess returns true for upload jobs.
func (p *UploadProcessor) CanProcess(jobType JobType) bool {
	return jobType == JobTypeUpload
}

// Process registers the upload and computes its peak envelopes.
func (p *UploadProcessor) Process(ctx context.Context, job Job) error {
	p.store.SetProgress(job.TaskID, 10, "Converting to WAV...")

	track, err := p.tracks.Register(ctx, job.SourcePath, job.OriginalName)
	if err != nil {
		p.store.Fail(job.TaskID, err.Error())
		return err
	}

	p.store.SetProgress(job.TaskID, 15, "Reading audio info...")

	sink := progress.Scaled(p.store.Sink(job.TaskID), 20, 95)
	peaks, err := p.analyzer.ComputePeaks(ctx, track, sink)
	if err != nil {
		p.store.Fail(job.TaskID, err.Error())
		return err
	}

	p.store.Complete(job.TaskID, &UploadResult{
		FileID:   track.Digest,
		Filename: job.OriginalName,
		Info:     track,
		Peaks:    peaks,
	})
	return nil
}
