// Package workers runs upload ingestion and analysis jobs off the
// request path, so clients can poll task progress while the work runs.
package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/pkg/logger"
)

// JobType identifies the kind of background work.
type JobType string

const (
	JobTypeUpload   JobType = "upload"
	JobTypeAnalysis JobType = "analysis"
)

// Job is one unit of background work. TaskID names the status record the
// job reports into.
type Job struct {
	Type   JobType
	TaskID string

	// Upload jobs.
	SourcePath   string
	OriginalName string

	// Analysis jobs.
	Digest string
	Types  []models.SegmentType
}

// Processor handles one or more job types.
type Processor interface {
	CanProcess(jobType JobType) bool
	Process(ctx context.Context, job Job) error
}

// Pool runs a fixed number of workers over a bounded job queue.
type Pool struct {
	queue      chan Job
	processors []Processor
	workers    int

	mu         sync.Mutex
	started    bool
	jobTimeout time.Duration
	stopChan   chan struct{}
	wg         sync.WaitGroup
}

// NewPool creates a pool with the given worker count and queue capacity.
func NewPool(workerCount, queueSize int) *Pool {
	return &Pool{
		queue:    make(chan Job, queueSize),
		workers:  workerCount,
		stopChan: make(chan struct{}),
	}
}

// SetJobTimeout bounds how long a single job may run. Zero means no
// limit.
func (p *Pool) SetJobTimeout(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobTimeout = d
}

// RegisterProcessor registers a job processor with the pool.
func (p *Pool) RegisterProcessor(processor Processor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processors = append(p.processors, processor)
}

// Enqueue submits a job. A full queue is reported to the caller instead
// of blocking the request path.
func (p *Pool) Enqueue(job Job) error {
	select {
	case p.queue <- job:
		return nil
	default:
		return fmt.Errorf("job queue full, rejecting %s job for task %s", job.Type, job.TaskID)
	}
}

// Start launches the workers.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}

	logger.Info().Int("workers", p.workers).Msg("starting worker pool")
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, fmt.Sprintf("worker-%d", i+1))
	}
	p.started = true
	return nil
}

// Stop drains the workers and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()

	close(p.stopChan)
	p.wg.Wait()
	logger.Info().Msg("worker pool stopped")
}

func (p *Pool) run(ctx context.Context, id string) {
	defer p.wg.Done()
	log := logger.With("workers").With().Str("worker", id).Logger()

	log.Debug().Msg("worker starting")
	defer log.Debug().Msg("worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case job := <-p.queue:
			p.process(ctx, log, job)
		}
	}
}

func (p *Pool) process(ctx context.Context, log zerolog.Logger, job Job) {
	p.mu.Lock()
	processors := p.processors
	timeout := p.jobTimeout
	p.mu.Unlock()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	for _, proc := range processors {
		if !proc.CanProcess(job.Type) {
			continue
		}
		log.Debug().Str("type", string(job.Type)).Str("task", job.TaskID).Msg("processing job")
		if err := proc.Process(ctx, job); err != nil {
			log.Error().Err(err).Str("type", string(job.Type)).Str("task", job.TaskID).Msg("job failed")
		}
		return
	}
	log.Error().Str("type", string(job.Type)).Str("task", job.TaskID).Msg("no processor for job type")
}
