// Package chunker provides bounded-memory, seekable iteration over a
// decoded audio stream, yielding overlapping mono time windows.
package chunker

import (
	"fmt"

	"github.com/bakerbass/guitarchops/internal/audio"
)

// Default chunking parameters.
const (
	DefaultChunkDuration = 30.0
	DefaultOverlapRatio  = 0.1
)

// Config controls window size and overlap.
type Config struct {
	ChunkDuration float64 // seconds
	OverlapRatio  float64 // must be in [0, 1)
}

// DefaultConfig returns the standard 30-second windows with 10% overlap.
func DefaultConfig() Config {
	return Config{
		ChunkDuration: DefaultChunkDuration,
		OverlapRatio:  DefaultOverlapRatio,
	}
}

// Chunk is one contiguous mono sample window plus its [Start, End) time
// bounds in seconds relative to file start. It is consumed by a single
// estimator call and not retained.
type Chunk struct {
	Samples []float64
	Start   float64
	End     float64
}

// Source iterates overlapping windows over an audio stream via random
// access. It never holds more than one window in memory.
type Source struct {
	stream  audio.Stream
	cfg     Config
	chunk   int64 // window length in samples
	step    int64 // hop between window starts in samples
	current int64 // next window start offset
	done    bool
}

// Open validates cfg against the stream and returns an iterator
// positioned at the start of the stream.
func Open(stream audio.Stream, cfg Config) (*Source, error) {
	if cfg.ChunkDuration <= 0 {
		return nil, fmt.Errorf("chunk duration must be positive, got %v", cfg.ChunkDuration)
	}
	if cfg.OverlapRatio < 0 || cfg.OverlapRatio >= 1 {
		return nil, fmt.Errorf("overlap ratio must be in [0, 1), got %v", cfg.OverlapRatio)
	}

	chunkSamples := int64(cfg.ChunkDuration * float64(stream.SampleRate()))
	if chunkSamples <= 0 {
		return nil, fmt.Errorf("chunk of %v seconds is empty at %d Hz", cfg.ChunkDuration, stream.SampleRate())
	}
	stepSamples := chunkSamples - int64(float64(chunkSamples)*cfg.OverlapRatio)
	if stepSamples <= 0 {
		stepSamples = 1
	}

	return &Source{
		stream: stream,
		cfg:    cfg,
		chunk:  chunkSamples,
		step:   stepSamples,
	}, nil
}

// Next returns the next window and whether it is the last one. After the
// final, possibly-short window has been yielded once, Next reports
// exhaustion with ok == false. A failed read terminates iteration and
// surfaces the decode error.
func (s *Source) Next() (chunk Chunk, last bool, ok bool, err error) {
	if s.done || s.current >= s.stream.Frames() {
		return Chunk{}, false, false, nil
	}

	samples, err := s.stream.ReadMonoRange(s.current, s.chunk)
	if err != nil {
		s.done = true
		return Chunk{}, false, false, err
	}

	sr := float64(s.stream.SampleRate())
	chunk = Chunk{
		Samples: samples,
		Start:   float64(s.current) / sr,
		End:     float64(s.current+int64(len(samples))) / sr,
	}

	// A short read means end of stream; yield it, then stop.
	if int64(len(samples)) < s.chunk {
		s.done = true
		return chunk, true, true, nil
	}

	s.current += s.step
	if s.current >= s.stream.Frames() {
		s.done = true
		return chunk, true, true, nil
	}
	return chunk, false, true, nil
}
