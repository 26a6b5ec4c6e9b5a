// Package audio provides random-access reads over decoded audio files.
// Only WAV containers are read directly; anything else is transcoded to
// WAV at upload time before it reaches this package.
package audio

import "errors"

var (
	// ErrDecode is returned when a file cannot be opened or parsed
	ErrDecode = errors.New("audio decode failed")

	// ErrSeek is returned when a mid-stream read fails
	ErrSeek = errors.New("audio seek failed")

	// ErrUnsupported is returned for WAV encodings the reader cannot decode
	ErrUnsupported = errors.New("unsupported audio encoding")
)

// Stream is the decoding primitive the analysis pipeline depends on:
// immutable stream metadata plus random-access reads of an arbitrary
// sample range, mixed down to mono. Implemented by *File.
type Stream interface {
	SampleRate() int
	Channels() int
	Frames() int64
	ReadMonoRange(start, n int64) ([]float64, error)
}
