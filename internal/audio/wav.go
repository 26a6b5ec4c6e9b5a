package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	formatPCM   = 1
	formatFloat = 3
)

// File is an open WAV file supporting random-access sample reads.
// Sample rate, channel count and frame count are fixed at open time.
// The file is owned by whoever opened it and must be closed once the
// operation that opened it finishes.
type File struct {
	f          *os.File
	path       string
	format     uint16
	sampleRate int
	channels   int
	bitsPer    int
	dataPos    int64
	frames     int64
}

// Open opens a WAV file and parses its header.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrDecode, path, err)
	}

	wf := &File{f: f, path: path}
	if err := wf.parseHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return wf, nil
}

func (w *File) parseHeader() error {
	var riff [12]byte
	if _, err := io.ReadFull(w.f, riff[:]); err != nil {
		return fmt.Errorf("%w: reading RIFF header: %v", ErrDecode, err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return fmt.Errorf("%w: %s is not a WAV file", ErrDecode, w.path)
	}

	var haveFmt bool
	pos := int64(12)
	for {
		var hdr [8]byte
		if _, err := w.f.ReadAt(hdr[:], pos); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return fmt.Errorf("%w: reading chunk header: %v", ErrDecode, err)
		}
		chunkID := string(hdr[0:4])
		chunkSize := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch chunkID {
		case "fmt ":
			var fmtBuf [16]byte
			if _, err := w.f.ReadAt(fmtBuf[:], pos+8); err != nil {
				return fmt.Errorf("%w: reading fmt chunk: %v", ErrDecode, err)
			}
			w.format = binary.LittleEndian.Uint16(fmtBuf[0:2])
			w.channels = int(binary.LittleEndian.Uint16(fmtBuf[2:4]))
			w.sampleRate = int(binary.LittleEndian.Uint32(fmtBuf[4:8]))
			w.bitsPer = int(binary.LittleEndian.Uint16(fmtBuf[14:16]))
			haveFmt = true
		case "data":
			if !haveFmt {
				return fmt.Errorf("%w: data chunk before fmt chunk", ErrDecode)
			}
			w.dataPos = pos + 8
			frameSize := int64(w.channels * w.bitsPer / 8)
			if frameSize <= 0 {
				return fmt.Errorf("%w: invalid frame size", ErrDecode)
			}
			w.frames = chunkSize / frameSize
			return w.checkEncoding()
		}

		// Chunks are word-aligned
		pos += 8 + chunkSize
		if chunkSize%2 == 1 {
			pos++
		}
	}

	return fmt.Errorf("%w: no data chunk found", ErrDecode)
}

func (w *File) checkEncoding() error {
	if w.channels <= 0 || w.sampleRate <= 0 {
		return fmt.Errorf("%w: invalid fmt chunk", ErrDecode)
	}
	switch {
	case w.format == formatPCM && (w.bitsPer == 16 || w.bitsPer == 24 || w.bitsPer == 32):
		return nil
	case w.format == formatFloat && w.bitsPer == 32:
		return nil
	}
	return fmt.Errorf("%w: format %d with %d bits per sample", ErrUnsupported, w.format, w.bitsPer)
}

// SampleRate returns the sample rate in Hz.
func (w *File) SampleRate() int { return w.sampleRate }

// Channels returns the channel count of the underlying file.
func (w *File) Channels() int { return w.channels }

// Frames returns the total number of sample frames.
func (w *File) Frames() int64 { return w.frames }

// Duration returns the file duration in seconds.
func (w *File) Duration() float64 {
	return float64(w.frames) / float64(w.sampleRate)
}

// Path returns the path the file was opened from.
func (w *File) Path() string { return w.path }

// Close closes the underlying file.
func (w *File) Close() error { return w.f.Close() }

// ReadMonoRange reads up to n frames starting at frame offset start and
// mixes all channels down to mono by unweighted averaging. Reads past the
// end of the stream are truncated; a start at or past the end returns an
// empty slice.
func (w *File) ReadMonoRange(start, n int64) ([]float64, error) {
	if start < 0 || n < 0 {
		return nil, fmt.Errorf("%w: negative range", ErrSeek)
	}
	if start >= w.frames {
		return []float64{}, nil
	}
	if start+n > w.frames {
		n = w.frames - start
	}
	if n == 0 {
		return []float64{}, nil
	}

	frameSize := int64(w.channels * w.bitsPer / 8)
	buf := make([]byte, n*frameSize)
	if _, err := w.f.ReadAt(buf, w.dataPos+start*frameSize); err != nil {
		return nil, fmt.Errorf("%w: reading %d frames at %d: %v", ErrSeek, n, start, err)
	}

	out := make([]float64, n)
	bytesPer := w.bitsPer / 8
	for i := int64(0); i < n; i++ {
		var sum float64
		for c := 0; c < w.channels; c++ {
			off := (i*int64(w.channels) + int64(c)) * int64(bytesPer)
			sum += w.decodeSample(buf[off : off+int64(bytesPer)])
		}
		out[i] = sum / float64(w.channels)
	}
	return out, nil
}

// ReadAllMono reads the entire stream as one mono signal.
func (w *File) ReadAllMono() ([]float64, error) {
	return w.ReadMonoRange(0, w.frames)
}

func (w *File) decodeSample(b []byte) float64 {
	switch {
	case w.format == formatPCM && w.bitsPer == 16:
		return float64(int16(binary.LittleEndian.Uint16(b))) / 32768.0
	case w.format == formatPCM && w.bitsPer == 24:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if v&0x800000 != 0 {
			v |= ^int32(0xFFFFFF)
		}
		return float64(v) / 8388608.0
	case w.format == formatPCM && w.bitsPer == 32:
		return float64(int32(binary.LittleEndian.Uint32(b))) / 2147483648.0
	case w.format == formatFloat && w.bitsPer == 32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	}
	return 0
}
