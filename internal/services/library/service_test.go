package library

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerbass/guitarchops/internal/audio"
	"github.com/bakerbass/guitarchops/internal/database"
	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/internal/services/contentcache"
)

func newTestService(t *testing.T) (TrackService, string) {
	t.Helper()
	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	storageDir := t.TempDir()
	digester := contentcache.NewService(contentcache.NewRepository(db.DB))

	// The test converter just renders a fresh WAV instead of running
	// ffmpeg.
	convert := func(inputPath, outputPath string) error {
		return audio.WriteFile(outputPath, sine(8000, 1.0), 8000)
	}

	return NewServiceWithConverter(NewRepository(db.DB), digester, storageDir, convert), storageDir
}

func sine(sampleRate int, duration float64) []float64 {
	out := make([]float64, int(duration*float64(sampleRate)))
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate))
	}
	return out
}

func writeWAV(t *testing.T, dir, name string, duration float64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, audio.WriteFile(path, sine(8000, duration), 8000))
	return path
}

func TestRegisterWAV(t *testing.T) {
	svc, storageDir := newTestService(t)
	src := writeWAV(t, storageDir, "riff.wav", 2.0)

	track, err := svc.Register(context.Background(), src, "riff.wav")
	require.NoError(t, err)

	assert.Len(t, track.Digest, 64)
	assert.Equal(t, "riff.wav", track.OriginalName)
	assert.Equal(t, 8000, track.SampleRate)
	assert.Equal(t, 1, track.Channels)
	assert.Equal(t, int64(16000), track.Frames)
	assert.InDelta(t, 2.0, track.Duration, 1e-9)
	assert.Greater(t, track.Size, int64(0))

	// The stored WAV is renamed to its digest.
	assert.Equal(t, filepath.Join(storageDir, track.Digest+".wav"), track.Path)
	_, err = os.Stat(track.Path)
	assert.NoError(t, err)
}

func TestRegisterIdenticalContentSameTrack(t *testing.T) {
	svc, storageDir := newTestService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, writeWAV(t, storageDir, "a.wav", 1.0), "a.wav")
	require.NoError(t, err)
	second, err := svc.Register(ctx, writeWAV(t, storageDir, "b.wav", 1.0), "b.wav")
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest, "identical bytes must share a digest")

	tracks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tracks, 1, "re-registering identical content must not create a second track")
	assert.Equal(t, "b.wav", tracks[0].OriginalName, "upsert keeps the latest name")
}

func TestRegisterTranscodesNonWAV(t *testing.T) {
	svc, storageDir := newTestService(t)
	src := filepath.Join(storageDir, "song.mp3")
	require.NoError(t, os.WriteFile(src, []byte("fake mp3 bytes"), 0644))

	track, err := svc.Register(context.Background(), src, "song.mp3")
	require.NoError(t, err)

	assert.Equal(t, "song.mp3", track.OriginalName)
	assert.Equal(t, 8000, track.SampleRate)
	assert.Equal(t, ".wav", filepath.Ext(track.Path))

	// The staged source is removed once the WAV is in place.
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "staged non-WAV source must be removed after conversion")
}

func TestGetByDigest(t *testing.T) {
	svc, storageDir := newTestService(t)
	ctx := context.Background()

	track, err := svc.Register(ctx, writeWAV(t, storageDir, "a.wav", 1.0), "a.wav")
	require.NoError(t, err)

	got, err := svc.GetByDigest(ctx, track.Digest)
	require.NoError(t, err)
	assert.Equal(t, track.Digest, got.Digest)

	_, err = svc.GetByDigest(ctx, "feed000000000000000000000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrTrackNotFound)

	_, err = svc.GetByDigest(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidDigest)
}

func TestRegisterMissingFile(t *testing.T) {
	svc, storageDir := newTestService(t)

	_, err := svc.Register(context.Background(), filepath.Join(storageDir, "nope.wav"), "nope.wav")
	assert.Error(t, err)
}
