package contentcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerbass/guitarchops/internal/database"
	"github.com/bakerbass/guitarchops/internal/models"
)

func newTestService(t *testing.T) CacheService {
	t.Helper()
	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return NewService(NewRepository(db.DB))
}

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.bin")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestKeyForFileStable(t *testing.T) {
	svc := newTestService(t)

	a := writeTempFile(t, []byte("some audio bytes"))
	b := writeTempFile(t, []byte("some audio bytes"))

	digestA, err := svc.KeyForFile(a)
	require.NoError(t, err)
	digestB, err := svc.KeyForFile(b)
	require.NoError(t, err)

	assert.Len(t, digestA, 64)
	assert.Equal(t, digestA, digestB, "identical content must produce identical digests")
}

func TestKeyForFileChangesWithContent(t *testing.T) {
	svc := newTestService(t)

	digestA, err := svc.KeyForFile(writeTempFile(t, []byte("some audio bytes")))
	require.NoError(t, err)
	digestB, err := svc.KeyForFile(writeTempFile(t, []byte("some audio byteZ")))
	require.NoError(t, err)

	assert.NotEqual(t, digestA, digestB, "a one-byte change must change the digest")
}

func TestKeyForFileMissing(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.KeyForFile(filepath.Join(t.TempDir(), "nope.wav"))
	assert.Error(t, err)
}

func TestPeaksRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	digest := "aaaa000000000000000000000000000000000000000000000000000000000000"

	peaks := &models.PeakSet{
		SampleRate: 44100,
		Duration:   12.5,
		Channels:   1,
		Resolutions: map[int]models.PeakEnvelope{
			100: {Min: []float64{-0.5, -0.25}, Max: []float64{0.5, 0.75}, RMS: []float64{0.3, 0.4}},
		},
	}

	require.NoError(t, svc.PutPeaks(ctx, digest, peaks))

	first, err := svc.GetPeaks(ctx, digest)
	require.NoError(t, err)
	second, err := svc.GetPeaks(ctx, digest)
	require.NoError(t, err)

	assert.Equal(t, peaks, first)
	assert.Equal(t, first, second, "repeated gets must return identical entries")
}

func TestGetPeaksMiss(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetPeaks(context.Background(), "bbbb000000000000000000000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestPutPeaksIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	digest := "cccc000000000000000000000000000000000000000000000000000000000000"

	peaks := &models.PeakSet{SampleRate: 8000, Duration: 1, Channels: 1,
		Resolutions: map[int]models.PeakEnvelope{}}

	require.NoError(t, svc.PutPeaks(ctx, digest, peaks))
	require.NoError(t, svc.PutPeaks(ctx, digest, peaks), "re-putting the same digest must not fail")

	got, err := svc.GetPeaks(ctx, digest)
	require.NoError(t, err)
	assert.Equal(t, peaks, got)
}

func TestSegmentsRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	digest := "dddd000000000000000000000000000000000000000000000000000000000000"

	result := models.NewAnalysisResult("/tmp/song.wav")
	result.Segments.Key = []models.Segment{{
		ID: "key_0", Start: 0, End: 30, Duration: 30,
		Type: models.SegmentTypeKey, Key: "C major", Confidence: 0.9,
	}}

	require.NoError(t, svc.PutSegments(ctx, digest, result))

	got, err := svc.GetSegments(ctx, digest)
	require.NoError(t, err)
	assert.Equal(t, result, got)
}

func TestSegmentsKindIsolation(t *testing.T) {
	// Peaks and segments live under the same digest without colliding.
	svc := newTestService(t)
	ctx := context.Background()
	digest := "eeee000000000000000000000000000000000000000000000000000000000000"

	require.NoError(t, svc.PutPeaks(ctx, digest, &models.PeakSet{SampleRate: 8000, Channels: 1,
		Resolutions: map[int]models.PeakEnvelope{}}))

	_, err := svc.GetSegments(ctx, digest)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestEmptyDigestRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetPeaks(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidDigest)
	assert.ErrorIs(t, svc.PutPeaks(ctx, "", &models.PeakSet{}), ErrInvalidDigest)
	_, err = svc.GetSegments(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidDigest)
	assert.ErrorIs(t, svc.PutSegments(ctx, "", models.NewAnalysisResult("x")), ErrInvalidDigest)
}
