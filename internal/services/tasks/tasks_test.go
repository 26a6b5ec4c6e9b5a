package tasks

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	store := NewStore()

	created := store.Create("upload_abc")
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, 0, created.Progress)

	got, ok := store.Get("upload_abc")
	require.True(t, ok)
	assert.Equal(t, "upload_abc", got.ID)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestProgressMonotonic(t *testing.T) {
	store := NewStore()
	store.Create("analysis_x")

	store.SetProgress("analysis_x", 40, "Detecting key...")
	store.SetProgress("analysis_x", 20, "stale update")

	got, _ := store.Get("analysis_x")
	assert.Equal(t, 40, got.Progress, "progress must never regress")
	assert.Equal(t, StatusRunning, got.Status)
	assert.Equal(t, "stale update", got.Message)
}

func TestProgressClampedBelowHundred(t *testing.T) {
	store := NewStore()
	store.Create("t")

	store.SetProgress("t", 250, "almost there")

	got, _ := store.Get("t")
	assert.Equal(t, 99, got.Progress, "100 is reserved for completion")
}

func TestCompleteReportsHundredOnce(t *testing.T) {
	store := NewStore()
	store.Create("t")

	store.Complete("t", map[string]string{"file_id": "abc"})

	got, _ := store.Get("t")
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.NotNil(t, got.Result)

	// Late progress updates after completion are ignored.
	store.SetProgress("t", 10, "late")
	got, _ = store.Get("t")
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, StatusCompleted, got.Status)
}

func TestFail(t *testing.T) {
	store := NewStore()
	store.Create("t")
	store.SetProgress("t", 30, "working")

	store.Fail("t", "decode failed")

	got, _ := store.Get("t")
	assert.Equal(t, StatusError, got.Status)
	assert.Equal(t, "decode failed", got.Error)
	assert.Equal(t, "Error: decode failed", got.Message)
	assert.Equal(t, 30, got.Progress, "failure must not fake progress")
}

func TestGetReturnsSnapshot(t *testing.T) {
	store := NewStore()
	store.Create("t")

	snap, _ := store.Get("t")
	snap.Progress = 77

	got, _ := store.Get("t")
	assert.Equal(t, 0, got.Progress, "mutating a snapshot must not touch the store")
}

func TestSinkReportsIntoTask(t *testing.T) {
	store := NewStore()
	store.Create("t")

	sink := store.Sink("t")
	sink.Report(55, "Generating peaks...")

	got, _ := store.Get("t")
	assert.Equal(t, 55, got.Progress)
	assert.Equal(t, "Generating peaks...", got.Message)
}

func TestConcurrentUpdates(t *testing.T) {
	store := NewStore()
	store.Create("t")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			store.SetProgress("t", p, fmt.Sprintf("step %d", p))
		}(i)
	}
	wg.Wait()

	got, _ := store.Get("t")
	assert.Equal(t, 49, got.Progress)
	assert.Equal(t, StatusRunning, got.Status)
}
