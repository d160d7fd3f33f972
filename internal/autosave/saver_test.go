package autosave

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*storage.MemoryStore
}

func (f failingStore) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSaver_WritesLastRecordAfterDelay(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := storage.NewRepository(store)
	saver := NewSaver(repo, "u1", 20*time.Millisecond, quietLogger())

	saver.Update(types.CvRecord{TargetRole: "first"})
	saver.Update(types.CvRecord{TargetRole: "second"})
	saver.Update(types.CvRecord{TargetRole: "third"})

	_, found, _ := store.Get(context.Background(), "cvData:v1:u1")
	assert.False(t, found, "nothing is written before the delay")

	assert.Eventually(t, func() bool {
		cv, err := repo.Load(context.Background(), "u1")
		return err == nil && cv.TargetRole == "third"
	}, time.Second, 5*time.Millisecond)
}

func TestSaver_UpdateSnapshotsRecord(t *testing.T) {
	repo := storage.NewRepository(storage.NewMemoryStore())
	saver := NewSaver(repo, "u1", time.Hour, quietLogger())

	cv := types.CvRecord{Skills: []string{"Go"}}
	saver.Update(cv)
	cv.Skills[0] = "Rust"

	require.True(t, saver.Flush())
	loaded, err := repo.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, loaded.Skills)
}

func TestSaver_StopDropsPendingSave(t *testing.T) {
	store := storage.NewMemoryStore()
	saver := NewSaver(storage.NewRepository(store), "u1", 10*time.Millisecond, quietLogger())

	saver.Update(types.CvRecord{TargetRole: "x"})
	saver.Stop()
	assert.False(t, saver.Pending())

	time.Sleep(40 * time.Millisecond)
	_, found, _ := store.Get(context.Background(), "cvData:v1:u1")
	assert.False(t, found)
}

func TestSaver_FailuresAreLoggedNotRaised(t *testing.T) {
	logger, hook := test.NewNullLogger()
	repo := storage.NewRepository(failingStore{storage.NewMemoryStore()})
	saver := NewSaver(repo, "u1", time.Hour, logger)

	saver.Update(types.CvRecord{})
	require.True(t, saver.Flush())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Autosave failed", entry.Message)
	assert.Contains(t, entry.Data["error"], "quota exceeded")
}

func TestNewSaver_DefaultDelay(t *testing.T) {
	saver := NewSaver(storage.NewRepository(storage.NewMemoryStore()), "", 0, quietLogger())
	assert.Equal(t, DefaultDelay, saver.deb.delay)
}

func TestRegistry(t *testing.T) {
	store := storage.NewMemoryStore()
	reg := NewRegistry(storage.NewRepository(store), time.Hour, quietLogger())

	assert.Same(t, reg.For("u1"), reg.For("u1"))
	assert.NotSame(t, reg.For("u1"), reg.For("u2"))

	reg.For("u1").Update(types.CvRecord{TargetRole: "a"})
	reg.For("u2").Update(types.CvRecord{TargetRole: "b"})
	assert.Equal(t, 2, reg.FlushAll())
	assert.Equal(t, 0, reg.FlushAll())

	_, found, _ := store.Get(context.Background(), "cvData:v1:u2")
	assert.True(t, found)
}

func TestRegistry_FlushOne(t *testing.T) {
	store := storage.NewMemoryStore()
	reg := NewRegistry(storage.NewRepository(store), time.Hour, quietLogger())

	assert.False(t, reg.Flush("nobody"))

	reg.For("u1").Update(types.CvRecord{TargetRole: "a"})
	reg.For("u2").Update(types.CvRecord{TargetRole: "b"})
	assert.True(t, reg.Flush("u1"))
	assert.False(t, reg.Flush("u1"))
	assert.True(t, reg.For("u2").Pending())

	_, found, _ := store.Get(context.Background(), "cvData:v1:u1")
	assert.True(t, found)
	reg.For("u2").Stop()
}

// blockingStore holds every Set until release is closed
type blockingStore struct {
	*storage.MemoryStore
	started chan struct{}
	release chan struct{}
}

func newBlockingStore() *blockingStore {
	return &blockingStore{
		MemoryStore: storage.NewMemoryStore(),
		started:     make(chan struct{}, 1),
		release:     make(chan struct{}),
	}
}

func (b *blockingStore) Set(ctx context.Context, key, value string) error {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-b.release
	return b.MemoryStore.Set(ctx, key, value)
}

func TestRegistry_FlushWaitsForRunningSave(t *testing.T) {
	store := newBlockingStore()
	reg := NewRegistry(storage.NewRepository(store), 5*time.Millisecond, quietLogger())
	defer reg.Stop()

	reg.For("u1").Update(types.CvRecord{TargetRole: "autosaved"})
	select {
	case <-store.started:
	case <-time.After(time.Second):
		t.Fatal("background save did not start")
	}

	flushed := make(chan bool, 1)
	go func() { flushed <- reg.Flush("u1") }()

	select {
	case <-flushed:
		t.Fatal("Flush returned while a save was still running")
	case <-time.After(30 * time.Millisecond):
	}

	close(store.release)
	select {
	case pending := <-flushed:
		assert.False(t, pending, "the running save had already claimed the record")
	case <-time.After(time.Second):
		t.Fatal("Flush did not return")
	}

	value, found, err := store.Get(context.Background(), "cvData:v1:u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, value, "autosaved")
}

func TestSaver_StopWaitsForRunningSave(t *testing.T) {
	store := newBlockingStore()
	saver := NewSaver(storage.NewRepository(store), "u1", 5*time.Millisecond, quietLogger())

	saver.Update(types.CvRecord{TargetRole: "older"})
	<-store.started

	stopped := make(chan struct{})
	go func() {
		saver.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a save was still running")
	case <-time.After(30 * time.Millisecond):
	}
	close(store.release)
	<-stopped
}

func TestRegistry_EvictIdle(t *testing.T) {
	reg := NewRegistry(storage.NewRepository(storage.NewMemoryStore()), time.Hour, quietLogger())
	defer reg.Stop()

	reg.For("idle")
	reg.For("busy").Update(types.CvRecord{TargetRole: "pending"})
	require.Equal(t, 2, reg.Len())

	assert.Equal(t, 0, reg.evictIdle(time.Now().Add(-time.Minute)), "recently used savers stay")
	assert.Equal(t, 1, reg.evictIdle(time.Now().Add(time.Minute)), "savers with a pending save stay")
	assert.Equal(t, 1, reg.Len())
	assert.True(t, reg.For("busy").Pending())

	assert.False(t, reg.Flush("idle"))
	reg.For("busy").Stop()
}

func TestRegistry_StopIsIdempotent(t *testing.T) {
	reg := NewRegistry(storage.NewRepository(storage.NewMemoryStore()), time.Hour, quietLogger())
	reg.Stop()
	assert.NotPanics(t, reg.Stop)
}
