package autosave

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_RunsOnlyLastScheduled(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	var ran []int
	for i := 1; i <= 5; i++ {
		i := i
		d.Schedule(func() {
			mu.Lock()
			ran = append(ran, i)
			mu.Unlock()
		})
	}
	assert.True(t, d.Pending())

	assert.Eventually(t, func() bool { return !d.Pending() }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, ran)
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	d.Schedule(func() { calls.Add(1) })
	assert.True(t, d.Cancel())
	assert.False(t, d.Cancel())
	assert.False(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncer_FlushRunsImmediatelyOnce(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var calls atomic.Int32

	d.Schedule(func() { calls.Add(1) })
	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())

	assert.False(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_RescheduleAfterRun(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32

	d.Schedule(func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	d.Schedule(func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_FlushWaitsForTimerRun(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	d.Schedule(func() {
		close(started)
		<-release
		finished.Store(true)
	})
	<-started

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	assert.False(t, d.Flush(), "the timer already claimed the function")
	assert.True(t, finished.Load(), "Flush returns only after the running function")
}
