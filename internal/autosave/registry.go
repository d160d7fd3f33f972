package autosave

import (
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/sirupsen/logrus"
)

// Savers unused for idleSaverTTL with nothing pending are dropped
const (
	idleSaverTTL    = 10 * time.Minute
	cleanupInterval = time.Minute
)

type entry struct {
	saver    *Saver
	lastUsed time.Time
}

// Registry hands out one Saver per user so each user has a single writer
type Registry struct {
	repo   *storage.Repository
	delay  time.Duration
	logger logrus.FieldLogger

	mu     sync.Mutex
	savers map[string]*entry

	stopOnce sync.Once
	stop     chan struct{}
}

// NewRegistry creates an empty Registry and starts evicting idle savers
func NewRegistry(repo *storage.Repository, delay time.Duration, logger logrus.FieldLogger) *Registry {
	r := &Registry{
		repo:   repo,
		delay:  delay,
		logger: logger,
		savers: make(map[string]*entry),
		stop:   make(chan struct{}),
	}
	go r.cleanupLoop(cleanupInterval)
	return r
}

// For returns the Saver for uid, creating it on first use
func (r *Registry) For(uid string) *Saver {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.savers[uid]
	if !ok {
		e = &entry{saver: NewSaver(r.repo, uid, r.delay, r.logger)}
		r.savers[uid] = e
	}
	e.lastUsed = time.Now()
	return e.saver
}

// FlushAll writes every pending save, used on shutdown
func (r *Registry) FlushAll() int {
	r.mu.Lock()
	savers := make([]*Saver, 0, len(r.savers))
	for _, e := range r.savers {
		savers = append(savers, e.saver)
	}
	r.mu.Unlock()

	flushed := 0
	for _, s := range savers {
		if s.Flush() {
			flushed++
		}
	}
	return flushed
}

// Flush writes uid's pending save, if any, without creating a Saver.
// A background save already running for uid finishes before Flush returns.
func (r *Registry) Flush(uid string) bool {
	r.mu.Lock()
	e, ok := r.savers[uid]
	r.mu.Unlock()
	return ok && e.saver.Flush()
}

// Len returns the number of live savers
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.savers)
}

func (r *Registry) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := r.evictIdle(time.Now().Add(-idleSaverTTL)); n > 0 {
				r.logger.WithField("count", n).Debug("Evicted idle autosavers")
			}
		case <-r.stop:
			return
		}
	}
}

// evictIdle drops savers unused since cutoff that have nothing pending
func (r *Registry) evictIdle(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for uid, e := range r.savers {
		if e.lastUsed.Before(cutoff) && !e.saver.Pending() {
			delete(r.savers, uid)
			evicted++
		}
	}
	return evicted
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}
