package autosave

import (
	"context"
	"time"

	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// DefaultDelay is the quiet period before an edit is written
const DefaultDelay = 600 * time.Millisecond

// Saver debounces writes of one user's record to a Repository.
// Failed background saves are logged and dropped; the next edit retries.
type Saver struct {
	repo   *storage.Repository
	uid    string
	logger logrus.FieldLogger
	deb    *Debouncer
}

// NewSaver creates a Saver for uid. A zero delay uses DefaultDelay.
func NewSaver(repo *storage.Repository, uid string, delay time.Duration, logger logrus.FieldLogger) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Saver{
		repo:   repo,
		uid:    uid,
		logger: logger,
		deb:    NewDebouncer(delay),
	}
}

// Update schedules cv to be saved once edits settle. Only the last record
// scheduled within the window is written.
func (s *Saver) Update(cv types.CvRecord) {
	snapshot := cv.Clone()
	s.deb.Schedule(func() { s.save(snapshot) })
}

// Flush writes the pending record now, if any
func (s *Saver) Flush() bool {
	return s.deb.Flush()
}

// Pending reports whether a save is waiting
func (s *Saver) Pending() bool {
	return s.deb.Pending()
}

// Stop drops any pending save
func (s *Saver) Stop() {
	s.deb.Cancel()
}

func (s *Saver) save(cv types.CvRecord) {
	if _, err := s.repo.Save(context.Background(), s.uid, cv); err != nil {
		s.logger.WithFields(logrus.Fields{
			"uid":   s.uid,
			"error": err.Error(),
		}).Warn("Autosave failed")
	}
}
