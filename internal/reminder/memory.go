package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sofiko-bakery/consultant-bot/pkg/metrics"
)

type memoryJob struct {
	job   Job
	timer *time.Timer
}

// MemoryScheduler runs reminders on in-process timers. It is the fallback
// implementation for deployments without Redis; jobs do not survive a restart.
type MemoryScheduler struct {
	mu       sync.Mutex
	jobs     map[Key]*memoryJob
	notifier Notifier
	log      *slog.Logger
}

var _ Scheduler = (*MemoryScheduler)(nil)

// NewMemoryScheduler returns a timer-based scheduler delivering via notifier.
func NewMemoryScheduler(notifier Notifier, log *slog.Logger) *MemoryScheduler {
	if log == nil {
		log = slog.Default()
	}

	return &MemoryScheduler{
		jobs:     make(map[Key]*memoryJob),
		notifier: notifier,
		log:      log,
	}
}

// Schedule registers the job, replacing any outstanding job for the same key.
func (s *MemoryScheduler) Schedule(_ context.Context, job Job) error {
	key := job.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.jobs[key]; ok {
		existing.timer.Stop()
		delete(s.jobs, key)
		metrics.RecordReminder("superseded")
		s.log.Info("reminder superseded",
			slog.Int64("user_id", key.UserID),
			slog.String("course_id", key.CourseID),
		)
	}

	entry := &memoryJob{job: job}
	entry.timer = time.AfterFunc(time.Until(job.FiresAt), func() {
		s.fire(key, entry)
	})
	s.jobs[key] = entry
	metrics.RecordReminder("scheduled")

	return nil
}

// Cancel stops and removes the job for the key, if any. The cancelled job is
// guaranteed not to fire even if cancellation races with the fire instant.
func (s *MemoryScheduler) Cancel(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.jobs[key]; ok {
		existing.timer.Stop()
		delete(s.jobs, key)
	}

	return nil
}

// Stop cancels every outstanding job. Used on shutdown.
func (s *MemoryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.jobs {
		entry.timer.Stop()
		delete(s.jobs, key)
	}
}

// Outstanding reports whether a job is currently registered for the key.
func (s *MemoryScheduler) Outstanding(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.jobs[key]
	return ok
}

func (s *MemoryScheduler) fire(key Key, entry *memoryJob) {
	s.mu.Lock()
	current, ok := s.jobs[key]
	if !ok || current != entry {
		// Cancelled or superseded after the timer callback started.
		s.mu.Unlock()
		return
	}
	delete(s.jobs, key)
	s.mu.Unlock()

	if err := s.notifier.Notify(context.Background(), entry.job); err != nil {
		metrics.RecordReminder("dropped")
		s.log.Error("reminder delivery failed, dropping job",
			slog.Int64("user_id", key.UserID),
			slog.String("course_id", key.CourseID),
			slog.Any("error", err),
		)
		return
	}

	metrics.RecordReminder("fired")
}
