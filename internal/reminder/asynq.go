package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/sofiko-bakery/consultant-bot/pkg/metrics"
)

// AsynqScheduler stores reminder jobs in Redis via asynq so that they survive
// process restarts. The per-key at-most-one invariant is enforced by giving
// every job a deterministic task id and deleting the prior task before
// enqueueing a replacement.
type AsynqScheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	log       *slog.Logger
}

var _ Scheduler = (*AsynqScheduler)(nil)

// NewAsynqScheduler builds a Redis-backed scheduler.
func NewAsynqScheduler(redisOpt asynq.RedisConnOpt, log *slog.Logger) *AsynqScheduler {
	if log == nil {
		log = slog.Default()
	}

	return &AsynqScheduler{
		client:    asynq.NewClient(redisOpt),
		inspector: asynq.NewInspector(redisOpt),
		log:       log,
	}
}

// Schedule enqueues the job for delayed processing, superseding any
// outstanding job for the same key.
func (s *AsynqScheduler) Schedule(ctx context.Context, job Job) error {
	key := job.Key()

	if err := s.deleteExisting(key); err != nil {
		return err
	}

	task, err := NewPaymentReminderTask(job)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}

	_, err = s.client.EnqueueContext(ctx, task,
		asynq.TaskID(key.TaskID()),
		asynq.ProcessAt(job.FiresAt),
		asynq.MaxRetry(0),
	)
	if err != nil {
		s.log.Error("failed to enqueue reminder",
			slog.Int64("user_id", key.UserID),
			slog.String("course_id", key.CourseID),
			slog.Any("error", err),
		)
		return fmt.Errorf("enqueue reminder: %w", err)
	}

	metrics.RecordReminder("scheduled")

	return nil
}

// Cancel removes the outstanding job for the key, if any.
func (s *AsynqScheduler) Cancel(_ context.Context, key Key) error {
	return s.deleteExisting(key)
}

// Close releases the underlying asynq connections.
func (s *AsynqScheduler) Close() error {
	ierr := s.inspector.Close()
	if err := s.client.Close(); err != nil {
		return err
	}

	return ierr
}

func (s *AsynqScheduler) deleteExisting(key Key) error {
	err := s.inspector.DeleteTask(QueueReminders, key.TaskID())
	if err == nil {
		metrics.RecordReminder("superseded")
		s.log.Info("reminder superseded",
			slog.Int64("user_id", key.UserID),
			slog.String("course_id", key.CourseID),
		)
		return nil
	}

	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}

	s.log.Error("failed to delete outstanding reminder",
		slog.Int64("user_id", key.UserID),
		slog.String("course_id", key.CourseID),
		slog.Any("error", err),
	)

	return fmt.Errorf("delete reminder task: %w", err)
}
