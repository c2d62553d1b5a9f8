package reminder

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/sofiko-bakery/consultant-bot/pkg/metrics"
)

// Worker processes due reminder tasks from the Redis queue and delivers them
// through the Notifier. Delivery failures are logged and the task is dropped;
// reminders are never retried.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *slog.Logger
}

// NewWorker constructs a Worker consuming the reminders queue.
func NewWorker(redisOpt asynq.RedisConnOpt, notifier Notifier, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Queues:      map[string]int{QueueReminders: 1},
		Concurrency: 10,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypePaymentReminder, handlePaymentReminder(notifier, log))

	return &Worker{
		server: server,
		mux:    mux,
		log:    log,
	}
}

// Run starts the processing loop in a background goroutine.
func (w *Worker) Run() {
	w.log.InfoContext(context.Background(), "reminder worker: starting processing loop")

	go func() {
		if err := w.server.Run(w.mux); err != nil {
			w.log.ErrorContext(context.Background(), "reminder worker: run failed", "error", err)
		}
	}()
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown() {
	w.log.InfoContext(context.Background(), "reminder worker: shutting down")
	w.server.Shutdown()
}

func handlePaymentReminder(notifier Notifier, log *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload PaymentReminderPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error("reminder worker: malformed payload, dropping task", slog.Any("error", err))
			return nil
		}

		job := jobFromPayload(payload)

		if err := notifier.Notify(ctx, job); err != nil {
			metrics.RecordReminder("dropped")
			log.Error("reminder delivery failed, dropping job",
				slog.Int64("user_id", job.UserID),
				slog.String("course_id", job.CourseID),
				slog.Any("error", err),
			)
			return nil
		}

		metrics.RecordReminder("fired")

		return nil
	}
}
