package reminder

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskTypePaymentReminder is the asynq task type for payment reminders.
const TaskTypePaymentReminder = "payment:reminder"

// QueueReminders is the asynq queue dedicated to reminder delivery.
const QueueReminders = "reminders"

// PaymentReminderPayload is the serialized reminder job carried by the task.
type PaymentReminderPayload struct {
	UserID     int64  `json:"user_id"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Price      int64  `json:"price"`
	FiresAt    int64  `json:"fires_at"`
}

// NewPaymentReminderTask builds an asynq task for the job.
func NewPaymentReminderTask(job Job) (*asynq.Task, error) {
	payload, err := json.Marshal(PaymentReminderPayload{
		UserID:     job.UserID,
		CourseID:   job.CourseID,
		CourseName: job.CourseName,
		Price:      job.Price,
		FiresAt:    job.FiresAt.Unix(),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskTypePaymentReminder, payload, asynq.Queue(QueueReminders)), nil
}

// jobFromPayload restores the Job carried by a task payload.
func jobFromPayload(p PaymentReminderPayload) Job {
	return Job{
		UserID:     p.UserID,
		CourseID:   p.CourseID,
		CourseName: p.CourseName,
		Price:      p.Price,
		FiresAt:    time.Unix(p.FiresAt, 0),
	}
}
