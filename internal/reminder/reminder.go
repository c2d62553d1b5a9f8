// Package reminder schedules one-shot payment reminders keyed by (user, course).
package reminder

import (
	"context"
	"fmt"
	"time"
)

// Key identifies the single outstanding reminder slot for a user-course pair.
type Key struct {
	UserID   int64
	CourseID string
}

// TaskID returns the stable task identifier for this key.
func (k Key) TaskID() string {
	return fmt.Sprintf("reminder:%d:%s", k.UserID, k.CourseID)
}

// Job is a scheduled payment reminder.
type Job struct {
	UserID     int64
	CourseID   string
	CourseName string
	Price      int64
	FiresAt    time.Time
}

// Key returns the scheduling key for the job.
func (j Job) Key() Key {
	return Key{UserID: j.UserID, CourseID: j.CourseID}
}

// Notifier delivers a fired reminder to the user. The message rendering is the
// transport's concern; the scheduler only hands over the job payload.
type Notifier interface {
	Notify(ctx context.Context, job Job) error
}

// Scheduler registers, supersedes and cancels reminder jobs.
//
// At most one job may be outstanding per key: Schedule replaces any prior job
// for the same key, and the replaced job never fires. Scheduling never blocks
// the caller waiting for the delay to elapse.
type Scheduler interface {
	Schedule(ctx context.Context, job Job) error
	Cancel(ctx context.Context, key Key) error
}
