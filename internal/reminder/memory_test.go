package reminder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type captureNotifier struct {
	mu    sync.Mutex
	jobs  []Job
	err   error
	fired chan Job
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{fired: make(chan Job, 16)}
}

func (n *captureNotifier) Notify(_ context.Context, job Job) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}

	n.jobs = append(n.jobs, job)
	n.fired <- job
	return nil
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.jobs)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func job(userID int64, courseID string, delay time.Duration) Job {
	return Job{
		UserID:     userID,
		CourseID:   courseID,
		CourseName: "Шоколадное мастерство",
		Price:      6000,
		FiresAt:    time.Now().Add(delay),
	}
}

func TestMemoryScheduler_FiresOnce(t *testing.T) {
	ctx := context.Background()
	notifier := newCaptureNotifier()
	s := NewMemoryScheduler(notifier, testLogger())
	defer s.Stop()

	require.NoError(t, s.Schedule(ctx, job(42, "3", 20*time.Millisecond)))

	select {
	case fired := <-notifier.fired:
		require.Equal(t, int64(42), fired.UserID)
		require.Equal(t, "3", fired.CourseID)
		require.Equal(t, int64(6000), fired.Price)
	case <-time.After(2 * time.Second):
		t.Fatal("reminder did not fire")
	}

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, notifier.count())
	require.False(t, s.Outstanding(Key{UserID: 42, CourseID: "3"}))
}

func TestMemoryScheduler_RescheduleSupersedes(t *testing.T) {
	ctx := context.Background()
	notifier := newCaptureNotifier()
	s := NewMemoryScheduler(notifier, testLogger())
	defer s.Stop()

	require.NoError(t, s.Schedule(ctx, job(7, "1", time.Hour)))
	require.NoError(t, s.Schedule(ctx, job(7, "1", 20*time.Millisecond)))

	select {
	case <-notifier.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("replacement reminder did not fire")
	}

	// Only the replacement job ever fires for the key.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, notifier.count())
}

func TestMemoryScheduler_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	notifier := newCaptureNotifier()
	s := NewMemoryScheduler(notifier, testLogger())
	defer s.Stop()

	require.NoError(t, s.Schedule(ctx, job(7, "1", 10*time.Millisecond)))
	require.NoError(t, s.Schedule(ctx, job(7, "2", 10*time.Millisecond)))
	require.NoError(t, s.Schedule(ctx, job(8, "1", 10*time.Millisecond)))

	deadline := time.After(2 * time.Second)
	for i := 0; i < 3; i++ {
		select {
		case <-notifier.fired:
		case <-deadline:
			t.Fatalf("only %d of 3 reminders fired", i)
		}
	}
}

func TestMemoryScheduler_CancelPreventsFire(t *testing.T) {
	ctx := context.Background()
	notifier := newCaptureNotifier()
	s := NewMemoryScheduler(notifier, testLogger())
	defer s.Stop()

	key := Key{UserID: 9, CourseID: "2"}
	require.NoError(t, s.Schedule(ctx, job(9, "2", 30*time.Millisecond)))
	require.NoError(t, s.Cancel(ctx, key))
	require.False(t, s.Outstanding(key))

	time.Sleep(100 * time.Millisecond)
	require.Zero(t, notifier.count())

	// Cancelling an absent key is a no-op.
	require.NoError(t, s.Cancel(ctx, key))
}

func TestMemoryScheduler_DeliveryFailureDropsJob(t *testing.T) {
	ctx := context.Background()
	notifier := newCaptureNotifier()
	notifier.err = errors.New("chat unreachable")
	s := NewMemoryScheduler(notifier, testLogger())
	defer s.Stop()

	key := Key{UserID: 11, CourseID: "1"}
	require.NoError(t, s.Schedule(ctx, job(11, "1", 10*time.Millisecond)))

	time.Sleep(80 * time.Millisecond)
	require.Zero(t, notifier.count())
	// The failed job is discarded, not kept for retry.
	require.False(t, s.Outstanding(key))
}

func TestMemoryScheduler_ConcurrentReschedule(t *testing.T) {
	ctx := context.Background()
	notifier := newCaptureNotifier()
	s := NewMemoryScheduler(notifier, testLogger())
	defer s.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Schedule(ctx, job(5, "1", 15*time.Millisecond))
		}()
	}
	wg.Wait()

	time.Sleep(120 * time.Millisecond)
	require.Equal(t, 1, notifier.count())
}
