package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sofiko-bakery/consultant-bot/internal/catalog"
	"github.com/sofiko-bakery/consultant-bot/internal/reminder"
)

type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []reminder.Job
	cancelled []reminder.Key
}

func (r *recordingScheduler) Schedule(_ context.Context, job reminder.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, job)
	return nil
}

func (r *recordingScheduler) Cancel(_ context.Context, key reminder.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled = append(r.cancelled, key)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMachine() (*Machine, *recordingScheduler) {
	sched := &recordingScheduler{}
	m := NewMachine(catalog.NewStatic(), sched, 24*time.Hour, testLogger())
	return m, sched
}

func TestMachine_MainMenuNavigation(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMachine()

	testCases := []struct {
		name       string
		event      Event
		wantState  State
		wantScreen Screen
	}{
		{"courses", Event{Kind: EventSelectCourses}, StateBrowsingCourses, ScreenCourseList},
		{"bakery", Event{Kind: EventSelectBakery}, StateBuildingOrder, ScreenBakeryMenu},
		{"help", Event{Kind: EventHelp}, StateMainMenu, ScreenHelp},
		{"unknown event redisplays", Event{Kind: EventCheckout}, StateMainMenu, ScreenMainMenu},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession(1)
			render := m.Handle(ctx, s, tc.event)
			require.Equal(t, tc.wantState, s.State)
			require.Equal(t, tc.wantScreen, render.Screen)
		})
	}
}

func TestMachine_StartResetsStateKeepsCart(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMachine()
	s := NewSession(1)

	m.Handle(ctx, s, Event{Kind: EventSelectBakery})
	m.Handle(ctx, s, Event{Kind: EventAddItem, ID: "1"})
	require.Equal(t, int64(1500), s.Cart.Total())

	render := m.Handle(ctx, s, Event{Kind: EventStart})
	require.Equal(t, StateMainMenu, s.State)
	require.Equal(t, ScreenMainMenu, render.Screen)
	require.Equal(t, int64(1500), s.Cart.Total(), "cart must survive /start")
}

func TestMachine_CourseBrowsing(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMachine()
	s := NewSession(1)

	m.Handle(ctx, s, Event{Kind: EventSelectCourses})

	render := m.Handle(ctx, s, Event{Kind: EventSelectCourse, ID: "2"})
	require.Equal(t, StateViewingPayment, s.State)
	require.Equal(t, ScreenCourseDetail, render.Screen)
	require.Equal(t, "Продвинутые техники декорирования", render.Course.Name)
	require.Equal(t, int64(7500), render.Course.Price)

	// Back to the list.
	render = m.Handle(ctx, s, Event{Kind: EventSelectCourses})
	require.Equal(t, StateBrowsingCourses, s.State)
	require.Equal(t, ScreenCourseList, render.Screen)
	require.Len(t, render.Courses, 3)
}

func TestMachine_UnknownCourseStaysRecoverable(t *testing.T) {
	ctx := context.Background()
	m, sched := newTestMachine()
	s := NewSession(1)

	m.Handle(ctx, s, Event{Kind: EventSelectCourses})

	render := m.Handle(ctx, s, Event{Kind: EventSelectCourse, ID: "99"})
	require.Equal(t, StateBrowsingCourses, s.State)
	require.Equal(t, ScreenCourseList, render.Screen)
	require.Equal(t, NoticeCourseNotFound, render.Notice)

	// confirmPay on an unknown course falls back to the course list and
	// schedules nothing.
	m.Handle(ctx, s, Event{Kind: EventSelectCourse, ID: "1"})
	render = m.Handle(ctx, s, Event{Kind: EventConfirmPay, ID: "nope"})
	require.Equal(t, StateBrowsingCourses, s.State)
	require.Equal(t, NoticeCourseNotFound, render.Notice)
	require.Empty(t, sched.scheduled)
}

func TestMachine_ConfirmPaySchedulesReminder(t *testing.T) {
	ctx := context.Background()
	m, sched := newTestMachine()
	s := NewSession(77)

	m.Handle(ctx, s, Event{Kind: EventSelectCourses})
	m.Handle(ctx, s, Event{Kind: EventSelectCourse, ID: "1"})

	before := time.Now()
	render := m.Handle(ctx, s, Event{Kind: EventConfirmPay, ID: "1"})
	require.Equal(t, StateViewingPayment, s.State)
	require.Equal(t, ScreenPaymentOptions, render.Screen)

	require.Len(t, sched.scheduled, 1)
	job := sched.scheduled[0]
	require.Equal(t, int64(77), job.UserID)
	require.Equal(t, "1", job.CourseID)
	require.Equal(t, "Основы кондитерского искусства", job.CourseName)
	require.Equal(t, int64(5000), job.Price)
	require.WithinDuration(t, before.Add(24*time.Hour), job.FiresAt, 5*time.Second)

	// Confirming again reschedules the same key; superseding is the
	// scheduler's contract.
	m.Handle(ctx, s, Event{Kind: EventConfirmPay, ID: "1"})
	require.Len(t, sched.scheduled, 2)
	require.Equal(t, sched.scheduled[0].Key(), sched.scheduled[1].Key())
}

func TestMachine_BakeryOrderFlow(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMachine()
	s := NewSession(5)

	m.Handle(ctx, s, Event{Kind: EventSelectBakery})

	// Checkout with an empty cart stays on the menu.
	render := m.Handle(ctx, s, Event{Kind: EventCheckout})
	require.Equal(t, StateBuildingOrder, s.State)
	require.Equal(t, ScreenBakeryMenu, render.Screen)
	require.Equal(t, NoticeEmptyOrder, render.Notice)

	m.Handle(ctx, s, Event{Kind: EventAddItem, ID: "2"})
	m.Handle(ctx, s, Event{Kind: EventAddItem, ID: "2"})
	render = m.Handle(ctx, s, Event{Kind: EventAddItem, ID: "3"})
	require.Equal(t, NoticeItemAdded, render.Notice)
	require.Equal(t, "Макаронс (набор 12 шт.)", render.AddedItem)
	require.Equal(t, int64(2800), render.Total)

	require.Len(t, render.Lines, 2)
	require.Equal(t, "2", render.Lines[0].ItemID)
	require.Equal(t, 2, render.Lines[0].Quantity)
	require.Equal(t, int64(800), render.Lines[0].UnitPrice)
	require.Equal(t, "3", render.Lines[1].ItemID)
	require.Equal(t, 1, render.Lines[1].Quantity)

	render = m.Handle(ctx, s, Event{Kind: EventCheckout})
	require.Equal(t, StateCheckingOut, s.State)
	require.Equal(t, ScreenCheckoutSummary, render.Screen)
	require.Equal(t, int64(2800), render.Total)

	render = m.Handle(ctx, s, Event{Kind: EventCancelOrder})
	require.Equal(t, StateBuildingOrder, s.State)
	require.Equal(t, ScreenBakeryMenu, render.Screen)
	require.True(t, s.Cart.IsEmpty())
	require.Zero(t, render.Total)
}

func TestMachine_UnknownItemStaysBuilding(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMachine()
	s := NewSession(5)

	m.Handle(ctx, s, Event{Kind: EventSelectBakery})
	render := m.Handle(ctx, s, Event{Kind: EventAddItem, ID: "42"})
	require.Equal(t, StateBuildingOrder, s.State)
	require.Equal(t, NoticeItemNotFound, render.Notice)
	require.True(t, s.Cart.IsEmpty())
}

func TestMachine_CheckoutHandoff(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMachine()
	s := NewSession(5)

	m.Handle(ctx, s, Event{Kind: EventSelectBakery})
	m.Handle(ctx, s, Event{Kind: EventAddItem, ID: "4"})
	m.Handle(ctx, s, Event{Kind: EventCheckout})

	// Contact handoff is terminal for this flow; the session stays in
	// checkout and the cart is preserved.
	render := m.Handle(ctx, s, Event{Kind: EventConfirmContact})
	require.Equal(t, StateCheckingOut, s.State)
	require.Equal(t, ScreenContactPrompt, render.Screen)
	require.Equal(t, int64(900), render.Total)

	// Returning to the menu keeps the order.
	render = m.Handle(ctx, s, Event{Kind: EventSelectBakery})
	require.Equal(t, StateBuildingOrder, s.State)
	require.Equal(t, int64(900), render.Total)
}

func TestMachine_ViewingPaymentRedisplay(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMachine()
	s := NewSession(5)

	m.Handle(ctx, s, Event{Kind: EventSelectCourses})
	m.Handle(ctx, s, Event{Kind: EventSelectCourse, ID: "3"})

	// An event this state does not define repaints the course detail.
	render := m.Handle(ctx, s, Event{Kind: EventCheckout})
	require.Equal(t, StateViewingPayment, s.State)
	require.Equal(t, ScreenCourseDetail, render.Screen)
	require.Equal(t, "3", render.Course.ID)
}
