package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sofiko-bakery/consultant-bot/internal/catalog"
	"github.com/sofiko-bakery/consultant-bot/internal/reminder"
)

// DefaultReminderDelay is how long after viewing payment options the user is
// reminded about an unfinished payment.
const DefaultReminderDelay = 24 * time.Hour

// Machine drives conversation transitions. It owns no I/O: catalog lookups,
// cart mutations and reminder scheduling are its only side effects, and every
// event produces exactly one Render for the transport.
//
// The transition function is total: an event the current state does not define
// simply redisplays the current screen.
type Machine struct {
	catalog   catalog.Catalog
	reminders reminder.Scheduler
	delay     time.Duration
	log       *slog.Logger
}

// NewMachine builds a Machine using the provided collaborators.
func NewMachine(cat catalog.Catalog, reminders reminder.Scheduler, delay time.Duration, log *slog.Logger) *Machine {
	if delay <= 0 {
		delay = DefaultReminderDelay
	}
	if log == nil {
		log = slog.Default()
	}

	return &Machine{
		catalog:   cat,
		reminders: reminders,
		delay:     delay,
		log:       log,
	}
}

// Handle applies one event to the session and returns the screen to show.
// Events for the same session are serialized on the session's mutex; event
// N is fully applied before event N+1 starts.
func (m *Machine) Handle(ctx context.Context, s *Session, ev Event) Render {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.State
	render := m.transition(ctx, s, ev)
	if s.State != from {
		transitionRecorder(string(from), string(s.State))
	}

	return render
}

func (m *Machine) transition(ctx context.Context, s *Session, ev Event) Render {
	switch ev.Kind {
	case EventStart, EventBack:
		// The cart survives a restart within the session.
		s.State = StateMainMenu
		return Render{Screen: ScreenMainMenu}
	case EventHelp:
		return Render{Screen: ScreenHelp}
	}

	switch s.State {
	case StateMainMenu:
		return m.fromMainMenu(ctx, s, ev)
	case StateBrowsingCourses:
		return m.fromBrowsingCourses(ctx, s, ev)
	case StateViewingPayment:
		return m.fromViewingPayment(ctx, s, ev)
	case StateBuildingOrder:
		return m.fromBuildingOrder(ctx, s, ev)
	case StateCheckingOut:
		return m.fromCheckingOut(ctx, s, ev)
	default:
		s.State = StateMainMenu
		return Render{Screen: ScreenMainMenu}
	}
}

func (m *Machine) fromMainMenu(ctx context.Context, s *Session, ev Event) Render {
	switch ev.Kind {
	case EventSelectCourses:
		s.State = StateBrowsingCourses
		return m.courseList(ctx, NoticeNone)
	case EventSelectBakery:
		s.State = StateBuildingOrder
		return m.bakeryMenu(ctx, s, NoticeNone, "")
	default:
		return Render{Screen: ScreenMainMenu}
	}
}

func (m *Machine) fromBrowsingCourses(ctx context.Context, s *Session, ev Event) Render {
	switch ev.Kind {
	case EventSelectCourse:
		return m.openCourse(ctx, s, ev.ID)
	default:
		return m.courseList(ctx, NoticeNone)
	}
}

func (m *Machine) fromViewingPayment(ctx context.Context, s *Session, ev Event) Render {
	switch ev.Kind {
	case EventSelectCourse:
		return m.openCourse(ctx, s, ev.ID)
	case EventSelectCourses:
		s.State = StateBrowsingCourses
		return m.courseList(ctx, NoticeNone)
	case EventConfirmPay:
		return m.confirmPay(ctx, s, ev.ID)
	default:
		// Repaint the course the user was looking at.
		course, err := m.catalog.Course(ctx, s.CourseID)
		if err != nil {
			s.State = StateBrowsingCourses
			return m.courseList(ctx, NoticeNone)
		}
		return Render{Screen: ScreenCourseDetail, Course: course}
	}
}

func (m *Machine) fromBuildingOrder(ctx context.Context, s *Session, ev Event) Render {
	switch ev.Kind {
	case EventAddItem:
		return m.addItem(ctx, s, ev.ID)
	case EventCheckout:
		if s.Cart.IsEmpty() {
			return m.bakeryMenu(ctx, s, NoticeEmptyOrder, "")
		}
		s.State = StateCheckingOut
		return Render{
			Screen: ScreenCheckoutSummary,
			Lines:  s.Cart.Lines(),
			Total:  s.Cart.Total(),
		}
	default:
		return m.bakeryMenu(ctx, s, NoticeNone, "")
	}
}

func (m *Machine) fromCheckingOut(ctx context.Context, s *Session, ev Event) Render {
	switch ev.Kind {
	case EventCancelOrder:
		s.Cart.Clear()
		s.State = StateBuildingOrder
		return m.bakeryMenu(ctx, s, NoticeNone, "")
	case EventSelectBakery:
		// Back to the menu keeping the current order.
		s.State = StateBuildingOrder
		return m.bakeryMenu(ctx, s, NoticeNone, "")
	case EventConfirmContact:
		return Render{
			Screen: ScreenContactPrompt,
			Lines:  s.Cart.Lines(),
			Total:  s.Cart.Total(),
		}
	default:
		return Render{
			Screen: ScreenCheckoutSummary,
			Lines:  s.Cart.Lines(),
			Total:  s.Cart.Total(),
		}
	}
}

func (m *Machine) openCourse(ctx context.Context, s *Session, id string) Render {
	course, err := m.catalog.Course(ctx, id)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			m.log.Error("course lookup failed", slog.String("course_id", id), slog.Any("error", err))
		}
		s.State = StateBrowsingCourses
		return m.courseList(ctx, NoticeCourseNotFound)
	}

	s.State = StateViewingPayment
	s.CourseID = course.ID

	return Render{Screen: ScreenCourseDetail, Course: course}
}

func (m *Machine) confirmPay(ctx context.Context, s *Session, id string) Render {
	course, err := m.catalog.Course(ctx, id)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			m.log.Error("course lookup failed", slog.String("course_id", id), slog.Any("error", err))
		}
		s.State = StateBrowsingCourses
		return m.courseList(ctx, NoticeCourseNotFound)
	}

	s.CourseID = course.ID

	job := reminder.Job{
		UserID:     s.UserID,
		CourseID:   course.ID,
		CourseName: course.Name,
		Price:      course.Price,
		FiresAt:    time.Now().Add(m.delay),
	}
	if err := m.reminders.Schedule(ctx, job); err != nil {
		// The conversation continues; the user just gets no reminder.
		m.log.Error("failed to schedule payment reminder",
			slog.Int64("user_id", s.UserID),
			slog.String("course_id", course.ID),
			slog.Any("error", err),
		)
	}

	return Render{Screen: ScreenPaymentOptions, Course: course}
}

func (m *Machine) addItem(ctx context.Context, s *Session, id string) Render {
	item, err := m.catalog.Item(ctx, id)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			m.log.Error("bakery item lookup failed", slog.String("item_id", id), slog.Any("error", err))
		}
		return m.bakeryMenu(ctx, s, NoticeItemNotFound, "")
	}

	s.Cart.AddItem(item.ID, item.Name, item.Price)

	return m.bakeryMenu(ctx, s, NoticeItemAdded, item.Name)
}

func (m *Machine) courseList(ctx context.Context, notice Notice) Render {
	courses, err := m.catalog.Courses(ctx)
	if err != nil {
		m.log.Error("failed to list courses", slog.Any("error", err))
	}

	return Render{Screen: ScreenCourseList, Notice: notice, Courses: courses}
}

func (m *Machine) bakeryMenu(ctx context.Context, s *Session, notice Notice, addedItem string) Render {
	items, err := m.catalog.Items(ctx)
	if err != nil {
		m.log.Error("failed to list bakery items", slog.Any("error", err))
	}

	return Render{
		Screen:    ScreenBakeryMenu,
		Notice:    notice,
		AddedItem: addedItem,
		Items:     items,
		Lines:     s.Cart.Lines(),
		Total:     s.Cart.Total(),
	}
}
