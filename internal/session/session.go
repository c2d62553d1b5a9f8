// Package session manages per-user conversation state for the bot.
package session

import (
	"sync"

	"github.com/sofiko-bakery/consultant-bot/internal/cart"
)

// State represents a conversation state in the per-user finite-state machine.
type State string

const (
	// StateMainMenu indicates that the user is at the top-level menu.
	StateMainMenu State = "main_menu"
	// StateBrowsingCourses indicates that the user is picking a course.
	StateBrowsingCourses State = "browsing_courses"
	// StateViewingPayment indicates that the user is viewing a course's
	// details or its payment options.
	StateViewingPayment State = "viewing_payment"
	// StateBuildingOrder indicates that the user is assembling a bakery order.
	StateBuildingOrder State = "building_order"
	// StateCheckingOut indicates that the user is reviewing the order summary.
	StateCheckingOut State = "checking_out"
)

// Session is one user's conversation memory: current state plus the order
// cart. A session lives for the process lifetime and is never evicted.
//
// All event handling for one session is serialized by its own mutex; sessions
// of different users share nothing and are processed independently.
type Session struct {
	mu sync.Mutex

	UserID int64
	State  State
	// CourseID is the course the user last opened, used to repaint the
	// course screens when an event does not carry an id.
	CourseID string
	Cart     *cart.Cart
}

// NewSession creates a session at the main menu with an empty cart.
func NewSession(userID int64) *Session {
	return &Session{
		UserID: userID,
		State:  StateMainMenu,
		Cart:   cart.New(),
	}
}

var transitionRecorder = func(from, to string) {}

// RegisterTransitionRecorder allows external packages to observe state transitions.
func RegisterTransitionRecorder(recorder func(from, to string)) {
	if recorder == nil {
		transitionRecorder = func(string, string) {}
		return
	}

	transitionRecorder = recorder
}
