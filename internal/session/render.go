package session

import (
	"github.com/sofiko-bakery/consultant-bot/internal/cart"
	"github.com/sofiko-bakery/consultant-bot/internal/catalog"
)

// Screen identifies which screen the transport should draw.
type Screen string

const (
	ScreenMainMenu        Screen = "main_menu"
	ScreenHelp            Screen = "help"
	ScreenCourseList      Screen = "course_list"
	ScreenCourseDetail    Screen = "course_detail"
	ScreenPaymentOptions  Screen = "payment_options"
	ScreenBakeryMenu      Screen = "bakery_menu"
	ScreenCheckoutSummary Screen = "checkout_summary"
	ScreenContactPrompt   Screen = "contact_prompt"
)

// Notice is an optional short message shown before the screen is drawn.
type Notice string

const (
	NoticeNone           Notice = ""
	NoticeCourseNotFound Notice = "course_not_found"
	NoticeItemNotFound   Notice = "item_not_found"
	NoticeEmptyOrder     Notice = "empty_order"
	NoticeItemAdded      Notice = "item_added"
)

// Render is the machine's output: an abstract description of what to show.
// The transport turns it into platform text and buttons; the machine never
// formats display strings itself.
type Render struct {
	Screen Screen
	Notice Notice

	// AddedItem is the display name for the item-added notice.
	AddedItem string

	// Course backs the course detail and payment options screens.
	Course *catalog.Course
	// Courses backs the course list screen.
	Courses []catalog.Course
	// Items backs the bakery menu screen.
	Items []catalog.Item

	// Lines and Total back the bakery menu and checkout summary screens.
	Lines []cart.Line
	Total int64
}
