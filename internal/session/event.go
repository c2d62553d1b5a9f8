package session

// EventKind enumerates the inbound commands and button taps the machine understands.
type EventKind string

const (
	// EventStart resets the conversation to the main menu. The cart is untouched.
	EventStart EventKind = "start"
	// EventHelp shows usage help.
	EventHelp EventKind = "help"
	// EventBack returns to the main menu.
	EventBack EventKind = "back"
	// EventSelectCourses opens the course list.
	EventSelectCourses EventKind = "select_courses"
	// EventSelectBakery opens the bakery menu.
	EventSelectBakery EventKind = "select_bakery"
	// EventSelectCourse opens the details of the course in ID.
	EventSelectCourse EventKind = "select_course"
	// EventConfirmPay opens payment options for the course in ID and
	// schedules a payment reminder.
	EventConfirmPay EventKind = "confirm_pay"
	// EventAddItem adds the bakery item in ID to the cart.
	EventAddItem EventKind = "add_item"
	// EventCheckout moves to the order summary.
	EventCheckout EventKind = "checkout"
	// EventCancelOrder discards the cart and returns to the bakery menu.
	EventCancelOrder EventKind = "cancel_order"
	// EventConfirmContact hands the order off to contact collection.
	EventConfirmContact EventKind = "confirm_contact"
)

// Event is one inbound command or button tap, already resolved from the transport.
type Event struct {
	Kind EventKind
	// ID carries the course or bakery item identifier for events that need one.
	ID string
}
