package bot

// Command constants for Telegram bot commands.
const (
	CommandStart   = "/start"
	CommandCourses = "/courses"
	CommandOrder   = "/order"
	CommandHelp    = "/help"
	CommandCancel  = "/cancel"
)
