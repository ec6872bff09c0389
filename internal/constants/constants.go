package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// WeekDays is the length of every planning window; the engine plans whole weeks only.
	WeekDays = 7

	// DefaultEventDurationMin is assumed for imported calendar events that carry no end time.
	DefaultEventDurationMin = 60
)
