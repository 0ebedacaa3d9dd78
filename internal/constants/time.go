package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is accepted for explicit dose timestamps given on the command line
	DateTimeFormat = "2006-01-02 15:04"
)
