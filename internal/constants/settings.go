package constants

const (
	// Config keys
	ConfigDatabase               = "database"
	ConfigProfile                = "profile"
	ConfigDebug                  = "debug"
	ConfigNotificationsEnabled   = "notifications.enabled"
	ConfigRefillDaysThreshold    = "refill.days_threshold"
	ConfigRefillRefillsThreshold = "refill.refills_threshold"
	ConfigReportDays             = "report.days"

	// EnvPrefix is prepended to upper-cased config keys when reading the environment
	EnvPrefix = "DOSELOG"
	// EnvDBConnection holds a PostgreSQL connection string with credentials
	EnvDBConnection = "DOSELOG_DB_CONNECTION"

	// Default profile values
	DefaultTimezone        = "UTC"
	DefaultWindowMorning   = "06:00"
	DefaultWindowAfternoon = "12:00"
	DefaultWindowEvening   = "17:00"
	DefaultWindowBedtime   = "21:00"
)
