package constants

import "time"

const (
	AppName            = "doselog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/doselog"
	DefaultConfigPath  = "~/.config/doselog/doselog.db"
	DefaultProfileName = "default"
	Version            = "v0.3.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "doselog-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "doselog-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.doselog"
	TrayExecutablePrefix   = "doselog-tray"

	// Report constants
	DefaultReportDays = 30
	ReportFormatTable = "table"
	ReportFormatJSON  = "json"
	ReportFormatYAML  = "yaml"

	// Refill alert thresholds
	DefaultRefillDaysThreshold    = 7
	DefaultRefillRefillsThreshold = 1
	// UnknownDaysRemaining is reported when a medication has no daily doses configured.
	UnknownDaysRemaining  = 999.0
	DefaultRefillQuantity = 30

	// Blood pressure limits used by validation
	MinSystolic  = 50
	MaxSystolic  = 300
	MinDiastolic = 30
	MaxDiastolic = 200
	MaxStress    = 10
)
