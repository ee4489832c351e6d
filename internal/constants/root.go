package constants

const (
	AppName            = "pharmtrack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/pharmtrack/pharmtrack.db"
	Version            = "v0.3.0"

	// EnvConnection names the environment variable holding a PostgreSQL connection string
	EnvConnection = "PHARMTRACK_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "pharmtrack-"
	BackupFileSuffix = ".db"
)

// SessionState represents the current state of the TUI application
type SessionState int

// Session States. The first five are tabs, in display order.
const (
	StateDay SessionState = iota
	StateCalendar
	StateCourses
	StatePackages
	StateSettings
	StateEditSettings
	StateConfirmDelete
)
