package constants

const (
	SettingNotificationsEnabled = "notifications_enabled"
	SettingDefaultTime          = "default_time"
	SettingRepeatInterval       = "repeat_interval"
	SettingTimezone             = "timezone"

	// Default Settings Values
	DefaultNotificationsEnabled = false
	DefaultTime                 = "08:00"
	DefaultRepeatInterval       = 0       // minutes, 0 disables repeats
	DefaultTimezone             = "Local" // Use system local timezone by default
)
