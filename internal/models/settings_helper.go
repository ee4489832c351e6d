package models

import (
	"fmt"

	"github.com/julianstephens/pharmtrack/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingDefaultTime:
			settings.DefaultTime = value
		case constants.SettingRepeatInterval:
			if _, err := fmt.Sscanf(value, "%d", &settings.RepeatInterval); err != nil {
				return Settings{}, fmt.Errorf("parsing repeat_interval: %w", err)
			}
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingDefaultTime:          settings.DefaultTime,
		constants.SettingRepeatInterval:       fmt.Sprintf("%d", settings.RepeatInterval),
		constants.SettingTimezone:             settings.Timezone,
	}
}

// DefaultSettings returns the settings a fresh store starts with.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		DefaultTime:          constants.DefaultTime,
		RepeatInterval:       constants.DefaultRepeatInterval,
		Timezone:             constants.DefaultTimezone,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.DefaultTime == "" {
		settings.DefaultTime = constants.DefaultTime
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
