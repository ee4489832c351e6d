package settings

import (
	"fmt"

	"github.com/julianstephens/pharmtrack/internal/cli"
	apperrors "github.com/julianstephens/pharmtrack/internal/errors"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NotificationsEnabled *bool   `help:"Enable or disable reminders."`
	DefaultTime          *string `help:"Default reminder time (HH:MM)."`
	RepeatInterval       *int    `help:"Minutes between repeated reminders, 0 disables."`
	Timezone             *string `help:"IANA timezone that decides what today is, or Local."`
}

func (c *SettingsCmd) Validate() error {
	if c.DefaultTime != nil && !utils.ValidateTimeFormat(*c.DefaultTime) {
		return apperrors.Usage("invalid default time %q, expected HH:MM", *c.DefaultTime)
	}
	if c.RepeatInterval != nil && *c.RepeatInterval < 0 {
		return apperrors.Usage("repeat interval cannot be negative")
	}
	if c.Timezone != nil && !utils.ValidateTimezone(*c.Timezone) {
		return apperrors.Usage("unknown timezone %q", *c.Timezone)
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Println("\nReminder Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Default Time:          %s\n", settings.DefaultTime)
		fmt.Printf("  Repeat Interval:       %d min\n", settings.RepeatInterval)
		return nil
	}

	updated := false
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.DefaultTime != nil {
		settings.DefaultTime = *c.DefaultTime
		updated = true
	}
	if c.RepeatInterval != nil {
		settings.RepeatInterval = *c.RepeatInterval
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}

	if updated {
		if err := settings.Validate(); err != nil {
			return err
		}
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
