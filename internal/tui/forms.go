package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

type SettingsFormModel struct {
	NotificationsEnabled bool
	DefaultTime          string
	RepeatInterval       string
	Timezone             string
}

func newSettingsFormModel(s models.Settings) *SettingsFormModel {
	return &SettingsFormModel{
		NotificationsEnabled: s.NotificationsEnabled,
		DefaultTime:          s.DefaultTime,
		RepeatInterval:       strconv.Itoa(s.RepeatInterval),
		Timezone:             s.Timezone,
	}
}

// Settings converts the form back into validated settings.
func (fm *SettingsFormModel) Settings() (models.Settings, error) {
	repeat, err := strconv.Atoi(strings.TrimSpace(fm.RepeatInterval))
	if err != nil {
		return models.Settings{}, fmt.Errorf("invalid repeat interval %q", fm.RepeatInterval)
	}
	s := models.Settings{
		NotificationsEnabled: fm.NotificationsEnabled,
		DefaultTime:          strings.TrimSpace(fm.DefaultTime),
		RepeatInterval:       repeat,
		Timezone:             strings.TrimSpace(fm.Timezone),
	}
	if err := s.Validate(); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone (IANA name or 'Local')").
				Description("Decides which day is today. Examples: Local, UTC, Europe/Berlin").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(strings.TrimSpace(s)) {
						return fmt.Errorf("invalid timezone name")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Reminders Enabled").
				Value(&fm.NotificationsEnabled),
			huh.NewInput().
				Title("Default Reminder Time (HH:MM)").
				Value(&fm.DefaultTime).
				Validate(func(s string) error {
					if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
			huh.NewInput().
				Title("Repeat Interval (minutes, 0 = off)").
				Value(&fm.RepeatInterval).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("must be a number")
					}
					if i < 0 {
						return fmt.Errorf("must not be negative")
					}
					return nil
				}),
		),
	)
}
