package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Settings represents application-wide settings
type Settings struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`                   // whether reminders are wanted (stored only)
	DefaultTime          string `json:"defaultTime" validate:"omitempty,clock"` // the default reminder time, e.g. "08:00"
	RepeatInterval       int    `json:"repeatInterval" validate:"gte=0"`        // minutes between repeated reminders, 0 disables
	Timezone             string `json:"timezone,omitempty"`                     // IANA timezone name or "Local"; decides what "today" is
}

func (s Settings) Validate() error {
	return validateStruct(s)
}

// UnmarshalJSON accepts repeatInterval as either a number or a numeric string,
// since older exports stored it as text.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type plain Settings
	aux := struct {
		*plain
		RepeatInterval json.RawMessage `json:"repeatInterval"`
	}{plain: (*plain)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := strings.TrimSpace(string(aux.RepeatInterval))
	if raw == "" || raw == "null" {
		s.RepeatInterval = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	if raw == "" {
		s.RepeatInterval = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parsing repeatInterval: %w", err)
	}
	s.RepeatInterval = n
	return nil
}
