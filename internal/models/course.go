package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/pharmtrack/internal/constants"
)

// Schedule marks which intake slots of a due day are enabled.
type Schedule struct {
	Morning bool `json:"morning"`
	Day     bool `json:"day"`
	Evening bool `json:"evening"`
	Night   bool `json:"night"`
}

// Enabled reports whether the slot is switched on. Unknown slots are never enabled.
func (s Schedule) Enabled(slot constants.TimeOfDay) bool {
	switch slot {
	case constants.SlotMorning:
		return s.Morning
	case constants.SlotDay:
		return s.Day
	case constants.SlotEvening:
		return s.Evening
	case constants.SlotNight:
		return s.Night
	}
	return false
}

// Set toggles a slot. It returns false for an unknown slot.
func (s *Schedule) Set(slot constants.TimeOfDay, on bool) bool {
	switch slot {
	case constants.SlotMorning:
		s.Morning = on
	case constants.SlotDay:
		s.Day = on
	case constants.SlotEvening:
		s.Evening = on
	case constants.SlotNight:
		s.Night = on
	default:
		return false
	}
	return true
}

// Slots returns the enabled slots in day order.
func (s Schedule) Slots() []constants.TimeOfDay {
	var slots []constants.TimeOfDay
	for _, slot := range constants.Slots {
		if s.Enabled(slot) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// Any reports whether at least one slot is enabled.
func (s Schedule) Any() bool {
	return s.Morning || s.Day || s.Evening || s.Night
}

// SlotDoses holds optional per-slot dose overrides. A nil entry means "use the default dose".
type SlotDoses struct {
	Morning *float64 `json:"morning" validate:"omitempty,gt=0"`
	Day     *float64 `json:"day" validate:"omitempty,gt=0"`
	Evening *float64 `json:"evening" validate:"omitempty,gt=0"`
	Night   *float64 `json:"night" validate:"omitempty,gt=0"`
}

// Get returns the override for a slot. It is safe to call on a nil receiver.
func (d *SlotDoses) Get(slot constants.TimeOfDay) *float64 {
	if d == nil {
		return nil
	}
	switch slot {
	case constants.SlotMorning:
		return d.Morning
	case constants.SlotDay:
		return d.Day
	case constants.SlotEvening:
		return d.Evening
	case constants.SlotNight:
		return d.Night
	}
	return nil
}

func (d *SlotDoses) Set(slot constants.TimeOfDay, dose *float64) bool {
	switch slot {
	case constants.SlotMorning:
		d.Morning = dose
	case constants.SlotDay:
		d.Day = dose
	case constants.SlotEvening:
		d.Evening = dose
	case constants.SlotNight:
		d.Night = dose
	default:
		return false
	}
	return true
}

// SlotTimes holds optional exact wall-clock times (HH:MM) per slot.
type SlotTimes struct {
	Morning string `json:"morning,omitempty" validate:"omitempty,clock"`
	Day     string `json:"day,omitempty" validate:"omitempty,clock"`
	Evening string `json:"evening,omitempty" validate:"omitempty,clock"`
	Night   string `json:"night,omitempty" validate:"omitempty,clock"`
}

// Get returns the exact time for a slot, or "" if none is set. Nil-safe.
func (t *SlotTimes) Get(slot constants.TimeOfDay) string {
	if t == nil {
		return ""
	}
	switch slot {
	case constants.SlotMorning:
		return t.Morning
	case constants.SlotDay:
		return t.Day
	case constants.SlotEvening:
		return t.Evening
	case constants.SlotNight:
		return t.Night
	}
	return ""
}

func (t *SlotTimes) Set(slot constants.TimeOfDay, clock string) bool {
	switch slot {
	case constants.SlotMorning:
		t.Morning = clock
	case constants.SlotDay:
		t.Day = clock
	case constants.SlotEvening:
		t.Evening = clock
	case constants.SlotNight:
		t.Night = clock
	default:
		return false
	}
	return true
}

// Course is a recurring intake plan for one medication.
//
// Optional members are pointers so that "absent" survives a round trip
// through storage and the export document.
type Course struct {
	ID                   string                  `json:"id" validate:"required"`
	PackageID            string                  `json:"packageId,omitempty"`
	CourseName           string                  `json:"courseName" validate:"required"`
	ActiveSubstance      string                  `json:"activeSubstance,omitempty"`
	CurrentStock         *float64                `json:"currentStock,omitempty" validate:"omitempty,gte=0"`
	StartDate            string                  `json:"startDate" validate:"required,date"`          // YYYY-MM-DD
	EndDate              *string                 `json:"endDate,omitempty" validate:"omitempty,date"` // YYYY-MM-DD, nil = open-ended
	IsLifelong           bool                    `json:"isLifelong"`
	IsActive             bool                    `json:"isActive"`
	IntervalDays         int                     `json:"intervalDays" validate:"gte=0"` // 0 is read as 1
	Schedule             Schedule                `json:"schedule"`
	DosePerIntake        *float64                `json:"dosePerIntake" validate:"omitempty,gt=0"`
	UseDifferentDoses    bool                    `json:"useDifferentDoses"`
	Doses                *SlotDoses              `json:"doses,omitempty"`
	ExactTimes           *SlotTimes              `json:"exactTimes,omitempty"`
	MealCondition        constants.MealCondition `json:"mealCondition,omitempty" validate:"omitempty,oneof=before after during empty any"`
	LowStockReminderDays *int                    `json:"lowStockReminderDays,omitempty" validate:"omitempty,gte=0"`
	CreatedAt            string                  `json:"createdAt,omitempty"` // RFC3339 timestamp
	DeletedAt            *string                 `json:"deletedAt,omitempty"` // RFC3339 timestamp
}

// Validate checks a course entered by the user. The schedule generator does not
// depend on it: records that fail here are skipped there, not rejected.
func (c Course) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if !c.Schedule.Any() {
		return fmt.Errorf("at least one time of day must be enabled")
	}
	if c.EndDate != nil && !c.IsLifelong {
		start, err := time.Parse(constants.DateFormat, c.StartDate)
		if err != nil {
			return fmt.Errorf("invalid startDate %q: %w", c.StartDate, err)
		}
		end, err := time.Parse(constants.DateFormat, *c.EndDate)
		if err != nil {
			return fmt.Errorf("invalid endDate %q: %w", *c.EndDate, err)
		}
		if end.Before(start) {
			return fmt.Errorf("endDate (%s) must not be before startDate (%s)", *c.EndDate, c.StartDate)
		}
	}
	if c.UseDifferentDoses && c.Doses == nil {
		return fmt.Errorf("per-slot doses are enabled but none were given")
	}
	return nil
}

// Interval returns the effective recurrence interval in days.
func (c Course) Interval() int {
	if c.IntervalDays == 0 {
		return 1
	}
	return c.IntervalDays
}

// OpenEnded reports whether the course has no effective end date.
func (c Course) OpenEnded() bool {
	return c.IsLifelong || c.EndDate == nil || *c.EndDate == ""
}

// SlotTime returns the exact time configured for a slot, or the slot default.
func (c Course) SlotTime(slot constants.TimeOfDay) string {
	if t := c.ExactTimes.Get(slot); t != "" {
		return t
	}
	if t, ok := constants.SlotDefaultTimes[slot]; ok {
		return t
	}
	return constants.FallbackSlotTime
}
