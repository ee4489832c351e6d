package constants

// TimeOfDay names one of the four daily intake slots
type TimeOfDay string

// MealCondition describes how an intake relates to meals
type MealCondition string

// CalendarStatus summarizes the intakes of a single day
type CalendarStatus string

const (
	SlotMorning TimeOfDay = "morning"
	SlotDay     TimeOfDay = "day"
	SlotEvening TimeOfDay = "evening"
	SlotNight   TimeOfDay = "night"

	MealBefore MealCondition = "before"
	MealAfter  MealCondition = "after"
	MealDuring MealCondition = "during"
	MealEmpty  MealCondition = "empty"
	MealAny    MealCondition = "any"

	StatusNone    CalendarStatus = "none"
	StatusPending CalendarStatus = "pending"
	StatusDone    CalendarStatus = "done"

	// FallbackSlotTime is used when a slot has neither an exact nor a default time
	FallbackSlotTime = "12:00"
)

// Slots lists the intake slots in the order they occur during a day.
// Generated schedules are always sorted by this order.
var Slots = []TimeOfDay{SlotMorning, SlotDay, SlotEvening, SlotNight}

// SlotLabels are the human-readable slot names.
var SlotLabels = map[TimeOfDay]string{
	SlotMorning: "Morning",
	SlotDay:     "Afternoon",
	SlotEvening: "Evening",
	SlotNight:   "Night",
}

// SlotDefaultTimes are the wall-clock times shown for slots without an exact time.
var SlotDefaultTimes = map[TimeOfDay]string{
	SlotMorning: "08:00",
	SlotDay:     "13:00",
	SlotEvening: "18:00",
	SlotNight:   "22:00",
}

// MealLabels are the human-readable meal conditions.
var MealLabels = map[MealCondition]string{
	MealBefore: "before meals",
	MealAfter:  "after meals",
	MealDuring: "with meals",
	MealEmpty:  "on an empty stomach",
	MealAny:    "regardless of meals",
}

// SlotIndex returns the position of a slot in Slots, or -1 for an unknown slot.
func SlotIndex(slot TimeOfDay) int {
	for i, s := range Slots {
		if s == slot {
			return i
		}
	}
	return -1
}
