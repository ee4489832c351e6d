package models

import "github.com/julianstephens/pharmtrack/internal/constants"

// IntakeItem is one generated intake obligation. Items are computed on demand
// and never stored; (CourseID, Date, TimeOfDay) identifies an item.
type IntakeItem struct {
	CourseID      string                  `json:"courseId"`
	CourseName    string                  `json:"courseName"`
	Date          string                  `json:"date"` // YYYY-MM-DD
	TimeOfDay     constants.TimeOfDay     `json:"timeOfDay"`
	TimeLabel     string                  `json:"timeLabel"`
	Time          string                  `json:"time"` // HH:MM, exact or slot default
	Dose          float64                 `json:"dose"`
	DosageInfo    string                  `json:"dosageInfo"`
	PackageType   string                  `json:"packageType"`
	MealCondition constants.MealCondition `json:"mealCondition,omitempty"`
	MealLabel     string                  `json:"mealLabel,omitempty"`
}

// IntakeRecord is a ledger entry recording whether an intake was taken.
// ID is the composite key "courseId_YYYY-MM-DD_timeOfDay".
type IntakeRecord struct {
	ID        string              `json:"id"`
	CourseID  string              `json:"courseId,omitempty"`
	Date      string              `json:"date,omitempty"`
	TimeOfDay constants.TimeOfDay `json:"timeOfDay,omitempty"`
	Taken     bool                `json:"taken"`
	UpdatedAt string              `json:"updatedAt"` // RFC3339 timestamp
	TakenAt   string              `json:"takenAt,omitempty"`
}

// DayEntry is a generated intake merged with its ledger state.
type DayEntry struct {
	IntakeItem
	Key   string `json:"key"`
	Taken bool   `json:"taken"`
}
