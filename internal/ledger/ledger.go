// Package ledger joins generated intakes with the stored record of which were taken.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

const keySep = "_"

// Summary counts the intakes of one day.
type Summary struct {
	Planned   int
	Taken     int
	Remaining int
}

// Key builds the composite record key "courseId_YYYY-MM-DD_timeOfDay".
func Key(courseID, date string, slot constants.TimeOfDay) string {
	return courseID + keySep + date + keySep + string(slot)
}

// ItemKey returns the record key for a generated intake.
func ItemKey(item models.IntakeItem) string {
	return Key(item.CourseID, item.Date, item.TimeOfDay)
}

// ParseKey splits a composite key. Course IDs may themselves contain
// underscores, so the date and slot are taken from the right.
func ParseKey(key string) (courseID, date string, slot constants.TimeOfDay, err error) {
	slotSep := strings.LastIndex(key, keySep)
	if slotSep <= 0 {
		return "", "", "", fmt.Errorf("invalid intake key %q", key)
	}
	dateSep := strings.LastIndex(key[:slotSep], keySep)
	if dateSep <= 0 {
		return "", "", "", fmt.Errorf("invalid intake key %q", key)
	}

	courseID = key[:dateSep]
	date = key[dateSep+1 : slotSep]
	slot = constants.TimeOfDay(key[slotSep+1:])

	if _, perr := utils.ParseDate(date); perr != nil {
		return "", "", "", fmt.Errorf("invalid intake key %q: %w", key, perr)
	}
	if constants.SlotIndex(slot) < 0 {
		return "", "", "", fmt.Errorf("invalid intake key %q: unknown time of day %q", key, slot)
	}
	return courseID, date, slot, nil
}

// NewRecord creates a record marking the intake as taken or not at the given instant.
func NewRecord(item models.IntakeItem, taken bool, now time.Time) models.IntakeRecord {
	return models.IntakeRecord{
		ID:        ItemKey(item),
		CourseID:  item.CourseID,
		Date:      item.Date,
		TimeOfDay: item.TimeOfDay,
		Taken:     taken,
		UpdatedAt: now.UTC().Format(time.RFC3339),
	}
}

// Normalize fills the split-out columns of a record from its key. Records
// imported from the browser layout carry only the key. Records written by the
// browser calendar carry a generated ID, the key columns and takenAt instead;
// their key is rebuilt from the columns and takenAt marks them taken.
func Normalize(rec models.IntakeRecord) (models.IntakeRecord, error) {
	courseID, date, slot, err := ParseKey(rec.ID)
	if err != nil {
		if rec.CourseID == "" || rec.Date == "" || rec.TimeOfDay == "" {
			return rec, err
		}
		courseID, date, slot, err = ParseKey(Key(rec.CourseID, rec.Date, rec.TimeOfDay))
		if err != nil {
			return rec, err
		}
		rec.ID = Key(courseID, date, slot)
	}
	rec.CourseID, rec.Date, rec.TimeOfDay = courseID, date, slot

	if rec.TakenAt != "" {
		rec.Taken = true
		if rec.UpdatedAt == "" {
			rec.UpdatedAt = rec.TakenAt
		}
		rec.TakenAt = ""
	}
	return rec, nil
}

// Merge attaches ledger state to generated items, preserving their order.
// Records that match no item are ignored.
func Merge(items []models.IntakeItem, records []models.IntakeRecord) []models.DayEntry {
	taken := make(map[string]bool, len(records))
	for _, r := range records {
		taken[r.ID] = r.Taken
	}

	entries := make([]models.DayEntry, 0, len(items))
	for _, item := range items {
		key := ItemKey(item)
		entries = append(entries, models.DayEntry{
			IntakeItem: item,
			Key:        key,
			Taken:      taken[key],
		})
	}
	return entries
}

func Summarize(entries []models.DayEntry) Summary {
	s := Summary{Planned: len(entries)}
	for _, e := range entries {
		if e.Taken {
			s.Taken++
		}
	}
	s.Remaining = s.Planned - s.Taken
	return s
}

// StatusFor classifies a day for the calendar: nothing planned, something
// still to take, or everything taken.
func StatusFor(entries []models.DayEntry) constants.CalendarStatus {
	s := Summarize(entries)
	switch {
	case s.Planned == 0:
		return constants.StatusNone
	case s.Remaining == 0:
		return constants.StatusDone
	default:
		return constants.StatusPending
	}
}

// Find returns the entry with the given key.
func Find(entries []models.DayEntry, key string) (models.DayEntry, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e, true
		}
	}
	return models.DayEntry{}, false
}
