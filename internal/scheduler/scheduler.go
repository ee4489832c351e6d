package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

// Scheduler expands course definitions into the intakes of a calendar day.
// It keeps no state; every call recomputes from its arguments.
type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// GenerateDaySchedule returns the ordered intake obligations for the civil date of
// the given time. Only the wall-clock date matters; the time of day and zone are ignored.
//
// Courses that are inactive, deleted, not yet started, already ended, off-interval or
// malformed contribute nothing. Items are sorted by slot (morning, day, evening, night)
// and keep the input order of courses within a slot. A course ID seen twice is only
// expanded once. Packages enrich the items; a missing package leaves them blank.
func (s *Scheduler) GenerateDaySchedule(date time.Time, courses []models.Course, packages []models.Package) []models.IntakeItem {
	day := utils.CivilDate(date)
	dateStr := utils.FormatDate(day)
	pkgs := indexPackages(packages)

	items := []models.IntakeItem{}
	seen := make(map[string]bool, len(courses))
	for _, course := range courses {
		if seen[course.ID] {
			continue
		}
		seen[course.ID] = true

		if !isSchedulable(course, day) {
			continue
		}

		pkg, hasPkg := pkgs[course.PackageID]
		for _, slot := range constants.Slots {
			if !course.Schedule.Enabled(slot) {
				continue
			}
			items = append(items, buildItem(course, pkg, hasPkg, slot, dateStr))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return constants.SlotIndex(items[i].TimeOfDay) < constants.SlotIndex(items[j].TimeOfDay)
	})
	return items
}

// HasScheduledIntakes reports whether GenerateDaySchedule would return at least one
// item for the date. It applies the same filters and stops at the first due course
// with an enabled slot, so it is cheap enough to call for every cell of a calendar.
func (s *Scheduler) HasScheduledIntakes(date time.Time, courses []models.Course) bool {
	day := utils.CivilDate(date)
	seen := make(map[string]bool, len(courses))
	for _, course := range courses {
		if seen[course.ID] {
			continue
		}
		seen[course.ID] = true

		if isSchedulable(course, day) && course.Schedule.Any() {
			return true
		}
	}
	return false
}

// ResolveDose returns the dose for one slot of a course: the per-slot override when
// different doses are enabled and one is set, else the default dose, else 1.
func ResolveDose(course models.Course, slot constants.TimeOfDay) float64 {
	if course.UseDifferentDoses {
		if d := course.Doses.Get(slot); d != nil {
			return *d
		}
	}
	if course.DosePerIntake != nil {
		return *course.DosePerIntake
	}
	return 1
}

// FilterActive returns the courses that can produce intakes at all.
func FilterActive(courses []models.Course) []models.Course {
	active := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if c.IsActive && c.DeletedAt == nil {
			active = append(active, c)
		}
	}
	return active
}

func isSchedulable(course models.Course, day time.Time) bool {
	if !course.IsActive || course.DeletedAt != nil {
		return false
	}
	return utils.ShouldScheduleCourse(course, day)
}

func indexPackages(packages []models.Package) map[string]models.Package {
	idx := make(map[string]models.Package, len(packages))
	for _, p := range packages {
		if _, dup := idx[p.ID]; !dup {
			idx[p.ID] = p
		}
	}
	return idx
}

func buildItem(course models.Course, pkg models.Package, hasPkg bool, slot constants.TimeOfDay, date string) models.IntakeItem {
	item := models.IntakeItem{
		CourseID:      course.ID,
		CourseName:    course.CourseName,
		Date:          date,
		TimeOfDay:     slot,
		TimeLabel:     constants.SlotLabels[slot],
		Time:          course.SlotTime(slot),
		Dose:          ResolveDose(course, slot),
		MealCondition: course.MealCondition,
		MealLabel:     constants.MealLabels[course.MealCondition],
	}
	if hasPkg {
		item.DosageInfo = pkg.DosageInfo()
		item.PackageType = pkg.MedicationType
		if item.CourseName == "" {
			item.CourseName = pkg.Name()
		}
	}
	return item
}
