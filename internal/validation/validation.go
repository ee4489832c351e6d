package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictInvalidInterval   ConflictType = "invalid_interval"
	ConflictEndBeforeStart    ConflictType = "end_before_start"
	ConflictNoSlots           ConflictType = "no_slots"
	ConflictInvalidTime       ConflictType = "invalid_time"
	ConflictMissingPackage    ConflictType = "missing_package"
	ConflictDuplicateID       ConflictType = "duplicate_id"
	ConflictDuplicateName     ConflictType = "duplicate_course_name"
	ConflictInvalidIntakeKey  ConflictType = "invalid_intake_key"
	ConflictOrphanIntake      ConflictType = "orphan_intake"
	ConflictUnscheduledIntake ConflictType = "unscheduled_intake"
)

// Conflict is a single problem found in the stored data. Most of them make the
// schedule generator skip a course without saying so.
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD, for intake conflicts
	Items       []string // course or package names involved
	IDs         []string // record IDs involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns how many conflicts of the given type were found.
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks packages, courses and intake records for conflicts
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate runs every check. Deleted records only take part in the ID checks,
// and in resolving intake history.
func (v *Validator) Validate(packages []models.Package, courses []models.Course, intakes []models.IntakeRecord) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	v.checkDuplicateIDs(&result, packages, courses)
	v.checkCourses(&result, packages, courses)
	v.checkDuplicateNames(&result, courses)
	v.checkIntakes(&result, courses, intakes)

	return result
}

// ValidateCourses checks course records on their own.
func (v *Validator) ValidateCourses(courses []models.Course) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	v.checkCourses(&result, nil, courses)
	v.checkDuplicateNames(&result, courses)
	return result
}

func (v *Validator) checkDuplicateIDs(result *ValidationResult, packages []models.Package, courses []models.Course) {
	seen := make(map[string]int)
	for _, pkg := range packages {
		seen[pkg.ID]++
	}
	for _, id := range duplicates(seen) {
		result.add(Conflict{
			Type:        ConflictDuplicateID,
			Description: fmt.Sprintf("Package ID %q is used by %d packages", id, seen[id]),
			IDs:         []string{id},
		})
	}

	seen = make(map[string]int)
	for _, course := range courses {
		seen[course.ID]++
	}
	for _, id := range duplicates(seen) {
		result.add(Conflict{
			Type:        ConflictDuplicateID,
			Description: fmt.Sprintf("Course ID %q is used by %d courses; only the first one is scheduled", id, seen[id]),
			IDs:         []string{id},
		})
	}
}

func (v *Validator) checkCourses(result *ValidationResult, packages []models.Package, courses []models.Course) {
	livePackages := make(map[string]bool)
	for _, pkg := range packages {
		if pkg.DeletedAt == nil {
			livePackages[pkg.ID] = true
		}
	}

	for _, course := range courses {
		if course.DeletedAt != nil {
			continue
		}
		name := courseLabel(course)

		start, err := utils.ParseDate(course.StartDate)
		if err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Course %s has an invalid start date %q and is never scheduled", name, course.StartDate),
				Items:       []string{name},
				IDs:         []string{course.ID},
			})
		}

		if course.EndDate != nil && *course.EndDate != "" && !course.IsLifelong {
			end, endErr := utils.ParseDate(*course.EndDate)
			switch {
			case endErr != nil:
				result.add(Conflict{
					Type:        ConflictInvalidDate,
					Description: fmt.Sprintf("Course %s has an invalid end date %q and is never scheduled", name, *course.EndDate),
					Items:       []string{name},
					IDs:         []string{course.ID},
				})
			case err == nil && end.Before(start):
				result.add(Conflict{
					Type:        ConflictEndBeforeStart,
					Description: fmt.Sprintf("Course %s ends (%s) before it starts (%s)", name, *course.EndDate, course.StartDate),
					Items:       []string{name},
					IDs:         []string{course.ID},
				})
			}
		}

		if course.IntervalDays < 0 {
			result.add(Conflict{
				Type:        ConflictInvalidInterval,
				Description: fmt.Sprintf("Course %s has a negative interval (%d days) and is never scheduled", name, course.IntervalDays),
				Items:       []string{name},
				IDs:         []string{course.ID},
			})
		}

		if course.IsActive && !course.Schedule.Any() {
			result.add(Conflict{
				Type:        ConflictNoSlots,
				Description: fmt.Sprintf("Course %s is active but has no time of day enabled", name),
				Items:       []string{name},
				IDs:         []string{course.ID},
			})
		}

		for _, slot := range constants.Slots {
			if t := course.ExactTimes.Get(slot); t != "" && !utils.ValidateTimeFormat(t) {
				result.add(Conflict{
					Type:        ConflictInvalidTime,
					Description: fmt.Sprintf("Course %s has an invalid %s time: %s", name, slot, t),
					Items:       []string{name},
					IDs:         []string{course.ID},
				})
			}
		}

		if packages != nil && course.PackageID != "" && !livePackages[course.PackageID] {
			result.add(Conflict{
				Type:        ConflictMissingPackage,
				Description: fmt.Sprintf("Course %s references missing package %s", name, course.PackageID),
				Items:       []string{name},
				IDs:         []string{course.ID, course.PackageID},
			})
		}
	}
}

func (v *Validator) checkDuplicateNames(result *ValidationResult, courses []models.Course) {
	byName := make(map[string][]string)
	var order []string
	for _, course := range courses {
		if course.DeletedAt != nil || !course.IsActive || course.CourseName == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(course.CourseName))
		if _, ok := byName[key]; !ok {
			order = append(order, key)
		}
		byName[key] = append(byName[key], course.ID)
	}

	for _, key := range order {
		ids := byName[key]
		if len(ids) < 2 {
			continue
		}
		result.add(Conflict{
			Type:        ConflictDuplicateName,
			Description: fmt.Sprintf("Active courses share the name %q (IDs: %s)", key, strings.Join(ids, ", ")),
			Items:       []string{key},
			IDs:         ids,
		})
	}
}

func (v *Validator) checkIntakes(result *ValidationResult, courses []models.Course, intakes []models.IntakeRecord) {
	byID := make(map[string]models.Course)
	for _, course := range courses {
		if _, ok := byID[course.ID]; !ok {
			byID[course.ID] = course
		}
	}

	for _, rec := range intakes {
		courseID, date, slot, err := ledger.ParseKey(rec.ID)
		if err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidIntakeKey,
				Description: fmt.Sprintf("Intake record %q has an invalid key: %v", rec.ID, err),
				IDs:         []string{rec.ID},
			})
			continue
		}

		course, ok := byID[courseID]
		if !ok {
			result.add(Conflict{
				Type:        ConflictOrphanIntake,
				Description: fmt.Sprintf("%s: intake record %s refers to unknown course %s", date, rec.ID, courseID),
				Date:        date,
				IDs:         []string{rec.ID, courseID},
			})
			continue
		}
		if course.DeletedAt != nil {
			continue
		}

		day, _ := time.Parse(constants.DateFormat, date)
		if !utils.ShouldScheduleCourse(course, day) || !course.Schedule.Enabled(slot) {
			result.add(Conflict{
				Type:        ConflictUnscheduledIntake,
				Description: fmt.Sprintf("%s: intake record %s is not part of the %s schedule for that day", date, rec.ID, courseLabel(course)),
				Date:        date,
				Items:       []string{courseLabel(course)},
				IDs:         []string{rec.ID, courseID},
			})
		}
	}
}

func courseLabel(course models.Course) string {
	if course.CourseName != "" {
		return fmt.Sprintf("%q", course.CourseName)
	}
	return course.ID
}

func duplicates(counts map[string]int) []string {
	var ids []string
	for id, n := range counts {
		if n > 1 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
