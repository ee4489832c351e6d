package courses

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/scheduler"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

type CourseListCmd struct {
	All    bool `short:"a" help:"Include deleted courses."`
	Active bool `help:"Only show active courses."`
}

func (c *CourseListCmd) Run(ctx *cli.Context) error {
	var (
		courses []models.Course
		err     error
	)
	if c.All {
		courses, err = ctx.Store.GetAllCoursesIncludingDeleted()
	} else {
		courses, err = ctx.Store.GetAllCourses()
	}
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}
	if c.Active {
		courses = scheduler.FilterActive(courses)
	}

	if len(courses) == 0 {
		fmt.Println("No courses found.")
		return nil
	}

	today, err := ctx.ResolveDay("today")
	if err != nil {
		return err
	}

	for _, course := range courses {
		var tags []string
		if !course.IsActive {
			tags = append(tags, "paused")
		}
		if course.DeletedAt != nil {
			tags = append(tags, "deleted")
		}
		status := ""
		if len(tags) > 0 {
			status = " [" + strings.Join(tags, ", ") + "]"
		}

		fmt.Printf("- %s%s\n", course.CourseName, status)
		fmt.Printf("    ID: %s\n", course.ID)
		fmt.Printf("    %s\n", describeSchedule(course))
		fmt.Printf("    %s\n", describePeriod(course))
		if line := describeStock(course, today); line != "" {
			fmt.Printf("    %s\n", line)
		}
	}
	return nil
}

// describeSchedule renders slots, doses and interval, e.g.
// "Morning 1 (07:30), Evening 2 every 2 days, after meals".
func describeSchedule(course models.Course) string {
	var parts []string
	for _, slot := range course.Schedule.Slots() {
		part := fmt.Sprintf("%s %s", constants.SlotLabels[slot], utils.FormatDecimal(scheduler.ResolveDose(course, slot)))
		if t := course.ExactTimes.Get(slot); t != "" {
			part += " (" + t + ")"
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		parts = append(parts, "no times of day")
	}

	s := strings.Join(parts, ", ")
	if n := course.Interval(); n == 1 {
		s += " daily"
	} else {
		s += fmt.Sprintf(" every %d days", n)
	}
	if label, ok := constants.MealLabels[course.MealCondition]; ok {
		s += ", " + label
	}
	return s
}

func describePeriod(course models.Course) string {
	switch {
	case course.IsLifelong:
		return fmt.Sprintf("From %s, lifelong", course.StartDate)
	case course.OpenEnded():
		return fmt.Sprintf("From %s, no end date", course.StartDate)
	default:
		return fmt.Sprintf("From %s to %s", course.StartDate, *course.EndDate)
	}
}

func describeStock(course models.Course, today time.Time) string {
	f := scheduler.Forecast(course, today)
	if !f.Known {
		return ""
	}
	s := fmt.Sprintf("Stock: %s units, about %d days left (until %s)", utils.FormatDecimal(*course.CurrentStock), f.DaysLeft, f.RunsOutOn)
	if f.Low {
		s += " - running low"
	}
	return s
}
