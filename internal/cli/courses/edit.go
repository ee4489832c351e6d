package courses

import (
	"fmt"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

// CourseEditCmd changes only the fields whose flags are given. The course keeps
// its ID, creation time and active state.
type CourseEditCmd struct {
	ID             string            `arg:"" help:"Course ID."`
	Package        *string           `short:"p" help:"New package ID. An empty value detaches the package."`
	Name           *string           `short:"n" help:"New course name."`
	Substance      *string           `help:"New active substance."`
	Start          *string           `short:"s" help:"New first day."`
	End            *string           `short:"e" help:"New last day. An empty value makes the course open-ended."`
	Lifelong       *bool             `help:"Whether the course never ends."`
	Every          *int              `short:"i" help:"New interval in days."`
	Times          []string          `short:"t" help:"New times of day."`
	Dose           *string           `short:"d" help:"New units per intake."`
	SlotDose       map[string]string `help:"Units for specific times of day, e.g. evening=2." mapsep:","`
	ClearSlotDoses bool              `help:"Drop per-slot doses and use the default dose everywhere."`
	At             map[string]string `help:"Exact times, e.g. morning=07:30." mapsep:","`
	ClearAt        bool              `help:"Drop exact times and use the slot defaults."`
	Meal           *string           `short:"m" help:"New meal condition. An empty value clears it."`
	Stock          *string           `help:"Units currently in stock."`
	LowStockDays   *int              `help:"New low stock window in days."`
}

func (c *CourseEditCmd) Validate() error {
	if c.Every != nil && *c.Every < 1 {
		return fmt.Errorf("interval must be at least 1 day")
	}
	if len(c.SlotDose) > 0 && c.ClearSlotDoses {
		return fmt.Errorf("--slot-dose and --clear-slot-doses cannot be combined")
	}
	if len(c.At) > 0 && c.ClearAt {
		return fmt.Errorf("--at and --clear-at cannot be combined")
	}
	return nil
}

func (c *CourseEditCmd) Run(ctx *cli.Context) error {
	course, err := ctx.Store.GetCourse(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}

	if c.Package != nil {
		if *c.Package != "" {
			if _, err := ctx.Store.GetPackage(*c.Package); err != nil {
				return fmt.Errorf("failed to get package: %w", err)
			}
		}
		course.PackageID = *c.Package
	}
	if c.Name != nil {
		course.CourseName = *c.Name
	}
	if c.Substance != nil {
		course.ActiveSubstance = *c.Substance
	}
	if c.Start != nil {
		start, err := ctx.ResolveDay(*c.Start)
		if err != nil {
			return err
		}
		course.StartDate = utils.FormatDate(start)
	}
	if c.End != nil {
		if *c.End == "" {
			course.EndDate = nil
		} else {
			end, err := ctx.ResolveDay(*c.End)
			if err != nil {
				return err
			}
			endDate := utils.FormatDate(end)
			course.EndDate = &endDate
		}
	}
	if c.Lifelong != nil {
		course.IsLifelong = *c.Lifelong
		if course.IsLifelong {
			course.EndDate = nil
		}
	}
	if c.Every != nil {
		course.IntervalDays = *c.Every
	}
	if len(c.Times) > 0 {
		if course.Schedule, err = parseSchedule(c.Times); err != nil {
			return err
		}
	}
	if c.Dose != nil {
		dose, err := cli.ParseDose(*c.Dose)
		if err != nil {
			return err
		}
		course.DosePerIntake = &dose
	}
	switch {
	case c.ClearSlotDoses:
		course.Doses = nil
		course.UseDifferentDoses = false
	case len(c.SlotDose) > 0:
		if course.Doses, err = parseSlotDoses(c.SlotDose); err != nil {
			return err
		}
		course.UseDifferentDoses = true
	}
	switch {
	case c.ClearAt:
		course.ExactTimes = nil
	case len(c.At) > 0:
		if course.ExactTimes, err = parseSlotTimes(c.At); err != nil {
			return err
		}
	}
	if c.Meal != nil {
		if course.MealCondition, err = parseMeal(*c.Meal); err != nil {
			return err
		}
	}
	if c.Stock != nil {
		if course.CurrentStock, err = parseStock(*c.Stock); err != nil {
			return err
		}
	}
	if c.LowStockDays != nil {
		course.LowStockReminderDays = c.LowStockDays
	}

	if err := course.Validate(); err != nil {
		return fmt.Errorf("invalid course: %w", err)
	}
	if err := ctx.Store.UpdateCourse(course); err != nil {
		return err
	}

	fmt.Printf("Updated course: %s\n", course.CourseName)
	fmt.Printf("  %s\n", describeSchedule(course))
	return nil
}
