package courses

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

type CourseAddCmd struct {
	Package      string            `short:"p" help:"ID of the package the course takes from."`
	Name         string            `short:"n" help:"Course name. Defaults to the package display name."`
	Substance    string            `help:"Active substance. Defaults to the package's active ingredient."`
	Start        string            `short:"s" help:"First day (YYYY-MM-DD, today or tomorrow)." default:"today"`
	End          string            `short:"e" help:"Last day (YYYY-MM-DD). Omit for an open-ended course."`
	Lifelong     bool              `help:"The course never ends."`
	Every        int               `short:"i" help:"Take every N days." default:"1"`
	Times        []string          `short:"t" help:"Times of day: morning, day, evening, night." default:"morning"`
	Dose         string            `short:"d" help:"Units per intake." default:"1"`
	SlotDose     map[string]string `help:"Units for a specific time of day, e.g. evening=2." mapsep:","`
	At           map[string]string `help:"Exact time for a time of day, e.g. morning=07:30." mapsep:","`
	Meal         string            `short:"m" help:"Meal condition: before, after, during, empty or any."`
	Stock        string            `help:"Units currently in stock for this course."`
	LowStockDays *int              `help:"Flag the course when stock lasts this many days or fewer."`
	Inactive     bool              `help:"Create the course paused."`
}

func (c *CourseAddCmd) Validate() error {
	if c.Every < 1 {
		return fmt.Errorf("interval must be at least 1 day")
	}
	if c.Name == "" && c.Package == "" {
		return fmt.Errorf("a course needs --name or --package")
	}
	if c.Lifelong && c.End != "" {
		return fmt.Errorf("a lifelong course cannot have an end date")
	}
	if c.LowStockDays != nil && *c.LowStockDays < 0 {
		return fmt.Errorf("low stock days cannot be negative")
	}
	if _, err := parseSchedule(c.Times); err != nil {
		return err
	}
	if _, err := parseMeal(c.Meal); err != nil {
		return err
	}
	return nil
}

func (c *CourseAddCmd) Run(ctx *cli.Context) error {
	course := models.Course{
		ID:                   uuid.New().String(),
		PackageID:            c.Package,
		CourseName:           c.Name,
		ActiveSubstance:      c.Substance,
		IsLifelong:           c.Lifelong,
		IsActive:             !c.Inactive,
		IntervalDays:         c.Every,
		LowStockReminderDays: c.LowStockDays,
		CreatedAt:            cli.Timestamp(time.Now()),
	}

	if c.Package != "" {
		pkg, err := ctx.Store.GetPackage(c.Package)
		if err != nil {
			return fmt.Errorf("failed to get package: %w", err)
		}
		if course.CourseName == "" {
			course.CourseName = pkg.Name()
		}
		if course.ActiveSubstance == "" {
			course.ActiveSubstance = pkg.ActiveIngredient
		}
	}

	start, err := ctx.ResolveDay(c.Start)
	if err != nil {
		return err
	}
	course.StartDate = utils.FormatDate(start)
	if c.End != "" {
		end, err := ctx.ResolveDay(c.End)
		if err != nil {
			return err
		}
		endDate := utils.FormatDate(end)
		course.EndDate = &endDate
	}

	if course.Schedule, err = parseSchedule(c.Times); err != nil {
		return err
	}
	dose, err := cli.ParseDose(c.Dose)
	if err != nil {
		return err
	}
	course.DosePerIntake = &dose
	if course.Doses, err = parseSlotDoses(c.SlotDose); err != nil {
		return err
	}
	course.UseDifferentDoses = course.Doses != nil
	if course.ExactTimes, err = parseSlotTimes(c.At); err != nil {
		return err
	}
	if course.MealCondition, err = parseMeal(c.Meal); err != nil {
		return err
	}
	if c.Stock != "" {
		if course.CurrentStock, err = parseStock(c.Stock); err != nil {
			return err
		}
	}

	if err := course.Validate(); err != nil {
		return fmt.Errorf("invalid course: %w", err)
	}
	if err := ctx.Store.AddCourse(course); err != nil {
		return err
	}

	fmt.Printf("Added course: %s (ID: %s)\n", course.CourseName, course.ID)
	fmt.Printf("  %s\n", describeSchedule(course))
	return nil
}
