package courses

import (
	"fmt"

	"github.com/julianstephens/pharmtrack/internal/cli"
)

type CourseDeleteCmd struct {
	ID string `arg:"" help:"Course ID."`
}

func (c *CourseDeleteCmd) Run(ctx *cli.Context) error {
	course, err := ctx.Store.GetCourse(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteCourse(c.ID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	fmt.Printf("Deleted course: %s\n", course.CourseName)
	fmt.Printf("Its intake history is kept. Restore with 'course restore %s'.\n", c.ID)
	return nil
}

type CourseRestoreCmd struct {
	ID string `arg:"" help:"Course ID."`
}

func (c *CourseRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreCourse(c.ID); err != nil {
		return fmt.Errorf("failed to restore course: %w", err)
	}

	course, err := ctx.Store.GetCourse(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get restored course: %w", err)
	}
	fmt.Printf("Restored course: %s\n", course.CourseName)
	return nil
}

type CourseActivateCmd struct {
	ID string `arg:"" help:"Course ID."`
}

func (c *CourseActivateCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.ID, true)
}

type CourseDeactivateCmd struct {
	ID string `arg:"" help:"Course ID."`
}

func (c *CourseDeactivateCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.ID, false)
}

func setActive(ctx *cli.Context, id string, active bool) error {
	course, err := ctx.Store.GetCourse(id)
	if err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}

	state := "paused"
	if active {
		state = "active"
	}
	if course.IsActive == active {
		fmt.Printf("Course %s is already %s.\n", course.CourseName, state)
		return nil
	}

	course.IsActive = active
	if err := ctx.Store.UpdateCourse(course); err != nil {
		return err
	}
	fmt.Printf("Course %s is now %s.\n", course.CourseName, state)
	return nil
}
