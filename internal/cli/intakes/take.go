package intakes

import (
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/pharmtrack/internal/cli"
	apperrors "github.com/julianstephens/pharmtrack/internal/errors"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

type TakeCmd struct {
	Intakes []string `arg:"" optional:"" help:"Intake numbers from the day listing, or intake keys."`
	Day     string   `short:"D" help:"Day the intake numbers refer to." default:"today"`
	All     bool     `short:"a" help:"Mark every intake of the day."`
}

func (c *TakeCmd) Validate() error {
	return validateSelection(c.Intakes, c.All)
}

func (c *TakeCmd) Run(ctx *cli.Context) error {
	return mark(ctx, c.Day, c.Intakes, c.All, true)
}

type UntakeCmd struct {
	Intakes []string `arg:"" optional:"" help:"Intake numbers from the day listing, or intake keys."`
	Day     string   `short:"D" help:"Day the intake numbers refer to." default:"today"`
	All     bool     `short:"a" help:"Clear every intake of the day."`
}

func (c *UntakeCmd) Validate() error {
	return validateSelection(c.Intakes, c.All)
}

func (c *UntakeCmd) Run(ctx *cli.Context) error {
	return mark(ctx, c.Day, c.Intakes, c.All, false)
}

func validateSelection(intakes []string, all bool) error {
	if len(intakes) == 0 && !all {
		return apperrors.Usage("name at least one intake or use --all")
	}
	if len(intakes) > 0 && all {
		return apperrors.Usage("--all cannot be combined with intake arguments")
	}
	return nil
}

func mark(ctx *cli.Context, dayArg string, args []string, all, taken bool) error {
	day, err := ctx.ResolveDay(dayArg)
	if err != nil {
		return err
	}
	entries, err := ctx.Day(day)
	if err != nil {
		return err
	}

	var selected []models.DayEntry
	if all {
		selected = entries
	} else {
		for _, arg := range args {
			e, err := resolve(ctx, entries, arg)
			if err != nil {
				return err
			}
			selected = append(selected, e)
		}
	}

	now := time.Now()
	for _, e := range selected {
		if err := ctx.Store.SaveIntake(ledger.NewRecord(e.IntakeItem, taken, now)); err != nil {
			return fmt.Errorf("failed to save intake %s: %w", e.Key, err)
		}
		state := "not taken"
		if taken {
			state = "taken"
		}
		fmt.Printf("%s %s %s: %s\n", e.Date, e.TimeLabel, e.CourseName, state)
	}
	if len(selected) == 0 {
		fmt.Println("No intakes scheduled.")
	}
	return nil
}

// resolve accepts a 1-based position in the day's listing or a full intake key.
// A key may name another day; it must still belong to that day's schedule.
func resolve(ctx *cli.Context, entries []models.DayEntry, arg string) (models.DayEntry, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(entries) {
			return models.DayEntry{}, apperrors.Usage("intake number %d is out of range (1-%d)", n, len(entries))
		}
		return entries[n-1], nil
	}

	_, date, _, err := ledger.ParseKey(arg)
	if err != nil {
		return models.DayEntry{}, apperrors.Usage("%v", err)
	}
	if len(entries) == 0 || entries[0].Date != date {
		day, err := utils.ParseDate(date)
		if err != nil {
			return models.DayEntry{}, err
		}
		if entries, err = ctx.Day(day); err != nil {
			return models.DayEntry{}, err
		}
	}

	e, ok := ledger.Find(entries, arg)
	if !ok {
		return models.DayEntry{}, fmt.Errorf("intake %s is not part of the schedule for %s", arg, date)
	}
	return e, nil
}
