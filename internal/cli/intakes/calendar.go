package intakes

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/constants"
	apperrors "github.com/julianstephens/pharmtrack/internal/errors"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

const monthFormat = "2006-01"

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	month, err := c.resolveMonth(ctx)
	if err != nil {
		return err
	}

	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}
	packages, err := ctx.Store.GetAllPackages()
	if err != nil {
		return fmt.Errorf("failed to get packages: %w", err)
	}
	first, last := ledger.MonthRange(month)
	records, err := ctx.Store.GetIntakesInRange(first, last)
	if err != nil {
		return fmt.Errorf("failed to get intakes: %w", err)
	}

	fmt.Print(renderMonth(month, ledger.Month(ctx.Scheduler, month, courses, packages, records)))
	return nil
}

func (c *CalendarCmd) resolveMonth(ctx *cli.Context) (time.Time, error) {
	if c.Month == "" {
		today, err := ctx.ResolveDay("today")
		if err != nil {
			return time.Time{}, err
		}
		return utils.StartOfMonth(today), nil
	}
	t, err := time.Parse(monthFormat, c.Month)
	if err != nil {
		return time.Time{}, apperrors.Usage("invalid month %q, expected YYYY-MM", c.Month)
	}
	return t, nil
}

// renderMonth draws a Monday-first grid. Each day is followed by a mark:
// "*" when everything was taken, "!" when intakes are outstanding.
func renderMonth(month time.Time, days []ledger.DayStatus) string {
	var b strings.Builder
	title := month.Format("January 2006")
	fmt.Fprintf(&b, "%*s\n", (28+len(title))/2, title)
	b.WriteString(" Mo  Tu  We  Th  Fr  Sa  Su\n")

	col := 0
	if len(days) > 0 {
		col = utils.MondayIndex(days[0].Date.Weekday())
	}
	b.WriteString(strings.Repeat("    ", col))

	for _, d := range days {
		fmt.Fprintf(&b, " %2d%s", d.Date.Day(), statusMark(d.Status))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	b.WriteString("\n* all taken   ! intakes remaining\n")
	return b.String()
}

func statusMark(s constants.CalendarStatus) string {
	switch s {
	case constants.StatusDone:
		return "*"
	case constants.StatusPending:
		return "!"
	default:
		return " "
	}
}
