package intakes

import (
	"fmt"
	"strings"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

type DayCmd struct {
	Day      string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, today, tomorrow or yesterday)." default:"today"`
	ShowKeys bool   `short:"k" help:"Show the intake keys accepted by take and untake."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Day)
	if err != nil {
		return err
	}
	entries, err := ctx.Day(day)
	if err != nil {
		return err
	}

	summary := ledger.Summarize(entries)
	fmt.Printf("%s, %s\n", day.Weekday(), utils.FormatDate(day))
	if summary.Planned == 0 {
		fmt.Println("No intakes scheduled.")
		return nil
	}
	fmt.Printf("Planned: %d  Taken: %d  Remaining: %d\n\n", summary.Planned, summary.Taken, summary.Remaining)

	for i, e := range entries {
		fmt.Printf("%2d. %s\n", i+1, formatEntry(e))
		if c.ShowKeys {
			fmt.Printf("    key: %s\n", e.Key)
		}
	}
	return nil
}

// formatEntry renders "[x] 08:00 Morning  Omega-3  1 × 1000 mg capsule, after meals".
func formatEntry(e models.DayEntry) string {
	check := "[ ]"
	if e.Taken {
		check = "[x]"
	}

	dose := utils.FormatDecimal(e.Dose)
	if details := strings.TrimSpace(e.DosageInfo + " " + e.PackageType); details != "" {
		dose += " × " + details
	}

	line := fmt.Sprintf("%s %s %-9s %s  %s", check, e.Time, e.TimeLabel, e.CourseName, dose)
	if e.MealLabel != "" {
		line += ", " + e.MealLabel
	}
	return line
}
