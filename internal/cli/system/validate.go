package system

import (
	"fmt"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when conflicts are found."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	packages, err := ctx.Store.GetAllPackagesIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get packages: %w", err)
	}
	courses, err := ctx.Store.GetAllCoursesIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}
	intakes, err := ctx.Store.GetAllIntakes()
	if err != nil {
		return fmt.Errorf("failed to get intakes: %w", err)
	}

	result := validation.New().Validate(packages, courses, intakes)
	fmt.Println(result.FormatReport())

	if c.Strict && result.HasConflicts() {
		return fmt.Errorf("%d conflicts found", len(result.Conflicts))
	}
	return nil
}
