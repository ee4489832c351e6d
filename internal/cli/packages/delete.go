package packages

import (
	"fmt"

	"github.com/julianstephens/pharmtrack/internal/cli"
)

type PackageDeleteCmd struct {
	ID string `arg:"" help:"Package ID."`
}

func (c *PackageDeleteCmd) Run(ctx *cli.Context) error {
	pkg, err := ctx.Store.GetPackage(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get package: %w", err)
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeletePackage(c.ID); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	fmt.Printf("Deleted package: %s\n", pkg.Name())
	fmt.Printf("Courses using it keep running without package details. Restore with 'package restore %s'.\n", c.ID)
	return nil
}

type PackageRestoreCmd struct {
	ID string `arg:"" help:"Package ID."`
}

func (c *PackageRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestorePackage(c.ID); err != nil {
		return fmt.Errorf("failed to restore package: %w", err)
	}

	pkg, err := ctx.Store.GetPackage(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get restored package: %w", err)
	}
	fmt.Printf("Restored package: %s\n", pkg.Name())
	return nil
}
