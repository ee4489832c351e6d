package packages

import (
	"fmt"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/models"
)

type PackageListCmd struct {
	All bool `short:"a" help:"Include deleted packages."`
}

func (c *PackageListCmd) Run(ctx *cli.Context) error {
	var (
		pkgs []models.Package
		err  error
	)
	if c.All {
		pkgs, err = ctx.Store.GetAllPackagesIncludingDeleted()
	} else {
		pkgs, err = ctx.Store.GetAllPackages()
	}
	if err != nil {
		return fmt.Errorf("failed to get packages: %w", err)
	}

	if len(pkgs) == 0 {
		fmt.Println("No packages found.")
		return nil
	}

	for _, pkg := range pkgs {
		status := ""
		if pkg.DeletedAt != nil {
			status = " [deleted]"
		}
		fmt.Printf("- %s  %s, %d/%d left%s\n", pkg.Name(), pkg.MedicationType, pkg.Remaining(), pkg.Quantity, status)
		fmt.Printf("    ID: %s\n", pkg.ID)
		if pkg.ActiveIngredient != "" {
			fmt.Printf("    Active ingredient: %s\n", pkg.ActiveIngredient)
		}
		if pkg.Indications != "" {
			fmt.Printf("    Indications: %s\n", pkg.Indications)
		}
		if pkg.Comment != "" {
			fmt.Printf("    Comment: %s\n", pkg.Comment)
		}
	}
	return nil
}
