package packages

import (
	"fmt"

	"github.com/julianstephens/pharmtrack/internal/cli"
)

type PackageEditCmd struct {
	ID               string  `arg:"" help:"Package ID."`
	TradeName        *string `help:"New trade name."`
	Quantity         *int    `short:"q" help:"New full-package quantity."`
	Remaining        *int    `short:"r" help:"Units left."`
	Dosage           *string `short:"d" help:"New strength of one unit."`
	Unit             *string `short:"u" help:"New strength unit."`
	Type             *string `short:"t" help:"New medication type."`
	ActiveIngredient *string `help:"New active ingredient."`
	DisplayName      *string `help:"New display name. An empty value rebuilds it."`
	Indications      *string `help:"New indications."`
	Comment          *string `help:"New comment."`
	RdaPercent       *string `help:"New RDA percentage."`
}

func (c *PackageEditCmd) Run(ctx *cli.Context) error {
	pkg, err := ctx.Store.GetPackage(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get package: %w", err)
	}

	// A name that was built automatically follows the fields it was built from
	autoName := pkg.DisplayName == "" || pkg.DisplayName == pkg.BuildDisplayName()

	if c.TradeName != nil {
		pkg.TradeName = *c.TradeName
	}
	if c.Quantity != nil {
		pkg.Quantity = *c.Quantity
	}
	if c.Remaining != nil {
		pkg.CurrentQuantity = c.Remaining
	}
	if c.Dosage != nil {
		pkg.DosageValue = *c.Dosage
	}
	if c.Unit != nil {
		pkg.DosageUnit = *c.Unit
	}
	if c.Type != nil {
		pkg.MedicationType = *c.Type
	}
	if c.ActiveIngredient != nil {
		pkg.ActiveIngredient = *c.ActiveIngredient
	}
	if c.Indications != nil {
		pkg.Indications = *c.Indications
	}
	if c.Comment != nil {
		pkg.Comment = *c.Comment
	}
	if c.RdaPercent != nil {
		pkg.RdaPercent = *c.RdaPercent
	}

	switch {
	case c.DisplayName != nil && *c.DisplayName != "":
		pkg.DisplayName = *c.DisplayName
	case c.DisplayName != nil || autoName:
		pkg.DisplayName = pkg.BuildDisplayName()
	}

	if err := pkg.Validate(); err != nil {
		return fmt.Errorf("invalid package: %w", err)
	}
	if err := ctx.Store.UpdatePackage(pkg); err != nil {
		return err
	}

	fmt.Printf("Updated package: %s\n", pkg.DisplayName)
	return nil
}
