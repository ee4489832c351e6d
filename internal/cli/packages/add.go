package packages

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/models"
)

type PackageAddCmd struct {
	TradeName        string `arg:"" help:"Trade name printed on the package."`
	Quantity         int    `short:"q" help:"Number of units in a full package." required:""`
	Remaining        *int   `short:"r" help:"Units left if the package is already open."`
	Dosage           string `short:"d" help:"Strength of one unit, e.g. 500 or 0,5." required:""`
	Unit             string `short:"u" help:"Unit of the strength (mg, mcg, IU, ml)." default:"mg"`
	Type             string `short:"t" help:"Medication type (tablet, capsule, drops)." default:"tablet"`
	ActiveIngredient string `help:"Active ingredient."`
	DisplayName      string `help:"Display name. Built from trade name, dosage and quantity when omitted."`
	Indications      string `help:"What the medication is for."`
	Comment          string `help:"Free-form note."`
	RdaPercent       string `help:"Percentage of the recommended daily allowance per unit."`
}

func (c *PackageAddCmd) Validate() error {
	if c.Quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero")
	}
	if c.Remaining != nil && (*c.Remaining < 0 || *c.Remaining > c.Quantity) {
		return fmt.Errorf("remaining must be between 0 and %d", c.Quantity)
	}
	return nil
}

func (c *PackageAddCmd) Run(ctx *cli.Context) error {
	pkg := models.Package{
		ID:               uuid.New().String(),
		TradeName:        c.TradeName,
		Quantity:         c.Quantity,
		CurrentQuantity:  c.Remaining,
		DosageValue:      c.Dosage,
		DosageUnit:       c.Unit,
		MedicationType:   c.Type,
		ActiveIngredient: c.ActiveIngredient,
		DisplayName:      c.DisplayName,
		Indications:      c.Indications,
		Comment:          c.Comment,
		RdaPercent:       c.RdaPercent,
		CreatedAt:        cli.Timestamp(time.Now()),
	}
	if pkg.DisplayName == "" {
		pkg.DisplayName = pkg.BuildDisplayName()
	}

	if err := pkg.Validate(); err != nil {
		return fmt.Errorf("invalid package: %w", err)
	}
	if err := ctx.Store.AddPackage(pkg); err != nil {
		return err
	}

	fmt.Printf("Added package: %s (ID: %s)\n", pkg.DisplayName, pkg.ID)
	return nil
}
