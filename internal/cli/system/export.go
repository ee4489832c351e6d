package system

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/storage"
)

// ExportCmd writes all packages, courses, intake records and settings as one
// JSON document with the medicationPackages/medicationCourses/medicationIntakes/userSettings keys.
type ExportCmd struct {
	Output string `short:"o" help:"File to write. Defaults to stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	snap, err := storage.ExportSnapshot(ctx.Store)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := storage.WriteSnapshot(w, snap); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if c.Output != "" {
		fmt.Fprintf(os.Stderr, "Exported %d packages, %d courses and %d intake records to %s\n",
			len(snap.Packages), len(snap.Courses), len(snap.Intakes), c.Output)
	}
	return nil
}

// ImportCmd merges a JSON document into the store, replacing records with the same ID.
type ImportCmd struct {
	Input        string `arg:"" help:"JSON document to import." type:"existingfile"`
	SkipSettings bool   `help:"Keep the current settings."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	snap, err := storage.ReadSnapshot(f)
	if err != nil {
		return err
	}
	if c.SkipSettings {
		snap.Settings = nil
	}

	// Keep a copy of the current data in case the import needs undoing
	ctx.PerformAutomaticBackup()

	res, err := storage.ImportSnapshot(ctx.Store, snap)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d packages, %d courses and %d intake records.\n", res.Packages, res.Courses, res.Intakes)
	if res.Skipped > 0 {
		fmt.Printf("Skipped %d intake records with invalid keys.\n", res.Skipped)
	}
	if res.Settings {
		fmt.Println("Settings replaced.")
	}
	return nil
}
