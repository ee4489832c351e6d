package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/storage"
	"github.com/julianstephens/pharmtrack/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path, JSON document or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized pharmtrack storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

// reset deletes a file-backed store so Init starts from scratch.
func (c *InitCmd) reset(ctx *cli.Context) error {
	switch ctx.Store.(type) {
	case *sqlite.Store, *storage.JSONStore:
	default:
		return fmt.Errorf("--force is only supported for file-based storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) error {
	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	snap, err := storage.ExportSnapshot(source)
	if err != nil {
		return err
	}
	res, err := storage.ImportSnapshot(ctx.Store, snap)
	if err != nil {
		return err
	}

	fmt.Printf("  Migrated %d packages\n", res.Packages)
	fmt.Printf("  Migrated %d courses\n", res.Courses)
	fmt.Printf("  Migrated %d intake records\n", res.Intakes)
	if res.Skipped > 0 {
		fmt.Printf("  Skipped %d intake records with invalid keys\n", res.Skipped)
	}
	return nil
}
