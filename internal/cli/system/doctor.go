package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/pharmtrack/internal/backup"
	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/storage/sqlite"
	"github.com/julianstephens/pharmtrack/internal/utils"
	"github.com/julianstephens/pharmtrack/internal/validation"
)

// versioned is implemented by backends with a migrated schema.
type versioned interface {
	SchemaVersion() (current, latest int, err error)
}

type check struct {
	name    string
	needsDB bool
	warning bool // a failure is reported but does not fail the run
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warning: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(versioned)
	if !ok {
		// JSON store doesn't have schema version
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	v, ok := ctx.Store.(versioned)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
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
	if result.HasConflicts() {
		return fmt.Errorf("found %d conflicts (run '%s validate' for details)", len(result.Conflicts), constants.AppName)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("unknown timezone %q", settings.Timezone)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
