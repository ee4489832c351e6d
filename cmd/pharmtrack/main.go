package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/cli/backups"
	"github.com/julianstephens/pharmtrack/internal/cli/courses"
	"github.com/julianstephens/pharmtrack/internal/cli/intakes"
	"github.com/julianstephens/pharmtrack/internal/cli/packages"
	"github.com/julianstephens/pharmtrack/internal/cli/settings"
	"github.com/julianstephens/pharmtrack/internal/cli/system"
	"github.com/julianstephens/pharmtrack/internal/constants"
	apperrors "github.com/julianstephens/pharmtrack/internal/errors"
	"github.com/julianstephens/pharmtrack/internal/logger"
	"github.com/julianstephens/pharmtrack/internal/scheduler"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite file, JSON document, or PostgreSQL connection string ('postgres' reads it from ${env} or the OS keyring). Passwords must NOT be embedded in connection strings." type:"string" default:"${default_config}" env:"PHARMTRACK_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr." env:"PHARMTRACK_DEBUG"`

	Init     system.InitCmd     `cmd:"" help:"Initialize pharmtrack storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check courses and intake records for conflicts."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Day      intakes.DayCmd      `cmd:"" help:"Show the intake schedule for a day."`
	Calendar intakes.CalendarCmd `cmd:"" help:"Show a month with the status of each day."`
	Take     intakes.TakeCmd     `cmd:"" help:"Mark intakes as taken."`
	Untake   intakes.UntakeCmd   `cmd:"" help:"Mark intakes as not taken."`

	Package struct {
		Add     packages.PackageAddCmd     `cmd:"" help:"Add a medication package."`
		Edit    packages.PackageEditCmd    `cmd:"" help:"Edit a package."`
		Delete  packages.PackageDeleteCmd  `cmd:"" help:"Delete a package."`
		Restore packages.PackageRestoreCmd `cmd:"" help:"Restore a deleted package."`
		List    packages.PackageListCmd    `cmd:"" help:"List packages." default:"1"`
	} `cmd:"" help:"Manage medication packages."`
	Course struct {
		Add        courses.CourseAddCmd        `cmd:"" help:"Add a medication course."`
		Edit       courses.CourseEditCmd       `cmd:"" help:"Edit a course."`
		Delete     courses.CourseDeleteCmd     `cmd:"" help:"Delete a course."`
		Restore    courses.CourseRestoreCmd    `cmd:"" help:"Restore a deleted course."`
		Activate   courses.CourseActivateCmd   `cmd:"" help:"Resume a paused course."`
		Deactivate courses.CourseDeactivateCmd `cmd:"" help:"Pause a course."`
		List       courses.CourseListCmd       `cmd:"" help:"List courses." default:"1"`
	} `cmd:"" help:"Manage medication courses."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report where the connection string comes from." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Export   system.ExportCmd     `cmd:"" help:"Export all data as a JSON document."`
	Import   system.ImportCmd     `cmd:"" help:"Import a JSON document."`
}

func main() {
	// A missing .env is fine; anything else is worth reporting
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		apperrors.Fatalf("failed to read .env: %v", err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Medication course tracker and intake schedule generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"env":            constants.EnvConnection,
		},
	)

	configDir, err := cli.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	command := ctx.Command()
	appCtx := &cli.Context{Scheduler: scheduler.New()}

	// The keyring commands manage the connection string itself, so they must
	// work before any store can be opened
	if strings.HasPrefix(command, "keyring") {
		apperrors.Fatal(ctx.Run(appCtx))
		return
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	appCtx.Store = store

	if command != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatalf("%v (run '%s init' to create it)", err, constants.AppName)
		}
	}
	logger.Debug("Running command", "command", command, "store", store.GetConfigPath())

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	apperrors.Fatal(err)
}
