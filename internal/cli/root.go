package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/pharmtrack/internal/backup"
	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/keyring"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/logger"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/scheduler"
	"github.com/julianstephens/pharmtrack/internal/storage"
	"github.com/julianstephens/pharmtrack/internal/storage/postgres"
	"github.com/julianstephens/pharmtrack/internal/storage/sqlite"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

// PostgresKeyword as --config selects PostgreSQL with the connection string
// taken from the environment or the OS keyring.
const PostgresKeyword = "postgres"

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only the SQLite backend is file based; other backends are skipped.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Settings returns the stored settings with defaults filled in.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// ResolveDay parses a day argument, deciding "today" in the configured timezone.
func (c *Context) ResolveDay(arg string) (time.Time, error) {
	settings, err := c.Settings()
	if err != nil {
		return time.Time{}, err
	}
	return utils.ResolveDay(arg, settings.Timezone)
}

// Day generates the schedule for a date and merges the ledger into it.
func (c *Context) Day(day time.Time) ([]models.DayEntry, error) {
	courses, err := c.Store.GetAllCourses()
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	packages, err := c.Store.GetAllPackages()
	if err != nil {
		return nil, fmt.Errorf("failed to get packages: %w", err)
	}
	items := c.Scheduler.GenerateDaySchedule(day, courses, packages)

	records, err := c.Store.GetIntakesForDate(utils.FormatDate(day))
	if err != nil {
		return nil, fmt.Errorf("failed to get intakes: %w", err)
	}
	return ledger.Merge(items, records), nil
}

// OpenStore picks a backend for the --config value: a PostgreSQL URL or DSN,
// the "postgres" keyword, a .json document, or else a SQLite file path.
func OpenStore(config string) (storage.Provider, error) {
	config = strings.TrimSpace(config)

	if IsPostgres(config) {
		connStr := config
		if strings.EqualFold(config, PostgresKeyword) {
			resolved, src, err := keyring.Resolve()
			if err != nil {
				if errors.Is(err, keyring.ErrNotFound) {
					return nil, fmt.Errorf("no PostgreSQL connection string configured: set %s or run '%s keyring set'", constants.EnvConnection, constants.AppName)
				}
				return nil, err
			}
			logger.Debug("Using PostgreSQL connection string", "source", src)
			return postgres.New(resolved), nil
		}
		if _, err := postgres.ValidateConnString(connStr); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded passwords are not allowed in --config; store it with 'keyring set' or use %s or .pgpass", constants.EnvConnection)
			}
			return nil, err
		}
		return postgres.New(connStr), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// IsPostgres reports whether a --config value addresses a PostgreSQL server.
func IsPostgres(config string) bool {
	return strings.EqualFold(config, PostgresKeyword) ||
		strings.HasPrefix(config, "postgres://") ||
		strings.HasPrefix(config, "postgresql://") ||
		strings.Contains(config, "host=") ||
		strings.Contains(config, "dbname=")
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// ParseDose parses a dose given on the command line; "0,5" and "0.5" are the same.
func ParseDose(s string) (float64, error) {
	dose, err := utils.ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	if dose <= 0 {
		return 0, fmt.Errorf("dose must be greater than zero")
	}
	return dose, nil
}

// Timestamp formats an instant the way stored records carry it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
