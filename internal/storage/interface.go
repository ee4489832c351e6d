package storage

import (
	"errors"

	"github.com/julianstephens/pharmtrack/internal/models"
)

// ErrNotFound is returned when a record does not exist or is soft-deleted.
var ErrNotFound = errors.New("not found")

// Provider is implemented by every storage backend (SQLite, PostgreSQL, JSON).
//
// List methods return records in creation order; the schedule generator keeps
// that order within a time-of-day slot.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Packages. AddPackage inserts or replaces; UpdatePackage requires an existing row.
	AddPackage(models.Package) error
	GetPackage(id string) (models.Package, error)
	GetAllPackages() ([]models.Package, error)
	GetAllPackagesIncludingDeleted() ([]models.Package, error)
	UpdatePackage(models.Package) error
	DeletePackage(id string) error
	RestorePackage(id string) error

	// Courses
	AddCourse(models.Course) error
	GetCourse(id string) (models.Course, error)
	GetAllCourses() ([]models.Course, error)
	GetAllCoursesIncludingDeleted() ([]models.Course, error)
	UpdateCourse(models.Course) error
	DeleteCourse(id string) error
	RestoreCourse(id string) error

	// Intake ledger. SaveIntake upserts by record ID.
	SaveIntake(models.IntakeRecord) error
	GetIntakesForDate(date string) ([]models.IntakeRecord, error)
	// GetIntakesInRange returns records with startDate <= date <= endDate (YYYY-MM-DD).
	GetIntakesInRange(startDate, endDate string) ([]models.IntakeRecord, error)
	GetAllIntakes() ([]models.IntakeRecord, error)

	// Utils
	GetConfigPath() string
}
