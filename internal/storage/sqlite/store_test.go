package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/storage"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }

func TestInitSeedsDefaultSettings(t *testing.T) {
	store := setupStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", settings)
	}

	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || current < 1 {
		t.Errorf("expected schema at latest version, got %d/%d", current, latest)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected Load to fail before Init")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	custom := models.Settings{DefaultTime: "07:30", RepeatInterval: 15, Timezone: "Europe/Moscow", NotificationsEnabled: true}
	if err := store.SaveSettings(custom); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	store.Close()

	// A second Init on the same file must not reset settings
	store = NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	store.Close()

	store = NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer store.Close()

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != custom {
		t.Errorf("settings = %+v, want %+v", got, custom)
	}
}

func TestPackageLifecycle(t *testing.T) {
	store := setupStore(t)

	pkg := models.Package{
		ID:              "p1",
		TradeName:       "Aquadetrim",
		Quantity:        30,
		CurrentQuantity: intPtr(12),
		DosageValue:     "500",
		DosageUnit:      "IU",
		MedicationType:  "drops",
		RdaPercent:      "250",
		CreatedAt:       "2024-03-01T08:00:00Z",
	}
	if err := store.AddPackage(pkg); err != nil {
		t.Fatalf("AddPackage failed: %v", err)
	}

	got, err := store.GetPackage("p1")
	if err != nil {
		t.Fatalf("GetPackage failed: %v", err)
	}
	if got.TradeName != pkg.TradeName || got.CurrentQuantity == nil || *got.CurrentQuantity != 12 || got.RdaPercent != "250" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	got.Comment = "keep in fridge"
	if err := store.UpdatePackage(got); err != nil {
		t.Fatalf("UpdatePackage failed: %v", err)
	}
	if err := store.UpdatePackage(models.Package{ID: "nope"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound updating missing package, got %v", err)
	}

	if err := store.DeletePackage("p1"); err != nil {
		t.Fatalf("DeletePackage failed: %v", err)
	}
	if _, err := store.GetPackage("p1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected deleted package to be hidden, got %v", err)
	}
	if err := store.DeletePackage("p1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected second delete to report ErrNotFound, got %v", err)
	}

	all, _ := store.GetAllPackagesIncludingDeleted()
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Errorf("expected soft-deleted package in full listing, got %+v", all)
	}

	if err := store.RestorePackage("p1"); err != nil {
		t.Fatalf("RestorePackage failed: %v", err)
	}
	if err := store.RestorePackage("p1"); err == nil {
		t.Error("expected restoring a live package to fail")
	}
	restored, err := store.GetPackage("p1")
	if err != nil || restored.Comment != "keep in fridge" {
		t.Errorf("restored package = %+v, err = %v", restored, err)
	}
}

func TestCourseRoundTrip(t *testing.T) {
	store := setupStore(t)

	course := models.Course{
		ID:                   "c1",
		PackageID:            "p1",
		CourseName:           "Vitamin D",
		CurrentStock:         floatPtr(28.5),
		StartDate:            "2024-03-01",
		EndDate:              strPtr("2024-06-01"),
		IsActive:             true,
		IntervalDays:         2,
		Schedule:             models.Schedule{Morning: true, Evening: true},
		DosePerIntake:        floatPtr(1),
		UseDifferentDoses:    true,
		Doses:                &models.SlotDoses{Evening: floatPtr(0.5)},
		ExactTimes:           &models.SlotTimes{Morning: "07:45"},
		MealCondition:        constants.MealAfter,
		LowStockReminderDays: intPtr(5),
		CreatedAt:            "2024-03-01T08:00:00Z",
	}
	if err := store.AddCourse(course); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	got, err := store.GetCourse("c1")
	if err != nil {
		t.Fatalf("GetCourse failed: %v", err)
	}
	if got.Schedule != course.Schedule || got.IntervalDays != 2 || !got.IsActive || got.MealCondition != constants.MealAfter {
		t.Errorf("scalar mismatch: %+v", got)
	}
	if got.Doses == nil || got.Doses.Evening == nil || *got.Doses.Evening != 0.5 || got.Doses.Morning != nil {
		t.Errorf("doses mismatch: %+v", got.Doses)
	}
	if got.ExactTimes == nil || got.ExactTimes.Morning != "07:45" {
		t.Errorf("exact times mismatch: %+v", got.ExactTimes)
	}
	if got.EndDate == nil || *got.EndDate != "2024-06-01" || *got.CurrentStock != 28.5 || *got.LowStockReminderDays != 5 {
		t.Errorf("optional fields mismatch: %+v", got)
	}

	// Nil optionals stay nil
	bare := models.Course{ID: "c2", CourseName: "Bare", StartDate: "2024-03-02", Schedule: models.Schedule{Night: true}, CreatedAt: "2024-03-02T08:00:00Z"}
	if err := store.AddCourse(bare); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}
	got, _ = store.GetCourse("c2")
	if got.Doses != nil || got.ExactTimes != nil || got.EndDate != nil || got.DosePerIntake != nil {
		t.Errorf("expected nil optionals, got %+v", got)
	}

	courses, err := store.GetAllCourses()
	if err != nil || len(courses) != 2 || courses[0].ID != "c1" {
		t.Errorf("expected creation order, got %+v (err=%v)", courses, err)
	}
}

func TestIntakeUpsert(t *testing.T) {
	store := setupStore(t)

	rec := models.IntakeRecord{
		ID:        "c1_2024-03-05_morning",
		CourseID:  "c1",
		Date:      "2024-03-05",
		TimeOfDay: constants.SlotMorning,
		Taken:     true,
		UpdatedAt: "2024-03-05T08:10:00Z",
	}
	if err := store.SaveIntake(rec); err != nil {
		t.Fatalf("SaveIntake failed: %v", err)
	}
	rec.Taken = false
	rec.UpdatedAt = "2024-03-05T09:00:00Z"
	if err := store.SaveIntake(rec); err != nil {
		t.Fatalf("SaveIntake (update) failed: %v", err)
	}
	other := rec
	other.ID, other.Date = "c1_2024-03-07_morning", "2024-03-07"
	if err := store.SaveIntake(other); err != nil {
		t.Fatalf("SaveIntake failed: %v", err)
	}

	day, err := store.GetIntakesForDate("2024-03-05")
	if err != nil {
		t.Fatalf("GetIntakesForDate failed: %v", err)
	}
	if len(day) != 1 || day[0].Taken || day[0].UpdatedAt != "2024-03-05T09:00:00Z" {
		t.Errorf("expected single updated record, got %+v", day)
	}

	month, _ := store.GetIntakesInRange("2024-03-01", "2024-03-31")
	if len(month) != 2 {
		t.Errorf("expected 2 records in range, got %d", len(month))
	}
}
