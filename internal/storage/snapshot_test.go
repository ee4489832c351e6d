package storage_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/storage"
	"github.com/julianstephens/pharmtrack/internal/storage/sqlite"
)

// Document in the browser export layout: ledger records carry only the key,
// repeatInterval is a string, and one key is malformed.
const browserExport = `{
  "medicationPackages": [
    {"id": "1709280000000", "tradeName": "Aquadetrim", "quantity": 10, "dosageValue": "15000",
     "dosageUnit": "IU/ml", "medicationType": "drops", "displayName": "Aquadetrim 15000 IU/ml"}
  ],
  "medicationCourses": [
    {"id": "1709280000001", "packageId": "1709280000000", "courseName": "Vitamin D",
     "startDate": "2024-03-01", "isActive": true, "intervalDays": 2,
     "schedule": {"morning": true, "day": false, "evening": true, "night": false},
     "dosePerIntake": 1, "useDifferentDoses": false,
     "doses": {"morning": null, "day": null, "evening": null, "night": null}}
  ],
  "medicationIntakes": [
    {"id": "1709280000001_2024-03-05_morning", "taken": true, "updatedAt": "2024-03-05T08:03:00Z"},
    {"id": "garbage", "taken": true, "updatedAt": "2024-03-05T08:03:00Z"}
  ],
  "userSettings": {"notificationsEnabled": true, "defaultTime": "09:00", "repeatInterval": "15", "timezone": "Europe/Moscow"}
}`

func TestImportBrowserExport(t *testing.T) {
	snap, err := storage.ReadSnapshot(strings.NewReader(browserExport))
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "import.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	res, err := storage.ImportSnapshot(store, snap)
	if err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}
	if res.Packages != 1 || res.Courses != 1 || res.Intakes != 1 || res.Skipped != 1 || !res.Settings {
		t.Errorf("unexpected import result %+v", res)
	}

	recs, err := store.GetIntakesForDate("2024-03-05")
	if err != nil || len(recs) != 1 {
		t.Fatalf("expected the imported record to be found by date, got %+v (err=%v)", recs, err)
	}
	if recs[0].CourseID != "1709280000001" || recs[0].TimeOfDay != constants.SlotMorning {
		t.Errorf("record columns not filled from key: %+v", recs[0])
	}

	settings, _ := store.GetSettings()
	if settings.RepeatInterval != 15 || settings.Timezone != "Europe/Moscow" || !settings.NotificationsEnabled {
		t.Errorf("unexpected settings %+v", settings)
	}
}

// Intake records as the browser calendar writes them: a generated ID, the key
// columns and takenAt, with no taken flag.
const calendarExport = `{
  "medicationCourses": [
    {"id": "1709280000001", "courseName": "Vitamin D", "startDate": "2024-03-01", "isActive": true,
     "intervalDays": 1, "schedule": {"morning": true, "day": false, "evening": true, "night": false},
     "dosePerIntake": 1}
  ],
  "medicationIntakes": [
    {"id": "1700000000001_xyzxyzxyz", "courseId": "1709280000001", "date": "2024-03-05",
     "timeOfDay": "morning", "actualAmount": 1, "takenAt": "2024-03-05T08:03:00.000Z"},
    {"id": "1700000000002_abcabcabc", "courseId": "1709280000001", "date": "2024-03-05",
     "timeOfDay": "evening", "actualAmount": 1, "takenAt": "2024-03-05T18:15:00.000Z"}
  ]
}`

func TestImportCalendarIntakes(t *testing.T) {
	snap, err := storage.ReadSnapshot(strings.NewReader(calendarExport))
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "import.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	res, err := storage.ImportSnapshot(store, snap)
	if err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}
	if res.Intakes != 2 || res.Skipped != 0 {
		t.Fatalf("expected both calendar records imported, got %+v", res)
	}

	recs, err := store.GetIntakesForDate("2024-03-05")
	if err != nil {
		t.Fatalf("GetIntakesForDate failed: %v", err)
	}
	byID := make(map[string]bool)
	for _, r := range recs {
		byID[r.ID] = r.Taken
	}
	for _, id := range []string{"1709280000001_2024-03-05_morning", "1709280000001_2024-03-05_evening"} {
		if taken, ok := byID[id]; !ok || !taken {
			t.Errorf("expected %s to be imported as taken, got %+v", id, recs)
		}
	}
}

func TestJSONStoreOpensCalendarIntakes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "browser.json")
	if err := os.WriteFile(path, []byte(calendarExport), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store := storage.NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	recs, err := store.GetIntakesForDate("2024-03-05")
	if err != nil {
		t.Fatalf("GetIntakesForDate failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %+v", recs)
	}
	if recs[0].ID != "1709280000001_2024-03-05_morning" || !recs[0].Taken || recs[0].UpdatedAt != "2024-03-05T08:03:00.000Z" {
		t.Errorf("calendar record not keyed: %+v", recs[0])
	}
}

func TestExportImportBetweenBackends(t *testing.T) {
	snap, err := storage.ReadSnapshot(strings.NewReader(browserExport))
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}

	dir := t.TempDir()
	src := sqlite.NewStore(filepath.Join(dir, "src.db"))
	if err := src.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer src.Close()
	if _, err := storage.ImportSnapshot(src, snap); err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}
	src.DeleteCourse("1709280000001")

	exported, err := storage.ExportSnapshot(src)
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}
	if len(exported.Courses) != 1 || exported.Courses[0].DeletedAt == nil {
		t.Errorf("expected export to include the soft-deleted course, got %+v", exported.Courses)
	}

	var buf bytes.Buffer
	if err := storage.WriteSnapshot(&buf, exported); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	for _, key := range []string{"medicationPackages", "medicationCourses", "medicationIntakes", "userSettings"} {
		if !strings.Contains(buf.String(), `"`+key+`"`) {
			t.Errorf("export is missing key %s", key)
		}
	}

	// The exported document is itself a valid JSON store
	dst := storage.NewJSONStore(filepath.Join(dir, "dst.json"))
	if err := dst.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	reread, err := storage.ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if _, err := storage.ImportSnapshot(dst, reread); err != nil {
		t.Fatalf("ImportSnapshot into JSON failed: %v", err)
	}
	courses, _ := dst.GetAllCourses()
	if len(courses) != 0 {
		t.Errorf("expected the deleted course to stay deleted, got %+v", courses)
	}
	all, _ := dst.GetAllCoursesIncludingDeleted()
	if len(all) != 1 || all[0].Schedule.Evening != true || all[0].IntervalDays != 2 {
		t.Errorf("course did not survive the round trip: %+v", all)
	}
}

func TestReadSnapshot_RejectsForeignDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty object", doc: `{}`},
		{name: "unrelated keys", doc: `{"tasks": [], "plans": []}`},
		{name: "not an object", doc: `[1, 2, 3]`},
		{name: "malformed", doc: `{"medicationCourses": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := storage.ReadSnapshot(strings.NewReader(tt.doc)); err == nil {
				t.Errorf("ReadSnapshot(%s) should fail", tt.doc)
			}
		})
	}

	snap, err := storage.ReadSnapshot(strings.NewReader(`{"` + constants.KeySettings + `": {"defaultTime": "07:30"}}`))
	if err != nil {
		t.Fatalf("ReadSnapshot with settings only failed: %v", err)
	}
	if snap.Settings == nil || snap.Settings.DefaultTime != "07:30" || len(snap.Courses) != 0 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}
