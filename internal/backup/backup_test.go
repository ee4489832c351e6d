package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/pharmtrack/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "pharmtrack.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE courses (id TEXT PRIMARY KEY, course_name TEXT NOT NULL)`,
		`CREATE TABLE intakes (id TEXT PRIMARY KEY, taken INTEGER NOT NULL)`,
		`INSERT INTO courses (id, course_name) VALUES ('c1', 'Omega-3'), ('c2', 'Magnesium')`,
		`INSERT INTO intakes (id, taken) VALUES ('c1_2024-03-01_morning', 1)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed test database: %v", err)
		}
	}
	return dbPath
}

// clock returns a time source that advances by step on every call.
func clock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}

func countRows(t *testing.T, path, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s in %s: %v", table, path, err)
	}
	return n
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	mgr.now = func() time.Time { return time.Date(2024, 3, 5, 8, 10, 0, 0, time.Local) }

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	want := filepath.Join(filepath.Dir(dbPath), constants.BackupDirName, "pharmtrack-20240305-0810.db")
	if backupPath != want {
		t.Errorf("backup path = %s, want %s", backupPath, want)
	}
	if got := countRows(t, backupPath, "courses"); got != 2 {
		t.Errorf("expected 2 courses in backup, got %d", got)
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	mgr.now = clock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local), 24*time.Hour)

	var paths []string
	for i := 0; i < constants.MaxBackups+3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		paths = append(paths, p)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for _, p := range paths[:3] {
		if exists(p) {
			t.Errorf("expected oldest backup %s to be rotated away", filepath.Base(p))
		}
	}
	if backups[0].Path != paths[len(paths)-1] {
		t.Errorf("newest backup = %s, want %s", backups[0].Name(), filepath.Base(paths[len(paths)-1]))
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups before the directory exists, got %d", len(backups))
	}

	mgr.now = clock(time.Date(2024, 3, 5, 8, 0, 0, 0, time.Local), time.Hour)
	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}
	// Unrelated files in the directory are ignored
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write stray file: %v", err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not sorted newest first: %s before %s", backups[i-1].Name(), backups[i].Name())
		}
	}
	if backups[0].Size == 0 {
		t.Error("expected backup size to be recorded")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 3, 5, 8, 10, 30, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	want := []string{
		"pharmtrack-20240305-0810.db",
		"pharmtrack-20240305-081030.db",
		"pharmtrack-20240305-081030-1.db",
		"pharmtrack-20240305-081030-2.db",
	}
	for i, name := range want {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		if filepath.Base(p) != name {
			t.Errorf("backup %d = %s, want %s", i, filepath.Base(p), name)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != len(want) {
		t.Fatalf("expected %d backups, got %d", len(want), len(backups))
	}
	for i, b := range backups {
		if b.Name() != want[len(want)-1-i] {
			t.Errorf("backups[%d] = %s, want %s", i, b.Name(), want[len(want)-1-i])
		}
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name    string
		want    time.Time
		wantSeq int
		wantOK  bool
	}{
		{name: "pharmtrack-20240305-0810.db", want: time.Date(2024, 3, 5, 8, 10, 0, 0, time.Local), wantOK: true},
		{name: "pharmtrack-20240305-081030.db", want: time.Date(2024, 3, 5, 8, 10, 30, 0, time.Local), wantOK: true},
		{name: "pharmtrack-20240305-081030-7.db", want: time.Date(2024, 3, 5, 8, 10, 30, 0, time.Local), wantSeq: 7, wantOK: true},
		{name: "pharmtrack-20240305-081030-x.db"},
		{name: "pharmtrack-latest.db"},
		{name: "other-20240305-0810.db"},
		{name: "pharmtrack-20240305-0810.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, seq, ok := parseBackupName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("parseBackupName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !got.Equal(tt.want) || seq != tt.wantSeq {
				t.Errorf("parseBackupName(%q) = %v/%d, want %v/%d", tt.name, got, seq, tt.want, tt.wantSeq)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	p, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if got := mgr.Resolve(filepath.Base(p)); got != p {
		t.Errorf("Resolve(name) = %s, want %s", got, p)
	}
	if got := mgr.Resolve(p); got != p {
		t.Errorf("Resolve(path) = %s, want %s", got, p)
	}
	if got := mgr.Resolve("missing.db"); got != "missing.db" {
		t.Errorf("Resolve(unknown) = %s, want it unchanged", got)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	mgr.now = clock(time.Date(2024, 3, 5, 8, 0, 0, 0, time.Local), time.Hour)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO courses (id, course_name) VALUES ('c3', 'Vitamin D')"); err != nil {
		t.Fatalf("failed to modify database: %v", err)
	}
	db.Close()

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countRows(t, dbPath, "courses"); got != 2 {
		t.Errorf("expected 2 courses after restore, got %d", got)
	}

	// The pre-restore snapshot keeps the change that was rolled back
	if safety == "" {
		t.Fatal("expected a safety backup path")
	}
	if got := countRows(t, safety, "courses"); got != 3 {
		t.Errorf("expected 3 courses in safety backup, got %d", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("expected temporary restore file to be cleaned up")
	}
}

func TestRestoreBackupWithoutCurrentDatabase(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if err := os.Remove(dbPath); err != nil {
		t.Fatalf("failed to remove database: %v", err)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if safety != "" {
		t.Errorf("expected no safety backup when there is no database, got %s", safety)
	}
	if got := countRows(t, dbPath, "intakes"); got != 1 {
		t.Errorf("expected 1 intake after restore, got %d", got)
	}
}

func TestVerifyBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	if err := verifyBackup(dbPath); err != nil {
		t.Errorf("verifyBackup failed on a valid database: %v", err)
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte(strings.Repeat("not a database ", 20)), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}
	if err := verifyBackup(corrupt); err == nil {
		t.Error("expected verifyBackup to reject a corrupt file")
	}
}
