package backups

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/pharmtrack/internal/backup"
	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/scheduler"
	"github.com/julianstephens/pharmtrack/internal/storage"
	"github.com/julianstephens/pharmtrack/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list on empty backup dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}

	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list failed: %v", err)
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := ctx.Store.AddPackage(models.Package{ID: "p1", TradeName: "Omega-3"}); err != nil {
		t.Fatalf("failed to add package: %v", err)
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	if err := ctx.Store.AddPackage(models.Package{ID: "p2", TradeName: "Magnesium"}); err != nil {
		t.Fatalf("failed to add package: %v", err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	packages, err := ctx.Store.GetAllPackages()
	if err != nil {
		t.Fatalf("failed to get packages: %v", err)
	}
	if len(packages) != 1 || packages[0].ID != "p1" {
		t.Errorf("expected only p1 after restore, got %+v", packages)
	}
}

func TestBackupRestoreCmd_NotFound(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &BackupRestoreCmd{BackupFile: "pharmtrack-19990101-0000.db", Yes: true}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestBackupCmds_RequireSQLite(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init JSON store: %v", err)
	}
	ctx := &cli.Context{Store: store, Scheduler: scheduler.New()}

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("backup create should fail for a JSON store")
	}
	if err := (&BackupListCmd{}).Run(ctx); err == nil {
		t.Error("backup list should fail for a JSON store")
	}
}
