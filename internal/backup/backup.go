// Package backup keeps rotating snapshot copies of the SQLite database next to it.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/logger"
)

const (
	stampMinutes = "20060102-1504"
	stampSeconds = "20060102-150405"
)

type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64

	seq int // collision counter within the same timestamp
}

// Name returns the backup's file name.
func (b BackupInfo) Name() string {
	return filepath.Base(b.Path)
}

// Manager creates, lists, rotates and restores backups of one database file.
// Backups live in <dir of db>/backups.
type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the database and prunes backups beyond the retention limit.
func (m *Manager) CreateBackup() (string, error) {
	path, err := m.snapshot()
	if err != nil {
		return "", err
	}
	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) snapshot() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	dest, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}
	if err := m.backupDatabase(dest); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Debug("Created backup", "path", dest)
	return dest, nil
}

// nextBackupPath names a backup after the current minute, falling back to
// seconds and then a counter when backups are taken in quick succession.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	candidate := name(now.Format(stampMinutes))
	if !exists(candidate) {
		return candidate, nil
	}
	secs := now.Format(stampSeconds)
	if candidate = name(secs); !exists(candidate) {
		return candidate, nil
	}
	for i := 1; i <= 100; i++ {
		if candidate = name(secs + "-" + strconv.Itoa(i)); !exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// backupDatabase writes a consistent copy with VACUUM INTO and falls back to
// a plain file copy when the statement is unavailable.
func (m *Manager) backupDatabase(destPath string) error {
	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Debug("VACUUM INTO failed, copying file instead", "error", err)
		src.Close()
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

// parseBackupName extracts the timestamp and collision counter from
// "<prefix>YYYYMMDD-HHMM[SS][-N]<suffix>".
func parseBackupName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	seq := 0
	if i := strings.LastIndex(stamp, "-"); i > 0 && strings.Count(stamp, "-") == 2 {
		n, err := strconv.Atoi(stamp[i+1:])
		if err != nil {
			return time.Time{}, 0, false
		}
		seq, stamp = n, stamp[:i]
	}

	for _, layout := range []string{stampMinutes, stampSeconds} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, seq, true
		}
	}
	return time.Time{}, 0, false
}

// ListBackups returns the backups found on disk, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, seq, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
			seq:       seq,
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].seq > backups[j].seq
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Resolve accepts a backup file name from ListBackups or a path to any file.
func (m *Manager) Resolve(nameOrPath string) string {
	if filepath.Base(nameOrPath) == nameOrPath {
		candidate := filepath.Join(m.backupDir, nameOrPath)
		if exists(candidate) {
			return candidate
		}
	}
	return nameOrPath
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the database with the given backup. The current
// database is backed up first (without rotation) and that path is returned.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if !exists(backupPath) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verifyBackup(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if exists(m.dbPath) {
		var err error
		if safety, err = m.snapshot(); err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return safety, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return safety, fmt.Errorf("failed to restore database: %w", err)
	}
	return safety, nil
}

func verifyBackup(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
