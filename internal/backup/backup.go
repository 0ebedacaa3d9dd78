// Package backup keeps rotating snapshots of the SQLite database next to it.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/logger"
)

const (
	stampLayout        = "20060102-150405"
	stampLayoutMinutes = "20060102-1504"
	maxNameAttempts    = 100
)

var backupNameRe = regexp.MustCompile(`^` + regexp.QuoteMeta(constants.BackupFilePrefix) +
	`(\d{8}-\d{4}(?:\d{2})?)(?:-(\d+))?` + regexp.QuoteMeta(constants.BackupFileSuffix) + `$`)

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
	seq       int
}

type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
}

// NewManager stores backups in a "backups" directory beside dbPath.
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.backupDir
}

// Create snapshots the database and prunes the oldest snapshots beyond the retention limit.
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.prune(); err != nil {
		logger.Warn("failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.backupDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := m.nextName()
	if err != nil {
		return "", err
	}

	done := logger.Timed("backup created", "path", dest)
	defer done()
	if err := snapshot(m.dbPath, dest); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	return dest, nil
}

func (m *Manager) nextName() (string, error) {
	stamp := m.now().Format(stampLayout)
	base := constants.BackupFilePrefix + stamp
	candidate := filepath.Join(m.backupDir, base+constants.BackupFileSuffix)
	for n := 1; n <= maxNameAttempts; n++ {
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		candidate = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d%s", base, n, constants.BackupFileSuffix))
	}
	return "", errors.New("failed to generate unique backup filename")
}

// snapshot writes a consistent copy with VACUUM INTO, falling back to a file
// copy on SQLite builds that lack it.
func snapshot(src, dest string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		db.Close()
		return copyFile(src, dest)
	}
	return nil
}

func verify(db *sql.DB) error {
	var n int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&n)
}

// parseName accepts both second and minute precision stamps with an optional
// collision counter.
func parseName(name string) (time.Time, int, bool) {
	match := backupNameRe.FindStringSubmatch(name)
	if match == nil {
		return time.Time{}, 0, false
	}
	layout := stampLayout
	if len(match[1]) == len(stampLayoutMinutes) {
		layout = stampLayoutMinutes
	}
	ts, err := time.ParseInLocation(layout, match[1], time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	seq := 0
	if match[2] != "" {
		seq, _ = strconv.Atoi(match[2])
	}
	return ts, seq, true
}

// List returns backups newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, seq, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      fi.Size(),
			seq:       seq,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].seq > backups[j].seq
	})
	return backups, nil
}

func (m *Manager) prune() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("removed old backup", "path", backups[i].Path)
	}
	return nil
}

// Restore replaces the database with backupPath. The current database, if
// any, is snapshotted first and that snapshot's path is returned. The
// pre-restore snapshot is exempt from rotation.
func (m *Manager) Restore(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verifyFile(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var current string
	if _, err := os.Stat(m.dbPath); err == nil {
		current, err = m.create()
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return current, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return current, fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("database restored", "from", backupPath)
	return current, nil
}

func verifyFile(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	return verify(db)
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
