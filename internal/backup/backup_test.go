package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/doselog/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "doselog.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE medications (id TEXT PRIMARY KEY, name TEXT)`,
		`INSERT INTO medications (id, name) VALUES ('m1', 'Lisinopril')`,
		`INSERT INTO medications (id, name) VALUES ('m2', 'Metformin')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup %q failed: %v", stmt, err)
		}
	}
	return dbPath
}

// steppingClock advances one minute per call so backup names never collide.
func steppingClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		cur = cur.Add(time.Minute)
		return cur
	}
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM medications").Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %s: %v", path, err)
	}
	return n
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written to %s, want the backups dir", path)
	}
	if got := countRows(t, path); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected error for a missing database")
	}
}

func TestCreateSameSecond(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	fixed := time.Date(2025, 12, 20, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("expected distinct names, both were %s", first)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 || backups[0].Path != second {
		t.Errorf("List() = %+v, want the counter-suffixed backup first", backups)
	}
}

func TestRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = steppingClock(time.Date(2025, 12, 1, 8, 0, 0, 0, time.Local))

	var oldest string
	for i := 0; i < constants.MaxBackups+5; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		if i == 0 {
			oldest = path
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backup %d is newer than backup %d", i, i-1)
		}
	}
	if _, err := os.Stat(oldest); !os.IsNotExist(err) {
		t.Errorf("oldest backup %s should have been removed", oldest)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	mgr := NewManager(setupTestDB(t))

	backups, err := mgr.List()
	if err != nil || len(backups) != 0 {
		t.Fatalf("List() on missing dir = (%v, %v), want empty", backups, err)
	}

	if err := os.MkdirAll(mgr.Dir(), 0o700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "doselog-garbage.db", "other-20250101-1200.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := mgr.Create(); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup size is 0")
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		wantOK  bool
		wantSeq int
		want    time.Time
	}{
		{name: "doselog-20251220-093000.db", wantOK: true, want: time.Date(2025, 12, 20, 9, 30, 0, 0, time.Local)},
		{name: "doselog-20251220-0930.db", wantOK: true, want: time.Date(2025, 12, 20, 9, 30, 0, 0, time.Local)},
		{name: "doselog-20251220-093000-3.db", wantOK: true, wantSeq: 3, want: time.Date(2025, 12, 20, 9, 30, 0, 0, time.Local)},
		{name: "doselog-20251220.db"},
		{name: "doselog-20251220-093000.sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, seq, ok := parseName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("parseName() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !ts.Equal(tt.want) || seq != tt.wantSeq {
				t.Errorf("parseName() = (%v, %d), want (%v, %d)", ts, seq, tt.want, tt.wantSeq)
			}
		})
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2025, 12, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO medications (id, name) VALUES ('m3', 'Atorvastatin')"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if got := countRows(t, dbPath); got != 3 {
		t.Fatalf("expected 3 rows before restore, got %d", got)
	}

	preRestore, err := mgr.Restore(backupPath)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}
	if preRestore == "" {
		t.Fatal("expected a pre-restore backup path")
	}
	if got := countRows(t, preRestore); got != 3 {
		t.Errorf("pre-restore backup has %d rows, want 3", got)
	}
}

func TestRestoreInvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected error for missing backup file")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("this is not a database file at all, just text"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("expected error for corrupted backup file")
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("database modified by failed restore: %d rows", got)
	}
}
