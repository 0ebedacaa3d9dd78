package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Driver selects the SQL dialect used for the runner's own bookkeeping queries.
type Driver int

const (
	SQLite Driver = iota
	Postgres
)

// placeholder returns the n-th (1-based) bind parameter for the dialect.
func (d Driver) placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Migration is a single numbered SQL file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status summarizes how far a database is behind its migration set.
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

// Runner applies NNN_name.sql files from an fs.FS and tracks the result in schema_version.
type Runner struct {
	db     *sql.DB
	fs     fs.FS
	driver Driver
}

func NewRunner(db *sql.DB, migrationFS fs.FS, driver Driver) *Runner {
	return &Runner{
		db:     db,
		fs:     migrationFS,
		driver: driver,
	}
}

func (r *Runner) EnsureSchemaVersionTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`)
	return err
}

// GetCurrentVersion returns the applied schema version, or 0 for a fresh database.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

func (r *Runner) SetVersion(version int) error {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := r.writeVersion(tx, version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *Runner) writeVersion(tx *sql.Tx, version int) error {
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear version: %w", err)
	}
	query := "INSERT INTO schema_version (version) VALUES (" + r.driver.placeholder(1) + ")"
	if _, err := tx.Exec(query, version); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}
	return nil
}

// ReadMigrationFiles parses every .sql file in the runner's FS, sorted by version.
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	files, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		m, err := parseFilename(file.Name())
		if err != nil {
			return nil, err
		}

		content, err := fs.ReadFile(r.fs, file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}
		m.SQL = string(content)
		migrations = append(migrations, m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

// parseFilename splits "001_init.sql" into version 1 and name "init".
func parseFilename(name string) (Migration, error) {
	parts := strings.SplitN(name, "_", 2)
	if len(parts) < 2 {
		return Migration{}, fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", name)
	}

	version, err := strconv.Atoi(parts[0])
	if err != nil {
		return Migration{}, fmt.Errorf("invalid version number in filename %s: %w", name, err)
	}
	if version < 1 {
		return Migration{}, fmt.Errorf("invalid version number in filename %s: version must be at least 1", name)
	}

	return Migration{Version: version, Name: strings.TrimSuffix(parts[1], ".sql")}, nil
}

func (r *Runner) GetLatestVersion() (int, error) {
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}
	return migrations[len(migrations)-1].Version, nil
}

// Status reports the current and latest versions and the migrations not yet applied.
func (r *Runner) Status() (Status, error) {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return Status{}, err
	}
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: current}
	for _, m := range migrations {
		st.Latest = m.Version
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// ApplyMigrations applies all pending migrations, each in its own transaction,
// and returns how many were applied. logFn receives progress lines.
func (r *Runner) ApplyMigrations(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	st, err := r.Status()
	if err != nil {
		return 0, fmt.Errorf("failed to read migration status: %w", err)
	}

	if st.Latest == 0 {
		logFn("No migration files found")
		return 0, nil
	}
	if st.Current > st.Latest {
		return 0, newerSchemaError(st.Current, st.Latest)
	}
	if len(st.Pending) == 0 {
		logFn(fmt.Sprintf("Database schema is up to date (version %d)", st.Current))
		return 0, nil
	}

	logFn(fmt.Sprintf("Current schema version: %d", st.Current))
	logFn(fmt.Sprintf("Target schema version: %d", st.Latest))
	logFn(fmt.Sprintf("Applying %d migration(s)...", len(st.Pending)))

	startTime := time.Now()
	applied := 0

	for _, m := range st.Pending {
		logFn(fmt.Sprintf("  Applying migration %d: %s", m.Version, m.Name))

		tx, err := r.db.Begin()
		if err != nil {
			return applied, fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}

		if err := r.writeVersion(tx, m.Version); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		applied++
		logFn(fmt.Sprintf("  ✓ Migration %d applied successfully", m.Version))
	}

	logFn(fmt.Sprintf("Applied %d migration(s) in %v", applied, time.Since(startTime)))
	return applied, nil
}

// ValidateVersion fails when the database was migrated by a newer release.
func (r *Runner) ValidateVersion() error {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := r.GetLatestVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return newerSchemaError(current, latest)
	}
	return nil
}

func newerSchemaError(current, latest int) error {
	return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade doselog", current, latest)
}
