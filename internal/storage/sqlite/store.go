package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/migration"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/storage"
	"github.com/julianstephens/doselog/migrations"
)

// timestamps are stored as RFC3339 text in UTC so lexical order matches time order
const timeLayout = time.RFC3339

type Store struct {
	path string
	db   *sql.DB
}

var _ storage.Provider = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.Migrate(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := s.GetProfileByName(constants.DefaultProfileName); err != nil {
		p := models.Profile{
			ID:        uuid.New().String(),
			Name:      constants.DefaultProfileName,
			CreatedAt: time.Now().UTC(),
		}
		models.ApplyDefaultProfile(&p)
		if err := s.AddProfile(p); err != nil {
			return fmt.Errorf("failed to create default profile: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'doselog init' first")
	}

	if err := s.open(); err != nil {
		return err
	}

	return s.runner().ValidateVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() *migration.Runner {
	// the embedded FS always contains the sqlite directory
	sub, _ := fs.Sub(migrations.FS, "sqlite")
	return migration.NewRunner(s.db, sub, migration.SQLite)
}

func (s *Store) Migrate(logFn func(string)) (int, error) {
	return s.runner().ApplyMigrations(logFn)
}

func (s *Store) SchemaStatus() (migration.Status, error) {
	return s.runner().Status()
}

func (s *Store) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	var result int
	if err := s.db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func (s *Store) CountOrphanedDoseLogs() (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM dose_logs d
		LEFT JOIN medications m ON d.medication_id = m.id
		WHERE m.id IS NULL`).Scan(&count)
	return count, err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Init or Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return t, nil
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
