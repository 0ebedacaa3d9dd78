package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/migration"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/storage"
	"github.com/julianstephens/doselog/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var _ storage.Provider = (*Store)(nil)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath pins unqualified table names to the doselog schema.
func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}
	if _, ok := dsnParam(s.connStr, "search_path"); !ok {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

// dsnParam looks up key (case-insensitively) in a space-separated key=value DSN.
func dsnParam(connStr, key string) (string, bool) {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), key) {
			return kv[1], true
		}
	}
	return "", false
}

func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	_, ok := dsnParam(connStr, "sslmode")
	return ok
}

// ValidateConnString checks that connStr parses as a PostgreSQL URI or DSN and
// carries no password. Passwords belong in the keyring, the environment or .pgpass.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	if _, ok := dsnParam(connStr, "password"); ok {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Init() error {
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
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
	sub, _ := fs.Sub(migrations.FS, "postgres")
	return migration.NewRunner(s.db, sub, migration.Postgres)
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
	return s.db.Ping()
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

// GetConfigPath returns a non-sensitive identifier instead of the connection string.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
