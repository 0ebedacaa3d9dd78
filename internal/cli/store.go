package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/doselog/internal/config"
	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/errors"
	"github.com/julianstephens/doselog/internal/keyring"
	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/storage"
	"github.com/julianstephens/doselog/internal/storage/postgres"
	"github.com/julianstephens/doselog/internal/storage/sqlite"
)

// KeyringTarget as the database selects the connection string stored in the OS keyring.
const KeyringTarget = "keyring"

// OpenStore picks a storage backend for target. DOSELOG_DB_CONNECTION takes
// precedence and may carry credentials; connection strings given anywhere
// else must not.
func OpenStore(target string) (storage.Provider, error) {
	if env := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); env != "" {
		logger.Debug("using database connection from environment")
		return postgres.New(env), nil
	}
	return OpenTarget(target)
}

// OpenTarget is OpenStore without the environment override.
func OpenTarget(target string) (storage.Provider, error) {
	if target == KeyringTarget {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if stderrors.Is(err, keyring.ErrNotFound) {
				return nil, errors.WithHint(err, "store one with 'doselog keyring set <connection-string>'")
			}
			return nil, err
		}
		logger.Debug("using database connection from keyring")
		return postgres.New(connStr), nil
	}

	if storage.IsPostgresConnString(target) {
		if err := postgres.ValidateConnString(target); err != nil {
			if stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, errors.WithHint(
					fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed"),
					"use the OS keyring (doselog keyring set), "+constants.EnvDBConnection+", or a .pgpass file",
				)
			}
			return nil, err
		}
		return postgres.New(target), nil
	}

	return sqlite.NewStore(config.ExpandHome(target)), nil
}
