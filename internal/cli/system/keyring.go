package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/keyring"
	"github.com/julianstephens/doselog/internal/storage"
	"github.com/julianstephens/doselog/internal/storage/postgres"
)

// KeyringSetCmd stores the database connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgresConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// the keyring is encrypted, so a password is acceptable here
		fmt.Println("⚠️  Connection string contains a password; it will be stored in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}

	fmt.Println("✓ Connection string stored in OS keyring")
	fmt.Printf("  Use it with --db %s or database: %s in config.yaml\n", cli.KeyringTarget, cli.KeyringTarget)
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'doselog keyring set' to store one")
		}
		return err
	}
	fmt.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	st := keyring.GetStatus()
	if !st.Available {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")
	if st.HasSecret {
		fmt.Println("✓ Connection string is stored in keyring")
	} else {
		fmt.Println("ℹ No connection string stored in keyring")
	}
	return nil
}

// maskPassword hides the password of a URI or key=value connection string.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, ok := u.User.Password(); !ok {
			return connStr
		}
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
		return strings.Replace(u.String(), "xxxxx", "****", 1)
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(strings.ToLower(part), "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
