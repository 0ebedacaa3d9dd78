// Package keyring keeps the PostgreSQL connection string in the OS keyring so
// credentials never land in the config file or shell history.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/doselog/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

const availabilityCheckUser = "availability-check"

// Status summarizes the keyring for doctor and `keyring status`.
type Status struct {
	Available bool
	HasSecret bool
}

// GetConnectionString returns ErrNotFound if nothing is stored.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable is best effort: a lookup that fails with anything other than
// "not found" is treated as an unusable keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, availabilityCheckUser)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

func GetStatus() Status {
	if !IsAvailable() {
		return Status{}
	}
	_, err := GetConnectionString()
	return Status{Available: true, HasSecret: err == nil}
}
