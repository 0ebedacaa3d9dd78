package cli

import (
	"fmt"

	"github.com/julianstephens/doselog/internal/backup"
	"github.com/julianstephens/doselog/internal/compliance"
	"github.com/julianstephens/doselog/internal/config"
	"github.com/julianstephens/doselog/internal/doses"
	"github.com/julianstephens/doselog/internal/health"
	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/notifier"
	"github.com/julianstephens/doselog/internal/storage"
	"github.com/julianstephens/doselog/internal/storage/sqlite"
)

type Context struct {
	Store       storage.Provider
	Config      *config.Config
	Doses       *doses.Logger
	Medications *doses.Medications
	Compliance  *compliance.Service
	Records     *health.Records
	Activity    *health.Activity

	profile *models.Profile
}

func NewContext(store storage.Provider, cfg *config.Config) *Context {
	th := doses.Thresholds{Days: cfg.Refill.DaysThreshold, Refills: cfg.Refill.RefillsThreshold}

	var n doses.Notifier
	if cfg.Notifications.Enabled {
		n = notifier.New()
	}

	svc := compliance.NewService(store, store, store)
	svc.Days = cfg.Report.Days

	return &Context{
		Store:       store,
		Config:      cfg,
		Doses:       doses.NewLogger(store, th, n),
		Medications: doses.NewMedications(store, th),
		Compliance:  svc,
		Records:     health.NewRecords(store),
		Activity:    health.NewActivity(store, cfg.Exercise.METs),
	}
}

// Profile returns the active profile named by config, loading it once.
func (c *Context) Profile() (models.Profile, error) {
	if c.profile != nil {
		return *c.profile, nil
	}
	p, err := c.Store.GetProfileByName(c.Config.Profile)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to load profile %q: %w", c.Config.Profile, err)
	}
	c.profile = &p
	return p, nil
}

// ProfileID is shorthand for Profile().ID.
func (c *Context) ProfileID() (string, error) {
	p, err := c.Profile()
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// ForgetProfile drops the cached profile after it has been edited.
func (c *Context) ForgetProfile() {
	c.profile = nil
}

// IsSQLite reports whether the store is a local file that can be backed up.
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

func (c *Context) BackupManager() (*backup.Manager, error) {
	if !c.IsSQLite() {
		return nil, fmt.Errorf("backups are only supported for SQLite databases")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates a backup and logs, rather than returns, any failure.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
