package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized doselog storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.copyFrom(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	ctx.PerformAutomaticBackup()
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return fmt.Errorf("--force only supports SQLite databases")
	}
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	_, err := os.Stat(dbPath)
	switch {
	case err == nil:
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context) error {
	src, err := cli.OpenTarget(c.Source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	_, err = storage.Copy(src, ctx.Store, func(msg string) { fmt.Println("  " + msg) })
	return err
}
