package backups

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		fmt.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`

	in io.Reader
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	path, err := resolveBackupPath(c.BackupFile, mgr.Dir())
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Println("⚠️  WARNING: This will replace your current database with the backup.")
		fmt.Println("⚠️  All doselog processes (including the TUI) must be stopped before restoring.")
		fmt.Println("A backup of your current database will be created first.")
		fmt.Printf("\nRestore from: %s\n", path)
		fmt.Print("Continue? [y/N]: ")
		if !confirm(c.input()) {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	preRestore, err := mgr.Restore(path)
	if preRestore != "" {
		fmt.Printf("Created backup of current database: %s\n", filepath.Base(preRestore))
	}
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	fmt.Println("✓ Database restored successfully!")
	return nil
}

func (c *BackupRestoreCmd) input() io.Reader {
	if c.in != nil {
		return c.in
	}
	return os.Stdin
}

func confirm(r io.Reader) bool {
	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a bare filename inside the backup directory.
func resolveBackupPath(name, backupDir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	candidate := filepath.Join(backupDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
