package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/logger"
)

type DoctorCmd struct{}

type checkResult int

const (
	checkOK checkResult = iota
	checkFailed
	checkWarning
	checkSkipped
)

type check struct {
	name string
	run  func(*cli.Context) error
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
	// warnOnly failures are reported without failing the command
	warnOnly bool
	// gatesDB marks the reachability check the needsDB checks depend on
	gatesDB bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable, gatesDB: true},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Profile validation", run: checkProfiles, needsDB: true},
	{name: "Dose log integrity", run: checkOrphanedDoseLogs, needsDB: true},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	results := runChecks(ctx)
	hasError := false
	for i, c := range checks {
		r := results[i]
		switch r.result {
		case checkOK:
			fmt.Printf("✓ %s: OK\n", c.name)
		case checkWarning:
			fmt.Printf("⚠ %s: WARNING\n   %v\n", c.name, r.err)
		case checkSkipped:
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
		case checkFailed:
			fmt.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, r.err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

type outcome struct {
	result checkResult
	err    error
}

func runChecks(ctx *cli.Context) []outcome {
	out := make([]outcome, len(checks))
	dbReachable := true
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			out[i] = outcome{result: checkSkipped}
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			out[i] = outcome{result: checkOK}
		case c.warnOnly:
			out[i] = outcome{result: checkWarning, err: err}
		default:
			out[i] = outcome{result: checkFailed, err: err}
		}
		if c.gatesDB && err != nil {
			dbReachable = false
		}
		logger.Debug("doctor check", "check", c.name, "error", err)
	}
	return out
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return ctx.Store.Ping()
}

func checkSchemaVersion(ctx *cli.Context) error {
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	st, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'doselog migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return nil
	}
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'doselog backup create'")
	}
	return nil
}

// checkProfiles verifies every profile's time zone resolves and its window
// starts parse and are distinct.
func checkProfiles(ctx *cli.Context) error {
	profiles, err := ctx.Store.GetAllProfiles()
	if err != nil {
		return fmt.Errorf("failed to get profiles: %w", err)
	}
	if len(profiles) == 0 {
		return fmt.Errorf("no profiles found (run 'doselog init')")
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	if _, err := ctx.Profile(); err != nil {
		return err
	}
	return nil
}

func checkOrphanedDoseLogs(ctx *cli.Context) error {
	n, err := ctx.Store.CountOrphanedDoseLogs()
	if err != nil {
		return fmt.Errorf("failed to check dose logs: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("found %d dose logs referencing missing medications", n)
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation("UTC"); err != nil {
		return fmt.Errorf("timezone database unavailable: %w", err)
	}
	return nil
}
