package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/cli/activity"
	"github.com/julianstephens/doselog/internal/cli/backups"
	"github.com/julianstephens/doselog/internal/cli/bp"
	"github.com/julianstephens/doselog/internal/cli/doselogs"
	"github.com/julianstephens/doselog/internal/cli/meds"
	"github.com/julianstephens/doselog/internal/cli/profiles"
	"github.com/julianstephens/doselog/internal/cli/records"
	"github.com/julianstephens/doselog/internal/cli/reports"
	"github.com/julianstephens/doselog/internal/cli/system"
	"github.com/julianstephens/doselog/internal/config"
	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/errors"
	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/storage"
)

type CLI struct {
	Version     kong.VersionFlag
	Config      string `help:"Path to the YAML config file." type:"path" default:"~/.config/doselog/config.yaml"`
	DB          string `name:"db" help:"SQLite path, PostgreSQL connection string, or 'keyring'. Credentials must NOT be embedded in the connection string; use DOSELOG_DB_CONNECTION, .pgpass, or the OS keyring instead. Overrides the config file."`
	ProfileName string `name:"profile" help:"Profile to act on. Overrides the config file."`
	Debug       bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize doselog storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Profile struct {
		Show profiles.ProfileShowCmd `cmd:"" help:"Show the active profile." default:"1"`
		Set  profiles.ProfileSetCmd  `cmd:"" help:"Change the profile's timezone, window starts or weight."`
		List profiles.ProfileListCmd `cmd:"" help:"List profiles."`
		Add  profiles.ProfileAddCmd  `cmd:"" help:"Add a profile."`
	} `cmd:"" help:"Manage profiles."`
	Med struct {
		Add     meds.MedAddCmd     `cmd:"" help:"Add a medication."`
		List    meds.MedListCmd    `cmd:"" help:"List medications." default:"1"`
		Edit    meds.MedEditCmd    `cmd:"" help:"Edit a medication."`
		Refill  meds.MedRefillCmd  `cmd:"" help:"Record a refill."`
		Delete  meds.MedDeleteCmd  `cmd:"" help:"Delete a medication."`
		Restore meds.MedRestoreCmd `cmd:"" help:"Restore a deleted medication."`
	} `cmd:"" help:"Manage medications."`
	Dose struct {
		Log    doselogs.DoseLogCmd    `cmd:"" help:"Log a dose."`
		List   doselogs.DoseListCmd   `cmd:"" help:"Show recent doses." default:"1"`
		Delete doselogs.DoseDeleteCmd `cmd:"" help:"Delete a logged dose."`
	} `cmd:"" help:"Log and review doses."`
	BP struct {
		Log  bp.BPLogCmd  `cmd:"" help:"Log a blood pressure reading."`
		List bp.BPListCmd `cmd:"" help:"Show recent readings." default:"1"`
	} `cmd:"" name:"bp" help:"Track blood pressure."`
	Allergy struct {
		Add    records.AllergyAddCmd    `cmd:"" help:"Record an allergy."`
		List   records.AllergyListCmd   `cmd:"" help:"List allergies." default:"1"`
		Edit   records.AllergyEditCmd   `cmd:"" help:"Edit an allergy."`
		Delete records.AllergyDeleteCmd `cmd:"" help:"Delete an allergy."`
	} `cmd:"" help:"Track allergies."`
	Vaccine struct {
		Add    records.VaccineAddCmd    `cmd:"" help:"Log a vaccination."`
		List   records.VaccineListCmd   `cmd:"" help:"List vaccinations." default:"1"`
		Report records.VaccineReportCmd `cmd:"" help:"Show which vaccinations are up to date or overdue."`
	} `cmd:"" help:"Track vaccinations."`
	Prescriber struct {
		Add  records.PrescriberAddCmd  `cmd:"" help:"Add a prescriber."`
		List records.PrescriberListCmd `cmd:"" help:"List prescribers and their medications." default:"1"`
	} `cmd:"" help:"Manage prescribers."`
	Exercise struct {
		Log  activity.ExerciseLogCmd  `cmd:"" help:"Log an exercise session."`
		List activity.ExerciseListCmd `cmd:"" help:"Show recent exercise." default:"1"`
	} `cmd:"" help:"Track exercise."`
	Food struct {
		Log  activity.FoodLogCmd  `cmd:"" help:"Log a food item."`
		List activity.FoodListCmd `cmd:"" help:"Show food logged on a day." default:"1"`
	} `cmd:"" help:"Track food."`
	Daily  activity.DailyCmd `cmd:"" help:"Show calories consumed and burned per day."`
	Report reports.ReportCmd `cmd:"" help:"Show the compliance report."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report keyring availability." default:"1"`
	} `cmd:"" help:"Manage the database connection string in the OS keyring."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send refill notifications (used by schedulers)."`
}

// commands that manage their own store lifecycle
var skipLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		errors.Fatal(err)
	}
}

func run(args []string) error {
	var c CLI
	parser, err := kong.New(&c,
		kong.Name(constants.AppName),
		kong.Description("Medication compliance tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := topLevel(ctx.Command())

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.DB != "" {
		cfg.Database = c.DB
	}
	if c.ProfileName != "" {
		cfg.Profile = c.ProfileName
	}
	cfg.Debug = cfg.Debug || c.Debug

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: filepath.Dir(config.ExpandHome(c.Config)),
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("starting", "command", ctx.Command(), "version", constants.Version)

	var store storage.Provider
	if command != "keyring" {
		if store, err = cli.OpenStore(cfg.Database); err != nil {
			return err
		}
		defer store.Close()
	}

	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			return err
		}
	}

	return ctx.Run(cli.NewContext(store, cfg))
}

func topLevel(command string) string {
	if fields := strings.Fields(command); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
