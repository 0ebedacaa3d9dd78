package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/storage/sqlite"
)

func setupEnv(t *testing.T) (dbPath string, global []string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(constants.EnvDBConnection, "")
	dbPath = filepath.Join(home, "doselog.db")
	return dbPath, []string{"--config", filepath.Join(home, "config.yaml"), "--db", dbPath}
}

func runArgs(t *testing.T, global []string, args ...string) error {
	t.Helper()
	return run(append(append([]string{}, global...), args...))
}

func TestEndToEndWorkflow(t *testing.T) {
	dbPath, global := setupEnv(t)

	steps := [][]string{
		{"init"},
		{"profile", "set", "--timezone", "UTC"},
		{"med", "add", "Lisinopril", "--schedule", "m,e", "--inventory", "30", "--refills", "1"},
		{"med", "list"},
		{"dose", "log", "Lisinopril", "-w", "m"},
		{"dose", "list"},
		{"bp", "log", "122", "78", "--pulse", "64"},
		{"profile", "set", "--weight", "70"},
		{"prescriber", "add", "Dr. Lee", "--phone", "555-0100"},
		{"med", "edit", "Lisinopril", "--prescriber", "Dr. Lee"},
		{"allergy", "add", "Peanuts", "--reaction", "Hives", "--severity", "Moderate"},
		{"allergy", "edit", "peanuts", "--severity", "Severe"},
		{"vaccine", "add", "Tdap", "--date", "2020-05-01"},
		{"vaccine", "report", "--format", "json"},
		{"exercise", "log", "walking", "45"},
		{"food", "log", "oatmeal", "--calories", "150", "--meal", "breakfast"},
		{"daily", "--days", "2"},
		{"report", "--format", "json"},
		{"backup", "create"},
		{"doctor"},
	}
	for _, args := range steps {
		if err := runArgs(t, global, args...); err != nil {
			t.Fatalf("doselog %s failed: %v", strings.Join(args, " "), err)
		}
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	defer store.Close()

	profile, err := store.GetProfileByName(constants.DefaultProfileName)
	if err != nil {
		t.Fatal(err)
	}
	med, err := store.GetMedicationByName(profile.ID, "Lisinopril")
	if err != nil {
		t.Fatal(err)
	}
	if med.CurrentInventory != 29 {
		t.Errorf("inventory = %d, want 29", med.CurrentInventory)
	}
	logs, err := store.GetDoseLogsInRange(profile.ID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Window != "morning" {
		t.Errorf("logs = %+v, want one morning-tagged log", logs)
	}

	doctor, err := store.GetPrescriberByName(profile.ID, "Dr. Lee")
	if err != nil || med.PrescriberID != doctor.ID {
		t.Errorf("medication prescriber = %q, prescriber = %+v, %v", med.PrescriberID, doctor, err)
	}
	allergies, err := store.GetAllergies(profile.ID)
	if err != nil || len(allergies) != 1 || allergies[0].Severity != "Severe" {
		t.Errorf("allergies = %+v, %v", allergies, err)
	}
	exercises, err := store.GetExerciseLogsInRange(profile.ID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil || len(exercises) != 1 || exercises[0].CaloriesBurned <= 0 {
		t.Errorf("exercise logs = %+v, %v", exercises, err)
	}
}

func TestCommandsRequireInit(t *testing.T) {
	_, global := setupEnv(t)

	err := runArgs(t, global, "med", "list")
	if err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("expected not initialized error, got %v", err)
	}
}

func TestUnknownProfile(t *testing.T) {
	_, global := setupEnv(t)
	if err := runArgs(t, global, "init"); err != nil {
		t.Fatal(err)
	}
	if err := runArgs(t, global, "--profile", "nobody", "med", "list"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestKeyringWithoutStore(t *testing.T) {
	gokeyring.MockInit()
	_, global := setupEnv(t)

	// The database is never opened for keyring commands.
	global = []string{global[0], global[1], "--db", "keyring"}
	if err := runArgs(t, global, "keyring", "set", "postgres://doselog@localhost:5432/doselog"); err != nil {
		t.Fatalf("keyring set failed: %v", err)
	}
	if err := runArgs(t, global, "keyring", "status"); err != nil {
		t.Errorf("keyring status failed: %v", err)
	}
}

func TestLogFileFollowsConfigDir(t *testing.T) {
	dbPath, _ := setupEnv(t)
	confDir := filepath.Join(t.TempDir(), "conf")
	global := []string{"--config", filepath.Join(confDir, "config.yaml"), "--db", dbPath}

	for _, args := range [][]string{
		{"init"},
		{"med", "add", "Aspirin", "--schedule", "m", "--inventory", "10"},
		{"dose", "log", "Aspirin"},
	} {
		if err := runArgs(t, global, args...); err != nil {
			t.Fatalf("doselog %s failed: %v", strings.Join(args, " "), err)
		}
	}

	if _, err := os.Stat(logger.LogFilePath(confDir)); err != nil {
		t.Errorf("log file not under config dir: %v", err)
	}
	home, _ := os.UserHomeDir()
	if _, err := os.Stat(logger.LogFilePath(filepath.Join(home, ".config", constants.AppName))); err == nil {
		t.Error("log file written to the default config dir")
	}
}

func TestTopLevel(t *testing.T) {
	tests := map[string]string{
		"med add <name>": "med",
		"init":           "init",
		"":               "",
	}
	for in, want := range tests {
		if got := topLevel(in); got != want {
			t.Errorf("topLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
