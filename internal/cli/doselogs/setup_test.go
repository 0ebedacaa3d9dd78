package doselogs

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/config"
	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "doselog.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return cli.NewContext(store, &config.Config{
		Database: dbPath,
		Profile:  constants.DefaultProfileName,
		Refill: config.RefillConfig{
			DaysThreshold:    constants.DefaultRefillDaysThreshold,
			RefillsThreshold: constants.DefaultRefillRefillsThreshold,
		},
		Report: config.ReportConfig{Days: constants.DefaultReportDays},
	})
}
