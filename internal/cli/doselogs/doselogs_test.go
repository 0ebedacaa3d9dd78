package doselogs

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/storage"
)

func TestDoseCommands(t *testing.T) {
	ctx := setupTestContext(t)
	profileID, err := ctx.ProfileID()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Medications.Add(models.Medication{
		ProfileID: profileID, Name: "Metformin", ScheduleMorning: true, ScheduleBedtime: true, CurrentInventory: 20,
	}); err != nil {
		t.Fatal(err)
	}

	at := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	if err := (&DoseLogCmd{Name: "metformin", At: at, Window: "b"}).Run(ctx); err != nil {
		t.Fatalf("dose log failed: %v", err)
	}
	if err := (&DoseLogCmd{Name: "Metformin"}).Run(ctx); err != nil {
		t.Fatalf("dose log without time failed: %v", err)
	}

	logs, err := ctx.Doses.History(profileID, time.Now().Add(-24*time.Hour), time.Now().Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[1].Window != models.WindowBedtime {
		t.Errorf("tagged log window = %q, want bedtime", logs[1].Window)
	}

	m, _ := ctx.Store.GetMedicationByName(profileID, "Metformin")
	if m.CurrentInventory != 18 {
		t.Errorf("inventory = %d, want 18", m.CurrentInventory)
	}

	if err := (&DoseListCmd{Days: 1}).Run(ctx); err != nil {
		t.Errorf("dose list failed: %v", err)
	}
	if err := (&DoseListCmd{Days: 0}).Run(ctx); err == nil {
		t.Error("dose list with zero days should fail")
	}

	if err := (&DoseDeleteCmd{ID: logs[0].ID}).Run(ctx); err != nil {
		t.Fatalf("dose delete failed: %v", err)
	}
	if _, err := ctx.Store.GetDoseLog(logs[0].ID); !errors.Is(err, storage.ErrDoseLogNotFound) {
		t.Errorf("deleted log lookup error = %v", err)
	}
}

func TestDoseLogErrors(t *testing.T) {
	ctx := setupTestContext(t)

	tests := []struct {
		name string
		cmd  DoseLogCmd
	}{
		{name: "unknown medication", cmd: DoseLogCmd{Name: "Aspirin"}},
		{name: "bad window", cmd: DoseLogCmd{Name: "Aspirin", Window: "noon"}},
		{name: "bad time", cmd: DoseLogCmd{Name: "Aspirin", At: "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
}
