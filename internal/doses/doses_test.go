package doses

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/storage"
)

const testProfile = "p1"

type memStore struct {
	meds     map[string]models.Medication
	logs     map[string]models.DoseLog
	addErr   error
	updCalls int
}

func newMemStore(meds ...models.Medication) *memStore {
	s := &memStore{meds: map[string]models.Medication{}, logs: map[string]models.DoseLog{}}
	for _, m := range meds {
		s.meds[m.ID] = m
	}
	return s
}

func (s *memStore) GetMedication(id string) (models.Medication, error) {
	m, ok := s.meds[id]
	if !ok {
		return models.Medication{}, storage.ErrMedicationNotFound
	}
	return m, nil
}

func (s *memStore) GetMedicationByName(profileID, name string) (models.Medication, error) {
	for _, m := range s.meds {
		if m.ProfileID == profileID && m.DeletedAt == nil && strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return models.Medication{}, storage.ErrMedicationNotFound
}

func (s *memStore) GetAllMedications(profileID string, includeDeleted bool) ([]models.Medication, error) {
	var out []models.Medication
	for _, m := range s.meds {
		if m.ProfileID == profileID && (includeDeleted || m.DeletedAt == nil) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) AddMedication(m models.Medication) error {
	if _, err := s.GetMedicationByName(m.ProfileID, m.Name); err == nil {
		return storage.ErrDuplicateMedication
	}
	s.meds[m.ID] = m
	return nil
}

func (s *memStore) UpdateMedication(m models.Medication) error {
	s.updCalls++
	s.meds[m.ID] = m
	return nil
}

func (s *memStore) DeleteMedication(id string) error {
	m, ok := s.meds[id]
	if !ok {
		return storage.ErrMedicationNotFound
	}
	now := time.Now().UTC()
	m.DeletedAt = &now
	s.meds[id] = m
	return nil
}

func (s *memStore) RestoreMedication(id string) error {
	m, ok := s.meds[id]
	if !ok {
		return storage.ErrMedicationNotFound
	}
	m.DeletedAt = nil
	s.meds[id] = m
	return nil
}

func (s *memStore) AddDoseLog(d models.DoseLog) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.logs[d.ID] = d
	return nil
}

func (s *memStore) GetDoseLog(id string) (models.DoseLog, error) {
	d, ok := s.logs[id]
	if !ok {
		return models.DoseLog{}, storage.ErrDoseLogNotFound
	}
	return d, nil
}

func (s *memStore) GetDoseLogsInRange(profileID string, from, to time.Time) ([]models.DoseLog, error) {
	var out []models.DoseLog
	for _, d := range s.logs {
		if d.ProfileID == profileID && !d.TakenAt.Before(from) && d.TakenAt.Before(to) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TakenAt.Before(out[j].TakenAt) })
	return out, nil
}

func (s *memStore) DeleteDoseLog(id string) error {
	if _, ok := s.logs[id]; !ok {
		return storage.ErrDoseLogNotFound
	}
	delete(s.logs, id)
	return nil
}

type recordingNotifier struct {
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(text string) error {
	n.messages = append(n.messages, text)
	return n.err
}

func lisinopril(inventory, refills int) models.Medication {
	return models.Medication{
		ID:               "med-1",
		ProfileID:        testProfile,
		Name:             "Lisinopril",
		ScheduleMorning:  true,
		CurrentInventory: inventory,
		RefillsRemaining: refills,
		DailyDoses:       1,
		RefillQuantity:   30,
	}
}

var fixedNow = time.Date(2025, 12, 20, 14, 30, 0, 0, time.UTC)

func TestLogDose(t *testing.T) {
	store := newMemStore(lisinopril(30, 3))
	l := NewLogger(store, DefaultThresholds(), nil)
	l.Clock = func() time.Time { return fixedNow }

	entry, alert, err := l.LogDose(testProfile, "lisinopril", nil, nil)
	if err != nil {
		t.Fatalf("LogDose failed: %v", err)
	}
	if alert != nil {
		t.Errorf("unexpected alert: %v", alert)
	}
	if !entry.TakenAt.Equal(fixedNow) || entry.Window != "" {
		t.Errorf("entry = %+v, want now and no tag", entry)
	}
	if entry.MedicationID != "med-1" || entry.ID == "" {
		t.Errorf("entry = %+v", entry)
	}
	if got := store.meds["med-1"].CurrentInventory; got != 29 {
		t.Errorf("inventory = %d, want 29", got)
	}
	if len(store.logs) != 1 {
		t.Errorf("expected 1 stored log, got %d", len(store.logs))
	}
}

func TestLogDoseExplicitTimeAndWindow(t *testing.T) {
	store := newMemStore(lisinopril(30, 3))
	l := NewLogger(store, DefaultThresholds(), nil)

	detroit, err := time.LoadLocation("America/Detroit")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	taken := time.Date(2025, 12, 19, 20, 0, 0, 0, detroit)
	w := models.WindowEvening

	entry, _, err := l.LogDose(testProfile, "Lisinopril", &taken, &w)
	if err != nil {
		t.Fatal(err)
	}
	if entry.TakenAt.Location() != time.UTC || !entry.TakenAt.Equal(taken) {
		t.Errorf("TakenAt = %v, want %v in UTC", entry.TakenAt, taken)
	}
	if entry.Window != models.WindowEvening {
		t.Errorf("Window = %q, want evening", entry.Window)
	}
}

func TestLogDoseUnknownMedication(t *testing.T) {
	l := NewLogger(newMemStore(), DefaultThresholds(), nil)
	_, _, err := l.LogDose(testProfile, "Aspirin", nil, nil)
	if !errors.Is(err, storage.ErrMedicationNotFound) {
		t.Errorf("error = %v, want ErrMedicationNotFound", err)
	}
}

func TestLogDoseStoreFailureLeavesInventory(t *testing.T) {
	store := newMemStore(lisinopril(30, 3))
	store.addErr = errors.New("disk full")
	l := NewLogger(store, DefaultThresholds(), nil)

	if _, _, err := l.LogDose(testProfile, "Lisinopril", nil, nil); err == nil {
		t.Fatal("expected error")
	}
	if store.updCalls != 0 || store.meds["med-1"].CurrentInventory != 30 {
		t.Error("inventory changed although the log was not saved")
	}
}

func TestLogDoseRefillAlert(t *testing.T) {
	tests := []struct {
		name      string
		med       models.Medication
		wantAlert string
	}{
		{name: "plenty", med: lisinopril(30, 3)},
		{name: "low days", med: lisinopril(8, 3), wantAlert: "Refill needed for Lisinopril. Days remaining: 7.0, Refills: 3"},
		{name: "low refills", med: lisinopril(30, 1), wantAlert: "Refill needed for Lisinopril. Days remaining: 29.0, Refills: 1"},
		{name: "empty stays empty", med: lisinopril(0, 0), wantAlert: "Refill needed for Lisinopril. Days remaining: 0.0, Refills: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &recordingNotifier{}
			l := NewLogger(newMemStore(tt.med), DefaultThresholds(), n)

			_, alert, err := l.LogDose(testProfile, "Lisinopril", nil, nil)
			if err != nil {
				t.Fatal(err)
			}
			if tt.wantAlert == "" {
				if alert != nil || len(n.messages) != 0 {
					t.Errorf("unexpected alert %v", alert)
				}
				return
			}
			if alert == nil || alert.String() != tt.wantAlert {
				t.Fatalf("alert = %v, want %q", alert, tt.wantAlert)
			}
			if len(n.messages) != 1 || n.messages[0] != tt.wantAlert {
				t.Errorf("notified %v, want %q", n.messages, tt.wantAlert)
			}
		})
	}
}

func TestLogDoseNotifierFailureIgnored(t *testing.T) {
	n := &recordingNotifier{err: errors.New("tray not running")}
	l := NewLogger(newMemStore(lisinopril(2, 0)), DefaultThresholds(), n)

	if _, alert, err := l.LogDose(testProfile, "Lisinopril", nil, nil); err != nil || alert == nil {
		t.Errorf("LogDose() = (%v, %v), want alert and no error", alert, err)
	}
}

func TestUnknownDailyDosesAlert(t *testing.T) {
	med := lisinopril(5, 0)
	med.DailyDoses = 0
	a := checkRefill(med, DefaultThresholds())
	if a == nil || !strings.Contains(a.String(), "Days remaining: 999.0") {
		t.Errorf("alert = %v, want 999.0 days", a)
	}
}

func TestHistoryAndUndo(t *testing.T) {
	store := newMemStore(lisinopril(30, 3))
	l := NewLogger(store, DefaultThresholds(), nil)

	var ids []string
	for i := 0; i < 3; i++ {
		taken := fixedNow.Add(time.Duration(i) * time.Hour)
		entry, _, err := l.LogDose(testProfile, "Lisinopril", &taken, nil)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, entry.ID)
	}

	history, err := l.History(testProfile, fixedNow, fixedNow.Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 || history[0].ID != ids[2] {
		t.Errorf("History() not newest first: %+v", history)
	}

	if err := l.Undo(ids[1]); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := store.meds["med-1"].CurrentInventory; got != 28 {
		t.Errorf("inventory after undo = %d, want 28", got)
	}
	if err := l.Undo(ids[1]); !errors.Is(err, storage.ErrDoseLogNotFound) {
		t.Errorf("second Undo error = %v, want ErrDoseLogNotFound", err)
	}

	t.Run("empty inventory", func(t *testing.T) {
		store := newMemStore(lisinopril(0, 3))
		l := NewLogger(store, DefaultThresholds(), nil)

		entry, _, err := l.LogDose(testProfile, "Lisinopril", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if entry.Consumed || store.logs[entry.ID].Consumed {
			t.Error("dose logged at zero inventory marked consumed")
		}
		if err := l.Undo(entry.ID); err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		if got := store.meds["med-1"].CurrentInventory; got != 0 {
			t.Errorf("inventory after undo = %d, want 0", got)
		}
	})
}
