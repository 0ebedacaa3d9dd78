// Package doses records taken doses and manages medication supply.
package doses

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/storage"
)

// Store is the slice of storage.Provider the dose services need.
type Store interface {
	GetMedication(id string) (models.Medication, error)
	GetMedicationByName(profileID, name string) (models.Medication, error)
	GetAllMedications(profileID string, includeDeleted bool) ([]models.Medication, error)
	AddMedication(models.Medication) error
	UpdateMedication(models.Medication) error
	DeleteMedication(id string) error
	RestoreMedication(id string) error
	AddDoseLog(models.DoseLog) error
	GetDoseLog(id string) (models.DoseLog, error)
	GetDoseLogsInRange(profileID string, from, to time.Time) ([]models.DoseLog, error)
	DeleteDoseLog(id string) error
}

// Notifier delivers refill alerts to the desktop.
type Notifier interface {
	Notify(text string) error
}

// Thresholds at or below which a medication needs a refill.
type Thresholds struct {
	Days    int
	Refills int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Days:    constants.DefaultRefillDaysThreshold,
		Refills: constants.DefaultRefillRefillsThreshold,
	}
}

type RefillAlert struct {
	MedicationID     string
	MedicationName   string
	DaysRemaining    float64
	RefillsRemaining int
}

func (a RefillAlert) String() string {
	return fmt.Sprintf("Refill needed for %s. Days remaining: %.1f, Refills: %d",
		a.MedicationName, a.DaysRemaining, a.RefillsRemaining)
}

func checkRefill(m models.Medication, th Thresholds) *RefillAlert {
	if !m.NeedsRefill(th.Days, th.Refills) {
		return nil
	}
	return &RefillAlert{
		MedicationID:     m.ID,
		MedicationName:   m.Name,
		DaysRemaining:    m.DaysRemaining(),
		RefillsRemaining: m.RefillsRemaining,
	}
}

type Logger struct {
	store      Store
	thresholds Thresholds
	// notifier is nil when notifications are disabled
	notifier Notifier

	Clock func() time.Time
}

func NewLogger(store Store, thresholds Thresholds, notifier Notifier) *Logger {
	return &Logger{
		store:      store,
		thresholds: thresholds,
		notifier:   notifier,
		Clock:      time.Now,
	}
}

// LogDose records that medName was taken. takenAt defaults to now and window
// to untagged. The medication's inventory is decremented and a refill alert is
// returned when supply has fallen to a threshold.
func (l *Logger) LogDose(profileID, medName string, takenAt *time.Time, window *models.Window) (models.DoseLog, *RefillAlert, error) {
	med, err := l.store.GetMedicationByName(profileID, strings.TrimSpace(medName))
	if err != nil {
		if errors.Is(err, storage.ErrMedicationNotFound) {
			return models.DoseLog{}, nil, fmt.Errorf("%w: %s", storage.ErrMedicationNotFound, medName)
		}
		return models.DoseLog{}, nil, err
	}

	now := l.now()
	entry := models.DoseLog{
		ID:           uuid.New().String(),
		ProfileID:    profileID,
		MedicationID: med.ID,
		TakenAt:      now.UTC(),
		Consumed:     med.CurrentInventory > 0,
		CreatedAt:    now.UTC(),
	}
	if takenAt != nil {
		entry.TakenAt = takenAt.UTC()
	}
	if window != nil {
		entry.Window = *window
	}
	if err := entry.Validate(); err != nil {
		return models.DoseLog{}, nil, err
	}

	if err := l.store.AddDoseLog(entry); err != nil {
		return models.DoseLog{}, nil, fmt.Errorf("failed to save dose log: %w", err)
	}

	med.ConsumeDose()
	if err := l.store.UpdateMedication(med); err != nil {
		return entry, nil, fmt.Errorf("failed to update inventory: %w", err)
	}
	logger.Info("dose logged", "medication", med.Name, "taken_at", entry.TakenAt, "window", entry.Window, "inventory", med.CurrentInventory)

	alert := checkRefill(med, l.thresholds)
	if alert != nil {
		l.notify(*alert)
	}
	return entry, alert, nil
}

// notify is best effort; a missing tray app must not fail dose logging.
func (l *Logger) notify(alert RefillAlert) {
	if l.notifier == nil {
		return
	}
	if err := l.notifier.Notify(alert.String()); err != nil {
		logger.Debug("refill notification not delivered", "medication", alert.MedicationName, "error", err)
	}
}

// History returns the profile's dose logs in [from, to), newest first.
func (l *Logger) History(profileID string, from, to time.Time) ([]models.DoseLog, error) {
	logs, err := l.store.GetDoseLogsInRange(profileID, from, to)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}

// Undo deletes a dose log and returns the unit to the medication's inventory
// when logging the dose took one from it.
func (l *Logger) Undo(id string) error {
	entry, err := l.store.GetDoseLog(id)
	if err != nil {
		return err
	}
	if err := l.store.DeleteDoseLog(id); err != nil {
		return err
	}
	if !entry.Consumed {
		return nil
	}

	med, err := l.store.GetMedication(entry.MedicationID)
	if err != nil {
		logger.Warn("dose deleted but medication lookup failed", "dose", id, "error", err)
		return nil
	}
	med.CurrentInventory++
	if err := l.store.UpdateMedication(med); err != nil {
		return fmt.Errorf("failed to restore inventory: %w", err)
	}
	return nil
}

func (l *Logger) now() time.Time {
	if l.Clock == nil {
		return time.Now()
	}
	return l.Clock()
}
