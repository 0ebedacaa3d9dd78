package doses

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/models"
)

// Medications manages a profile's medication list and supply.
type Medications struct {
	store      Store
	thresholds Thresholds
}

func NewMedications(store Store, thresholds Thresholds) *Medications {
	return &Medications{store: store, thresholds: thresholds}
}

// Add assigns an id and creation time. Names are unique per profile.
func (s *Medications) Add(m models.Medication) (models.Medication, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.Type == "" {
		m.Type = models.MedicationPrescription
	}
	if m.DailyDoses == 0 {
		m.DailyDoses = len(m.ScheduledWindows())
	}
	if err := m.Validate(); err != nil {
		return models.Medication{}, err
	}
	if err := s.store.AddMedication(m); err != nil {
		return models.Medication{}, err
	}
	logger.Info("medication added", "name", m.Name, "schedule", m.ScheduleAbbrev())
	return m, nil
}

func (s *Medications) List(profileID string, includeDeleted bool) ([]models.Medication, error) {
	return s.store.GetAllMedications(profileID, includeDeleted)
}

func (s *Medications) Get(profileID, name string) (models.Medication, error) {
	return s.store.GetMedicationByName(profileID, strings.TrimSpace(name))
}

// Edit applies fn to the named medication and saves it.
func (s *Medications) Edit(profileID, name string, fn func(*models.Medication) error) (models.Medication, error) {
	m, err := s.Get(profileID, name)
	if err != nil {
		return models.Medication{}, err
	}
	if err := fn(&m); err != nil {
		return models.Medication{}, err
	}
	if err := m.Validate(); err != nil {
		return models.Medication{}, err
	}
	if err := s.store.UpdateMedication(m); err != nil {
		return models.Medication{}, err
	}
	return m, nil
}

// Refill adds quantity to inventory. A zero quantity uses the medication's
// configured refill quantity.
func (s *Medications) Refill(profileID, name string, quantity int) (models.Medication, error) {
	return s.Edit(profileID, name, func(m *models.Medication) error {
		if quantity == 0 {
			quantity = m.RefillQuantity
		}
		if err := m.Refill(quantity); err != nil {
			return fmt.Errorf("failed to refill %s: %w", m.Name, err)
		}
		logger.Info("medication refilled", "name", m.Name, "quantity", quantity, "inventory", m.CurrentInventory)
		return nil
	})
}

func (s *Medications) Delete(profileID, name string) error {
	m, err := s.Get(profileID, name)
	if err != nil {
		return err
	}
	return s.store.DeleteMedication(m.ID)
}

// Restore undeletes the most recently deleted medication named name.
func (s *Medications) Restore(profileID, name string) (models.Medication, error) {
	all, err := s.store.GetAllMedications(profileID, true)
	if err != nil {
		return models.Medication{}, err
	}

	var target *models.Medication
	for i := range all {
		m := &all[i]
		if m.DeletedAt == nil || !strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			continue
		}
		if target == nil || m.DeletedAt.After(*target.DeletedAt) {
			target = m
		}
	}
	if target == nil {
		return models.Medication{}, fmt.Errorf("no deleted medication named %q", name)
	}
	if err := s.store.RestoreMedication(target.ID); err != nil {
		return models.Medication{}, err
	}
	target.DeletedAt = nil
	return *target, nil
}

// RefillAlerts returns an alert for every active medication at or below a threshold.
func (s *Medications) RefillAlerts(profileID string) ([]RefillAlert, error) {
	meds, err := s.store.GetAllMedications(profileID, false)
	if err != nil {
		return nil, err
	}
	var alerts []RefillAlert
	for _, m := range meds {
		if a := checkRefill(m, s.thresholds); a != nil {
			alerts = append(alerts, *a)
		}
	}
	return alerts, nil
}
