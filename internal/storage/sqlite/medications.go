package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/storage"
)

const medicationColumns = `id, profile_id, name, type,
	schedule_morning, schedule_afternoon, schedule_evening, schedule_bedtime,
	current_inventory, refills_remaining, daily_doses, refill_quantity,
	start_date, end_date, prescriber_id, created_at, deleted_at`

func scanMedication(row rowScanner) (models.Medication, error) {
	var m models.Medication
	var medType, createdAt string
	var startDate, endDate, prescriberID, deletedAt sql.NullString

	err := row.Scan(
		&m.ID, &m.ProfileID, &m.Name, &medType,
		&m.ScheduleMorning, &m.ScheduleAfternoon, &m.ScheduleEvening, &m.ScheduleBedtime,
		&m.CurrentInventory, &m.RefillsRemaining, &m.DailyDoses, &m.RefillQuantity,
		&startDate, &endDate, &prescriberID, &createdAt, &deletedAt,
	)
	if err != nil {
		return models.Medication{}, err
	}

	m.Type = models.MedicationType(medType)
	m.StartDate = startDate.String
	m.EndDate = endDate.String
	m.PrescriberID = prescriberID.String
	if m.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Medication{}, err
	}
	if deletedAt.Valid {
		t, err := parseTime("deleted_at", deletedAt.String)
		if err != nil {
			return models.Medication{}, err
		}
		m.DeletedAt = &t
	}
	return m, nil
}

func (s *Store) AddMedication(m models.Medication) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if _, err := s.GetMedicationByName(m.ProfileID, m.Name); m.DeletedAt == nil && err == nil {
		return storage.ErrDuplicateMedication
	}
	if m.Type == "" {
		m.Type = models.MedicationPrescription
	}

	_, err := s.db.Exec(`
		INSERT INTO medications (`+medicationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProfileID, m.Name, string(m.Type),
		m.ScheduleMorning, m.ScheduleAfternoon, m.ScheduleEvening, m.ScheduleBedtime,
		m.CurrentInventory, m.RefillsRemaining, m.DailyDoses, m.RefillQuantity,
		nullableString(m.StartDate), nullableString(m.EndDate), nullableString(m.PrescriberID),
		formatTime(m.CreatedAt), nullableTime(m.DeletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert medication: %w", err)
	}
	return nil
}

func (s *Store) GetMedication(id string) (models.Medication, error) {
	m, err := scanMedication(s.db.QueryRow(`
		SELECT `+medicationColumns+`
		FROM medications WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Medication{}, storage.ErrMedicationNotFound
	}
	return m, err
}

func (s *Store) GetMedicationByName(profileID, name string) (models.Medication, error) {
	m, err := scanMedication(s.db.QueryRow(`
		SELECT `+medicationColumns+`
		FROM medications
		WHERE profile_id = ? AND LOWER(name) = LOWER(?) AND deleted_at IS NULL`, profileID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Medication{}, storage.ErrMedicationNotFound
	}
	return m, err
}

func (s *Store) GetAllMedications(profileID string, includeDeleted bool) ([]models.Medication, error) {
	query := "SELECT " + medicationColumns + " FROM medications WHERE profile_id = ?"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []models.Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}

func (s *Store) UpdateMedication(m models.Medication) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if existing, err := s.GetMedicationByName(m.ProfileID, m.Name); m.DeletedAt == nil && err == nil && existing.ID != m.ID {
		return storage.ErrDuplicateMedication
	}

	res, err := s.db.Exec(`
		UPDATE medications
		SET name = ?, type = ?,
			schedule_morning = ?, schedule_afternoon = ?, schedule_evening = ?, schedule_bedtime = ?,
			current_inventory = ?, refills_remaining = ?, daily_doses = ?, refill_quantity = ?,
			start_date = ?, end_date = ?, prescriber_id = ?
		WHERE id = ?`,
		m.Name, string(m.Type),
		m.ScheduleMorning, m.ScheduleAfternoon, m.ScheduleEvening, m.ScheduleBedtime,
		m.CurrentInventory, m.RefillsRemaining, m.DailyDoses, m.RefillQuantity,
		nullableString(m.StartDate), nullableString(m.EndDate), nullableString(m.PrescriberID),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrMedicationNotFound
	}
	return nil
}

func (s *Store) DeleteMedication(id string) error {
	res, err := s.db.Exec(`UPDATE medications SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrMedicationNotFound
	}
	return nil
}

func (s *Store) RestoreMedication(id string) error {
	m, err := s.GetMedication(id)
	if err != nil {
		return err
	}
	if m.DeletedAt == nil {
		return fmt.Errorf("medication %s is not deleted", m.Name)
	}
	if _, err := s.GetMedicationByName(m.ProfileID, m.Name); err == nil {
		return storage.ErrDuplicateMedication
	}

	if _, err := s.db.Exec(`UPDATE medications SET deleted_at = NULL WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to restore medication: %w", err)
	}
	return nil
}
