package postgres

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
	var medType string
	var startDate, endDate, prescriberID sql.NullString
	var deletedAt sql.NullTime

	err := row.Scan(
		&m.ID, &m.ProfileID, &m.Name, &medType,
		&m.ScheduleMorning, &m.ScheduleAfternoon, &m.ScheduleEvening, &m.ScheduleBedtime,
		&m.CurrentInventory, &m.RefillsRemaining, &m.DailyDoses, &m.RefillQuantity,
		&startDate, &endDate, &prescriberID, &m.CreatedAt, &deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Medication{}, storage.ErrMedicationNotFound
	}
	if err != nil {
		return models.Medication{}, err
	}

	m.Type = models.MedicationType(medType)
	m.StartDate = startDate.String
	m.EndDate = endDate.String
	m.PrescriberID = prescriberID.String
	m.CreatedAt = m.CreatedAt.UTC()
	if deletedAt.Valid {
		t := deletedAt.Time.UTC()
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.ID, m.ProfileID, m.Name, string(m.Type),
		m.ScheduleMorning, m.ScheduleAfternoon, m.ScheduleEvening, m.ScheduleBedtime,
		m.CurrentInventory, m.RefillsRemaining, m.DailyDoses, m.RefillQuantity,
		nullableString(m.StartDate), nullableString(m.EndDate), nullableString(m.PrescriberID),
		m.CreatedAt.UTC(), nullableTime(m.DeletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert medication: %w", err)
	}
	return nil
}

func (s *Store) GetMedication(id string) (models.Medication, error) {
	return scanMedication(s.db.QueryRow(`
		SELECT `+medicationColumns+`
		FROM medications WHERE id = $1`, id))
}

func (s *Store) GetMedicationByName(profileID, name string) (models.Medication, error) {
	return scanMedication(s.db.QueryRow(`
		SELECT `+medicationColumns+`
		FROM medications
		WHERE profile_id = $1 AND LOWER(name) = LOWER($2) AND deleted_at IS NULL`, profileID, name))
}

func (s *Store) GetAllMedications(profileID string, includeDeleted bool) ([]models.Medication, error) {
	query := "SELECT " + medicationColumns + " FROM medications WHERE profile_id = $1"
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
		SET name = $1, type = $2,
			schedule_morning = $3, schedule_afternoon = $4, schedule_evening = $5, schedule_bedtime = $6,
			current_inventory = $7, refills_remaining = $8, daily_doses = $9, refill_quantity = $10,
			start_date = $11, end_date = $12, prescriber_id = $13
		WHERE id = $14`,
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
	res, err := s.db.Exec(`UPDATE medications SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC(), id)
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

	if _, err := s.db.Exec(`UPDATE medications SET deleted_at = NULL WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to restore medication: %w", err)
	}
	return nil
}
