package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/storage"
)

const doseLogColumns = `id, profile_id, medication_id, taken_at, dose_window, consumed, created_at`

func scanDoseLog(row rowScanner) (models.DoseLog, error) {
	var d models.DoseLog
	var window sql.NullString

	err := row.Scan(&d.ID, &d.ProfileID, &d.MedicationID, &d.TakenAt, &window, &d.Consumed, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DoseLog{}, storage.ErrDoseLogNotFound
	}
	if err != nil {
		return models.DoseLog{}, err
	}
	d.TakenAt = d.TakenAt.UTC()
	d.CreatedAt = d.CreatedAt.UTC()
	d.Window = models.Window(window.String)
	return d, nil
}

func (s *Store) AddDoseLog(d models.DoseLog) error {
	if err := d.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO dose_logs (`+doseLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.ProfileID, d.MedicationID,
		d.TakenAt.UTC(), nullableString(string(d.Window)), d.Consumed, d.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert dose log: %w", err)
	}
	return nil
}

func (s *Store) GetDoseLog(id string) (models.DoseLog, error) {
	return scanDoseLog(s.db.QueryRow(`SELECT `+doseLogColumns+` FROM dose_logs WHERE id = $1`, id))
}

func (s *Store) GetDoseLogsInRange(profileID string, from, to time.Time) ([]models.DoseLog, error) {
	rows, err := s.db.Query(`
		SELECT `+doseLogColumns+`
		FROM dose_logs
		WHERE profile_id = $1 AND taken_at >= $2 AND taken_at < $3
		ORDER BY taken_at`,
		profileID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DoseLog
	for rows.Next() {
		d, err := scanDoseLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, d)
	}
	return logs, rows.Err()
}

func (s *Store) DeleteDoseLog(id string) error {
	res, err := s.db.Exec(`DELETE FROM dose_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dose log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrDoseLogNotFound
	}
	return nil
}
