package sqlite

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
	var takenAt, createdAt string
	var window sql.NullString

	if err := row.Scan(&d.ID, &d.ProfileID, &d.MedicationID, &takenAt, &window, &d.Consumed, &createdAt); err != nil {
		return models.DoseLog{}, err
	}

	var err error
	if d.TakenAt, err = parseTime("taken_at", takenAt); err != nil {
		return models.DoseLog{}, err
	}
	if d.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.DoseLog{}, err
	}
	d.Window = models.Window(window.String)
	return d, nil
}

func (s *Store) AddDoseLog(d models.DoseLog) error {
	if err := d.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO dose_logs (`+doseLogColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.ProfileID, d.MedicationID,
		formatTime(d.TakenAt), nullableString(string(d.Window)), d.Consumed, formatTime(d.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert dose log: %w", err)
	}
	return nil
}

func (s *Store) GetDoseLog(id string) (models.DoseLog, error) {
	d, err := scanDoseLog(s.db.QueryRow(`SELECT `+doseLogColumns+` FROM dose_logs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.DoseLog{}, storage.ErrDoseLogNotFound
	}
	return d, err
}

func (s *Store) GetDoseLogsInRange(profileID string, from, to time.Time) ([]models.DoseLog, error) {
	rows, err := s.db.Query(`
		SELECT `+doseLogColumns+`
		FROM dose_logs
		WHERE profile_id = ? AND taken_at >= ? AND taken_at < ?
		ORDER BY taken_at`,
		profileID, formatTime(from), formatTime(to))
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
	res, err := s.db.Exec(`DELETE FROM dose_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dose log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrDoseLogNotFound
	}
	return nil
}
