package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/models"
)

func (s *Store) AddBloodPressure(b models.BloodPressure) error {
	if err := b.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO blood_pressure_readings (
			id, profile_id, systolic, diastolic, pulse,
			measured_at, location, stress_level, meds_taken_before
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.ProfileID, b.Systolic, b.Diastolic, b.Pulse,
		formatTime(b.MeasuredAt), b.Location, b.StressLevel, b.MedsTakenBefore,
	)
	if err != nil {
		return fmt.Errorf("failed to insert blood pressure reading: %w", err)
	}
	return nil
}

func (s *Store) GetBloodPressureReadings(profileID string, from, to time.Time) ([]models.BloodPressure, error) {
	rows, err := s.db.Query(`
		SELECT id, profile_id, systolic, diastolic, pulse,
			measured_at, location, stress_level, meds_taken_before
		FROM blood_pressure_readings
		WHERE profile_id = ? AND measured_at >= ? AND measured_at < ?
		ORDER BY measured_at DESC`,
		profileID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []models.BloodPressure
	for rows.Next() {
		var b models.BloodPressure
		var measuredAt string
		if err := rows.Scan(&b.ID, &b.ProfileID, &b.Systolic, &b.Diastolic, &b.Pulse,
			&measuredAt, &b.Location, &b.StressLevel, &b.MedsTakenBefore); err != nil {
			return nil, err
		}
		if b.MeasuredAt, err = parseTime("measured_at", measuredAt); err != nil {
			return nil, err
		}
		readings = append(readings, b)
	}
	return readings, rows.Err()
}
