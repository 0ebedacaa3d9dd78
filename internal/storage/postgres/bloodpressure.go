package postgres

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
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.ProfileID, b.Systolic, b.Diastolic, b.Pulse,
		b.MeasuredAt.UTC(), b.Location, b.StressLevel, b.MedsTakenBefore,
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
		WHERE profile_id = $1 AND measured_at >= $2 AND measured_at < $3
		ORDER BY measured_at DESC`,
		profileID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []models.BloodPressure
	for rows.Next() {
		var b models.BloodPressure
		if err := rows.Scan(&b.ID, &b.ProfileID, &b.Systolic, &b.Diastolic, &b.Pulse,
			&b.MeasuredAt, &b.Location, &b.StressLevel, &b.MedsTakenBefore); err != nil {
			return nil, err
		}
		b.MeasuredAt = b.MeasuredAt.UTC()
		readings = append(readings, b)
	}
	return readings, rows.Err()
}
