package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/storage"
)

const profileColumns = `id, name, timezone, window_morning, window_afternoon, window_evening, window_bedtime, weight_kg, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	var createdAt string
	if err := row.Scan(&p.ID, &p.Name, &p.Timezone, &p.WindowMorning, &p.WindowAfternoon,
		&p.WindowEvening, &p.WindowBedtime, &p.WeightKg, &createdAt); err != nil {
		return models.Profile{}, err
	}
	var err error
	p.CreatedAt, err = parseTime("created_at", createdAt)
	return p, err
}

func (s *Store) AddProfile(p models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := s.GetProfileByName(p.Name); err == nil {
		return storage.ErrDuplicateProfile
	}

	models.ApplyDefaultProfile(&p)
	_, err := s.db.Exec(`
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Timezone, p.WindowMorning, p.WindowAfternoon,
		p.WindowEvening, p.WindowBedtime, p.WeightKg, formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

func (s *Store) GetProfile(id string) (models.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, storage.ErrProfileNotFound
	}
	return p, err
}

func (s *Store) GetProfileByName(name string) (models.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, storage.ErrProfileNotFound
	}
	return p, err
}

func (s *Store) GetAllProfiles() ([]models.Profile, error) {
	rows, err := s.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) UpdateProfile(p models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	models.ApplyDefaultProfile(&p)

	res, err := s.db.Exec(`
		UPDATE profiles
		SET name = ?, timezone = ?, window_morning = ?, window_afternoon = ?,
			window_evening = ?, window_bedtime = ?, weight_kg = ?
		WHERE id = ?`,
		p.Name, p.Timezone, p.WindowMorning, p.WindowAfternoon,
		p.WindowEvening, p.WindowBedtime, p.WeightKg, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrProfileNotFound
	}
	return nil
}
