package postgres

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
	err := row.Scan(&p.ID, &p.Name, &p.Timezone, &p.WindowMorning, &p.WindowAfternoon,
		&p.WindowEvening, &p.WindowBedtime, &p.WeightKg, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, storage.ErrProfileNotFound
	}
	if err != nil {
		return models.Profile{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Timezone, p.WindowMorning, p.WindowAfternoon,
		p.WindowEvening, p.WindowBedtime, p.WeightKg, p.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

func (s *Store) GetProfile(id string) (models.Profile, error) {
	return scanProfile(s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

func (s *Store) GetProfileByName(name string) (models.Profile, error) {
	return scanProfile(s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE name = $1`, name))
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
		SET name = $1, timezone = $2, window_morning = $3, window_afternoon = $4,
			window_evening = $5, window_bedtime = $6, weight_kg = $7
		WHERE id = $8`,
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
