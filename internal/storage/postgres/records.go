package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/storage"
)

const allergyColumns = `id, profile_id, allergen, reaction, severity, created_at`

func scanAllergy(row rowScanner) (models.Allergy, error) {
	var a models.Allergy
	err := row.Scan(&a.ID, &a.ProfileID, &a.Allergen, &a.Reaction, &a.Severity, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Allergy{}, storage.ErrAllergyNotFound
	}
	if err != nil {
		return models.Allergy{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

func (s *Store) AddAllergy(a models.Allergy) error {
	if err := a.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO allergies (`+allergyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.ProfileID, a.Allergen, a.Reaction, a.Severity, a.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert allergy: %w", err)
	}
	return nil
}

func (s *Store) GetAllergy(id string) (models.Allergy, error) {
	return scanAllergy(s.db.QueryRow(`SELECT `+allergyColumns+` FROM allergies WHERE id = $1`, id))
}

func (s *Store) GetAllergies(profileID string) ([]models.Allergy, error) {
	rows, err := s.db.Query(`
		SELECT `+allergyColumns+`
		FROM allergies WHERE profile_id = $1
		ORDER BY allergen`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allergies []models.Allergy
	for rows.Next() {
		a, err := scanAllergy(rows)
		if err != nil {
			return nil, err
		}
		allergies = append(allergies, a)
	}
	return allergies, rows.Err()
}

func (s *Store) UpdateAllergy(a models.Allergy) error {
	if err := a.Validate(); err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE allergies SET allergen = $1, reaction = $2, severity = $3
		WHERE id = $4`,
		a.Allergen, a.Reaction, a.Severity, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update allergy: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrAllergyNotFound
	}
	return nil
}

func (s *Store) DeleteAllergy(id string) error {
	res, err := s.db.Exec(`DELETE FROM allergies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete allergy: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrAllergyNotFound
	}
	return nil
}

func (s *Store) AddVaccination(v models.Vaccination) error {
	if err := v.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO vaccinations (id, profile_id, vaccine_type, date_administered, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.ProfileID, v.VaccineType, v.DateAdministered, v.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert vaccination: %w", err)
	}
	return nil
}

func (s *Store) GetVaccinations(profileID string) ([]models.Vaccination, error) {
	rows, err := s.db.Query(`
		SELECT id, profile_id, vaccine_type, date_administered, created_at
		FROM vaccinations WHERE profile_id = $1
		ORDER BY date_administered DESC, vaccine_type`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vaccinations []models.Vaccination
	for rows.Next() {
		var v models.Vaccination
		if err := rows.Scan(&v.ID, &v.ProfileID, &v.VaccineType, &v.DateAdministered, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.CreatedAt = v.CreatedAt.UTC()
		vaccinations = append(vaccinations, v)
	}
	return vaccinations, rows.Err()
}

const prescriberColumns = `id, profile_id, name, phone_number, created_at`

func scanPrescriber(row rowScanner) (models.Prescriber, error) {
	var p models.Prescriber
	err := row.Scan(&p.ID, &p.ProfileID, &p.Name, &p.PhoneNumber, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Prescriber{}, storage.ErrPrescriberNotFound
	}
	if err != nil {
		return models.Prescriber{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (s *Store) AddPrescriber(p models.Prescriber) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := s.GetPrescriberByName(p.ProfileID, p.Name); err == nil {
		return storage.ErrDuplicatePrescriber
	}

	_, err := s.db.Exec(`
		INSERT INTO prescribers (`+prescriberColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.ProfileID, p.Name, p.PhoneNumber, p.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert prescriber: %w", err)
	}
	return nil
}

func (s *Store) GetPrescriber(id string) (models.Prescriber, error) {
	return scanPrescriber(s.db.QueryRow(`SELECT `+prescriberColumns+` FROM prescribers WHERE id = $1`, id))
}

func (s *Store) GetPrescriberByName(profileID, name string) (models.Prescriber, error) {
	return scanPrescriber(s.db.QueryRow(`
		SELECT `+prescriberColumns+`
		FROM prescribers
		WHERE profile_id = $1 AND LOWER(name) = LOWER($2)`, profileID, name))
}

func (s *Store) GetAllPrescribers(profileID string) ([]models.Prescriber, error) {
	rows, err := s.db.Query(`
		SELECT `+prescriberColumns+`
		FROM prescribers WHERE profile_id = $1
		ORDER BY name`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prescribers []models.Prescriber
	for rows.Next() {
		p, err := scanPrescriber(rows)
		if err != nil {
			return nil, err
		}
		prescribers = append(prescribers, p)
	}
	return prescribers, rows.Err()
}
