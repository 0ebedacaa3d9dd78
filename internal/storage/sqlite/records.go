package sqlite

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
	var createdAt string
	if err := row.Scan(&a.ID, &a.ProfileID, &a.Allergen, &a.Reaction, &a.Severity, &createdAt); err != nil {
		return models.Allergy{}, err
	}
	var err error
	a.CreatedAt, err = parseTime("created_at", createdAt)
	return a, err
}

func (s *Store) AddAllergy(a models.Allergy) error {
	if err := a.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO allergies (`+allergyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.ProfileID, a.Allergen, a.Reaction, a.Severity, formatTime(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert allergy: %w", err)
	}
	return nil
}

func (s *Store) GetAllergy(id string) (models.Allergy, error) {
	a, err := scanAllergy(s.db.QueryRow(`SELECT `+allergyColumns+` FROM allergies WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Allergy{}, storage.ErrAllergyNotFound
	}
	return a, err
}

func (s *Store) GetAllergies(profileID string) ([]models.Allergy, error) {
	rows, err := s.db.Query(`
		SELECT `+allergyColumns+`
		FROM allergies WHERE profile_id = ?
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
		UPDATE allergies SET allergen = ?, reaction = ?, severity = ?
		WHERE id = ?`,
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
	res, err := s.db.Exec(`DELETE FROM allergies WHERE id = ?`, id)
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
		VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.ProfileID, v.VaccineType, v.DateAdministered, formatTime(v.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert vaccination: %w", err)
	}
	return nil
}

func (s *Store) GetVaccinations(profileID string) ([]models.Vaccination, error) {
	rows, err := s.db.Query(`
		SELECT id, profile_id, vaccine_type, date_administered, created_at
		FROM vaccinations WHERE profile_id = ?
		ORDER BY date_administered DESC, vaccine_type`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vaccinations []models.Vaccination
	for rows.Next() {
		var v models.Vaccination
		var createdAt string
		if err := rows.Scan(&v.ID, &v.ProfileID, &v.VaccineType, &v.DateAdministered, &createdAt); err != nil {
			return nil, err
		}
		if v.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		vaccinations = append(vaccinations, v)
	}
	return vaccinations, rows.Err()
}

const prescriberColumns = `id, profile_id, name, phone_number, created_at`

func scanPrescriber(row rowScanner) (models.Prescriber, error) {
	var p models.Prescriber
	var createdAt string
	if err := row.Scan(&p.ID, &p.ProfileID, &p.Name, &p.PhoneNumber, &createdAt); err != nil {
		return models.Prescriber{}, err
	}
	var err error
	p.CreatedAt, err = parseTime("created_at", createdAt)
	return p, err
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
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.ProfileID, p.Name, p.PhoneNumber, formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert prescriber: %w", err)
	}
	return nil
}

func (s *Store) GetPrescriber(id string) (models.Prescriber, error) {
	p, err := scanPrescriber(s.db.QueryRow(`SELECT `+prescriberColumns+` FROM prescribers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Prescriber{}, storage.ErrPrescriberNotFound
	}
	return p, err
}

func (s *Store) GetPrescriberByName(profileID, name string) (models.Prescriber, error) {
	p, err := scanPrescriber(s.db.QueryRow(`
		SELECT `+prescriberColumns+`
		FROM prescribers
		WHERE profile_id = ? AND LOWER(name) = LOWER(?)`, profileID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Prescriber{}, storage.ErrPrescriberNotFound
	}
	return p, err
}

func (s *Store) GetAllPrescribers(profileID string) ([]models.Prescriber, error) {
	rows, err := s.db.Query(`
		SELECT `+prescriberColumns+`
		FROM prescribers WHERE profile_id = ?
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
