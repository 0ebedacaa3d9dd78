// Package health manages the non-medication parts of a profile's record:
// allergies, vaccinations, prescribers, exercise and food.
package health

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/storage"
)

// Store is the slice of storage.Provider the health services need.
type Store interface {
	AddAllergy(models.Allergy) error
	GetAllergy(id string) (models.Allergy, error)
	GetAllergies(profileID string) ([]models.Allergy, error)
	UpdateAllergy(models.Allergy) error
	DeleteAllergy(id string) error

	AddVaccination(models.Vaccination) error
	GetVaccinations(profileID string) ([]models.Vaccination, error)

	AddPrescriber(models.Prescriber) error
	GetPrescriber(id string) (models.Prescriber, error)
	GetPrescriberByName(profileID, name string) (models.Prescriber, error)
	GetAllPrescribers(profileID string) ([]models.Prescriber, error)

	AddExerciseLog(models.ExerciseLog) error
	GetExerciseLogsInRange(profileID string, from, to time.Time) ([]models.ExerciseLog, error)
	AddFoodLog(models.FoodLog) error
	GetFoodLogsInRange(profileID string, from, to time.Time) ([]models.FoodLog, error)
}

// ShortIDLen is the id prefix length shown in listings.
const ShortIDLen = 8

// ShortID returns the listing prefix of id.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

// Records manages allergies, vaccinations and prescribers.
type Records struct {
	store Store

	Clock func() time.Time
}

func NewRecords(store Store) *Records {
	return &Records{store: store, Clock: time.Now}
}

func (r *Records) now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock()
}

func (r *Records) AddAllergy(profileID string, a models.Allergy) (models.Allergy, error) {
	a.ID = uuid.New().String()
	a.ProfileID = profileID
	a.Allergen = strings.TrimSpace(a.Allergen)
	a.CreatedAt = r.now().UTC()
	if err := r.store.AddAllergy(a); err != nil {
		return models.Allergy{}, err
	}
	logger.Info("allergy added", "allergen", a.Allergen, "severity", a.Severity)
	return a, nil
}

func (r *Records) ListAllergies(profileID string) ([]models.Allergy, error) {
	return r.store.GetAllergies(profileID)
}

// FindAllergy resolves ref as an allergy id, an id prefix of at least
// ShortIDLen characters or, case-insensitively, an allergen name. A ref
// matching several records is rejected.
func (r *Records) FindAllergy(profileID, ref string) (models.Allergy, error) {
	ref = strings.TrimSpace(ref)
	if a, err := r.store.GetAllergy(ref); err == nil && a.ProfileID == profileID {
		return a, nil
	}

	all, err := r.store.GetAllergies(profileID)
	if err != nil {
		return models.Allergy{}, err
	}
	var matches []models.Allergy
	for _, a := range all {
		if strings.EqualFold(a.Allergen, ref) || (len(ref) >= ShortIDLen && strings.HasPrefix(a.ID, ref)) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return models.Allergy{}, fmt.Errorf("%w: %s", storage.ErrAllergyNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Allergy{}, fmt.Errorf("%d allergies match %q, use the id instead", len(matches), ref)
	}
}

// EditAllergy applies fn to the allergy ref names and saves it.
func (r *Records) EditAllergy(profileID, ref string, fn func(*models.Allergy)) (models.Allergy, error) {
	a, err := r.FindAllergy(profileID, ref)
	if err != nil {
		return models.Allergy{}, err
	}
	fn(&a)
	a.Allergen = strings.TrimSpace(a.Allergen)
	if err := r.store.UpdateAllergy(a); err != nil {
		return models.Allergy{}, err
	}
	return a, nil
}

func (r *Records) DeleteAllergy(profileID, ref string) (models.Allergy, error) {
	a, err := r.FindAllergy(profileID, ref)
	if err != nil {
		return models.Allergy{}, err
	}
	if err := r.store.DeleteAllergy(a.ID); err != nil {
		return models.Allergy{}, err
	}
	logger.Info("allergy deleted", "allergen", a.Allergen)
	return a, nil
}

// AddVaccination records one administered dose. date is YYYY-MM-DD.
func (r *Records) AddVaccination(profileID, vaccineType, date string) (models.Vaccination, error) {
	v := models.Vaccination{
		ID:               uuid.New().String(),
		ProfileID:        profileID,
		VaccineType:      strings.TrimSpace(vaccineType),
		DateAdministered: date,
		CreatedAt:        r.now().UTC(),
	}
	if err := r.store.AddVaccination(v); err != nil {
		return models.Vaccination{}, err
	}
	logger.Info("vaccination logged", "type", v.VaccineType, "date", v.DateAdministered)
	return v, nil
}

func (r *Records) ListVaccinations(profileID string) ([]models.Vaccination, error) {
	return r.store.GetVaccinations(profileID)
}

func (r *Records) AddPrescriber(profileID, name, phone string) (models.Prescriber, error) {
	p := models.Prescriber{
		ID:          uuid.New().String(),
		ProfileID:   profileID,
		Name:        strings.TrimSpace(name),
		PhoneNumber: strings.TrimSpace(phone),
		CreatedAt:   r.now().UTC(),
	}
	if err := r.store.AddPrescriber(p); err != nil {
		return models.Prescriber{}, err
	}
	logger.Info("prescriber added", "name", p.Name)
	return p, nil
}

func (r *Records) ListPrescribers(profileID string) ([]models.Prescriber, error) {
	return r.store.GetAllPrescribers(profileID)
}

// Prescriber looks a prescriber up by name within the profile.
func (r *Records) Prescriber(profileID, name string) (models.Prescriber, error) {
	p, err := r.store.GetPrescriberByName(profileID, strings.TrimSpace(name))
	if err != nil {
		return models.Prescriber{}, fmt.Errorf("%w: %s", err, name)
	}
	return p, nil
}

// PrescriberName returns the name for id, or "" when id is empty or unknown.
func (r *Records) PrescriberName(id string) string {
	if id == "" {
		return ""
	}
	p, err := r.store.GetPrescriber(id)
	if err != nil {
		logger.Debug("prescriber lookup failed", "id", id, "error", err)
		return ""
	}
	return p.Name
}
