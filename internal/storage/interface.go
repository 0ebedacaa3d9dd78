package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/julianstephens/doselog/internal/migration"
	"github.com/julianstephens/doselog/internal/models"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrMedicationNotFound  = errors.New("medication not found")
	ErrDoseLogNotFound     = errors.New("dose log not found")
	ErrDuplicateProfile    = errors.New("a profile with that name already exists")
	ErrDuplicateMedication = errors.New("a medication with that name already exists")
	ErrAllergyNotFound     = errors.New("allergy not found")
	ErrPrescriberNotFound  = errors.New("prescriber not found")
	ErrDuplicatePrescriber = errors.New("a prescriber with that name already exists")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profiles
	AddProfile(models.Profile) error
	GetProfile(id string) (models.Profile, error)
	GetProfileByName(name string) (models.Profile, error)
	GetAllProfiles() ([]models.Profile, error)
	UpdateProfile(models.Profile) error

	// Medications
	AddMedication(models.Medication) error
	GetMedication(id string) (models.Medication, error)
	// GetMedicationByName matches the name case-insensitively among non-deleted medications.
	GetMedicationByName(profileID, name string) (models.Medication, error)
	GetAllMedications(profileID string, includeDeleted bool) ([]models.Medication, error)
	UpdateMedication(models.Medication) error
	DeleteMedication(id string) error
	RestoreMedication(id string) error

	// Dose logs
	AddDoseLog(models.DoseLog) error
	GetDoseLog(id string) (models.DoseLog, error)
	// GetDoseLogsInRange returns logs with from <= taken_at < to, oldest first.
	GetDoseLogsInRange(profileID string, from, to time.Time) ([]models.DoseLog, error)
	DeleteDoseLog(id string) error

	// Blood pressure
	AddBloodPressure(models.BloodPressure) error
	GetBloodPressureReadings(profileID string, from, to time.Time) ([]models.BloodPressure, error)

	// Allergies
	AddAllergy(models.Allergy) error
	GetAllergy(id string) (models.Allergy, error)
	GetAllergies(profileID string) ([]models.Allergy, error)
	UpdateAllergy(models.Allergy) error
	DeleteAllergy(id string) error

	// Vaccinations
	AddVaccination(models.Vaccination) error
	// GetVaccinations returns the profile's vaccinations, most recent first.
	GetVaccinations(profileID string) ([]models.Vaccination, error)

	// Prescribers
	AddPrescriber(models.Prescriber) error
	GetPrescriber(id string) (models.Prescriber, error)
	// GetPrescriberByName matches the name case-insensitively.
	GetPrescriberByName(profileID, name string) (models.Prescriber, error)
	GetAllPrescribers(profileID string) ([]models.Prescriber, error)

	// Exercise and food
	AddExerciseLog(models.ExerciseLog) error
	// GetExerciseLogsInRange returns logs with from <= logged_at < to, oldest first.
	GetExerciseLogsInRange(profileID string, from, to time.Time) ([]models.ExerciseLog, error)
	AddFoodLog(models.FoodLog) error
	// GetFoodLogsInRange returns logs with from <= logged_at < to, oldest first.
	GetFoodLogsInRange(profileID string, from, to time.Time) ([]models.FoodLog, error)

	// Schema
	Migrate(logFn func(string)) (int, error)

	// Diagnostics
	Ping() error
	SchemaStatus() (migration.Status, error)
	CountOrphanedDoseLogs() (int, error)

	// Utils
	GetConfigPath() string
}

// IsPostgresConnString reports whether target names a PostgreSQL database
// (URI or key=value DSN) rather than a SQLite file.
func IsPostgresConnString(target string) bool {
	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		return true
	}
	return strings.Contains(target, "host=")
}
