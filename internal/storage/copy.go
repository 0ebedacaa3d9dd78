package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/models"
)

// allTime spans every timestamp either backend can store.
var (
	allTimeFrom = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	allTimeTo   = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// CopySummary counts the records Copy transferred.
type CopySummary struct {
	Profiles       int
	Prescribers    int
	Medications    int
	DoseLogs       int
	BloodPressures int
	Allergies      int
	Vaccinations   int
	ExerciseLogs   int
	FoodLogs       int
}

// Copy transfers every profile and its records from src into dst. Profiles
// that already exist in dst by name are merged into the existing profile.
// progress, when non-nil, receives one line per stage.
func Copy(src, dst Provider, progress func(string)) (CopySummary, error) {
	if progress == nil {
		progress = func(string) {}
	}
	var sum CopySummary

	profiles, err := src.GetAllProfiles()
	if err != nil {
		return sum, fmt.Errorf("failed to get profiles from source: %w", err)
	}

	for _, p := range profiles {
		progress(fmt.Sprintf("Migrating profile %s...", p.Name))
		dstID, err := copyProfile(dst, p)
		if err != nil {
			return sum, err
		}
		sum.Profiles++

		if err := copyMedicationRecords(src, dst, p.ID, dstID, &sum); err != nil {
			return sum, err
		}
		if err := copyHealthRecords(src, dst, p.ID, dstID, &sum); err != nil {
			return sum, err
		}
	}

	progress(fmt.Sprintf("Migrated %d profiles, %d medications, %d dose logs, %d blood pressure readings",
		sum.Profiles, sum.Medications, sum.DoseLogs, sum.BloodPressures))
	progress(fmt.Sprintf("Migrated %d prescribers, %d allergies, %d vaccinations, %d exercise logs, %d food logs",
		sum.Prescribers, sum.Allergies, sum.Vaccinations, sum.ExerciseLogs, sum.FoodLogs))
	return sum, nil
}

// copyMedicationRecords copies prescribers ahead of the medications that reference them.
func copyMedicationRecords(src, dst Provider, srcID, dstID string, sum *CopySummary) error {
	prescribers, err := src.GetAllPrescribers(srcID)
	if err != nil {
		return fmt.Errorf("failed to get prescribers from source: %w", err)
	}
	for _, pr := range prescribers {
		pr.ProfileID = dstID
		if err := dst.AddPrescriber(pr); err != nil {
			return fmt.Errorf("failed to add prescriber %s: %w", pr.Name, err)
		}
		sum.Prescribers++
	}

	meds, err := src.GetAllMedications(srcID, true)
	if err != nil {
		return fmt.Errorf("failed to get medications from source: %w", err)
	}
	for _, m := range meds {
		m.ProfileID = dstID
		if err := dst.AddMedication(m); err != nil {
			return fmt.Errorf("failed to add medication %s: %w", m.Name, err)
		}
		sum.Medications++
	}

	logs, err := src.GetDoseLogsInRange(srcID, allTimeFrom, allTimeTo)
	if err != nil {
		return fmt.Errorf("failed to get dose logs from source: %w", err)
	}
	for _, d := range logs {
		d.ProfileID = dstID
		if err := dst.AddDoseLog(d); err != nil {
			return fmt.Errorf("failed to add dose log %s: %w", d.ID, err)
		}
		sum.DoseLogs++
	}
	return nil
}

func copyHealthRecords(src, dst Provider, srcID, dstID string, sum *CopySummary) error {
	readings, err := src.GetBloodPressureReadings(srcID, allTimeFrom, allTimeTo)
	if err != nil {
		return fmt.Errorf("failed to get blood pressure readings from source: %w", err)
	}
	for _, bp := range readings {
		bp.ProfileID = dstID
		if err := dst.AddBloodPressure(bp); err != nil {
			return fmt.Errorf("failed to add blood pressure reading %s: %w", bp.ID, err)
		}
		sum.BloodPressures++
	}

	allergies, err := src.GetAllergies(srcID)
	if err != nil {
		return fmt.Errorf("failed to get allergies from source: %w", err)
	}
	for _, a := range allergies {
		a.ProfileID = dstID
		if err := dst.AddAllergy(a); err != nil {
			return fmt.Errorf("failed to add allergy %s: %w", a.Allergen, err)
		}
		sum.Allergies++
	}

	vaccinations, err := src.GetVaccinations(srcID)
	if err != nil {
		return fmt.Errorf("failed to get vaccinations from source: %w", err)
	}
	for _, v := range vaccinations {
		v.ProfileID = dstID
		if err := dst.AddVaccination(v); err != nil {
			return fmt.Errorf("failed to add vaccination %s: %w", v.ID, err)
		}
		sum.Vaccinations++
	}

	exercises, err := src.GetExerciseLogsInRange(srcID, allTimeFrom, allTimeTo)
	if err != nil {
		return fmt.Errorf("failed to get exercise logs from source: %w", err)
	}
	for _, e := range exercises {
		e.ProfileID = dstID
		if err := dst.AddExerciseLog(e); err != nil {
			return fmt.Errorf("failed to add exercise log %s: %w", e.ID, err)
		}
		sum.ExerciseLogs++
	}

	foods, err := src.GetFoodLogsInRange(srcID, allTimeFrom, allTimeTo)
	if err != nil {
		return fmt.Errorf("failed to get food logs from source: %w", err)
	}
	for _, f := range foods {
		f.ProfileID = dstID
		if err := dst.AddFoodLog(f); err != nil {
			return fmt.Errorf("failed to add food log %s: %w", f.ID, err)
		}
		sum.FoodLogs++
	}
	return nil
}

// copyProfile returns the id the profile has in dst.
func copyProfile(dst Provider, p models.Profile) (string, error) {
	existing, err := dst.GetProfileByName(p.Name)
	if err == nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		if err := dst.UpdateProfile(p); err != nil {
			return "", fmt.Errorf("failed to update profile %s: %w", p.Name, err)
		}
		return existing.ID, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return "", fmt.Errorf("failed to look up profile %s: %w", p.Name, err)
	}
	if err := dst.AddProfile(p); err != nil {
		return "", fmt.Errorf("failed to add profile %s: %w", p.Name, err)
	}
	return p.ID, nil
}
