package compliance

import (
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/utils"
)

// MedicationRepository lists a profile's medications, optionally including soft-deleted ones.
type MedicationRepository interface {
	GetAllMedications(profileID string, includeDeleted bool) ([]models.Medication, error)
}

// DoseLogRepository returns logs whose UTC timestamp lies in [from, to).
type DoseLogRepository interface {
	GetDoseLogsInRange(profileID string, from, to time.Time) ([]models.DoseLog, error)
}

// ProfileProvider resolves a profile id to its timezone and window settings.
type ProfileProvider interface {
	GetProfile(id string) (models.Profile, error)
}

// Service loads a profile's data from storage and runs Calculate over it.
type Service struct {
	profiles    ProfileProvider
	medications MedicationRepository
	doses       DoseLogRepository

	// Clock supplies the current instant. Defaults to time.Now.
	Clock func() time.Time
	// Days is the report length. Zero means the default of 30.
	Days int
}

func NewService(profiles ProfileProvider, medications MedicationRepository, doses DoseLogRepository) *Service {
	return &Service{
		profiles:    profiles,
		medications: medications,
		doses:       doses,
		Clock:       time.Now,
	}
}

// Report calculates the compliance report for profileID.
func (s *Service) Report(profileID string) (Report, error) {
	done := logger.Timed("compliance report calculated", "profile", profileID)
	defer done()

	profile, err := s.profiles.GetProfile(profileID)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load profile: %w", err)
	}

	meds, err := s.medications.GetAllMedications(profileID, false)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load medications: %w", err)
	}

	loc, ok := utils.ResolveLocation(profile.Timezone)
	if !ok {
		logger.Debug("unknown profile timezone, using UTC", "profile", profileID, "timezone", profile.Timezone)
	}

	now := s.now()
	start, end := Period(now, loc, s.Days)
	from, to, err := QueryRange(start, end, loc)
	if err != nil {
		return Report{}, fmt.Errorf("failed to compute report range: %w", err)
	}

	logs, err := s.doses.GetDoseLogsInRange(profileID, from, to)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load dose logs: %w", err)
	}
	logger.Debug("loaded compliance inputs", "medications", len(meds), "logs", len(logs), "from", from, "to", to)

	return Calculate(profile, meds, logs, now, s.Days), nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
