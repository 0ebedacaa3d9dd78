package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/constants"
)

type BloodPressure struct {
	ID              string    `json:"id"`
	ProfileID       string    `json:"profile_id"`
	Systolic        int       `json:"systolic"`
	Diastolic       int       `json:"diastolic"`
	Pulse           int       `json:"pulse,omitempty"`
	MeasuredAt      time.Time `json:"measured_at"`
	Location        string    `json:"location,omitempty"` // e.g. "left arm"
	StressLevel     int       `json:"stress_level,omitempty"`
	MedsTakenBefore string    `json:"meds_taken_before,omitempty"`
}

func (b *BloodPressure) Validate() error {
	if b.Systolic < constants.MinSystolic || b.Systolic > constants.MaxSystolic {
		return fmt.Errorf("systolic %d out of range (%d-%d)", b.Systolic, constants.MinSystolic, constants.MaxSystolic)
	}
	if b.Diastolic < constants.MinDiastolic || b.Diastolic > constants.MaxDiastolic {
		return fmt.Errorf("diastolic %d out of range (%d-%d)", b.Diastolic, constants.MinDiastolic, constants.MaxDiastolic)
	}
	if b.Diastolic >= b.Systolic {
		return fmt.Errorf("diastolic (%d) must be lower than systolic (%d)", b.Diastolic, b.Systolic)
	}
	if b.Pulse < 0 {
		return fmt.Errorf("pulse cannot be negative")
	}
	if b.StressLevel < 0 || b.StressLevel > constants.MaxStress {
		return fmt.Errorf("stress level must be between 0 and %d", constants.MaxStress)
	}
	if b.MeasuredAt.IsZero() {
		return fmt.Errorf("measurement time cannot be empty")
	}
	return nil
}

// Category classifies the reading using the common adult ranges.
func (b BloodPressure) Category() string {
	switch {
	case b.Systolic >= 180 || b.Diastolic >= 120:
		return "crisis"
	case b.Systolic >= 140 || b.Diastolic >= 90:
		return "stage 2"
	case b.Systolic >= 130 || b.Diastolic >= 80:
		return "stage 1"
	case b.Systolic >= 120:
		return "elevated"
	default:
		return "normal"
	}
}
