package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/doselog/internal/constants"
)

type Allergy struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Allergen  string    `json:"allergen"`
	Reaction  string    `json:"reaction,omitempty"`
	Severity  string    `json:"severity,omitempty"` // free text, e.g. "Moderate"
	CreatedAt time.Time `json:"created_at"`
}

func (a *Allergy) Validate() error {
	if strings.TrimSpace(a.Allergen) == "" {
		return fmt.Errorf("allergen cannot be empty")
	}
	return nil
}

// Vaccination is a single administered dose. Repeat doses are separate records.
type Vaccination struct {
	ID               string    `json:"id"`
	ProfileID        string    `json:"profile_id"`
	VaccineType      string    `json:"vaccine_type"`      // e.g. "Influenza", "Tdap", "Shingles Dose 1"
	DateAdministered string    `json:"date_administered"` // YYYY-MM-DD format
	CreatedAt        time.Time `json:"created_at"`
}

func (v *Vaccination) Validate() error {
	if strings.TrimSpace(v.VaccineType) == "" {
		return fmt.Errorf("vaccine type cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, v.DateAdministered); err != nil {
		return fmt.Errorf("invalid administration date (expected YYYY-MM-DD): %w", err)
	}
	return nil
}

// Administered returns the administration date as midnight UTC.
func (v Vaccination) Administered() time.Time {
	t, _ := time.Parse(constants.DateFormat, v.DateAdministered)
	return t
}

type Prescriber struct {
	ID          string    `json:"id"`
	ProfileID   string    `json:"profile_id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Prescriber) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("prescriber name cannot be empty")
	}
	return nil
}
