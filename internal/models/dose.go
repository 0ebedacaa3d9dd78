package models

import (
	"fmt"
	"time"
)

// DoseLog records a single dose-taken event.
type DoseLog struct {
	ID           string    `json:"id"`
	ProfileID    string    `json:"profile_id"`
	MedicationID string    `json:"medication_id"`
	TakenAt      time.Time `json:"taken_at"`         // stored as UTC
	Window       Window    `json:"window,omitempty"` // explicit window tag, empty when unset
	Consumed     bool      `json:"consumed"`         // a unit was taken from inventory
	CreatedAt    time.Time `json:"created_at"`
}

func (d *DoseLog) Validate() error {
	if d.MedicationID == "" {
		return fmt.Errorf("dose log must reference a medication")
	}
	if d.TakenAt.IsZero() {
		return fmt.Errorf("dose log timestamp cannot be empty")
	}
	if d.Window != "" && !d.Window.IsValid() {
		return fmt.Errorf("invalid dose window %q", d.Window)
	}
	return nil
}

// HasExplicitWindow reports whether the log carries a window tag.
func (d DoseLog) HasExplicitWindow() bool {
	return d.Window != ""
}
