package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/doselog/internal/constants"
)

type MedicationType string

const (
	MedicationPrescription MedicationType = "prescription"
	MedicationOTC          MedicationType = "otc"
)

type Medication struct {
	ID                string         `json:"id"`
	ProfileID         string         `json:"profile_id"`
	Name              string         `json:"name"`
	Type              MedicationType `json:"type"`
	ScheduleMorning   bool           `json:"schedule_morning"`
	ScheduleAfternoon bool           `json:"schedule_afternoon"`
	ScheduleEvening   bool           `json:"schedule_evening"`
	ScheduleBedtime   bool           `json:"schedule_bedtime"`
	CurrentInventory  int            `json:"current_inventory"`
	RefillsRemaining  int            `json:"refills_remaining"`
	DailyDoses        int            `json:"daily_doses"`
	RefillQuantity    int            `json:"refill_quantity"`
	StartDate         string         `json:"start_date,omitempty"` // YYYY-MM-DD format
	EndDate           string         `json:"end_date,omitempty"`   // YYYY-MM-DD format
	PrescriberID      string         `json:"prescriber_id,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	DeletedAt         *time.Time     `json:"deleted_at,omitempty"`
}

func (m *Medication) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("medication name cannot be empty")
	}
	if m.Type != "" && m.Type != MedicationPrescription && m.Type != MedicationOTC {
		return fmt.Errorf("invalid medication type %q (expected prescription or otc)", m.Type)
	}
	if m.CurrentInventory < 0 {
		return fmt.Errorf("inventory cannot be negative")
	}
	if m.RefillsRemaining < 0 {
		return fmt.Errorf("refills remaining cannot be negative")
	}
	if m.DailyDoses < 0 {
		return fmt.Errorf("daily doses cannot be negative")
	}
	if m.StartDate != "" {
		if _, err := time.Parse(constants.DateFormat, m.StartDate); err != nil {
			return fmt.Errorf("invalid start date format (expected YYYY-MM-DD): %w", err)
		}
	}
	if m.EndDate != "" {
		if _, err := time.Parse(constants.DateFormat, m.EndDate); err != nil {
			return fmt.Errorf("invalid end date format (expected YYYY-MM-DD): %w", err)
		}
	}
	if m.StartDate != "" && m.EndDate != "" && m.EndDate < m.StartDate {
		return fmt.Errorf("end date %s is before start date %s", m.EndDate, m.StartDate)
	}
	return nil
}

// IsScheduled reports whether the medication is taken in window w.
func (m Medication) IsScheduled(w Window) bool {
	switch w {
	case WindowMorning:
		return m.ScheduleMorning
	case WindowAfternoon:
		return m.ScheduleAfternoon
	case WindowEvening:
		return m.ScheduleEvening
	case WindowBedtime:
		return m.ScheduleBedtime
	}
	return false
}

// SetScheduled turns window w on or off for the medication.
func (m *Medication) SetScheduled(w Window, on bool) {
	switch w {
	case WindowMorning:
		m.ScheduleMorning = on
	case WindowAfternoon:
		m.ScheduleAfternoon = on
	case WindowEvening:
		m.ScheduleEvening = on
	case WindowBedtime:
		m.ScheduleBedtime = on
	}
}

// ScheduledWindows returns the windows the medication is scheduled in, in canonical order.
func (m Medication) ScheduledWindows() []Window {
	var windows []Window
	for _, w := range AllWindows {
		if m.IsScheduled(w) {
			windows = append(windows, w)
		}
	}
	return windows
}

// ScheduleAbbrev returns the compact schedule string, e.g. "M, A".
func (m Medication) ScheduleAbbrev() string {
	var parts []string
	for _, w := range m.ScheduledWindows() {
		parts = append(parts, w.Abbrev())
	}
	return strings.Join(parts, ", ")
}

// DaysRemaining estimates how many days the current inventory lasts.
func (m Medication) DaysRemaining() float64 {
	if m.DailyDoses <= 0 {
		return constants.UnknownDaysRemaining
	}
	return float64(m.CurrentInventory) / float64(m.DailyDoses)
}

// NeedsRefill reports whether the supply has fallen to either threshold.
func (m Medication) NeedsRefill(daysThreshold, refillsThreshold int) bool {
	return m.DaysRemaining() <= float64(daysThreshold) || m.RefillsRemaining <= refillsThreshold
}

// ConsumeDose takes one unit from inventory. Inventory never goes below zero.
func (m *Medication) ConsumeDose() {
	if m.CurrentInventory > 0 {
		m.CurrentInventory--
	}
}

// Refill adds quantity to inventory and uses up one refill when any remain.
func (m *Medication) Refill(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("refill quantity must be positive")
	}
	m.CurrentInventory += quantity
	if m.RefillsRemaining > 0 {
		m.RefillsRemaining--
	}
	return nil
}
