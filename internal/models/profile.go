package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/constants"
)

// Profile is the person whose medications and doses are tracked.
type Profile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Timezone        string    `json:"timezone"`         // IANA timezone name, UTC when empty
	WindowMorning   string    `json:"window_morning"`   // HH:MM format
	WindowAfternoon string    `json:"window_afternoon"` // HH:MM format
	WindowEvening   string    `json:"window_evening"`   // HH:MM format
	WindowBedtime   string    `json:"window_bedtime"`   // HH:MM format
	WeightKg        float64   `json:"weight_kg,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if p.Timezone != "" {
		if _, err := time.LoadLocation(p.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", p.Timezone, err)
		}
	}

	if p.WeightKg < 0 {
		return fmt.Errorf("weight cannot be negative")
	}

	seen := make(map[string]Window)
	for _, w := range AllWindows {
		start := p.WindowStart(w)
		if _, err := time.Parse(constants.TimeFormat, start); err != nil {
			return fmt.Errorf("invalid %s window start (expected HH:MM): %w", w, err)
		}
		if other, ok := seen[start]; ok {
			return fmt.Errorf("%s and %s windows both start at %s", other, w, start)
		}
		seen[start] = w
	}

	return nil
}

// WindowStart returns the configured start time for w, or its default when unset.
func (p Profile) WindowStart(w Window) string {
	var v string
	switch w {
	case WindowMorning:
		v = p.WindowMorning
	case WindowAfternoon:
		v = p.WindowAfternoon
	case WindowEvening:
		v = p.WindowEvening
	case WindowBedtime:
		v = p.WindowBedtime
	}
	if v == "" {
		return DefaultWindowStart(w)
	}
	return v
}

// SetWindowStart updates the start time for w.
func (p *Profile) SetWindowStart(w Window, start string) {
	switch w {
	case WindowMorning:
		p.WindowMorning = start
	case WindowAfternoon:
		p.WindowAfternoon = start
	case WindowEvening:
		p.WindowEvening = start
	case WindowBedtime:
		p.WindowBedtime = start
	}
}

// DefaultWindowStart returns the default start time for w.
func DefaultWindowStart(w Window) string {
	switch w {
	case WindowMorning:
		return constants.DefaultWindowMorning
	case WindowAfternoon:
		return constants.DefaultWindowAfternoon
	case WindowEvening:
		return constants.DefaultWindowEvening
	case WindowBedtime:
		return constants.DefaultWindowBedtime
	}
	return ""
}

// ApplyDefaultProfile fills unset profile fields with their defaults.
func ApplyDefaultProfile(p *Profile) {
	if p.Timezone == "" {
		p.Timezone = constants.DefaultTimezone
	}
	for _, w := range AllWindows {
		p.SetWindowStart(w, p.WindowStart(w))
	}
}

// WindowStartTime pairs a window with its configured local start time.
type WindowStartTime struct {
	Window Window
	Start  string // HH:MM format
}

// WindowStarts returns all four windows in canonical order with defaults applied.
func (p Profile) WindowStarts() []WindowStartTime {
	starts := make([]WindowStartTime, 0, len(AllWindows))
	for _, w := range AllWindows {
		starts = append(starts, WindowStartTime{Window: w, Start: p.WindowStart(w)})
	}
	return starts
}
