package models

import (
	"fmt"
	"strings"
)

// Window identifies one of the four daily dose windows.
type Window string

const (
	WindowMorning   Window = "morning"
	WindowAfternoon Window = "afternoon"
	WindowEvening   Window = "evening"
	WindowBedtime   Window = "bedtime"
)

// AllWindows lists the dose windows in their canonical order.
var AllWindows = []Window{WindowMorning, WindowAfternoon, WindowEvening, WindowBedtime}

// ParseWindow accepts a full window name or its single-letter code (M, A, E, B),
// case-insensitively. Integrations that log doses send the short codes.
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "morning":
		return WindowMorning, nil
	case "a", "afternoon":
		return WindowAfternoon, nil
	case "e", "evening":
		return WindowEvening, nil
	case "b", "bedtime":
		return WindowBedtime, nil
	}
	return "", fmt.Errorf("invalid dose window %q (expected morning, afternoon, evening, bedtime or M/A/E/B)", s)
}

// Abbrev returns the single-letter code for the window.
func (w Window) Abbrev() string {
	switch w {
	case WindowMorning:
		return "M"
	case WindowAfternoon:
		return "A"
	case WindowEvening:
		return "E"
	case WindowBedtime:
		return "B"
	default:
		return ""
	}
}

// IsValid reports whether w is one of the four known windows.
func (w Window) IsValid() bool {
	for _, known := range AllWindows {
		if w == known {
			return true
		}
	}
	return false
}
