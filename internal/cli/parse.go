package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/utils"
)

// ParseSchedule parses a comma-separated window list such as "m,e" or
// "morning, bedtime". Duplicates are ignored.
func ParseSchedule(s string) ([]models.Window, error) {
	var windows []models.Window
	seen := map[models.Window]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		w, err := models.ParseWindow(part)
		if err != nil {
			return nil, err
		}
		if !seen[w] {
			seen[w] = true
			windows = append(windows, w)
		}
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("schedule must name at least one window (m, a, e, b)")
	}
	return windows, nil
}

// ApplySchedule replaces the medication's schedule with windows.
func ApplySchedule(m *models.Medication, windows []models.Window) {
	for _, w := range models.AllWindows {
		m.SetScheduled(w, false)
	}
	for _, w := range windows {
		m.SetScheduled(w, true)
	}
}

// ParseTakenAt interprets a dose time given on the command line. Bare
// HH:MM means today in loc; "YYYY-MM-DD HH:MM" is local to loc; RFC 3339
// carries its own offset.
func ParseTakenAt(value string, loc *time.Location, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateTimeFormat, value, loc); err == nil {
		return t, nil
	}
	if utils.ValidateTimeFormat(value) {
		today := now.In(loc).Format(constants.DateFormat)
		return utils.CombineDateAndTime(today, value, loc)
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM, \"YYYY-MM-DD HH:MM\" or RFC 3339)", value)
}

// FormatLocal renders t in loc for display.
func FormatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateTimeFormat)
}
