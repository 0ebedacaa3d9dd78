package compliance

import (
	"sort"
	"time"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/utils"
)

// Slot is one expected or satisfied dose: a medication in a window on a local date.
type Slot struct {
	MedicationID string
	Window       models.Window
	Date         string // YYYY-MM-DD in the profile's timezone
}

type windowStart struct {
	window  models.Window
	minutes int
}

// Bucketer maps dose instants onto (window, local date) pairs for one profile.
type Bucketer struct {
	loc     *time.Location
	windows []windowStart // sorted by start, ties in canonical order
}

// NewBucketer prepares window boundaries for profile. Unknown timezones resolve
// to UTC and unparsable window starts fall back to that window's default.
func NewBucketer(profile models.Profile) *Bucketer {
	loc, _ := utils.ResolveLocation(profile.Timezone)

	windows := make([]windowStart, 0, len(models.AllWindows))
	for _, ws := range profile.WindowStarts() {
		minutes, err := utils.ParseTimeToMinutes(ws.Start)
		if err != nil {
			minutes, _ = utils.ParseTimeToMinutes(models.DefaultWindowStart(ws.Window))
		}
		windows = append(windows, windowStart{window: ws.Window, minutes: minutes})
	}
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].minutes < windows[j].minutes
	})

	return &Bucketer{loc: loc, windows: windows}
}

// Location returns the resolved profile timezone.
func (b *Bucketer) Location() *time.Location {
	return b.loc
}

// Bucket returns the window and local date a dose taken at takenAt belongs to.
// An explicit tag wins over the time of day and keeps the local calendar date.
// A dose before the earliest window start belongs to the latest window of the
// previous day.
func (b *Bucketer) Bucket(takenAt time.Time, tag models.Window) (models.Window, string) {
	local := takenAt.In(b.loc)

	if tag != "" {
		return tag, local.Format(constants.DateFormat)
	}

	t := utils.MinutesOfDay(local)
	matched := -1
	for i, ws := range b.windows {
		if ws.minutes <= t {
			matched = i
		}
	}

	if matched < 0 {
		last := b.windows[len(b.windows)-1]
		return last.window, local.AddDate(0, 0, -1).Format(constants.DateFormat)
	}
	return b.windows[matched].window, local.Format(constants.DateFormat)
}

// BucketDose is a convenience wrapper for bucketing a single log entry.
func BucketDose(profile models.Profile, log models.DoseLog) (models.Window, string) {
	return NewBucketer(profile).Bucket(log.TakenAt, log.Window)
}
