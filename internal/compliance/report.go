package compliance

import (
	"math"
	"time"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/models"
)

// Report summarizes dose adherence over a period of local dates.
type Report struct {
	CompliancePercentage float64                `json:"compliance_percentage" yaml:"compliance_percentage"`
	MissedDoses          int                    `json:"missed_doses" yaml:"missed_doses"`
	TakenDoses           int                    `json:"taken_doses" yaml:"taken_doses"`
	TotalScheduled       int                    `json:"total_scheduled" yaml:"total_scheduled"`
	PeriodStart          string                 `json:"period_start" yaml:"period_start"`
	PeriodEnd            string                 `json:"period_end" yaml:"period_end"`
	Medications          []MedicationCompliance `json:"medications" yaml:"medications"`
}

// MedicationCompliance is the per-medication breakdown of a Report.
type MedicationCompliance struct {
	Name                 string  `json:"name" yaml:"name"`
	CompliancePercentage float64 `json:"compliance_percentage" yaml:"compliance_percentage"`
	Taken                int     `json:"taken" yaml:"taken"`
	Expected             int     `json:"expected" yaml:"expected"`
	Missed               int     `json:"missed" yaml:"missed"`
	Schedule             string  `json:"schedule" yaml:"schedule"`
}

// Period returns the inclusive local date range of a days-long report ending
// yesterday relative to now in loc.
func Period(now time.Time, loc *time.Location, days int) (start, end string) {
	if days <= 0 {
		days = constants.DefaultReportDays
	}
	local := now.In(loc)
	endDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	startDay := endDay.AddDate(0, 0, -(days - 1))
	return startDay.Format(constants.DateFormat), endDay.Format(constants.DateFormat)
}

// QueryRange returns the UTC half-open instant range whose dose logs can land
// in [start, end]. It runs through the day after end because doses taken
// before the first window wrap back onto the previous date.
func QueryRange(start, end string, loc *time.Location) (from, to time.Time, err error) {
	s, err := time.ParseInLocation(constants.DateFormat, start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := time.ParseInLocation(constants.DateFormat, end, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s.UTC(), e.AddDate(0, 0, 2).UTC(), nil
}

// Calculate builds a compliance report for the days-long period ending the
// day before now. It performs no I/O and keeps no state between calls.
func Calculate(profile models.Profile, meds []models.Medication, logs []models.DoseLog, now time.Time, days int) Report {
	bucketer := NewBucketer(profile)
	start, end := Period(now, bucketer.Location(), days)

	report := Report{
		PeriodStart: start,
		PeriodEnd:   end,
		Medications: []MedicationCompliance{},
	}

	taken := make(map[Slot]struct{}, len(logs))
	for _, log := range logs {
		window, date := bucketer.Bucket(log.TakenAt, log.Window)
		if date < start || date > end {
			continue
		}
		taken[Slot{MedicationID: log.MedicationID, Window: window, Date: date}] = struct{}{}
	}

	// Period always yields well-formed dates, so enumeration cannot fail.
	expected, _ := ExpectedSlots(meds, start, end)

	type counts struct{ expected, taken int }
	perMed := make(map[string]*counts, len(meds))
	for _, med := range meds {
		perMed[med.ID] = &counts{}
	}

	for _, slot := range expected {
		c := perMed[slot.MedicationID]
		c.expected++
		report.TotalScheduled++
		if _, ok := taken[slot]; ok {
			c.taken++
			report.TakenDoses++
		}
	}
	report.MissedDoses = report.TotalScheduled - report.TakenDoses
	if report.TotalScheduled > 0 {
		report.CompliancePercentage = percentage(report.TakenDoses, report.TotalScheduled)
	}

	for _, med := range meds {
		c := perMed[med.ID]
		pct := 100.0
		if c.expected > 0 {
			pct = percentage(c.taken, c.expected)
		}
		report.Medications = append(report.Medications, MedicationCompliance{
			Name:                 med.Name,
			CompliancePercentage: pct,
			Taken:                c.taken,
			Expected:             c.expected,
			Missed:               c.expected - c.taken,
			Schedule:             med.ScheduleAbbrev(),
		})
	}

	return report
}

func percentage(taken, expected int) float64 {
	p := float64(taken) / float64(expected) * 100
	return math.Round(p*10) / 10
}
