package health

import (
	"strings"
	"time"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/models"
)

const (
	StatusUpToDate  = "Up to Date"
	StatusOverdue   = "Overdue"
	StatusNoRecord  = "No Record"
	StatusLogged    = "Logged"
	StatusCompleted = "Completed"
	StatusPending   = "Pending"
)

// Influenza seasons start on August 1st.
const fluSeasonStartMonth = time.August

// Tdap boosters are due ten years after the last dose.
const tdapBoosterYears = 10

// VaccineStatus is one row of the vaccination report.
type VaccineStatus struct {
	VaccineType string `json:"vaccine_type" yaml:"vaccine_type"`
	LastDate    string `json:"last_date,omitempty" yaml:"last_date,omitempty"` // YYYY-MM-DD format
	Status      string `json:"status" yaml:"status"`
	NextDue     string `json:"next_due,omitempty" yaml:"next_due,omitempty"` // YYYY-MM-DD format
}

// VaccinationReport summarizes influenza, Tdap, Covid-19 and both shingles
// doses against today, a calendar date in the profile's timezone.
func VaccinationReport(vacs []models.Vaccination, today time.Time) []VaccineStatus {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	report := make([]VaccineStatus, 0, 5)

	flu := VaccineStatus{VaccineType: "Influenza", Status: StatusNoRecord}
	if last, ok := latest(vacs, "influenza", "flu"); ok {
		flu.LastDate = last.DateAdministered
		flu.Status = StatusOverdue
		if !last.Administered().Before(fluSeasonStart(today)) {
			flu.Status = StatusUpToDate
		}
	}
	report = append(report, flu)

	tdap := VaccineStatus{VaccineType: "Tdap (Tetanus)", Status: StatusNoRecord}
	if last, ok := latest(vacs, "tdap", "tetanus"); ok {
		due := last.Administered().AddDate(tdapBoosterYears, 0, 0)
		tdap.LastDate = last.DateAdministered
		tdap.NextDue = due.Format(constants.DateFormat)
		tdap.Status = StatusOverdue
		if !due.Before(today) {
			tdap.Status = StatusUpToDate
		}
	}
	report = append(report, tdap)

	covid := VaccineStatus{VaccineType: "Covid-19", Status: StatusNoRecord}
	if last, ok := latest(vacs, "covid"); ok {
		covid.LastDate = last.DateAdministered
		covid.Status = StatusLogged
	}
	report = append(report, covid)

	for _, dose := range []string{"Shingles Dose 1", "Shingles Dose 2"} {
		s := VaccineStatus{VaccineType: dose, Status: StatusPending}
		if last, ok := latest(vacs, strings.ToLower(dose)); ok {
			s.LastDate = last.DateAdministered
			s.Status = StatusCompleted
		}
		report = append(report, s)
	}
	return report
}

// fluSeasonStart returns August 1st of the season containing today.
func fluSeasonStart(today time.Time) time.Time {
	year := today.Year()
	if today.Month() < fluSeasonStartMonth {
		year--
	}
	return time.Date(year, fluSeasonStartMonth, 1, 0, 0, 0, 0, time.UTC)
}

// latest returns the most recent vaccination whose type contains any of keys.
func latest(vacs []models.Vaccination, keys ...string) (models.Vaccination, bool) {
	var best models.Vaccination
	found := false
	for _, v := range vacs {
		t := strings.ToLower(v.VaccineType)
		for _, k := range keys {
			if strings.Contains(t, k) {
				if !found || v.DateAdministered > best.DateAdministered {
					best = v
					found = true
				}
				break
			}
		}
	}
	return best, found
}
