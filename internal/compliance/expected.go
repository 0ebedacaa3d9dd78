package compliance

import (
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/utils"
)

// ExpectedSlots enumerates every scheduled slot for meds across the inclusive
// date range [start, end]. Medication start and end dates are not consulted.
func ExpectedSlots(meds []models.Medication, start, end string) ([]Slot, error) {
	dates, err := utils.DateRange(start, end)
	if err != nil {
		return nil, err
	}

	var slots []Slot
	for _, date := range dates {
		for _, med := range meds {
			for _, w := range med.ScheduledWindows() {
				slots = append(slots, Slot{MedicationID: med.ID, Window: w, Date: date})
			}
		}
	}
	return slots, nil
}
