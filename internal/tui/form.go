package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/models"
)

type MedicationFormModel struct {
	Name      string
	Windows   []models.Window
	Type      models.MedicationType
	Inventory string
	Refills   string
}

func NewMedicationFormModel() *MedicationFormModel {
	return &MedicationFormModel{
		Type:      models.MedicationPrescription,
		Inventory: "0",
		Refills:   "0",
	}
}

func nonNegativeInt(s string) error {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if i < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// NewMedicationForm builds the add-medication form bound to fm.
func NewMedicationForm(fm *MedicationFormModel) *huh.Form {
	windowOptions := make([]huh.Option[models.Window], 0, len(models.AllWindows))
	for _, w := range models.AllWindows {
		windowOptions = append(windowOptions, huh.NewOption(string(w), w))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewMultiSelect[models.Window]().
				Title("Windows").
				Options(windowOptions...).
				Value(&fm.Windows).
				Validate(func(ws []models.Window) error {
					if len(ws) == 0 {
						return fmt.Errorf("pick at least one window")
					}
					return nil
				}),
			huh.NewSelect[models.MedicationType]().
				Title("Type").
				Options(
					huh.NewOption("Prescription", models.MedicationPrescription),
					huh.NewOption("Over the counter", models.MedicationOTC),
				).
				Value(&fm.Type),
			huh.NewInput().
				Title("Units on hand").
				Value(&fm.Inventory).
				Validate(nonNegativeInt),
			huh.NewInput().
				Title("Refills remaining").
				Value(&fm.Refills).
				Validate(nonNegativeInt),
		),
	)
}

// Medication converts the completed form into a medication for profileID.
func (fm MedicationFormModel) Medication(profileID string) (models.Medication, error) {
	if len(fm.Windows) == 0 {
		return models.Medication{}, fmt.Errorf("medication must be scheduled in at least one window")
	}
	inventory, err := strconv.Atoi(strings.TrimSpace(fm.Inventory))
	if err != nil {
		return models.Medication{}, fmt.Errorf("invalid inventory %q", fm.Inventory)
	}
	refills, err := strconv.Atoi(strings.TrimSpace(fm.Refills))
	if err != nil {
		return models.Medication{}, fmt.Errorf("invalid refills %q", fm.Refills)
	}

	m := models.Medication{
		ProfileID:        profileID,
		Name:             strings.TrimSpace(fm.Name),
		Type:             fm.Type,
		CurrentInventory: inventory,
		RefillsRemaining: refills,
		RefillQuantity:   constants.DefaultRefillQuantity,
	}
	for _, w := range fm.Windows {
		m.SetScheduled(w, true)
	}
	return m, nil
}
