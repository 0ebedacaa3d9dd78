package meds

import (
	"fmt"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/models"
)

type MedAddCmd struct {
	Name       string `arg:"" help:"Medication name."`
	Schedule   string `help:"Comma-separated windows the medication is taken in (m,a,e,b)." required:""`
	Type       string `help:"prescription or otc." default:"prescription" enum:"prescription,otc"`
	Inventory  int    `help:"Units on hand." default:"0"`
	Refills    int    `help:"Refills remaining." default:"0"`
	Daily      int    `help:"Doses per day. Defaults to the number of scheduled windows."`
	RefillQty  int    `name:"refill-qty" help:"Units added by one refill." default:"30"`
	Start      string `help:"First day of the course (YYYY-MM-DD)."`
	End        string `help:"Last day of the course (YYYY-MM-DD)."`
	Prescriber string `help:"Name of the prescriber, added with 'prescriber add'."`
}

func (c *MedAddCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	windows, err := cli.ParseSchedule(c.Schedule)
	if err != nil {
		return err
	}

	m := models.Medication{
		ProfileID:        profileID,
		Name:             c.Name,
		Type:             models.MedicationType(c.Type),
		CurrentInventory: c.Inventory,
		RefillsRemaining: c.Refills,
		DailyDoses:       c.Daily,
		RefillQuantity:   c.RefillQty,
		StartDate:        c.Start,
		EndDate:          c.End,
	}
	cli.ApplySchedule(&m, windows)
	if m.PrescriberID, err = prescriberID(ctx, profileID, c.Prescriber); err != nil {
		return err
	}

	m, err = ctx.Medications.Add(m)
	if err != nil {
		return err
	}
	fmt.Printf("Added medication: %s (%s)\n", m.Name, m.ScheduleAbbrev())
	return nil
}

type MedListCmd struct {
	Deleted bool `help:"Include deleted medications."`
}

func (c *MedListCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	meds, err := ctx.Medications.List(profileID, c.Deleted)
	if err != nil {
		return err
	}
	if len(meds) == 0 {
		fmt.Println("No medications found.")
		return nil
	}

	fmt.Println("Medications:")
	for _, m := range meds {
		status := "active"
		if m.DeletedAt != nil {
			status = "deleted"
		}
		fmt.Printf("  [%s] %s (%s) - %d on hand, %s days left, %d refills [%s]\n",
			status, m.Name, m.ScheduleAbbrev(), m.CurrentInventory, formatDays(m), m.RefillsRemaining, m.Type)
		if m.StartDate != "" || m.EndDate != "" {
			fmt.Printf("      Course: %s - %s\n", orDash(m.StartDate), orDash(m.EndDate))
		}
		if name := ctx.Records.PrescriberName(m.PrescriberID); name != "" {
			fmt.Printf("      Prescriber: %s\n", name)
		}
	}
	return nil
}

// prescriberID resolves a prescriber name to its id. An empty name means none.
func prescriberID(ctx *cli.Context, profileID, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	p, err := ctx.Records.Prescriber(profileID, name)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatDays(m models.Medication) string {
	if m.DailyDoses <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", m.DaysRemaining())
}

type MedEditCmd struct {
	Name       string  `arg:"" help:"Medication to edit."`
	Rename     *string `help:"New name."`
	Schedule   *string `help:"New schedule (m,a,e,b)."`
	Inventory  *int    `help:"Units on hand."`
	Refills    *int    `help:"Refills remaining."`
	Daily      *int    `help:"Doses per day."`
	RefillQty  *int    `name:"refill-qty" help:"Units added by one refill."`
	Start      *string `help:"First day of the course (YYYY-MM-DD)."`
	End        *string `help:"Last day of the course (YYYY-MM-DD)."`
	Prescriber *string `help:"Prescriber name. An empty value clears it."`
}

func (c *MedEditCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	var prescriber *string
	if c.Prescriber != nil {
		id, err := prescriberID(ctx, profileID, *c.Prescriber)
		if err != nil {
			return err
		}
		prescriber = &id
	}

	m, err := ctx.Medications.Edit(profileID, c.Name, func(m *models.Medication) error {
		if prescriber != nil {
			m.PrescriberID = *prescriber
		}
		return c.apply(m)
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated medication: %s (%s)\n", m.Name, m.ScheduleAbbrev())
	return nil
}

func (c *MedEditCmd) apply(m *models.Medication) error {
	if c.Rename != nil {
		m.Name = *c.Rename
	}
	if c.Schedule != nil {
		windows, err := cli.ParseSchedule(*c.Schedule)
		if err != nil {
			return err
		}
		cli.ApplySchedule(m, windows)
	}
	if c.Inventory != nil {
		m.CurrentInventory = *c.Inventory
	}
	if c.Refills != nil {
		m.RefillsRemaining = *c.Refills
	}
	if c.Daily != nil {
		m.DailyDoses = *c.Daily
	}
	if c.RefillQty != nil {
		m.RefillQuantity = *c.RefillQty
	}
	if c.Start != nil {
		m.StartDate = *c.Start
	}
	if c.End != nil {
		m.EndDate = *c.End
	}
	return nil
}

type MedRefillCmd struct {
	Name     string `arg:"" help:"Medication to refill."`
	Quantity int    `arg:"" optional:"" help:"Units added. Defaults to the medication's refill quantity."`
}

func (c *MedRefillCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	m, err := ctx.Medications.Refill(profileID, c.Name, c.Quantity)
	if err != nil {
		return err
	}
	fmt.Printf("Refilled %s: %d on hand, %d refills remaining\n", m.Name, m.CurrentInventory, m.RefillsRemaining)
	return nil
}

type MedDeleteCmd struct {
	Name string `arg:"" help:"Medication to delete. It can be restored later."`
}

func (c *MedDeleteCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	if err := ctx.Medications.Delete(profileID, c.Name); err != nil {
		return err
	}
	fmt.Printf("Deleted medication: %s\n", c.Name)
	return nil
}

type MedRestoreCmd struct {
	Name string `arg:"" help:"Deleted medication to restore."`
}

func (c *MedRestoreCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	m, err := ctx.Medications.Restore(profileID, c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Restored medication: %s\n", m.Name)
	return nil
}
