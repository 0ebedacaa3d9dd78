package records

import (
	"fmt"

	"github.com/julianstephens/doselog/internal/cli"
)

type PrescriberAddCmd struct {
	Name  string `arg:"" help:"Prescriber name."`
	Phone string `help:"Phone number."`
}

func (c *PrescriberAddCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	p, err := ctx.Records.AddPrescriber(profileID, c.Name, c.Phone)
	if err != nil {
		return err
	}
	fmt.Printf("Added prescriber: %s\n", p.Name)
	return nil
}

type PrescriberListCmd struct{}

func (c *PrescriberListCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	prescribers, err := ctx.Records.ListPrescribers(profileID)
	if err != nil {
		return err
	}
	if len(prescribers) == 0 {
		fmt.Println("No prescribers found.")
		return nil
	}

	meds, err := ctx.Medications.List(profileID, false)
	if err != nil {
		return err
	}
	fmt.Println("Prescribers:")
	for _, p := range prescribers {
		phone := ""
		if p.PhoneNumber != "" {
			phone = " " + p.PhoneNumber
		}
		fmt.Printf("  %s%s\n", p.Name, phone)
		for _, m := range meds {
			if m.PrescriberID == p.ID {
				fmt.Printf("      %s\n", m.Name)
			}
		}
	}
	return nil
}
