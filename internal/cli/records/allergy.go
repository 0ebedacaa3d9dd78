package records

import (
	"fmt"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/health"
	"github.com/julianstephens/doselog/internal/models"
)

type AllergyAddCmd struct {
	Allergen string `arg:"" help:"What the profile is allergic to."`
	Reaction string `help:"Reaction, e.g. \"Hives\"."`
	Severity string `help:"Severity, e.g. Mild, Moderate or Severe."`
}

func (c *AllergyAddCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	a, err := ctx.Records.AddAllergy(profileID, models.Allergy{
		Allergen: c.Allergen,
		Reaction: c.Reaction,
		Severity: c.Severity,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added allergy: %s\n", describeAllergy(a))
	return nil
}

type AllergyListCmd struct{}

func (c *AllergyListCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	allergies, err := ctx.Records.ListAllergies(profileID)
	if err != nil {
		return err
	}
	if len(allergies) == 0 {
		fmt.Println("No known allergies.")
		return nil
	}

	fmt.Println("Allergies:")
	for _, a := range allergies {
		fmt.Printf("  %s  %s\n", health.ShortID(a.ID), describeAllergy(a))
	}
	return nil
}

func describeAllergy(a models.Allergy) string {
	s := a.Allergen
	if a.Reaction != "" {
		s += " - " + a.Reaction
	}
	if a.Severity != "" {
		s += " (" + a.Severity + ")"
	}
	return s
}

type AllergyEditCmd struct {
	Allergy  string  `arg:"" help:"Allergen name or the id shown by 'allergy list'."`
	Allergen *string `help:"New allergen name."`
	Reaction *string `help:"New reaction."`
	Severity *string `help:"New severity."`
}

func (c *AllergyEditCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	a, err := ctx.Records.EditAllergy(profileID, c.Allergy, func(a *models.Allergy) {
		if c.Allergen != nil {
			a.Allergen = *c.Allergen
		}
		if c.Reaction != nil {
			a.Reaction = *c.Reaction
		}
		if c.Severity != nil {
			a.Severity = *c.Severity
		}
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated allergy: %s\n", describeAllergy(a))
	return nil
}

type AllergyDeleteCmd struct {
	Allergy string `arg:"" help:"Allergen name or the id shown by 'allergy list'."`
}

func (c *AllergyDeleteCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	a, err := ctx.Records.DeleteAllergy(profileID, c.Allergy)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted allergy: %s\n", a.Allergen)
	return nil
}
