package profiles

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/models"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profile()
	if err != nil {
		return err
	}
	fmt.Printf("Profile:  %s\n", p.Name)
	fmt.Printf("Timezone: %s\n", p.Timezone)
	if p.WeightKg > 0 {
		fmt.Printf("Weight:   %.1f kg\n", p.WeightKg)
	}
	fmt.Println("Windows:")
	for _, ws := range p.WindowStarts() {
		fmt.Printf("  %-10s %s\n", ws.Window, ws.Start)
	}
	return nil
}

type ProfileSetCmd struct {
	Timezone  *string  `help:"IANA time zone, e.g. America/Detroit."`
	Morning   *string  `help:"Morning window start (HH:MM)."`
	Afternoon *string  `help:"Afternoon window start (HH:MM)."`
	Evening   *string  `help:"Evening window start (HH:MM)."`
	Bedtime   *string  `help:"Bedtime window start (HH:MM)."`
	Weight    *float64 `help:"Body weight in kg, used to estimate exercise calories."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profile()
	if err != nil {
		return err
	}

	if c.Timezone != nil {
		p.Timezone = *c.Timezone
	}
	if c.Weight != nil {
		p.WeightKg = *c.Weight
	}
	for w, v := range map[models.Window]*string{
		models.WindowMorning:   c.Morning,
		models.WindowAfternoon: c.Afternoon,
		models.WindowEvening:   c.Evening,
		models.WindowBedtime:   c.Bedtime,
	} {
		if v != nil {
			p.SetWindowStart(w, *v)
		}
	}

	if err := p.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateProfile(p); err != nil {
		return err
	}
	ctx.ForgetProfile()
	fmt.Printf("Updated profile %s\n", p.Name)
	return nil
}

type ProfileListCmd struct{}

func (c *ProfileListCmd) Run(ctx *cli.Context) error {
	profiles, err := ctx.Store.GetAllProfiles()
	if err != nil {
		return err
	}
	for _, p := range profiles {
		marker := " "
		if p.Name == ctx.Config.Profile {
			marker = "*"
		}
		fmt.Printf("%s %s (%s)\n", marker, p.Name, p.Timezone)
	}
	return nil
}

type ProfileAddCmd struct {
	Name     string `arg:"" help:"Profile name."`
	Timezone string `help:"IANA time zone." default:"UTC"`
}

func (c *ProfileAddCmd) Run(ctx *cli.Context) error {
	p := models.Profile{
		ID:        uuid.New().String(),
		Name:      c.Name,
		Timezone:  c.Timezone,
		CreatedAt: time.Now().UTC(),
	}
	models.ApplyDefaultProfile(&p)
	if err := p.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddProfile(p); err != nil {
		return err
	}
	fmt.Printf("Added profile %s. Select it with --profile %s\n", p.Name, p.Name)
	return nil
}
