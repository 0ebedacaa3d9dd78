package records

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/health"
	"github.com/julianstephens/doselog/internal/report"
	"github.com/julianstephens/doselog/internal/utils"
)

type VaccineAddCmd struct {
	Type string `arg:"" help:"Vaccine, e.g. Influenza, Covid, Tdap, \"Shingles Dose 1\"."`
	Date string `help:"Date administered (YYYY-MM-DD). Defaults to today."`
}

func (c *VaccineAddCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	date := c.Date
	if date == "" {
		loc, _ := utils.ResolveLocation(profile.Timezone)
		date = time.Now().In(loc).Format(constants.DateFormat)
	}
	v, err := ctx.Records.AddVaccination(profile.ID, c.Type, date)
	if err != nil {
		return err
	}
	fmt.Printf("Logged %s on %s\n", v.VaccineType, v.DateAdministered)
	return nil
}

type VaccineListCmd struct{}

func (c *VaccineListCmd) Run(ctx *cli.Context) error {
	profileID, err := ctx.ProfileID()
	if err != nil {
		return err
	}
	vacs, err := ctx.Records.ListVaccinations(profileID)
	if err != nil {
		return err
	}
	if len(vacs) == 0 {
		fmt.Println("No vaccinations logged.")
		return nil
	}

	fmt.Println("Vaccinations:")
	for _, v := range vacs {
		fmt.Printf("  %s  %s\n", v.DateAdministered, v.VaccineType)
	}
	return nil
}

type VaccineReportCmd struct {
	Format string `help:"Output format." enum:"table,json,yaml" default:"table"`
}

func (c *VaccineReportCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	vacs, err := ctx.Records.ListVaccinations(profile.ID)
	if err != nil {
		return err
	}
	loc, _ := utils.ResolveLocation(profile.Timezone)
	rows := health.VaccinationReport(vacs, time.Now().In(loc))
	return report.WriteVaccinations(os.Stdout, rows, c.Format)
}
