package bp

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/utils"
)

type BPLogCmd struct {
	Systolic  int    `arg:"" help:"Systolic pressure (mmHg)."`
	Diastolic int    `arg:"" help:"Diastolic pressure (mmHg)."`
	Pulse     int    `help:"Pulse (bpm)."`
	At        string `help:"When it was measured. Defaults to now."`
	Location  string `help:"Where it was measured, e.g. \"left arm\"."`
	Stress    int    `help:"Stress level 0-10."`
	MedsTaken string `name:"meds-taken" help:"Medications taken before the reading."`
}

func (c *BPLogCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	loc, _ := utils.ResolveLocation(profile.Timezone)

	measured := time.Now()
	if c.At != "" {
		if measured, err = cli.ParseTakenAt(c.At, loc, measured); err != nil {
			return err
		}
	}

	reading := models.BloodPressure{
		ID:              uuid.New().String(),
		ProfileID:       profile.ID,
		Systolic:        c.Systolic,
		Diastolic:       c.Diastolic,
		Pulse:           c.Pulse,
		MeasuredAt:      measured.UTC(),
		Location:        c.Location,
		StressLevel:     c.Stress,
		MedsTakenBefore: c.MedsTaken,
	}
	if err := reading.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddBloodPressure(reading); err != nil {
		return err
	}
	fmt.Printf("Logged %d/%d at %s (%s)\n", reading.Systolic, reading.Diastolic, cli.FormatLocal(reading.MeasuredAt, loc), reading.Category())
	return nil
}

type BPListCmd struct {
	Days int `help:"Number of days of readings to show." default:"30"`
}

func (c *BPListCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	loc, _ := utils.ResolveLocation(profile.Timezone)

	now := time.Now()
	readings, err := ctx.Store.GetBloodPressureReadings(profile.ID, now.AddDate(0, 0, -c.Days), now.Add(time.Minute))
	if err != nil {
		return err
	}
	if len(readings) == 0 {
		fmt.Println("No blood pressure readings.")
		return nil
	}

	fmt.Println("Blood pressure:")
	var sumSys, sumDia int
	for _, r := range readings {
		pulse := ""
		if r.Pulse > 0 {
			pulse = fmt.Sprintf(", pulse %d", r.Pulse)
		}
		fmt.Printf("  %s  %d/%d%s  %s\n", cli.FormatLocal(r.MeasuredAt, loc), r.Systolic, r.Diastolic, pulse, r.Category())
		sumSys += r.Systolic
		sumDia += r.Diastolic
	}
	n := len(readings)
	fmt.Printf("\nAverage over %d readings: %d/%d\n", n, sumSys/n, sumDia/n)
	return nil
}
