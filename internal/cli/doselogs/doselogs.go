package doselogs

import (
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/compliance"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/utils"
)

type DoseLogCmd struct {
	Name   string `arg:"" help:"Medication taken."`
	At     string `help:"When it was taken: HH:MM today, \"YYYY-MM-DD HH:MM\" or RFC 3339. Defaults to now."`
	Window string `short:"w" help:"Window the dose belongs to (m,a,e,b). Defaults to the window containing the time."`
}

func (c *DoseLogCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	loc, _ := utils.ResolveLocation(profile.Timezone)

	var takenAt *time.Time
	if c.At != "" {
		t, err := cli.ParseTakenAt(c.At, loc, time.Now())
		if err != nil {
			return err
		}
		takenAt = &t
	}

	var window *models.Window
	if c.Window != "" {
		w, err := models.ParseWindow(c.Window)
		if err != nil {
			return err
		}
		window = &w
	}

	entry, alert, err := ctx.Doses.LogDose(profile.ID, c.Name, takenAt, window)
	if err != nil {
		return err
	}

	bucket, date := compliance.NewBucketer(profile).Bucket(entry.TakenAt, entry.Window)
	fmt.Printf("Logged %s at %s (%s, %s)\n", c.Name, cli.FormatLocal(entry.TakenAt, loc), bucket, date)
	if alert != nil {
		fmt.Println("⚠️  " + alert.String())
	}
	return nil
}

type DoseListCmd struct {
	Days int `help:"Number of days of history to show." default:"7"`
}

func (c *DoseListCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	loc, _ := utils.ResolveLocation(profile.Timezone)

	now := time.Now()
	logs, err := ctx.Doses.History(profile.ID, now.AddDate(0, 0, -c.Days), now.Add(time.Minute))
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Println("No doses logged.")
		return nil
	}

	names, err := medicationNames(ctx, profile.ID)
	if err != nil {
		return err
	}
	bucketer := compliance.NewBucketer(profile)

	fmt.Println("Doses:")
	for _, d := range logs {
		w, date := bucketer.Bucket(d.TakenAt, d.Window)
		tag := ""
		if d.HasExplicitWindow() {
			tag = " [tagged]"
		}
		fmt.Printf("  %s  %-20s %s %s%s  (ID: %s)\n",
			cli.FormatLocal(d.TakenAt, loc), names[d.MedicationID], date, w, tag, d.ID)
	}
	return nil
}

func medicationNames(ctx *cli.Context, profileID string) (map[string]string, error) {
	meds, err := ctx.Medications.List(profileID, true)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(meds))
	for _, m := range meds {
		names[m.ID] = m.Name
	}
	return names, nil
}

type DoseDeleteCmd struct {
	ID string `arg:"" help:"ID of the dose log to delete (see 'dose list')."`
}

func (c *DoseDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Doses.Undo(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted dose log %s\n", c.ID)
	return nil
}
