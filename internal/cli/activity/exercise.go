package activity

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/cli"
	apperrors "github.com/julianstephens/doselog/internal/errors"
	"github.com/julianstephens/doselog/internal/health"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/utils"
)

type ExerciseLogCmd struct {
	Activity string   `arg:"" help:"Activity, e.g. running, walking, cycling, swimming, yoga."`
	Minutes  float64  `arg:"" help:"Duration in minutes."`
	Calories *float64 `help:"Calories burned. Estimated from the profile weight when omitted."`
}

func (c *ExerciseLogCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	e, totals, err := ctx.Activity.LogExercise(profile, c.Activity, c.Minutes, c.Calories)
	if errors.Is(err, health.ErrNoWeight) {
		return apperrors.WithHint(err, "set it with 'doselog profile set --weight <kg>' or pass --calories")
	}
	if err != nil {
		return err
	}
	fmt.Printf("Logged %s for %.0f min: %.0f kcal burned\n", e.ActivityType, e.DurationMinutes, e.CaloriesBurned)
	printTotals(totals)
	return nil
}

type ExerciseListCmd struct {
	Days int `help:"Number of days to show." default:"7"`
}

func (c *ExerciseListCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	loc, _ := utils.ResolveLocation(profile.Timezone)

	now := time.Now()
	logs, err := ctx.Store.GetExerciseLogsInRange(profile.ID, now.AddDate(0, 0, -c.Days), now.Add(time.Minute))
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Println("No exercise logged.")
		return nil
	}

	fmt.Println("Exercise:")
	for _, e := range logs {
		fmt.Printf("  %s  %-10s %5.0f min  %5.0f kcal\n", cli.FormatLocal(e.LoggedAt, loc), e.ActivityType, e.DurationMinutes, e.CaloriesBurned)
	}
	return nil
}

func printTotals(t models.DailyTotals) {
	fmt.Printf("Today (%s): %.0f kcal consumed, %.0f kcal burned\n", t.Date, t.Consumed, t.Burned)
}
