package activity

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/doselog/internal/cli"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/report"
	"github.com/julianstephens/doselog/internal/utils"
)

type FoodLogCmd struct {
	Name     string  `arg:"" help:"Food name."`
	Calories float64 `help:"Calories per serving." required:""`
	Serving  float64 `help:"Serving size multiplier." default:"1"`
	Quantity float64 `help:"Number of servings eaten." default:"1"`
	Meal     string  `help:"breakfast, lunch, dinner or snack." default:"snack"`
}

func (c *FoodLogCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	f, totals, err := ctx.Activity.LogFood(profile, models.FoodLog{
		FoodName:    c.Name,
		Meal:        models.Meal(c.Meal),
		Calories:    c.Calories,
		ServingSize: c.Serving,
		Quantity:    c.Quantity,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Logged %s (%s): %.0f kcal\n", f.FoodName, f.Meal, f.TotalCalories())
	printTotals(totals)
	return nil
}

type FoodListCmd struct {
	Date string `help:"Local date to show (YYYY-MM-DD). Defaults to today."`
}

func (c *FoodListCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	loc, _ := utils.ResolveLocation(profile.Timezone)
	date := c.Date
	if date == "" {
		date = ctx.Activity.Today(profile)
	}
	start, err := utils.ParseDateInLocation(date, loc)
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}

	logs, err := ctx.Store.GetFoodLogsInRange(profile.ID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Printf("No food logged on %s.\n", date)
		return nil
	}

	fmt.Printf("Food on %s:\n", date)
	var total float64
	for _, f := range logs {
		fmt.Printf("  %s  %-9s %s x%g  %.0f kcal\n", f.LoggedAt.In(loc).Format(time.Kitchen), f.Meal, f.FoodName, f.Quantity, f.TotalCalories())
		total += f.TotalCalories()
	}
	fmt.Printf("\nTotal: %.0f kcal\n", total)
	return nil
}

type DailyCmd struct {
	Days   int    `help:"Number of days ending today." default:"1"`
	Format string `help:"Output format." enum:"table,json,yaml" default:"table"`
}

func (c *DailyCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}
	days, err := ctx.Activity.History(profile, c.Days)
	if err != nil {
		return err
	}
	return report.WriteDailyTotals(os.Stdout, days, c.Format)
}
