package health

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/logger"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/utils"
)

// DefaultMETs maps activity names to their metabolic equivalent.
var DefaultMETs = map[string]float64{
	"running":  9.8,
	"walking":  3.8,
	"cycling":  7.5,
	"swimming": 8.0,
	"yoga":     2.5,
}

// unknownMET applies to activities missing from every table.
const unknownMET = 1.0

// ErrNoWeight is returned when calories must be estimated for a profile without a weight.
var ErrNoWeight = errors.New("profile has no weight set")

// Activity logs exercise and food and totals calories per local day.
type Activity struct {
	store Store
	// mets overrides DefaultMETs; keys are lower case
	mets map[string]float64

	Clock func() time.Time
}

func NewActivity(store Store, mets map[string]float64) *Activity {
	lower := make(map[string]float64, len(mets))
	for k, v := range mets {
		lower[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Activity{store: store, mets: lower, Clock: time.Now}
}

func (a *Activity) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock()
}

// MET returns the metabolic equivalent for activity.
func (a *Activity) MET(activity string) float64 {
	key := strings.ToLower(strings.TrimSpace(activity))
	if v, ok := a.mets[key]; ok {
		return v
	}
	if v, ok := DefaultMETs[key]; ok {
		return v
	}
	return unknownMET
}

// CaloriesBurned estimates energy use as met * weight_kg * 3.5 / 200 kcal per minute.
func CaloriesBurned(met, weightKg, minutes float64) float64 {
	return met * weightKg * 3.5 / 200 * minutes
}

// LogExercise records an exercise session ending now. When calories is nil it
// is estimated from the activity's MET value and the profile's weight.
func (a *Activity) LogExercise(p models.Profile, activity string, minutes float64, calories *float64) (models.ExerciseLog, models.DailyTotals, error) {
	e := models.ExerciseLog{
		ID:              uuid.New().String(),
		ProfileID:       p.ID,
		ActivityType:    strings.ToLower(strings.TrimSpace(activity)),
		DurationMinutes: minutes,
		LoggedAt:        a.now().UTC(),
	}
	switch {
	case calories != nil:
		e.CaloriesBurned = *calories
	case p.WeightKg <= 0:
		return models.ExerciseLog{}, models.DailyTotals{}, ErrNoWeight
	default:
		e.CaloriesBurned = CaloriesBurned(a.MET(e.ActivityType), p.WeightKg, minutes)
	}
	if err := e.Validate(); err != nil {
		return models.ExerciseLog{}, models.DailyTotals{}, err
	}
	if err := a.store.AddExerciseLog(e); err != nil {
		return models.ExerciseLog{}, models.DailyTotals{}, err
	}
	logger.Info("exercise logged", "activity", e.ActivityType, "minutes", e.DurationMinutes, "calories", e.CaloriesBurned)

	totals, err := a.DailyTotals(p, a.localDate(p, e.LoggedAt))
	return e, totals, err
}

// LogFood records a manually entered food item eaten now.
func (a *Activity) LogFood(p models.Profile, f models.FoodLog) (models.FoodLog, models.DailyTotals, error) {
	meal, err := models.ParseMeal(string(f.Meal))
	if err != nil {
		return models.FoodLog{}, models.DailyTotals{}, err
	}
	f.ID = uuid.New().String()
	f.ProfileID = p.ID
	f.FoodName = strings.TrimSpace(f.FoodName)
	f.Meal = meal
	if f.ServingSize == 0 {
		f.ServingSize = 1
	}
	if f.Quantity == 0 {
		f.Quantity = 1
	}
	f.LoggedAt = a.now().UTC()
	if err := f.Validate(); err != nil {
		return models.FoodLog{}, models.DailyTotals{}, err
	}
	if err := a.store.AddFoodLog(f); err != nil {
		return models.FoodLog{}, models.DailyTotals{}, err
	}
	logger.Info("food logged", "food", f.FoodName, "meal", f.Meal, "calories", f.TotalCalories())

	totals, err := a.DailyTotals(p, a.localDate(p, f.LoggedAt))
	return f, totals, err
}

// DailyTotals sums the calories logged on date (YYYY-MM-DD) in the profile's timezone.
func (a *Activity) DailyTotals(p models.Profile, date string) (models.DailyTotals, error) {
	loc, _ := utils.ResolveLocation(p.Timezone)
	start, err := utils.ParseDateInLocation(date, loc)
	if err != nil {
		return models.DailyTotals{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	end := start.AddDate(0, 0, 1)

	totals := models.DailyTotals{Date: date}
	foods, err := a.store.GetFoodLogsInRange(p.ID, start, end)
	if err != nil {
		return models.DailyTotals{}, err
	}
	for _, f := range foods {
		totals.Consumed += f.TotalCalories()
	}
	exercises, err := a.store.GetExerciseLogsInRange(p.ID, start, end)
	if err != nil {
		return models.DailyTotals{}, err
	}
	for _, e := range exercises {
		totals.Burned += e.CaloriesBurned
	}
	return totals, nil
}

// History returns one DailyTotals per local day for the last days days, oldest first.
func (a *Activity) History(p models.Profile, days int) ([]models.DailyTotals, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive")
	}
	today := a.localDate(p, a.now())
	first, err := utils.AddDays(today, -(days - 1))
	if err != nil {
		return nil, err
	}
	dates, err := utils.DateRange(first, today)
	if err != nil {
		return nil, err
	}

	out := make([]models.DailyTotals, 0, len(dates))
	for _, d := range dates {
		t, err := a.DailyTotals(p, d)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Today returns the current date in the profile's timezone.
func (a *Activity) Today(p models.Profile) string {
	return a.localDate(p, a.now())
}

func (a *Activity) localDate(p models.Profile, t time.Time) string {
	loc, _ := utils.ResolveLocation(p.Timezone)
	return t.In(loc).Format(constants.DateFormat)
}
